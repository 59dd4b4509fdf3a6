package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidType          ErrorCode = 102
	ErrCodeMissingParameter     ErrorCode = 103
	ErrCodeInvalidVersion       ErrorCode = 104
	ErrCodeInvalidInterval      ErrorCode = 105
	ErrCodeInvalidExchange      ErrorCode = 106
	ErrCodeVersionMismatch      ErrorCode = 107

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeNoDataFound           ErrorCode = 203

	// Import errors (300-399)
	ErrCodeFileNotFound   ErrorCode = 300
	ErrCodeMissingColumn  ErrorCode = 301
	ErrCodeMalformedRow   ErrorCode = 302
	ErrCodeTimestampParse ErrorCode = 303
	ErrCodeNumberParse    ErrorCode = 304
	ErrCodeInvalidBar     ErrorCode = 305
	ErrCodeUnknownProfile ErrorCode = 306

	// Store errors (400-499)
	ErrCodeStoreInitFailed ErrorCode = 400
	ErrCodeWriteFailed     ErrorCode = 401
	ErrCodeDeleteFailed    ErrorCode = 402

	// Feed errors (500-599)
	ErrCodeFetchFailed         ErrorCode = 500
	ErrCodeInvalidTimespan     ErrorCode = 501
	ErrCodeUnsupportedProvider ErrorCode = 502

	// Settings errors (600-699)
	ErrCodeSettingsLoadFailed ErrorCode = 600
	ErrCodeSettingsSaveFailed ErrorCode = 601
	ErrCodeSettingNotFound    ErrorCode = 602

	// Export errors (700-799)
	ErrCodeExportFailed ErrorCode = 700

	// Callback errors (800-899)
	ErrCodeCallbackFailed ErrorCode = 800
)
