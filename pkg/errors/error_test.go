package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidParameter, err.Code)
	suite.Equal("invalid parameter", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeInvalidParameter, "invalid parameter: %s", "test")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidParameter, err.Code)
	suite.Equal("invalid parameter: test", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataNotFound, "data not found", cause)
	suite.NotNil(err)
	suite.Equal(ErrCodeDataNotFound, err.Code)
	suite.Equal("data not found", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("underlying error")
	err := Wrapf(ErrCodeDataNotFound, cause, "data not found for symbol: %s", "AAPL")
	suite.NotNil(err)
	suite.Equal(ErrCodeDataNotFound, err.Code)
	suite.Equal("data not found for symbol: AAPL", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestErrorString() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Equal("[100] invalid parameter", err.Error())
}

func (suite *ErrorTestSuite) TestErrorStringWithCause() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataNotFound, "data not found", cause)
	suite.Equal("[200] data not found: underlying error", err.Error())
}

func (suite *ErrorTestSuite) TestUnwrap() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataNotFound, "data not found", cause)
	suite.Equal(cause, err.Unwrap())
}

func (suite *ErrorTestSuite) TestUnwrapNil() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Nil(err.Unwrap())
}

func (suite *ErrorTestSuite) TestGetCode() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Equal(ErrCodeInvalidParameter, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromWrapped() {
	cause := New(ErrCodeDataNotFound, "data not found")
	err := Wrap(ErrCodeQueryFailed, "query failed", cause)
	// GetCode should return the outermost error's code
	suite.Equal(ErrCodeQueryFailed, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromNonArgoError() {
	err := errors.New("standard error")
	suite.Equal(ErrCodeUnknown, GetCode(err))
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.True(HasCode(err, ErrCodeInvalidParameter))
	suite.False(HasCode(err, ErrCodeDataNotFound))
}

func (suite *ErrorTestSuite) TestIsError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataNotFound, "data not found", cause)
	suite.True(Is(err, cause))
}

func (suite *ErrorTestSuite) TestAsError() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	var argoErr *Error
	suite.True(As(err, &argoErr))
	suite.Equal(ErrCodeInvalidParameter, argoErr.Code)
}

func (suite *ErrorTestSuite) TestErrorCodeValues() {
	// Verify some key error codes have expected values
	suite.Equal(ErrorCode(1), ErrCodeUnknown)
	suite.Equal(ErrorCode(100), ErrCodeInvalidParameter)
	suite.Equal(ErrorCode(200), ErrCodeDataNotFound)
	suite.Equal(ErrorCode(300), ErrCodeFileNotFound)
	suite.Equal(ErrorCode(400), ErrCodeStoreInitFailed)
	suite.Equal(ErrorCode(500), ErrCodeFetchFailed)
	suite.Equal(ErrorCode(600), ErrCodeSettingsLoadFailed)
	suite.Equal(ErrorCode(700), ErrCodeExportFailed)
	suite.Equal(ErrorCode(800), ErrCodeCallbackFailed)
}

func (suite *ErrorTestSuite) TestRowError() {
	err := &RowError{
		Row:     12,
		Column:  "Date",
		Message: "failed to parse timestamp",
		Cause:   nil,
	}
	suite.Equal("row 12: failed to parse timestamp", err.Error())
	suite.Equal(12, err.Row)
	suite.Equal("Date", err.Column)
}

func (suite *ErrorTestSuite) TestRowErrorWithCause() {
	cause := New(ErrCodeTimestampParse, "timestamp does not match layout")
	err := NewRowError(3, "Date", "failed to parse timestamp", cause)
	suite.Equal("row 3: failed to parse timestamp: [303] timestamp does not match layout", err.Error())
	suite.Equal(cause, err.Unwrap())
}

func (suite *ErrorTestSuite) TestNewRowErrorf() {
	cause := New(ErrCodeNumberParse, "invalid float")
	err := NewRowErrorf(7, "Close", cause, "failed to parse %s value", "Close")
	suite.NotNil(err)
	suite.Equal(7, err.Row)
	suite.Equal("Close", err.Column)
	suite.Equal("failed to parse Close value", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestRowErrorCodeVisibleThroughChain() {
	// The typed code underneath a RowError must be reachable by GetCode.
	cause := New(ErrCodeTimestampParse, "timestamp does not match layout")
	err := NewRowError(3, "Date", "failed to parse timestamp", cause)
	suite.True(HasCode(err, ErrCodeTimestampParse))
	suite.Equal(ErrCodeTimestampParse, GetCode(err))
}

func (suite *ErrorTestSuite) TestIsRowError() {
	// Test with RowError
	rowErr := NewRowError(5, "Volume", "failed to parse volume", nil)
	suite.True(IsRowError(rowErr))

	// Test with standard error
	stdErr := errors.New("standard error")
	suite.False(IsRowError(stdErr))

	// Test with *Error type
	argoErr := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.False(IsRowError(argoErr))

	// Test with nil
	suite.False(IsRowError(nil))
}

func (suite *ErrorTestSuite) TestRowOf() {
	rowErr := NewRowError(42, "Open", "failed to parse open price", nil)
	row, ok := RowOf(rowErr)
	suite.True(ok)
	suite.Equal(42, row)

	_, ok = RowOf(errors.New("standard error"))
	suite.False(ok)
}

func (suite *ErrorTestSuite) TestRowErrorWithEmptyColumn() {
	// Column can be empty when the whole row is at fault
	err := NewRowError(9, "", "wrong number of fields", nil)
	suite.True(IsRowError(err))
	suite.Equal("", err.Column)
}
