package version

// Version is the current version of the argo-data library.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/rxtech-lab/argo-data/internal/version.Version=1.2.3"
// The default value "main" indicates a development build.
var Version = "main"

// ProfileSchemaVersion is the newest import-profile schema this build of
// the library understands. Profiles declare the schema version they were
// written against; CheckProfileCompatibility gates loading on it.
var ProfileSchemaVersion = "1.0.0"

// GetVersion returns the current version of the library.
func GetVersion() string {
	return Version
}
