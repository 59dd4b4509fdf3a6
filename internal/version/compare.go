package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckProfileCompatibility checks whether a profile written against
// profileVersion can be loaded by a library supporting supportedVersion.
// Returns nil if compatible, error with details if not.
//
// Compatibility Rules:
//   - If either version is "main" (development build), compatibility check is skipped
//   - Major versions must match exactly
//   - The profile's minor version must not be newer than the supported one
//   - Patch versions never matter (e.g., 1.2.0 is compatible with 1.2.5)
//
// Examples:
//   - Supported 1.2.0, Profile 1.2.0 -> OK (exact match)
//   - Supported 1.2.0, Profile 1.2.5 -> OK (patch differs)
//   - Supported 1.2.0, Profile 1.1.0 -> OK (older profile, still readable)
//   - Supported 1.2.0, Profile 1.3.0 -> ERROR (profile newer than library)
//   - Supported 2.0.0, Profile 1.2.0 -> ERROR (major differs)
//   - Supported main, Profile 1.2.0 -> OK (dev build, skip check)
func CheckProfileCompatibility(supportedVersion, profileVersion string) error {
	// Strip 'v' prefix if present for consistency
	supportedVersion = strings.TrimPrefix(supportedVersion, "v")
	profileVersion = strings.TrimPrefix(profileVersion, "v")

	// Skip version check for "main" (development builds)
	if supportedVersion == "main" || profileVersion == "main" {
		return nil
	}

	// Parse supported schema version
	supportedSemver, err := semver.NewVersion(supportedVersion)
	if err != nil {
		return fmt.Errorf("invalid supported version '%s': %w", supportedVersion, err)
	}

	// Parse profile version
	profileSemver, err := semver.NewVersion(profileVersion)
	if err != nil {
		return fmt.Errorf("invalid profile version '%s': %w", profileVersion, err)
	}

	// Check major version match
	if supportedSemver.Major() != profileSemver.Major() {
		return fmt.Errorf("major version mismatch: library supports schema %d.x but profile declares %d.x",
			supportedSemver.Major(), profileSemver.Major())
	}

	// A profile written against a newer minor may use fields this build
	// does not know about.
	if profileSemver.Minor() > supportedSemver.Minor() {
		return fmt.Errorf("profile schema %d.%d is newer than supported %d.%d",
			profileSemver.Major(), profileSemver.Minor(),
			supportedSemver.Major(), supportedSemver.Minor())
	}

	// Patch versions can differ, so we're compatible
	return nil
}
