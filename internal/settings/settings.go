// Package settings loads and persists the settings document shared by
// the argo-data binaries: one JSON file naming the database, the feed
// credentials, and the log level.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-data/pkg/errors"
)

// DatabaseSettings locate the bar store and pick the zone stored bars
// are presented in.
type DatabaseSettings struct {
	// Path is the DuckDB database file.
	Path string `json:"path" validate:"required"`
	// Timezone is the IANA zone loaded bars are localized to.
	Timezone string `json:"timezone" validate:"required"`
}

// FeedSettings configure the historical data providers.
type FeedSettings struct {
	PolygonAPIKey string `json:"polygon_api_key,omitempty"`
	// BackfillStart is where a download begins when the series has no
	// stored bars yet.
	BackfillStart time.Time `json:"backfill_start" validate:"required"`
}

// LogSettings pick the logging verbosity.
type LogSettings struct {
	Level string `json:"level" validate:"required,oneof=debug info warn error"`
}

// Settings is the whole document. Code receives it as a value; there
// is no process-global settings state.
type Settings struct {
	Database DatabaseSettings `json:"database"`
	Feed     FeedSettings     `json:"feed"`
	Log      LogSettings      `json:"log"`
}

// DefaultSettings returns the document used when no settings file
// exists yet.
func DefaultSettings() Settings {
	return Settings{
		Database: DatabaseSettings{
			Path:     "data/bars.duckdb",
			Timezone: "UTC",
		},
		Feed: FeedSettings{
			BackfillStart: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

// Validate validates the Settings struct.
func (s *Settings) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid settings", err)
	}

	if _, err := time.LoadLocation(s.Database.Timezone); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "unknown timezone %q", s.Database.Timezone)
	}

	return nil
}

// Location resolves the configured database timezone.
func (s *Settings) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Database.Timezone)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "unknown timezone %q", s.Database.Timezone)
	}

	return loc, nil
}

// Load reads the settings document at path. A missing file yields the
// defaults; a present document overlays them field by field, so a
// partial document keeps default values for the keys it omits.
func Load(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}

		return Settings{}, errors.Wrapf(errors.ErrCodeSettingsLoadFailed, err, "failed to read settings file %s", path)
	}

	if err := json.Unmarshal(data, &settings); err != nil {
		return Settings{}, errors.Wrapf(errors.ErrCodeSettingsLoadFailed, err, "failed to parse settings file %s", path)
	}

	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}

	return settings, nil
}

// Save writes the whole document atomically: marshal to a temp file in
// the target directory, then rename over path.
func Save(path string, settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeSettingsSaveFailed, "failed to marshal settings", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(errors.ErrCodeSettingsSaveFailed, err, "failed to create settings directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return errors.Wrapf(errors.ErrCodeSettingsSaveFailed, err, "failed to create temp file in %s", dir)
	}

	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)

		return errors.Wrap(errors.ErrCodeSettingsSaveFailed, "failed to write settings", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)

		return errors.Wrap(errors.ErrCodeSettingsSaveFailed, "failed to close temp settings file", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)

		return errors.Wrapf(errors.ErrCodeSettingsSaveFailed, err, "failed to replace settings file %s", path)
	}

	return nil
}

// Update applies fn to the current document and saves the result, the
// read-modify-write cycle as one operation.
func Update(path string, fn func(*Settings) error) (Settings, error) {
	settings, err := Load(path)
	if err != nil {
		return Settings{}, err
	}

	if err := fn(&settings); err != nil {
		return Settings{}, err
	}

	if err := Save(path, settings); err != nil {
		return Settings{}, err
	}

	return settings, nil
}
