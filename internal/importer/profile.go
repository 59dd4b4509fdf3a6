package importer

import (
	"encoding/json"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-data/internal/types"
	"github.com/rxtech-lab/argo-data/internal/version"
	"github.com/rxtech-lab/argo-data/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Profile is a reusable vendor mapping stored as a YAML document, so
// the same file layout does not have to be re-described for every
// import run. Version pins the profile schema the document was written
// against and is checked before the profile is used.
type Profile struct {
	Name    string       `yaml:"name" json:"name" jsonschema:"title=Name,description=Identifier of the vendor layout (e.g. tdx-1m),required" validate:"required"`
	Version string       `yaml:"version" json:"version" jsonschema:"title=Version,description=Profile schema version this document was written against,required" validate:"required"`
	Config  ImportConfig `yaml:"config" json:"config" jsonschema:"title=Config,description=Import configuration,required" validate:"required"`
}

// Validate validates the profile document, including its schema version
// compatibility with this build.
func (p *Profile) Validate() error {
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		return errors.Wrap(errors.ErrCodeUnknownProfile, "invalid profile", err)
	}

	if err := version.CheckProfileCompatibility(version.ProfileSchemaVersion, p.Version); err != nil {
		return errors.Wrapf(errors.ErrCodeVersionMismatch, err, "profile %q is not compatible with this build", p.Name)
	}

	return p.Config.Validate()
}

// LoadProfile reads and validates a profile document from path.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrCodeFileNotFound, err, "profile not found: %s", path)
		}

		return nil, errors.Wrapf(errors.ErrCodeUnknownProfile, err, "failed to read profile: %s", path)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeUnknownProfile, err, "failed to parse profile: %s", path)
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return &profile, nil
}

// SampleProfile returns a filled-in profile used as the starting point
// for new vendor mappings.
func SampleProfile() Profile {
	return Profile{
		Name:    "generic-csv-1m",
		Version: version.ProfileSchemaVersion,
		Config: ImportConfig{
			Symbol:     "rb2101",
			Exchange:   types.ExchangeSHFE,
			Interval:   types.Interval1m,
			Source:     DefaultSource,
			TimeLayout: "2006/01/02 15:04",
			Timezone:   "Asia/Shanghai",
			Columns: ColumnMap{
				Datetime:     "Datetime",
				Open:         "Open",
				High:         "High",
				Low:          "Low",
				Close:        "Close",
				Volume:       "Volume",
				OpenInterest: "OpenInterest",
			},
			Delimiter:        DelimiterComma,
			TrimTrailingRows: 1,
			OnError:          RowErrorFail,
		},
	}
}

// GenerateSchema generates a JSON schema for the profile document.
func (p *Profile) GenerateSchema() (*jsonschema.Schema, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(p)
	schema.Title = "argo-data-import-profile"
	schema.Description = "Vendor column mapping for the bar importer"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates an indented JSON schema string for the
// profile document.
func (p *Profile) GenerateSchemaJSON() (string, error) {
	schema, err := p.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
