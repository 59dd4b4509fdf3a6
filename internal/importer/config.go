package importer

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-data/internal/types"
	"github.com/rxtech-lab/argo-data/pkg/errors"
)

// RowErrorPolicy selects what happens when a data row fails to parse.
type RowErrorPolicy string

const (
	// RowErrorFail stops the import at the first bad row.
	RowErrorFail RowErrorPolicy = "fail"
	// RowErrorSkip records the bad row in the report and continues.
	RowErrorSkip RowErrorPolicy = "skip"
)

// Delimiter names the field separator of the source file.
type Delimiter string

const (
	DelimiterComma Delimiter = "comma"
	DelimiterTab   Delimiter = "tab"
)

// Rune returns the separator character the delimiter stands for.
// The zero value reads as comma.
func (d Delimiter) Rune() rune {
	if d == DelimiterTab {
		return '\t'
	}

	return ','
}

// ColumnMap names the source file header each bar field is read from.
// OpenInterest may stay empty for vendors that do not report it; every
// bar then carries zero open interest.
type ColumnMap struct {
	Datetime     string `yaml:"datetime" json:"datetime" jsonschema:"title=Datetime Column,description=Header of the timestamp column,required" validate:"required"`
	Open         string `yaml:"open" json:"open" jsonschema:"title=Open Column,description=Header of the open price column,required" validate:"required"`
	High         string `yaml:"high" json:"high" jsonschema:"title=High Column,description=Header of the high price column,required" validate:"required"`
	Low          string `yaml:"low" json:"low" jsonschema:"title=Low Column,description=Header of the low price column,required" validate:"required"`
	Close        string `yaml:"close" json:"close" jsonschema:"title=Close Column,description=Header of the close price column,required" validate:"required"`
	Volume       string `yaml:"volume" json:"volume" jsonschema:"title=Volume Column,description=Header of the volume column,required" validate:"required"`
	OpenInterest string `yaml:"open_interest,omitempty" json:"open_interest,omitempty" jsonschema:"title=Open Interest Column,description=Header of the open interest column; leave empty when the vendor has none"`
}

// ImportConfig describes how one vendor file maps onto canonical bars.
type ImportConfig struct {
	Symbol   string         `yaml:"symbol" json:"symbol" jsonschema:"title=Symbol,description=Instrument identifier the imported bars belong to,required" validate:"required"`
	Exchange types.Exchange `yaml:"exchange" json:"exchange" jsonschema:"title=Exchange,description=Venue the instrument trades on,required" validate:"required"`
	Interval types.Interval `yaml:"interval" json:"interval" jsonschema:"title=Interval,description=Bar period of the file,required,enum=1m,enum=5m,enum=15m,enum=30m,enum=1h,enum=4h,enum=1d,enum=1w" validate:"required,oneof=1m 5m 15m 30m 1h 4h 1d 1w"`
	// Source tags every imported bar with its provenance. Empty defaults
	// to "csv".
	Source string `yaml:"source,omitempty" json:"source,omitempty" jsonschema:"title=Source,description=Provenance tag stored on every bar"`
	// TimeLayout is a Go reference-time layout, e.g. "2006/01/02 15:04".
	TimeLayout string `yaml:"time_layout" json:"time_layout" jsonschema:"title=Time Layout,description=Go reference-time layout the timestamp column uses,required" validate:"required"`
	// Timezone is the IANA zone the file's naive timestamps belong to.
	// Timestamps are localized into it, never converted.
	Timezone string    `yaml:"timezone" json:"timezone" jsonschema:"title=Timezone,description=IANA timezone the timestamps are local to (e.g. Asia/Shanghai),required" validate:"required"`
	Columns  ColumnMap `yaml:"columns" json:"columns" jsonschema:"title=Columns,description=Mapping from bar fields to vendor headers,required" validate:"required"`
	// Delimiter separates fields in the source file. Empty means comma.
	Delimiter Delimiter `yaml:"delimiter,omitempty" json:"delimiter,omitempty" jsonschema:"title=Delimiter,description=Field separator of the file,enum=comma,enum=tab" validate:"omitempty,oneof=comma tab"`
	// TrimTrailingRows drops the last N data rows, for vendors whose
	// final row is a partial bar.
	TrimTrailingRows int `yaml:"trim_trailing_rows,omitempty" json:"trim_trailing_rows,omitempty" jsonschema:"title=Trim Trailing Rows,description=Number of rows at the end of the file that are never imported,minimum=0" validate:"gte=0"`
	// OnError selects the row failure policy. Empty means fail.
	OnError RowErrorPolicy `yaml:"on_error,omitempty" json:"on_error,omitempty" jsonschema:"title=On Error,description=Row failure policy,enum=fail,enum=skip" validate:"omitempty,oneof=fail skip"`
}

// Policy returns the effective row failure policy. The zero value
// reads as fail.
func (c *ImportConfig) Policy() RowErrorPolicy {
	if c.OnError == RowErrorSkip {
		return RowErrorSkip
	}

	return RowErrorFail
}

// Validate validates the ImportConfig struct.
func (c *ImportConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid import config", err)
	}

	if !c.Exchange.Valid() {
		return errors.Newf(errors.ErrCodeInvalidExchange, "unknown exchange: %q", c.Exchange)
	}

	if !c.Interval.Valid() {
		return errors.Newf(errors.ErrCodeInvalidInterval, "unknown interval: %q", c.Interval)
	}

	return nil
}
