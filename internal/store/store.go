// Package store persists canonical bars in DuckDB, keyed by symbol,
// exchange, interval and bar time so repeated imports of the same file
// stay idempotent.
package store

import (
	"fmt"
	"iter"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-data/internal/types"
	"github.com/rxtech-lab/argo-data/pkg/errors"
)

// Config configures the DuckDB database backing the store.
type Config struct {
	// Path is the database file. ":memory:" opens a throwaway database.
	Path string `yaml:"path" json:"path" jsonschema:"title=Path,description=DuckDB database file,required" validate:"required"`
	// MemoryLimit caps DuckDB memory usage, e.g. "4GB". Empty keeps the
	// engine default.
	MemoryLimit string `yaml:"memory_limit,omitempty" json:"memory_limit,omitempty" jsonschema:"title=Memory Limit,description=DuckDB memory cap (e.g. 4GB)"`
	// Threads caps DuckDB worker threads. Zero keeps the engine default.
	Threads int `yaml:"threads,omitempty" json:"threads,omitempty" jsonschema:"title=Threads,description=DuckDB worker thread cap,minimum=0" validate:"gte=0"`
}

// Validate validates the Config struct.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid store config", err)
	}

	return nil
}

// Series identifies one bar series in the store.
type Series struct {
	Symbol   string
	Exchange types.Exchange
	Interval types.Interval
}

// VtSymbol returns the series identity as SYMBOL.EXCHANGE.
func (s Series) VtSymbol() string {
	return fmt.Sprintf("%s.%s", s.Symbol, s.Exchange)
}

// BarStore is the persistence sink for canonical bars. Writes are
// upserts on (symbol, exchange, interval, time): re-importing a file
// overwrites rather than duplicates.
type BarStore interface {
	// SaveBars upserts a batch of bars in one transaction and returns
	// the number of bars written.
	SaveBars(bars []types.BarData) (int, error)
	// SaveStream drains a bar sequence into one transaction. Any
	// sequence error rolls the whole batch back, so a failed import
	// leaves the store untouched.
	SaveStream(bars iter.Seq2[types.BarData, error]) (int, error)
	// LoadBars returns the bars of one series ordered by time
	// ascending, optionally bounded to [start, end].
	LoadBars(series Series, start, end optional.Option[time.Time]) ([]types.BarData, error)
	// ReadLastBar returns the most recent bar of one series.
	// ErrCodeNoDataFound when the series is empty.
	ReadLastBar(series Series) (types.BarData, error)
	// Count returns the number of bars stored for one series.
	Count(series Series) (int64, error)
	// Overviews summarizes every stored series: bar count plus first
	// and last bar time.
	Overviews() ([]types.BarOverview, error)
	// DeleteBars removes one series and returns the number of bars
	// deleted.
	DeleteBars(series Series) (int64, error)
	Close() error
}
