// Package importer reads delimited OHLCV files and maps vendor-specific
// column layouts onto canonical bars.
package importer

import (
	"context"
	"encoding/csv"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-data/internal/logger"
	"github.com/rxtech-lab/argo-data/internal/types"
	"github.com/rxtech-lab/argo-data/pkg/errors"
	"go.uber.org/zap"
)

// OnRowSkipped is called once per data row dropped under the skip policy.
type OnRowSkipped = func(row int, cause error)

// DefaultSource tags bars whose config does not name a provenance.
const DefaultSource = "csv"

// SkippedRow records one data row dropped under the skip policy.
type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Report summarizes one import pass. It is complete once the sequence
// returned by ReadAll has been fully consumed.
type Report struct {
	RowsRead    int          `json:"rows_read"`
	BarsEmitted int          `json:"bars_emitted"`
	Trimmed     int          `json:"trimmed"`
	Skipped     []SkippedRow `json:"skipped,omitempty"`
}

// BarImporter reads one vendor file layout into canonical bars.
type BarImporter struct {
	config ImportConfig
	loc    *time.Location
	logger *logger.Logger
	onSkip OnRowSkipped
	report Report
}

// NewBarImporter creates an importer for one vendor mapping. The onSkip
// callback may be nil; it fires for every row dropped under the skip
// policy.
func NewBarImporter(config ImportConfig, log *logger.Logger, onSkip OnRowSkipped) (*BarImporter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(config.Timezone)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "unknown timezone %q", config.Timezone)
	}

	if config.Source == "" {
		config.Source = DefaultSource
	}

	if log == nil {
		log, err = logger.NewLogger()
		if err != nil {
			return nil, err
		}
	}

	return &BarImporter{
		config: config,
		loc:    loc,
		logger: log,
		onSkip: onSkip,
		report: Report{RowsRead: 0, BarsEmitted: 0, Trimmed: 0, Skipped: nil},
	}, nil
}

// Config returns the mapping the importer was built from.
func (i *BarImporter) Config() ImportConfig {
	return i.config
}

// Location returns the timezone bars are localized into.
func (i *BarImporter) Location() *time.Location {
	return i.loc
}

// Report returns the report of the most recent ReadAll pass.
func (i *BarImporter) Report() Report {
	return i.report
}

// columnIndexes holds the resolved position of each mapped column.
// openInterest is -1 when the vendor has no open interest column.
type columnIndexes struct {
	datetime     int
	open         int
	high         int
	low          int
	close        int
	volume       int
	openInterest int
}

// pendingRow is a raw record waiting in the trailing-trim lookahead
// queue. Rows are parsed only once enough rows follow them to prove
// they are not among the trimmed tail.
type pendingRow struct {
	row     int
	record  []string
	readErr error
}

// ReadAll lazily reads the file at path and yields bars in input row
// order. The sequence is finite and single pass; iterating again
// re-reads the file. The report is reset when iteration starts and is
// complete once the sequence has been fully consumed.
//
// Header resolution happens on the first pull: every mapped column must
// exist in the file's header row, otherwise a single ErrCodeMissingColumn
// error is yielded and no bars are produced. A missing file yields
// ErrCodeFileNotFound. Row failures follow the configured policy: fail
// yields the RowError and stops, skip records the row in the report and
// continues.
func (i *BarImporter) ReadAll(ctx context.Context, path string) iter.Seq2[types.BarData, error] {
	return func(yield func(types.BarData, error) bool) {
		i.report = Report{RowsRead: 0, BarsEmitted: 0, Trimmed: 0, Skipped: nil}

		file, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				yield(types.BarData{}, errors.Wrapf(errors.ErrCodeFileNotFound, err, "data file not found: %s", path))

				return
			}

			yield(types.BarData{}, errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to open %s", path))

			return
		}
		defer file.Close()

		i.logger.Debug("importing bars",
			zap.String("path", path),
			zap.String("symbol", i.config.Symbol),
			zap.String("exchange", string(i.config.Exchange)),
			zap.String("interval", string(i.config.Interval)))

		reader := csv.NewReader(file)
		reader.Comma = i.config.Delimiter.Rune()
		reader.TrimLeadingSpace = true

		columns, err := i.resolveColumns(reader)
		if err != nil {
			yield(types.BarData{}, err)

			return
		}

		pending := make([]pendingRow, 0, i.config.TrimTrailingRows+1)
		row := 0

		for {
			// The abort hook: between rows the importer honors
			// context cancellation.
			if err := ctx.Err(); err != nil {
				yield(types.BarData{}, err)

				return
			}

			record, err := reader.Read()
			if err == io.EOF {
				break
			}

			row++
			i.report.RowsRead++

			// Bad rows enter the lookahead queue too: a malformed row
			// inside the trimmed tail must never surface as an error.
			pending = append(pending, pendingRow{row: row, record: record, readErr: err})
			if len(pending) <= i.config.TrimTrailingRows {
				continue
			}

			next := pending[0]
			pending = pending[1:]

			bar, rowErr := i.materializeRow(next, columns)
			if rowErr != nil {
				if !i.handleRowError(yield, rowErr) {
					return
				}

				continue
			}

			i.report.BarsEmitted++

			if !yield(bar, nil) {
				return
			}
		}

		i.report.Trimmed = len(pending)

		i.logger.Debug("import pass complete",
			zap.Int("rows_read", i.report.RowsRead),
			zap.Int("bars_emitted", i.report.BarsEmitted),
			zap.Int("trimmed", i.report.Trimmed),
			zap.Int("skipped", len(i.report.Skipped)))
	}
}

// Collect materializes the whole file, for callers that do not need
// streaming. Returns the bars, the report, and the first error.
func (i *BarImporter) Collect(ctx context.Context, path string) ([]types.BarData, Report, error) {
	bars := make([]types.BarData, 0)

	for bar, err := range i.ReadAll(ctx, path) {
		if err != nil {
			return nil, i.report, err
		}

		bars = append(bars, bar)
	}

	return bars, i.report, nil
}

// resolveColumns reads the header row and maps every configured column
// to its position in the file.
func (i *BarImporter) resolveColumns(reader *csv.Reader) (columnIndexes, error) {
	out := columnIndexes{datetime: 0, open: 0, high: 0, low: 0, close: 0, volume: 0, openInterest: -1}

	header, err := reader.Read()
	if err == io.EOF {
		return out, errors.New(errors.ErrCodeMissingColumn, "file has no header row")
	}

	if err != nil {
		return out, errors.Wrap(errors.ErrCodeMalformedRow, "failed to read header row", err)
	}

	// Files exported by Windows tools often start with a UTF-8 BOM.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	positions := make(map[string]int, len(header))
	for idx, name := range header {
		positions[strings.TrimSpace(name)] = idx
	}

	cols := i.config.Columns
	required := []struct {
		name string
		dst  *int
	}{
		{cols.Datetime, &out.datetime},
		{cols.Open, &out.open},
		{cols.High, &out.high},
		{cols.Low, &out.low},
		{cols.Close, &out.close},
		{cols.Volume, &out.volume},
	}

	for _, col := range required {
		idx, ok := positions[col.name]
		if !ok {
			return out, errors.Newf(errors.ErrCodeMissingColumn, "column %q not found in header", col.name)
		}

		*col.dst = idx
	}

	if cols.OpenInterest != "" {
		idx, ok := positions[cols.OpenInterest]
		if !ok {
			return out, errors.Newf(errors.ErrCodeMissingColumn, "column %q not found in header", cols.OpenInterest)
		}

		out.openInterest = idx
	}

	return out, nil
}

// materializeRow turns one raw record into a validated bar.
func (i *BarImporter) materializeRow(next pendingRow, columns columnIndexes) (types.BarData, *errors.RowError) {
	if next.readErr != nil {
		return types.BarData{}, errors.NewRowError(next.row, "", "malformed row",
			errors.Wrap(errors.ErrCodeMalformedRow, "failed to read row", next.readErr))
	}

	return i.parseRow(next.row, next.record, columns)
}

// parseRow parses and validates a single data row. The timestamp is
// parsed in the configured location, so naive local times stay local
// times instead of being converted from UTC.
func (i *BarImporter) parseRow(row int, record []string, columns columnIndexes) (types.BarData, *errors.RowError) {
	cols := i.config.Columns

	rawTime := strings.TrimSpace(record[columns.datetime])

	timestamp, err := time.ParseInLocation(i.config.TimeLayout, rawTime, i.loc)
	if err != nil {
		return types.BarData{}, errors.NewRowErrorf(row, cols.Datetime,
			errors.Wrap(errors.ErrCodeTimestampParse, "timestamp does not match layout", err),
			"failed to parse timestamp %q with layout %q", rawTime, i.config.TimeLayout)
	}

	open, rowErr := parsePrice(row, cols.Open, record[columns.open])
	if rowErr != nil {
		return types.BarData{}, rowErr
	}

	high, rowErr := parsePrice(row, cols.High, record[columns.high])
	if rowErr != nil {
		return types.BarData{}, rowErr
	}

	low, rowErr := parsePrice(row, cols.Low, record[columns.low])
	if rowErr != nil {
		return types.BarData{}, rowErr
	}

	closePrice, rowErr := parsePrice(row, cols.Close, record[columns.close])
	if rowErr != nil {
		return types.BarData{}, rowErr
	}

	volume, rowErr := parsePrice(row, cols.Volume, record[columns.volume])
	if rowErr != nil {
		return types.BarData{}, rowErr
	}

	openInterest := 0.0

	if columns.openInterest >= 0 {
		value := strings.TrimSpace(record[columns.openInterest])
		// Vendors with an open interest header sometimes leave the cell
		// empty; treat that as zero, not as a bad row.
		if value != "" {
			openInterest, rowErr = parsePrice(row, cols.OpenInterest, value)
			if rowErr != nil {
				return types.BarData{}, rowErr
			}
		}
	}

	bar := types.BarData{
		Symbol:       i.config.Symbol,
		Exchange:     i.config.Exchange,
		Time:         timestamp,
		Interval:     i.config.Interval,
		Open:         open,
		High:         high,
		Low:          low,
		Close:        closePrice,
		Volume:       volume,
		OpenInterest: openInterest,
		Source:       i.config.Source,
	}

	if err := bar.Validate(); err != nil {
		return types.BarData{}, errors.NewRowError(row, "", "invalid bar", err)
	}

	return bar, nil
}

// handleRowError applies the configured policy to one bad row. The
// return value reports whether iteration should continue.
func (i *BarImporter) handleRowError(yield func(types.BarData, error) bool, rowErr *errors.RowError) bool {
	if i.config.Policy() == RowErrorSkip {
		i.report.Skipped = append(i.report.Skipped, SkippedRow{Row: rowErr.Row, Reason: rowErr.Error()})
		i.logger.Debug("skipping row", zap.Int("row", rowErr.Row), zap.Error(rowErr))

		if i.onSkip != nil {
			i.onSkip(rowErr.Row, rowErr)
		}

		return true
	}

	yield(types.BarData{}, rowErr)

	return false
}

// parsePrice parses one numeric cell.
func parsePrice(row int, column, value string) (float64, *errors.RowError) {
	trimmed := strings.TrimSpace(value)

	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, errors.NewRowErrorf(row, column,
			errors.Wrap(errors.ErrCodeNumberParse, "invalid number", err),
			"failed to parse %s value %q", column, trimmed)
	}

	return parsed, nil
}
