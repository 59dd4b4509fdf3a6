package store

import (
	"database/sql"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-data/internal/logger"
	"github.com/rxtech-lab/argo-data/internal/types"
	"github.com/rxtech-lab/argo-data/pkg/errors"
	"go.uber.org/zap"
)

// DuckDBStore implements BarStore on a DuckDB database file.
//
// Bar times are stored as naive UTC timestamps and localized back into
// loc on load, so the same database reads identically regardless of the
// machine's zone.
type DuckDBStore struct {
	db     *sql.DB
	loc    *time.Location
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

const upsertBarSQL = `
	INSERT INTO bar_data (id, symbol, exchange, "interval", time, open, high, low, close, volume, open_interest, source)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (symbol, exchange, "interval", time) DO UPDATE SET
		id = excluded.id,
		open = excluded.open,
		high = excluded.high,
		low = excluded.low,
		close = excluded.close,
		volume = excluded.volume,
		open_interest = excluded.open_interest,
		source = excluded.source
`

// NewBarStore opens (or creates) the database at config.Path. Loaded
// bar times are returned in loc; nil means UTC.
func NewBarStore(config Config, loc *time.Location, log *logger.Logger) (*DuckDBStore, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if loc == nil {
		loc = time.UTC
	}

	if log == nil {
		var err error

		log, err = logger.NewLogger()
		if err != nil {
			return nil, err
		}
	}

	if config.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(config.Path), 0755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStoreInitFailed, "failed to create data directory", err)
		}
	}

	db, err := sql.Open("duckdb", config.Path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeStoreInitFailed, err, "failed to open database: %s", config.Path)
	}

	if config.MemoryLimit != "" {
		if _, err := db.Exec(fmt.Sprintf(`SET memory_limit='%s';`, config.MemoryLimit)); err != nil {
			db.Close()

			return nil, errors.Wrap(errors.ErrCodeStoreInitFailed, "failed to set memory limit", err)
		}
	}

	if config.Threads > 0 {
		if _, err := db.Exec(fmt.Sprintf(`SET threads=%d;`, config.Threads)); err != nil {
			db.Close()

			return nil, errors.Wrap(errors.ErrCodeStoreInitFailed, "failed to set thread cap", err)
		}
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS bar_data (
			id TEXT,
			symbol TEXT NOT NULL,
			exchange TEXT NOT NULL,
			"interval" TEXT NOT NULL,
			time TIMESTAMP NOT NULL,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE,
			open_interest DOUBLE,
			source TEXT,
			PRIMARY KEY (symbol, exchange, "interval", time)
		)
	`)
	if err != nil {
		db.Close()

		return nil, errors.Wrap(errors.ErrCodeStoreInitFailed, "failed to create bar_data table", err)
	}

	return &DuckDBStore{
		db:     db,
		loc:    loc,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// SaveBars implements BarStore.
func (s *DuckDBStore) SaveBars(bars []types.BarData) (int, error) {
	return s.SaveStream(func(yield func(types.BarData, error) bool) {
		for _, bar := range bars {
			if !yield(bar, nil) {
				return
			}
		}
	})
}

// SaveStream implements BarStore. The whole sequence goes into one
// transaction: a sequence error rolls everything back and is returned
// unchanged, so importer row errors keep their row index and code.
func (s *DuckDBStore) SaveStream(bars iter.Seq2[types.BarData, error]) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeWriteFailed, "failed to begin transaction", err)
	}

	stmt, err := tx.Prepare(upsertBarSQL)
	if err != nil {
		tx.Rollback()

		return 0, errors.Wrap(errors.ErrCodeWriteFailed, "failed to prepare upsert", err)
	}

	saved := 0

	for bar, seqErr := range bars {
		if seqErr != nil {
			stmt.Close()
			tx.Rollback()

			return 0, seqErr
		}

		_, err := stmt.Exec(
			uuid.New().String(),
			bar.Symbol,
			string(bar.Exchange),
			string(bar.Interval),
			bar.Time.UTC(),
			bar.Open,
			bar.High,
			bar.Low,
			bar.Close,
			bar.Volume,
			bar.OpenInterest,
			bar.Source,
		)
		if err != nil {
			stmt.Close()
			tx.Rollback()

			return 0, errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to upsert bar %s %s", bar.VtSymbol(), bar.Time)
		}

		saved++
	}

	if err := stmt.Close(); err != nil {
		tx.Rollback()

		return 0, errors.Wrap(errors.ErrCodeWriteFailed, "failed to close upsert statement", err)
	}

	if err := tx.Commit(); err != nil {
		tx.Rollback()

		return 0, errors.Wrap(errors.ErrCodeWriteFailed, "failed to commit transaction", err)
	}

	s.logger.Debug("saved bars", zap.Int("count", saved))

	return saved, nil
}

// LoadBars implements BarStore.
func (s *DuckDBStore) LoadBars(series Series, start, end optional.Option[time.Time]) ([]types.BarData, error) {
	builder := s.sq.
		Select("symbol", "exchange", `"interval"`, "time", "open", "high", "low", "close", "volume", "open_interest", "source").
		From("bar_data").
		Where(squirrel.And{
			squirrel.Eq{"symbol": series.Symbol},
			squirrel.Eq{"exchange": string(series.Exchange)},
			squirrel.Eq{`"interval"`: string(series.Interval)},
		}).
		OrderBy("time ASC")

	if start.IsSome() {
		builder = builder.Where(squirrel.GtOrEq{"time": start.Unwrap().UTC()})
	}

	if end.IsSome() {
		builder = builder.Where(squirrel.LtOrEq{"time": end.Unwrap().UTC()})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query bars", err)
	}
	defer rows.Close()

	result := make([]types.BarData, 0, 1000)

	for rows.Next() {
		bar, err := s.scanBar(rows)
		if err != nil {
			return nil, err
		}

		result = append(result, bar)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating rows", err)
	}

	return result, nil
}

// ReadLastBar implements BarStore.
// Returns the most recent bar of the series, ErrCodeNoDataFound when
// the series is empty.
func (s *DuckDBStore) ReadLastBar(series Series) (types.BarData, error) {
	s.logger.Debug("reading last bar", zap.String("vt_symbol", series.VtSymbol()), zap.String("interval", string(series.Interval)))

	query := `
		SELECT symbol, exchange, "interval", time, open, high, low, close, volume, open_interest, source
		FROM bar_data
		WHERE symbol = $1 AND exchange = $2 AND "interval" = $3
		ORDER BY time DESC
		LIMIT 1
	`

	stmt, err := s.db.Prepare(query)
	if err != nil {
		return types.BarData{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to prepare query", err)
	}
	defer stmt.Close()

	row := stmt.QueryRow(series.Symbol, string(series.Exchange), string(series.Interval))

	bar, err := s.scanBar(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.BarData{}, errors.Newf(errors.ErrCodeNoDataFound, "no bars stored for %s %s", series.VtSymbol(), series.Interval)
		}

		return types.BarData{}, err
	}

	return bar, nil
}

// Count implements BarStore.
func (s *DuckDBStore) Count(series Series) (int64, error) {
	query, args, err := s.sq.
		Select("COUNT(*)").
		From("bar_data").
		Where(squirrel.And{
			squirrel.Eq{"symbol": series.Symbol},
			squirrel.Eq{"exchange": string(series.Exchange)},
			squirrel.Eq{`"interval"`: string(series.Interval)},
		}).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	var count int64
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count bars", err)
	}

	return count, nil
}

// Overviews implements BarStore.
func (s *DuckDBStore) Overviews() ([]types.BarOverview, error) {
	query, args, err := s.sq.
		Select("symbol", "exchange", `"interval"`, "COUNT(*)", "MIN(time)", "MAX(time)").
		From("bar_data").
		GroupBy("symbol", "exchange", `"interval"`).
		OrderBy("symbol ASC", "exchange ASC", `"interval" ASC`).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query overviews", err)
	}
	defer rows.Close()

	result := make([]types.BarOverview, 0, 16)

	for rows.Next() {
		var (
			symbol, exchange, interval string
			count                      int64
			first, last                time.Time
		)

		if err := rows.Scan(&symbol, &exchange, &interval, &count, &first, &last); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan overview row", err)
		}

		result = append(result, types.BarOverview{
			Symbol:   symbol,
			Exchange: types.Exchange(exchange),
			Interval: types.Interval(interval),
			Count:    count,
			Start:    first.In(s.loc),
			End:      last.In(s.loc),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating rows", err)
	}

	return result, nil
}

// DeleteBars implements BarStore.
func (s *DuckDBStore) DeleteBars(series Series) (int64, error) {
	query, args, err := s.sq.
		Delete("bar_data").
		Where(squirrel.And{
			squirrel.Eq{"symbol": series.Symbol},
			squirrel.Eq{"exchange": string(series.Exchange)},
			squirrel.Eq{`"interval"`: string(series.Interval)},
		}).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeDeleteFailed, "failed to build query", err)
	}

	result, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeDeleteFailed, err, "failed to delete bars for %s", series.VtSymbol())
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeDeleteFailed, "failed to read affected rows", err)
	}

	s.logger.Debug("deleted bars", zap.String("vt_symbol", series.VtSymbol()), zap.Int64("count", deleted))

	return deleted, nil
}

// Close implements BarStore.
func (s *DuckDBStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}

	return nil
}

// rowScanner covers both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *DuckDBStore) scanBar(row rowScanner) (types.BarData, error) {
	var (
		symbol, exchange, interval          string
		timestamp                           time.Time
		open, high, low, closePrice, volume float64
		openInterest                        float64
		source                              sql.NullString
	)

	err := row.Scan(&symbol, &exchange, &interval, &timestamp, &open, &high, &low, &closePrice, &volume, &openInterest, &source)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.BarData{}, err
		}

		return types.BarData{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan bar row", err)
	}

	return types.BarData{
		Symbol:       symbol,
		Exchange:     types.Exchange(exchange),
		Time:         timestamp.In(s.loc),
		Interval:     types.Interval(interval),
		Open:         open,
		High:         high,
		Low:          low,
		Close:        closePrice,
		Volume:       volume,
		OpenInterest: openInterest,
		Source:       source.String,
	}, nil
}

// Verify DuckDBStore implements BarStore.
var _ BarStore = (*DuckDBStore)(nil)
