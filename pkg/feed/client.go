// Package feed keeps stored bar series current: it fetches historical
// bars from a market data vendor and streams them into the store.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-data/internal/logger"
	"github.com/rxtech-lab/argo-data/internal/store"
	"github.com/rxtech-lab/argo-data/internal/types"
	"github.com/rxtech-lab/argo-data/pkg/errors"
	"github.com/rxtech-lab/argo-data/pkg/feed/provider"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// OnFetchProgress is called periodically while an update streams bars
// into the store.
type OnFetchProgress = func(fetched int, message string)

// progressEvery is how many fetched bars pass between progress ticks.
const progressEvery = 1000

// Config selects and configures the provider behind a client.
type Config struct {
	Provider provider.ProviderType `json:"provider" yaml:"provider" jsonschema:"title=Provider,description=Market data vendor,enum=polygon,enum=binance,required" validate:"required,oneof=polygon binance"`
	// APIKey authenticates against the vendor. Binance klines are
	// public; Polygon always needs a key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" jsonschema:"title=API Key,description=Vendor API key" validate:"required_if=Provider polygon"`
	// BaseURL overrides the vendor REST endpoint. Tests point it at a
	// local mock server; it also selects testnets. Empty uses the
	// vendor default.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" jsonschema:"title=Base URL,description=Override for the vendor REST endpoint"`
}

// Validate validates the Config struct.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid feed config", err)
	}

	return nil
}

// Client keeps stored bar series current by fetching what the provider
// has beyond the last stored bar.
type Client struct {
	provider provider.Provider
	store    store.BarStore
	logger   *logger.Logger
}

// NewClient creates an update client from the feed config and one
// store.
func NewClient(config Config, barStore store.BarStore, log *logger.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if barStore == nil {
		return nil, errors.New(errors.ErrCodeMissingParameter, "bar store is required")
	}

	if log == nil {
		var err error

		log, err = logger.NewLogger()
		if err != nil {
			return nil, err
		}
	}

	historyProvider, err := provider.NewHistoricalProvider(config.Provider, config.APIKey, config.BaseURL)
	if err != nil {
		return nil, err
	}

	return &Client{
		provider: historyProvider,
		store:    barStore,
		logger:   log,
	}, nil
}

// SetProvider swaps the history provider behind the client. Tests use
// it to run the update loop against a fake vendor.
func (c *Client) SetProvider(historyProvider provider.Provider) error {
	if historyProvider == nil {
		return errors.New(errors.ErrCodeMissingParameter, "provider is required")
	}

	c.provider = historyProvider
	c.logger.Debug("history provider set", zap.String("provider", string(historyProvider.Name())))

	return nil
}

// UpdateParams bounds one incremental update.
type UpdateParams struct {
	Series store.Series
	// BackfillStart is where history begins when the series has no
	// stored bars yet.
	BackfillStart time.Time `validate:"required"`
	// End is the exclusive upper bound of the update window.
	End time.Time `validate:"required,gtfield=BackfillStart"`
}

// Validate validates the UpdateParams struct.
func (p *UpdateParams) Validate() error {
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, "invalid update params", err)
	}

	if p.Series.Symbol == "" {
		return errors.New(errors.ErrCodeMissingParameter, "series symbol is required")
	}

	if !p.Series.Exchange.Valid() {
		return errors.Newf(errors.ErrCodeInvalidExchange, "unknown exchange: %q", p.Series.Exchange)
	}

	if !p.Series.Interval.Valid() {
		return errors.Newf(errors.ErrCodeInvalidInterval, "unknown interval: %q", p.Series.Interval)
	}

	return nil
}

// Update fetches the bars the provider has after the last stored bar of
// the series and streams them into the store in one transaction. An
// empty series backfills from params.BackfillStart. Returns the number
// of bars saved; zero with no error means the series was already
// current. The onProgress callback may be nil.
func (c *Client) Update(ctx context.Context, params UpdateParams, onProgress OnFetchProgress) (int, error) {
	if err := params.Validate(); err != nil {
		return 0, err
	}

	start := params.BackfillStart

	last, err := c.store.ReadLastBar(params.Series)

	switch {
	case err == nil:
		// New bars only: resume one interval past the last stored bar.
		start = last.Time.Add(params.Series.Interval.Duration())
	case errors.HasCode(err, errors.ErrCodeNoDataFound):
		// Empty series, backfill from the configured start.
	default:
		return 0, err
	}

	if !start.Before(params.End) {
		c.logger.Debug("series already current",
			zap.String("vt_symbol", params.Series.VtSymbol()),
			zap.String("interval", string(params.Series.Interval)))

		return 0, nil
	}

	request := provider.HistoryRequest{
		Symbol:   params.Series.Symbol,
		Exchange: params.Series.Exchange,
		Interval: params.Series.Interval,
		Start:    start,
		End:      params.End,
	}

	description := fmt.Sprintf("Updating %s", params.Series.VtSymbol())
	totalDays := int(params.End.Sub(start).Hours()/24) + 1
	progress := progressbar.NewOptions(totalDays, progressbar.OptionSetDescription(description), progressbar.OptionShowCount())

	fetched := 0

	saved, err := c.store.SaveStream(func(yield func(types.BarData, error) bool) {
		for bar, seqErr := range c.provider.QueryHistory(ctx, request) {
			if seqErr != nil {
				yield(types.BarData{}, seqErr)

				return
			}

			fetched++
			if fetched%progressEvery == 0 {
				progress.Set(int(bar.Time.Sub(start).Hours() / 24))

				if onProgress != nil {
					go onProgress(fetched, description)
				}
			}

			if !yield(bar, nil) {
				return
			}
		}
	})
	if err != nil {
		return 0, err
	}

	progress.Finish()

	c.logger.Info("series updated",
		zap.String("vt_symbol", params.Series.VtSymbol()),
		zap.String("interval", string(params.Series.Interval)),
		zap.String("provider", string(c.provider.Name())),
		zap.Int("bars", saved))

	return saved, nil
}
