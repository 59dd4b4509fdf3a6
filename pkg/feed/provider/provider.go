// Package provider implements historical bar providers: vendor APIs
// queried for OHLCV history behind one interface.
package provider

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-data/internal/types"
	"github.com/rxtech-lab/argo-data/pkg/errors"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderPolygon ProviderType = "polygon"
	ProviderBinance ProviderType = "binance"
)

// HistoryRequest describes one historical bar query.
type HistoryRequest struct {
	Symbol   string         `json:"symbol" yaml:"symbol" validate:"required"`
	Exchange types.Exchange `json:"exchange" yaml:"exchange" validate:"required"`
	Interval types.Interval `json:"interval" yaml:"interval" validate:"required"`
	Start    time.Time      `json:"start" yaml:"start" validate:"required"`
	End      time.Time      `json:"end" yaml:"end" validate:"required,gtfield=Start"`
}

// Validate validates the HistoryRequest struct.
func (r *HistoryRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, "invalid history request", err)
	}

	if !r.Exchange.Valid() {
		return errors.Newf(errors.ErrCodeInvalidExchange, "unknown exchange: %q", r.Exchange)
	}

	if !r.Interval.Valid() {
		return errors.Newf(errors.ErrCodeInvalidInterval, "unknown interval: %q", r.Interval)
	}

	return nil
}

// VtSymbol returns the requested series as SYMBOL.EXCHANGE.
func (r HistoryRequest) VtSymbol() string {
	return fmt.Sprintf("%s.%s", r.Symbol, r.Exchange)
}

// Provider fetches historical bars from one market data vendor.
type Provider interface {
	// Name returns the provider identity. It is stamped on every
	// fetched bar as its source.
	Name() ProviderType
	// QueryHistory yields the bars of the requested window ordered by
	// bar time ascending. Cancel the context to stop the fetch.
	QueryHistory(ctx context.Context, request HistoryRequest) iter.Seq2[types.BarData, error]
}

// NewHistoricalProvider creates a provider based on the provider type.
// The API key is only consulted for vendors that need one; baseURL
// overrides the vendor REST endpoint where the vendor client supports
// that (Binance).
func NewHistoricalProvider(providerType ProviderType, apiKey string, baseURL string) (Provider, error) {
	switch providerType {
	case ProviderBinance:
		return NewBinanceClient(baseURL)
	case ProviderPolygon:
		return NewPolygonClient(apiKey)
	default:
		return nil, errors.Newf(errors.ErrCodeUnsupportedProvider, "unsupported market data provider: %s", providerType)
	}
}
