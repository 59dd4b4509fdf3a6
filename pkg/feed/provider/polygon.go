package provider

import (
	"context"
	"iter"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-data/internal/types"
	"github.com/rxtech-lab/argo-data/pkg/errors"
)

// PolygonClient fetches historical aggregates from Polygon.io.
type PolygonClient struct {
	client *polygon.Client
}

// NewPolygonClient creates a Polygon provider. An API key is always
// required.
func NewPolygonClient(apiKey string) (Provider, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "polygon api key is required")
	}

	return &PolygonClient{
		client: polygon.New(apiKey),
	}, nil
}

// Name implements Provider.
func (p *PolygonClient) Name() ProviderType {
	return ProviderPolygon
}

// QueryHistory implements Provider. Aggregate timestamps come back as
// UTC instants and are localized into the zone of the request window.
func (p *PolygonClient) QueryHistory(ctx context.Context, request HistoryRequest) iter.Seq2[types.BarData, error] {
	return func(yield func(types.BarData, error) bool) {
		if err := request.Validate(); err != nil {
			yield(types.BarData{}, err)

			return
		}

		multiplier, timespan, err := PolygonSpan(request.Interval)
		if err != nil {
			yield(types.BarData{}, err)

			return
		}

		//nolint:exhaustruct // third-party struct with many optional fields
		params := models.ListAggsParams{
			Ticker:     request.Symbol,
			Multiplier: multiplier,
			Timespan:   timespan,
			From:       models.Millis(request.Start),
			To:         models.Millis(request.End),
		}.WithLimit(50000)

		loc := request.Start.Location()
		aggs := p.client.ListAggs(ctx, params)

		for aggs.Next() {
			agg := aggs.Item()

			bar := types.BarData{
				Symbol:       request.Symbol,
				Exchange:     request.Exchange,
				Time:         time.Time(agg.Timestamp).In(loc),
				Interval:     request.Interval,
				Open:         agg.Open,
				High:         agg.High,
				Low:          agg.Low,
				Close:        agg.Close,
				Volume:       agg.Volume,
				OpenInterest: 0,
				Source:       string(ProviderPolygon),
			}

			if !yield(bar, nil) {
				return
			}
		}

		if err := aggs.Err(); err != nil {
			yield(types.BarData{}, errors.Wrapf(errors.ErrCodeFetchFailed, err, "error iterating polygon aggregates for %s", request.VtSymbol()))
		}
	}
}
