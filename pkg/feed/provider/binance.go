package provider

import (
	"context"
	"iter"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/rxtech-lab/argo-data/internal/types"
	"github.com/rxtech-lab/argo-data/pkg/errors"
)

// binancePageSize is the kline count Binance returns per request; a
// shorter page means the last one.
const binancePageSize = 500

// BinanceClient fetches historical klines from Binance. Klines are
// public, so no credentials are needed.
type BinanceClient struct {
	client *binance.Client
}

// NewBinanceClient creates a Binance provider. A non-empty baseURL
// replaces the production REST endpoint (testnet, proxies, test
// servers).
func NewBinanceClient(baseURL string) (Provider, error) {
	client := binance.NewClient("", "")
	if baseURL != "" {
		client.BaseURL = baseURL
	}

	return &BinanceClient{
		client: client,
	}, nil
}

// Name implements Provider.
func (b *BinanceClient) Name() ProviderType {
	return ProviderBinance
}

// QueryHistory implements Provider. The API caps each response at 500
// klines, so the fetch pages forward using the close time of the last
// kline plus one millisecond as the next start.
func (b *BinanceClient) QueryHistory(ctx context.Context, request HistoryRequest) iter.Seq2[types.BarData, error] {
	return func(yield func(types.BarData, error) bool) {
		if err := request.Validate(); err != nil {
			yield(types.BarData{}, err)

			return
		}

		interval, err := BinanceInterval(request.Interval)
		if err != nil {
			yield(types.BarData{}, err)

			return
		}

		loc := request.Start.Location()
		currentStart := request.Start.UnixMilli()
		endMillis := request.End.UnixMilli()

		for {
			if err := ctx.Err(); err != nil {
				yield(types.BarData{}, err)

				return
			}

			klines, err := b.client.NewKlinesService().
				Symbol(request.Symbol).
				Interval(interval).
				StartTime(currentStart).
				EndTime(endMillis).
				Do(ctx)
			if err != nil {
				yield(types.BarData{}, errors.Wrapf(errors.ErrCodeFetchFailed, err, "failed to fetch klines for %s", request.VtSymbol()))

				return
			}

			for _, kline := range klines {
				bar, barErr := b.klineToBar(request, loc, kline)
				if barErr != nil {
					yield(types.BarData{}, barErr)

					return
				}

				if !yield(bar, nil) {
					return
				}
			}

			// Last page: no data or a short page.
			if len(klines) < binancePageSize {
				return
			}

			// Use the close time of the last kline + 1ms to avoid duplicates.
			lastKline := klines[len(klines)-1]
			currentStart = lastKline.CloseTime + 1

			if currentStart >= endMillis {
				return
			}
		}
	}
}

// klineToBar converts one Binance kline into a canonical bar. Binance
// reports prices as strings; the bar carries the kline open time.
func (b *BinanceClient) klineToBar(request HistoryRequest, loc *time.Location, kline *binance.Kline) (types.BarData, error) {
	open, err := strconv.ParseFloat(kline.Open, 64)
	if err != nil {
		return types.BarData{}, errors.Wrapf(errors.ErrCodeFetchFailed, err, "invalid open price %q", kline.Open)
	}

	high, err := strconv.ParseFloat(kline.High, 64)
	if err != nil {
		return types.BarData{}, errors.Wrapf(errors.ErrCodeFetchFailed, err, "invalid high price %q", kline.High)
	}

	low, err := strconv.ParseFloat(kline.Low, 64)
	if err != nil {
		return types.BarData{}, errors.Wrapf(errors.ErrCodeFetchFailed, err, "invalid low price %q", kline.Low)
	}

	closePrice, err := strconv.ParseFloat(kline.Close, 64)
	if err != nil {
		return types.BarData{}, errors.Wrapf(errors.ErrCodeFetchFailed, err, "invalid close price %q", kline.Close)
	}

	volume, err := strconv.ParseFloat(kline.Volume, 64)
	if err != nil {
		return types.BarData{}, errors.Wrapf(errors.ErrCodeFetchFailed, err, "invalid volume %q", kline.Volume)
	}

	return types.BarData{
		Symbol:       request.Symbol,
		Exchange:     request.Exchange,
		Time:         time.UnixMilli(kline.OpenTime).In(loc),
		Interval:     request.Interval,
		Open:         open,
		High:         high,
		Low:          low,
		Close:        closePrice,
		Volume:       volume,
		OpenInterest: 0,
		Source:       string(ProviderBinance),
	}, nil
}
