package provider

import (
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-data/internal/types"
	"github.com/rxtech-lab/argo-data/pkg/errors"
)

// PolygonSpan converts a bar interval to the multiplier and timespan
// pair the Polygon aggregates API expects.
func PolygonSpan(interval types.Interval) (int, models.Timespan, error) {
	switch interval {
	case types.Interval1m:
		return 1, models.Minute, nil
	case types.Interval5m:
		return 5, models.Minute, nil
	case types.Interval15m:
		return 15, models.Minute, nil
	case types.Interval30m:
		return 30, models.Minute, nil
	case types.Interval1h:
		return 1, models.Hour, nil
	case types.Interval4h:
		return 4, models.Hour, nil
	case types.Interval1d:
		return 1, models.Day, nil
	case types.Interval1w:
		return 1, models.Week, nil
	default:
		return 0, "", errors.Newf(errors.ErrCodeInvalidTimespan, "no polygon timespan for interval %q", interval)
	}
}

// BinanceInterval converts a bar interval to the kline interval string
// the Binance API expects.
// Ref: https://binance-docs.github.io/apidocs/spot/en/#kline-candlestick-data
func BinanceInterval(interval types.Interval) (string, error) {
	switch interval {
	case types.Interval1m, types.Interval5m, types.Interval15m, types.Interval30m,
		types.Interval1h, types.Interval4h, types.Interval1d, types.Interval1w:
		return string(interval), nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidTimespan, "no binance interval for %q", interval)
	}
}
