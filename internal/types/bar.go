package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-data/pkg/errors"
)

// BarData is a single OHLCV candle for one instrument on one venue.
// Time is timezone aware and marks the bar open in the configured location.
type BarData struct {
	Symbol   string    `yaml:"symbol" json:"symbol" csv:"symbol" validate:"required"`
	Exchange Exchange  `yaml:"exchange" json:"exchange" csv:"exchange" validate:"required"`
	Time     time.Time `yaml:"time" json:"time" csv:"time" validate:"required"`
	Interval Interval  `yaml:"interval" json:"interval" csv:"interval" validate:"required"`
	Open     float64   `yaml:"open" json:"open" csv:"open"`
	High     float64   `yaml:"high" json:"high" csv:"high"`
	Low      float64   `yaml:"low" json:"low" csv:"low"`
	Close    float64   `yaml:"close" json:"close" csv:"close"`
	Volume   float64   `yaml:"volume" json:"volume" csv:"volume" validate:"gte=0"`
	// OpenInterest is zero for sources that do not report it.
	OpenInterest float64 `yaml:"open_interest" json:"open_interest" csv:"open_interest" validate:"gte=0"`
	// Source records where the bar came from (vendor name, feed name).
	Source string `yaml:"source" json:"source" csv:"source"`
}

// VtSymbol returns the instrument identity in SYMBOL.EXCHANGE form.
func (b BarData) VtSymbol() string {
	return fmt.Sprintf("%s.%s", b.Symbol, b.Exchange)
}

// Validate validates the BarData struct, including the OHLC ordering
// invariant Low <= {Open, Close} <= High.
func (b *BarData) Validate() error {
	validate := validator.New()
	if err := validate.Struct(b); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidBar, "invalid bar", err)
	}

	if !b.Exchange.Valid() {
		return errors.Newf(errors.ErrCodeInvalidExchange, "unknown exchange: %q", b.Exchange)
	}

	if !b.Interval.Valid() {
		return errors.Newf(errors.ErrCodeInvalidInterval, "unknown interval: %q", b.Interval)
	}

	if b.Low > b.High || b.Open < b.Low || b.Open > b.High || b.Close < b.Low || b.Close > b.High {
		return errors.Newf(errors.ErrCodeInvalidBar,
			"OHLC out of order: open=%g high=%g low=%g close=%g", b.Open, b.High, b.Low, b.Close)
	}

	return nil
}

// ParseVtSymbol splits a SYMBOL.EXCHANGE identity back into its parts.
// The split happens at the last dot, so symbols containing dots survive
// the round trip.
func ParseVtSymbol(vtSymbol string) (string, Exchange, error) {
	idx := strings.LastIndex(vtSymbol, ".")
	if idx <= 0 || idx == len(vtSymbol)-1 {
		return "", "", errors.Newf(errors.ErrCodeInvalidParameter, "malformed vt_symbol: %q", vtSymbol)
	}

	exchange, err := ParseExchange(vtSymbol[idx+1:])
	if err != nil {
		return "", "", err
	}

	return vtSymbol[:idx], exchange, nil
}
