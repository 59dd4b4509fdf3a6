package types

import (
	"fmt"
	"time"
)

// BarOverview summarizes one stored bar series: how many bars a
// (symbol, exchange, interval) combination holds and the time range
// they cover.
type BarOverview struct {
	Symbol   string    `yaml:"symbol" json:"symbol" csv:"symbol"`
	Exchange Exchange  `yaml:"exchange" json:"exchange" csv:"exchange"`
	Interval Interval  `yaml:"interval" json:"interval" csv:"interval"`
	Count    int64     `yaml:"count" json:"count" csv:"count"`
	Start    time.Time `yaml:"start" json:"start" csv:"start"`
	End      time.Time `yaml:"end" json:"end" csv:"end"`
}

// VtSymbol returns the series' instrument identity in SYMBOL.EXCHANGE form.
func (o BarOverview) VtSymbol() string {
	return fmt.Sprintf("%s.%s", o.Symbol, o.Exchange)
}
