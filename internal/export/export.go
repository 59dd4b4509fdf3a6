// Package export writes store-level artifacts: the instrument list
// consumed by downstream tooling and a plain-text summary report.
package export

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rxtech-lab/argo-data/internal/types"
	"github.com/rxtech-lab/argo-data/pkg/errors"
	"github.com/shopspring/decimal"
)

// WriteInstrumentList writes one SYMBOL.EXCHANGE line per stored
// instrument, sorted. An instrument stored under several intervals
// appears once.
func WriteInstrumentList(path string, overviews []types.BarOverview) error {
	seen := make(map[string]bool)
	symbols := make([]string, 0, len(overviews))

	for _, overview := range overviews {
		vt := overview.VtSymbol()
		if seen[vt] {
			continue
		}

		seen[vt] = true
		symbols = append(symbols, vt)
	}

	sort.Strings(symbols)

	var builder strings.Builder
	for _, vt := range symbols {
		builder.WriteString(vt)
		builder.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(builder.String()), 0644); err != nil {
		return errors.Wrapf(errors.ErrCodeExportFailed, err, "failed to write instrument list %s", path)
	}

	return nil
}

// SymbolSummary holds per-instrument statistics computed over one
// loaded bar series.
type SymbolSummary struct {
	Symbol      string         `json:"symbol"`
	Exchange    types.Exchange `json:"exchange"`
	Interval    types.Interval `json:"interval"`
	Count       int            `json:"count"`
	Start       time.Time      `json:"start"`
	End         time.Time      `json:"end"`
	High        float64        `json:"high"`
	Low         float64        `json:"low"`
	TotalVolume float64        `json:"total_volume"`
	// Turnover is the sum of close*volume over the series.
	Turnover decimal.Decimal `json:"turnover"`
}

// VtSymbol returns the summary's instrument identity in
// SYMBOL.EXCHANGE form.
func (s SymbolSummary) VtSymbol() string {
	return fmt.Sprintf("%s.%s", s.Symbol, s.Exchange)
}

// Summarize computes the statistics for one series. Bars must be the
// full time-ordered series as the store returns it.
func Summarize(bars []types.BarData) (SymbolSummary, error) {
	if len(bars) == 0 {
		return SymbolSummary{}, errors.New(errors.ErrCodeNoDataFound, "no bars to summarize")
	}

	first := bars[0]
	summary := SymbolSummary{
		Symbol:   first.Symbol,
		Exchange: first.Exchange,
		Interval: first.Interval,
		Count:    len(bars),
		Start:    first.Time,
		End:      bars[len(bars)-1].Time,
		High:     first.High,
		Low:      first.Low,
	}

	turnover := decimal.Zero

	for _, bar := range bars {
		if bar.High > summary.High {
			summary.High = bar.High
		}

		if bar.Low < summary.Low {
			summary.Low = bar.Low
		}

		summary.TotalVolume += bar.Volume

		closeDec := decimal.NewFromFloat(bar.Close)
		volumeDec := decimal.NewFromFloat(bar.Volume)
		turnover = turnover.Add(closeDec.Mul(volumeDec))
	}

	summary.Turnover = turnover

	return summary, nil
}

// WriteSummaryReport writes a plain-text table of the given summaries.
func WriteSummaryReport(path string, summaries []SymbolSummary) error {
	var buf bytes.Buffer

	w := tabwriter.NewWriter(&buf, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "Instrument\tInterval\tBars\tFirst\tLast\tHigh\tLow\tVolume\tTurnover")

	for _, summary := range summaries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%.4f\t%.4f\t%.2f\t%s\n",
			summary.VtSymbol(),
			summary.Interval,
			summary.Count,
			summary.Start.Format("2006-01-02 15:04"),
			summary.End.Format("2006-01-02 15:04"),
			summary.High,
			summary.Low,
			summary.TotalVolume,
			summary.Turnover.StringFixed(2),
		)
	}

	if err := w.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, "failed to format summary report", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(errors.ErrCodeExportFailed, err, "failed to write summary report %s", path)
	}

	return nil
}
