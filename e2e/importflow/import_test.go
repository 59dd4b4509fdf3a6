package importflow_test

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-data/internal/export"
	"github.com/rxtech-lab/argo-data/internal/importer"
	"github.com/rxtech-lab/argo-data/internal/store"
	"github.com/rxtech-lab/argo-data/internal/types"
)

// vendorFile is a typical futures vendor export: naive Shanghai
// timestamps and a partial last row.
const vendorFile = `Datetime,Open,High,Low,Close,Volume,OpenInterest
2018/09/13 21:01,1.234,1.240,1.230,1.238,100,5000
2018/09/13 21:02,1.238,1.242,1.236,1.241,80,5100
2018/09/13 21:03,1.241,1.245,1.239,1.244,120,5200
2018/09/13 21:04,1.244,1.246,1.238,1.239,90,5150
2018/09/13 21:05,1.239,1.239,1.239,1.239,0,5150
`

func (s *ImportFlowE2ETestSuite) vendorConfig() importer.ImportConfig {
	return importer.ImportConfig{
		Symbol:     "eb2101",
		Exchange:   types.ExchangeDCE,
		Interval:   types.Interval1m,
		TimeLayout: "2006/01/02 15:04",
		Timezone:   "Asia/Shanghai",
		Columns: importer.ColumnMap{
			Datetime:     "Datetime",
			Open:         "Open",
			High:         "High",
			Low:          "Low",
			Close:        "Close",
			Volume:       "Volume",
			OpenInterest: "OpenInterest",
		},
		TrimTrailingRows: 1,
	}
}

// TestImportPipeline drives a vendor file through the importer, the
// store, and the export artifacts.
func (s *ImportFlowE2ETestSuite) TestImportPipeline() {
	path := filepath.Join(s.tempDir, "eb2101.csv")
	s.Require().NoError(os.WriteFile(path, []byte(vendorFile), 0644))

	imp, err := importer.NewBarImporter(s.vendorConfig(), s.logger, nil)
	s.Require().NoError(err)

	saved, err := s.store.SaveStream(imp.ReadAll(context.Background(), path))
	s.Require().NoError(err)
	s.Equal(4, saved)

	report := imp.Report()
	s.Equal(5, report.RowsRead)
	s.Equal(4, report.BarsEmitted)
	s.Equal(1, report.Trimmed)
	s.Empty(report.Skipped)

	series := store.Series{Symbol: "eb2101", Exchange: types.ExchangeDCE, Interval: types.Interval1m}

	count, err := s.store.Count(series)
	s.Require().NoError(err)
	s.Equal(int64(4), count)

	bars, err := s.store.LoadBars(series, optional.None[time.Time](), optional.None[time.Time]())
	s.Require().NoError(err)
	s.Require().Len(bars, 4)

	// The naive source timestamps survive the round trip as Shanghai
	// wall-clock times
	first := bars[0]
	s.Equal("2018/09/13 21:01", first.Time.Format("2006/01/02 15:04"))
	_, offset := first.Time.Zone()
	s.Equal(8*3600, offset)
	s.Equal(1.234, first.Open)
	s.Equal(5000.0, first.OpenInterest)
	s.Equal("csv", first.Source)

	last, err := s.store.ReadLastBar(series)
	s.Require().NoError(err)
	s.Equal("2018/09/13 21:04", last.Time.Format("2006/01/02 15:04"))
}

// TestReimportIsIdempotent imports the same file twice and expects one
// copy of every bar.
func (s *ImportFlowE2ETestSuite) TestReimportIsIdempotent() {
	path := filepath.Join(s.tempDir, "eb2101.csv")
	s.Require().NoError(os.WriteFile(path, []byte(vendorFile), 0644))

	imp, err := importer.NewBarImporter(s.vendorConfig(), s.logger, nil)
	s.Require().NoError(err)

	_, err = s.store.SaveStream(imp.ReadAll(context.Background(), path))
	s.Require().NoError(err)

	saved, err := s.store.SaveStream(imp.ReadAll(context.Background(), path))
	s.Require().NoError(err)
	s.Equal(4, saved)

	series := store.Series{Symbol: "eb2101", Exchange: types.ExchangeDCE, Interval: types.Interval1m}
	count, err := s.store.Count(series)
	s.Require().NoError(err)
	s.Equal(int64(4), count)
}

// TestExportArtifacts renders the instrument list and the summary
// report from stored series.
func (s *ImportFlowE2ETestSuite) TestExportArtifacts() {
	path := filepath.Join(s.tempDir, "eb2101.csv")
	s.Require().NoError(os.WriteFile(path, []byte(vendorFile), 0644))

	imp, err := importer.NewBarImporter(s.vendorConfig(), s.logger, nil)
	s.Require().NoError(err)

	_, err = s.store.SaveStream(imp.ReadAll(context.Background(), path))
	s.Require().NoError(err)

	overviews, err := s.store.Overviews()
	s.Require().NoError(err)
	s.Require().Len(overviews, 1)
	s.Equal(int64(4), overviews[0].Count)

	listPath := filepath.Join(s.tempDir, "instruments.txt")
	s.Require().NoError(export.WriteInstrumentList(listPath, overviews))

	listContent, err := os.ReadFile(listPath)
	s.Require().NoError(err)
	s.Equal("eb2101.DCE\n", string(listContent))

	series := store.Series{Symbol: "eb2101", Exchange: types.ExchangeDCE, Interval: types.Interval1m}
	bars, err := s.store.LoadBars(series, optional.None[time.Time](), optional.None[time.Time]())
	s.Require().NoError(err)

	summary, err := export.Summarize(bars)
	s.Require().NoError(err)
	s.Equal("eb2101.DCE", summary.VtSymbol())
	s.Equal(1.246, summary.High)
	s.Equal(1.230, summary.Low)
	s.Equal(390.0, summary.TotalVolume)

	reportPath := filepath.Join(s.tempDir, "summary.txt")
	s.Require().NoError(export.WriteSummaryReport(reportPath, []export.SymbolSummary{summary}))

	reportContent, err := os.ReadFile(reportPath)
	s.Require().NoError(err)
	s.Contains(string(reportContent), "eb2101.DCE")
	s.Contains(string(reportContent), "1.2460")
}
