package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-data/internal/types"
	"github.com/rxtech-lab/argo-data/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ExportTestSuite struct {
	suite.Suite
	tmpDir string
}

func TestExportSuite(t *testing.T) {
	suite.Run(t, new(ExportTestSuite))
}

func (suite *ExportTestSuite) SetupTest() {
	suite.tmpDir = suite.T().TempDir()
}

func (suite *ExportTestSuite) bars() []types.BarData {
	start := time.Date(2021, 1, 4, 9, 31, 0, 0, time.UTC)

	return []types.BarData{
		{
			Symbol: "rb2101", Exchange: types.ExchangeSHFE, Interval: types.Interval1m,
			Time: start,
			Open: 99.5, High: 101, Low: 99, Close: 100, Volume: 10,
		},
		{
			Symbol: "rb2101", Exchange: types.ExchangeSHFE, Interval: types.Interval1m,
			Time: start.Add(time.Minute),
			Open: 100, High: 103, Low: 100, Close: 102, Volume: 20,
		},
		{
			Symbol: "rb2101", Exchange: types.ExchangeSHFE, Interval: types.Interval1m,
			Time: start.Add(2 * time.Minute),
			Open: 102, High: 102.5, Low: 97, Close: 98, Volume: 30,
		},
	}
}

func (suite *ExportTestSuite) TestWriteInstrumentList() {
	overviews := []types.BarOverview{
		{Symbol: "rb2101", Exchange: types.ExchangeSHFE, Interval: types.Interval1m},
		{Symbol: "hc2101", Exchange: types.ExchangeSHFE, Interval: types.Interval1m},
		{Symbol: "hc2101", Exchange: types.ExchangeSHFE, Interval: types.Interval1h},
		{Symbol: "BTCUSDT", Exchange: types.ExchangeBinance, Interval: types.Interval1m},
	}

	path := filepath.Join(suite.tmpDir, "instruments.txt")
	err := WriteInstrumentList(path, overviews)
	suite.Require().NoError(err)

	content, err := os.ReadFile(path)
	suite.Require().NoError(err)

	// Sorted, one line per instrument, intervals collapsed.
	suite.Equal("BTCUSDT.BINANCE\nhc2101.SHFE\nrb2101.SHFE\n", string(content))
}

func (suite *ExportTestSuite) TestWriteInstrumentListEmpty() {
	path := filepath.Join(suite.tmpDir, "instruments.txt")
	err := WriteInstrumentList(path, nil)
	suite.Require().NoError(err)

	content, err := os.ReadFile(path)
	suite.Require().NoError(err)
	suite.Empty(content)
}

func (suite *ExportTestSuite) TestSummarize() {
	bars := suite.bars()

	summary, err := Summarize(bars)
	suite.Require().NoError(err)

	suite.Equal("rb2101", summary.Symbol)
	suite.Equal(types.ExchangeSHFE, summary.Exchange)
	suite.Equal(types.Interval1m, summary.Interval)
	suite.Equal(3, summary.Count)
	suite.True(summary.Start.Equal(bars[0].Time))
	suite.True(summary.End.Equal(bars[2].Time))
	suite.Equal(103.0, summary.High)
	suite.Equal(97.0, summary.Low)
	suite.Equal(60.0, summary.TotalVolume)

	// 100*10 + 102*20 + 98*30
	suite.True(summary.Turnover.Equal(decimal.NewFromInt(5980)))
}

func (suite *ExportTestSuite) TestSummarizeEmpty() {
	_, err := Summarize(nil)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeNoDataFound))
}

func (suite *ExportTestSuite) TestTurnoverIsExact() {
	bars := suite.bars()
	for i := range bars {
		bars[i].Close = 0.1
		bars[i].Volume = 0.3
	}

	summary, err := Summarize(bars)
	suite.Require().NoError(err)

	// Three 0.1*0.3 products sum to exactly 0.09, which float64
	// accumulation misses.
	expected, err := decimal.NewFromString("0.09")
	suite.Require().NoError(err)
	suite.True(summary.Turnover.Equal(expected))
}

func (suite *ExportTestSuite) TestWriteSummaryReport() {
	summary, err := Summarize(suite.bars())
	suite.Require().NoError(err)

	path := filepath.Join(suite.tmpDir, "summary.txt")
	err = WriteSummaryReport(path, []SymbolSummary{summary})
	suite.Require().NoError(err)

	content, err := os.ReadFile(path)
	suite.Require().NoError(err)

	report := string(content)
	suite.Contains(report, "Instrument")
	suite.Contains(report, "rb2101.SHFE")
	suite.Contains(report, "5980.00")
}
