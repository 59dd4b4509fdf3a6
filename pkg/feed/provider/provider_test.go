package provider

import (
	"testing"
	"time"

	"github.com/rxtech-lab/argo-data/internal/types"
	"github.com/rxtech-lab/argo-data/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ProviderTestSuite struct {
	suite.Suite
}

func TestProviderSuite(t *testing.T) {
	suite.Run(t, new(ProviderTestSuite))
}

func (suite *ProviderTestSuite) TestNewHistoricalProviderBinance() {
	p, err := NewHistoricalProvider(ProviderBinance, "", "")
	suite.Require().NoError(err)
	suite.Equal(ProviderBinance, p.Name())
}

func (suite *ProviderTestSuite) TestNewHistoricalProviderBinanceBaseURL() {
	p, err := NewHistoricalProvider(ProviderBinance, "", "http://127.0.0.1:9999")
	suite.Require().NoError(err)

	binanceClient, ok := p.(*BinanceClient)
	suite.Require().True(ok)
	suite.Equal("http://127.0.0.1:9999", binanceClient.client.BaseURL)
}

func (suite *ProviderTestSuite) TestNewHistoricalProviderPolygon() {
	p, err := NewHistoricalProvider(ProviderPolygon, "test-key", "")
	suite.Require().NoError(err)
	suite.Equal(ProviderPolygon, p.Name())
}

func (suite *ProviderTestSuite) TestNewHistoricalProviderPolygonRequiresKey() {
	_, err := NewHistoricalProvider(ProviderPolygon, "", "")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMissingParameter))
}

func (suite *ProviderTestSuite) TestNewHistoricalProviderUnknown() {
	_, err := NewHistoricalProvider("bloomberg", "", "")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUnsupportedProvider))
}

func (suite *ProviderTestSuite) validRequest() HistoryRequest {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	return HistoryRequest{
		Symbol:   "BTCUSDT",
		Exchange: types.ExchangeBinance,
		Interval: types.Interval1h,
		Start:    start,
		End:      start.Add(24 * time.Hour),
	}
}

func (suite *ProviderTestSuite) TestHistoryRequestValidate() {
	request := suite.validRequest()
	suite.NoError(request.Validate())
}

func (suite *ProviderTestSuite) TestHistoryRequestEndBeforeStart() {
	request := suite.validRequest()
	request.End = request.Start.Add(-time.Hour)

	err := request.Validate()
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *ProviderTestSuite) TestHistoryRequestMissingSymbol() {
	request := suite.validRequest()
	request.Symbol = ""

	err := request.Validate()
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *ProviderTestSuite) TestHistoryRequestUnknownExchange() {
	request := suite.validRequest()
	request.Exchange = "NOWHERE"

	err := request.Validate()
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidExchange))
}

func (suite *ProviderTestSuite) TestHistoryRequestUnknownInterval() {
	request := suite.validRequest()
	request.Interval = "7m"

	err := request.Validate()
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidInterval))
}

func (suite *ProviderTestSuite) TestHistoryRequestVtSymbol() {
	suite.Equal("BTCUSDT.BINANCE", suite.validRequest().VtSymbol())
}
