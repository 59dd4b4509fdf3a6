package importer

import (
	"testing"

	"github.com/rxtech-lab/argo-data/internal/types"
	"github.com/rxtech-lab/argo-data/pkg/errors"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func validConfig() ImportConfig {
	return ImportConfig{
		Symbol:     "rb2101",
		Exchange:   types.ExchangeSHFE,
		Interval:   types.Interval1m,
		Source:     "csv",
		TimeLayout: "2006/01/02 15:04",
		Timezone:   "Asia/Shanghai",
		Columns: ColumnMap{
			Datetime: "Datetime",
			Open:     "Open",
			High:     "High",
			Low:      "Low",
			Close:    "Close",
			Volume:   "Volume",
		},
	}
}

func (suite *ConfigTestSuite) TestValidate() {
	config := validConfig()
	suite.NoError(config.Validate())
}

func (suite *ConfigTestSuite) TestValidateMissingSymbol() {
	config := validConfig()
	config.Symbol = ""

	err := config.Validate()
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestValidateMissingDatetimeColumn() {
	config := validConfig()
	config.Columns.Datetime = ""

	err := config.Validate()
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestValidateUnknownExchange() {
	config := validConfig()
	config.Exchange = "NOWHERE"

	err := config.Validate()
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidExchange))
}

func (suite *ConfigTestSuite) TestValidateUnknownInterval() {
	config := validConfig()
	config.Interval = "7m"

	err := config.Validate()
	suite.Require().Error(err)
}

func (suite *ConfigTestSuite) TestValidateNegativeTrim() {
	config := validConfig()
	config.TrimTrailingRows = -1

	err := config.Validate()
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestValidateUnknownPolicy() {
	config := validConfig()
	config.OnError = "explode"

	err := config.Validate()
	suite.Require().Error(err)
}

func (suite *ConfigTestSuite) TestValidateUnknownDelimiter() {
	config := validConfig()
	config.Delimiter = "pipe"

	err := config.Validate()
	suite.Require().Error(err)
}

func (suite *ConfigTestSuite) TestPolicyDefaultsToFail() {
	config := validConfig()
	suite.Equal(RowErrorFail, config.Policy())

	config.OnError = RowErrorSkip
	suite.Equal(RowErrorSkip, config.Policy())
}

func (suite *ConfigTestSuite) TestDelimiterRune() {
	suite.Equal(',', Delimiter("").Rune())
	suite.Equal(',', DelimiterComma.Rune())
	suite.Equal('\t', DelimiterTab.Rune())
}

func (suite *ConfigTestSuite) TestUnmarshalYAMLComplete() {
	yamlData := `
symbol: rb2101
exchange: SHFE
interval: 1m
source: tdx
time_layout: "2006/01/02 15:04"
timezone: Asia/Shanghai
columns:
  datetime: Datetime
  open: Open
  high: High
  low: Low
  close: Close
  volume: Volume
  open_interest: OpenInterest
delimiter: tab
trim_trailing_rows: 1
on_error: skip
`

	var config ImportConfig
	err := yaml.Unmarshal([]byte(yamlData), &config)

	suite.Require().NoError(err)
	suite.Equal("rb2101", config.Symbol)
	suite.Equal(types.ExchangeSHFE, config.Exchange)
	suite.Equal(types.Interval1m, config.Interval)
	suite.Equal("tdx", config.Source)
	suite.Equal("OpenInterest", config.Columns.OpenInterest)
	suite.Equal(DelimiterTab, config.Delimiter)
	suite.Equal(1, config.TrimTrailingRows)
	suite.Equal(RowErrorSkip, config.OnError)
	suite.NoError(config.Validate())
}

func (suite *ConfigTestSuite) TestUnmarshalYAMLMinimal() {
	yamlData := `
symbol: AAPL
exchange: NASDAQ
interval: 1d
time_layout: "2006-01-02"
timezone: America/New_York
columns:
  datetime: Date
  open: Open
  high: High
  low: Low
  close: Close
  volume: Volume
`

	var config ImportConfig
	err := yaml.Unmarshal([]byte(yamlData), &config)

	suite.Require().NoError(err)
	suite.NoError(config.Validate())

	// Unset knobs fall back to comma input and fail-fast rows.
	suite.Equal(',', config.Delimiter.Rune())
	suite.Equal(RowErrorFail, config.Policy())
	suite.Equal(0, config.TrimTrailingRows)
	suite.Empty(config.Columns.OpenInterest)
}
