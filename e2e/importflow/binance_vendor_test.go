package importflow_test

import (
	"context"
	"time"

	"github.com/rxtech-lab/argo-data/e2e/importflow/mockserver"
	"github.com/rxtech-lab/argo-data/internal/store"
	"github.com/rxtech-lab/argo-data/internal/types"
	"github.com/rxtech-lab/argo-data/mocks"
	"github.com/rxtech-lab/argo-data/pkg/feed"
	"github.com/rxtech-lab/argo-data/pkg/feed/provider"
)

// TestBinanceVendorUpdateFlow runs the update loop against the real
// Binance client pointed at a local mock server, so the kline paging
// and decoding paths are exercised end to end.
func (s *ImportFlowE2ETestSuite) TestBinanceVendorUpdateFlow() {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	config := s.generatorConfig(start, 1500)
	config.Symbol = "ETHUSDT"
	config.InitialPrice = 3000
	history := mocks.NewDataGenerator(11).Generate(config)

	server := mockserver.NewMockBinanceServer()
	server.SetBars("ETHUSDT", history[:1200])
	err := server.Start(":0")
	s.Require().NoError(err)
	defer server.Stop()

	client, err := feed.NewClient(feed.Config{
		Provider: provider.ProviderBinance,
		BaseURL:  server.BaseURL(),
	}, s.store, s.logger)
	s.Require().NoError(err)

	series := store.Series{
		Symbol:   "ETHUSDT",
		Exchange: types.ExchangeBinance,
		Interval: types.Interval1m,
	}
	params := feed.UpdateParams{
		Series:        series,
		BackfillStart: start,
		End:           start.Add(1200 * time.Minute),
	}

	saved, err := client.Update(context.Background(), params, nil)
	s.Require().NoError(err)
	s.Equal(1200, saved)

	// 1200 bars at a 500 kline page limit means three vendor queries.
	requests := server.Requests()
	s.Require().Len(requests, 3)
	s.True(start.Equal(requests[0].Start))
	s.True(start.Add(500 * time.Minute).Equal(requests[1].Start))
	s.True(start.Add(1000 * time.Minute).Equal(requests[2].Start))

	count, err := s.store.Count(series)
	s.Require().NoError(err)
	s.Equal(int64(1200), count)

	// Same window again: already current, the vendor is not queried.
	saved, err = client.Update(context.Background(), params, nil)
	s.Require().NoError(err)
	s.Zero(saved)
	s.Len(server.Requests(), 3)

	// The vendor gains 300 bars; the update resumes after the last
	// stored one.
	server.SetBars("ETHUSDT", history)
	params.End = start.Add(1500 * time.Minute)

	saved, err = client.Update(context.Background(), params, nil)
	s.Require().NoError(err)
	s.Equal(300, saved)

	requests = server.Requests()
	s.Require().Len(requests, 4)
	s.True(start.Add(1200*time.Minute).Equal(requests[3].Start))

	last, err := s.store.ReadLastBar(series)
	s.Require().NoError(err)
	s.True(start.Add(1499 * time.Minute).Equal(last.Time))
	s.Equal(string(provider.ProviderBinance), last.Source)

	// Prices round trip through the decimal strings of the kline wire
	// format.
	s.InDelta(history[1499].Close, last.Close, 1e-6)
}
