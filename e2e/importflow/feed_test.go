package importflow_test

import (
	"context"
	"iter"
	"time"

	"github.com/rxtech-lab/argo-data/internal/store"
	"github.com/rxtech-lab/argo-data/internal/types"
	"github.com/rxtech-lab/argo-data/mocks"
	"github.com/rxtech-lab/argo-data/pkg/feed"
	"github.com/rxtech-lab/argo-data/pkg/feed/provider"
	"go.uber.org/mock/gomock"
)

// barSeq wraps a bar slice in the provider sequence shape.
func barSeq(bars []types.BarData) iter.Seq2[types.BarData, error] {
	return func(yield func(types.BarData, error) bool) {
		for _, bar := range bars {
			if !yield(bar, nil) {
				return
			}
		}
	}
}

func (s *ImportFlowE2ETestSuite) generatorConfig(start time.Time, count int) mocks.GeneratorConfig {
	return mocks.GeneratorConfig{
		Symbol:       "BTCUSDT",
		Exchange:     types.ExchangeBinance,
		Interval:     types.Interval1m,
		StartTime:    start,
		Count:        count,
		InitialPrice: 50000,
		Volatility:   0.002,
		VolumeBase:   10,
		Source:       "generated",
	}
}

// TestFeedUpdateFlow updates a series from a mocked vendor and
// verifies later runs only ask for bars after the last stored one.
func (s *ImportFlowE2ETestSuite) TestFeedUpdateFlow() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	history := mocks.NewDataGenerator(42).Generate(s.generatorConfig(start, 1500))

	mockProvider := mocks.NewMockProvider(ctrl)
	mockProvider.EXPECT().Name().Return(provider.ProviderType("mock")).AnyTimes()

	var firstRequest provider.HistoryRequest
	mockProvider.EXPECT().
		QueryHistory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, request provider.HistoryRequest) iter.Seq2[types.BarData, error] {
			firstRequest = request

			return barSeq(history)
		})

	client, err := feed.NewClient(feed.Config{Provider: provider.ProviderBinance}, s.store, s.logger)
	s.Require().NoError(err)
	s.Require().NoError(client.SetProvider(mockProvider))

	series := store.Series{Symbol: "BTCUSDT", Exchange: types.ExchangeBinance, Interval: types.Interval1m}
	params := feed.UpdateParams{
		Series:        series,
		BackfillStart: start,
		End:           start.Add(1500 * time.Minute),
	}

	saved, err := client.Update(context.Background(), params, nil)
	s.Require().NoError(err)
	s.Equal(1500, saved)
	s.True(start.Equal(firstRequest.Start), "an empty series backfills from the configured start")

	count, err := s.store.Count(series)
	s.Require().NoError(err)
	s.Equal(int64(1500), count)

	// Same window again: already current, the vendor is not queried
	saved, err = client.Update(context.Background(), params, nil)
	s.Require().NoError(err)
	s.Zero(saved)

	// A wider window resumes one interval after the last stored bar
	resumeStart := start.Add(1500 * time.Minute)
	continuation := mocks.NewDataGenerator(43).Generate(s.generatorConfig(resumeStart, 500))

	var secondRequest provider.HistoryRequest
	mockProvider.EXPECT().
		QueryHistory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, request provider.HistoryRequest) iter.Seq2[types.BarData, error] {
			secondRequest = request

			return barSeq(continuation)
		})

	params.End = start.Add(2000 * time.Minute)

	saved, err = client.Update(context.Background(), params, nil)
	s.Require().NoError(err)
	s.Equal(500, saved)
	s.True(resumeStart.Equal(secondRequest.Start), "the update resumes after the last stored bar")

	count, err = s.store.Count(series)
	s.Require().NoError(err)
	s.Equal(int64(2000), count)

	last, err := s.store.ReadLastBar(series)
	s.Require().NoError(err)
	s.True(start.Add(1999 * time.Minute).Equal(last.Time))
}

// TestFeedUpdateRollsBackOnVendorError streams a failing sequence and
// expects the store to stay untouched.
func (s *ImportFlowE2ETestSuite) TestFeedUpdateRollsBackOnVendorError() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	history := mocks.NewDataGenerator(42).Generate(s.generatorConfig(start, 10))

	mockProvider := mocks.NewMockProvider(ctrl)
	mockProvider.EXPECT().Name().Return(provider.ProviderType("mock")).AnyTimes()
	mockProvider.EXPECT().
		QueryHistory(gomock.Any(), gomock.Any()).
		Return(iter.Seq2[types.BarData, error](func(yield func(types.BarData, error) bool) {
			for _, bar := range history {
				if !yield(bar, nil) {
					return
				}
			}

			yield(types.BarData{}, context.DeadlineExceeded)
		}))

	client, err := feed.NewClient(feed.Config{Provider: provider.ProviderBinance}, s.store, s.logger)
	s.Require().NoError(err)
	s.Require().NoError(client.SetProvider(mockProvider))

	series := store.Series{Symbol: "BTCUSDT", Exchange: types.ExchangeBinance, Interval: types.Interval1m}

	_, err = client.Update(context.Background(), feed.UpdateParams{
		Series:        series,
		BackfillStart: start,
		End:           start.Add(time.Hour),
	}, nil)
	s.Require().Error(err)

	count, err := s.store.Count(series)
	s.Require().NoError(err)
	s.Zero(count, "a failed update should leave the store untouched")
}
