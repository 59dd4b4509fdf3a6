package main

import (
	"github.com/rxtech-lab/argo-data/internal/store"
	"github.com/rxtech-lab/argo-data/internal/types"
)

// OverviewsMsg carries the stored series read from the store.
type OverviewsMsg struct {
	Overviews []types.BarOverview
}

// BarsMsg carries the bars of one series. Total is the full series
// size; Bars holds the displayed tail of it.
type BarsMsg struct {
	Series store.Series
	Bars   []types.BarData
	Total  int
}

// LoadErrorMsg indicates a failed store read.
type LoadErrorMsg struct {
	Err error
}
