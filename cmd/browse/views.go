package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/argo-data/internal/store"
	"github.com/rxtech-lab/argo-data/internal/types"
)

// seriesItem implements list.Item for one stored series.
type seriesItem struct {
	series store.Series
	count  int64
	start  string
	end    string
}

func (i seriesItem) Title() string {
	return fmt.Sprintf("%s (%s)", i.series.VtSymbol(), i.series.Interval)
}

func (i seriesItem) Description() string {
	return fmt.Sprintf("%d bars, %s to %s", i.count, i.start, i.end)
}

func (i seriesItem) FilterValue() string {
	return i.series.VtSymbol()
}

// NewSeriesList creates the list of stored series.
func NewSeriesList() list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Stored Series"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return l
}

// SeriesItems converts store overviews into list items.
func SeriesItems(overviews []types.BarOverview) []list.Item {
	items := make([]list.Item, 0, len(overviews))

	for _, overview := range overviews {
		items = append(items, seriesItem{
			series: store.Series{
				Symbol:   overview.Symbol,
				Exchange: overview.Exchange,
				Interval: overview.Interval,
			},
			count: overview.Count,
			start: overview.Start.Format("2006-01-02 15:04"),
			end:   overview.End.Format("2006-01-02 15:04"),
		})
	}

	return items
}

// NewBarTable creates the table bars are rendered into.
func NewBarTable() table.Model {
	columns := []table.Column{
		{Title: "Time", Width: 17},
		{Title: "Open", Width: 12},
		{Title: "High", Width: 12},
		{Title: "Low", Width: 12},
		{Title: "Close", Width: 14},
		{Title: "Volume", Width: 12},
		{Title: "OpenInt", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t.SetStyles(s)

	return t
}

// UpdateBarRows fills the table with bars, newest last. Each close
// carries a trend marker against the bar before it.
func UpdateBarRows(t table.Model, bars []types.BarData) table.Model {
	rows := make([]table.Row, 0, len(bars))

	previousClose := 0.0

	for _, bar := range bars {
		rows = append(rows, table.Row{
			bar.Time.Format("2006-01-02 15:04"),
			fmt.Sprintf("%.4f", bar.Open),
			fmt.Sprintf("%.4f", bar.High),
			fmt.Sprintf("%.4f", bar.Low),
			FormatCloseWithTrend(bar.Close, previousClose),
			fmt.Sprintf("%.2f", bar.Volume),
			fmt.Sprintf("%.0f", bar.OpenInterest),
		})

		previousClose = bar.Close
	}

	t.SetRows(rows)
	t.GotoBottom()

	return t
}
