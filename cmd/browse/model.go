package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-data/internal/store"
	"github.com/rxtech-lab/argo-data/internal/types"
)

// Application states.
const (
	StateSeriesSelect = iota
	StateBarDisplay
)

// barWindow caps how many bars of a series are loaded into the table.
const barWindow = 500

// Model is the main Bubble Tea model for the bar browser.
type Model struct {
	state      int
	store      store.BarStore
	seriesList list.Model
	barTable   table.Model
	overviews  []types.BarOverview
	selected   store.Series
	totalBars  int
	err        error
	width      int
	height     int
}

// NewModel creates a new Model reading from barStore.
func NewModel(barStore store.BarStore) Model {
	return Model{
		state:      StateSeriesSelect,
		store:      barStore,
		seriesList: NewSeriesList(),
		barTable:   NewBarTable(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.loadOverviews()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			// Only quit on 'q' when the list filter is not capturing keys
			if m.state != StateSeriesSelect || m.seriesList.FilterState() != list.Filtering {
				return m, tea.Quit
			}
		case "esc":
			return m.handleEsc(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.seriesList.SetSize(msg.Width, msg.Height-4)
		m.barTable.SetWidth(msg.Width)
		m.barTable.SetHeight(msg.Height - 6)
		return m, nil

	case OverviewsMsg:
		m.overviews = msg.Overviews
		return m, m.seriesList.SetItems(SeriesItems(msg.Overviews))

	case BarsMsg:
		m.selected = msg.Series
		m.totalBars = msg.Total
		m.barTable = UpdateBarRows(m.barTable, msg.Bars)
		m.state = StateBarDisplay
		return m, nil

	case LoadErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Delegate to state-specific update
	switch m.state {
	case StateSeriesSelect:
		return m.updateSeriesSelect(msg)
	case StateBarDisplay:
		return m.updateBarDisplay(msg)
	}

	return m, nil
}

func (m Model) handleEsc(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateSeriesSelect:
		// The list uses esc to leave filtering
		var cmd tea.Cmd
		m.seriesList, cmd = m.seriesList.Update(msg)
		return m, cmd
	case StateBarDisplay:
		m.err = nil
		m.totalBars = 0
		m.state = StateSeriesSelect
		return m, m.loadOverviews()
	}

	return m, nil
}

func (m Model) updateSeriesSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if m.seriesList.FilterState() == list.Filtering {
				break
			}

			if item, ok := m.seriesList.SelectedItem().(seriesItem); ok {
				return m, m.loadBars(item.series)
			}
		}
	}

	var cmd tea.Cmd
	m.seriesList, cmd = m.seriesList.Update(msg)
	return m, cmd
}

func (m Model) updateBarDisplay(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.barTable, cmd = m.barTable.Update(msg)
	return m, cmd
}

// loadOverviews returns a command that reads the stored series.
func (m Model) loadOverviews() tea.Cmd {
	return func() tea.Msg {
		overviews, err := m.store.Overviews()
		if err != nil {
			return LoadErrorMsg{Err: err}
		}

		return OverviewsMsg{Overviews: overviews}
	}
}

// loadBars returns a command that reads one series, keeping the most
// recent barWindow bars for display.
func (m Model) loadBars(series store.Series) tea.Cmd {
	return func() tea.Msg {
		bars, err := m.store.LoadBars(series, optional.None[time.Time](), optional.None[time.Time]())
		if err != nil {
			return LoadErrorMsg{Err: err}
		}

		total := len(bars)
		if len(bars) > barWindow {
			bars = bars[len(bars)-barWindow:]
		}

		return BarsMsg{Series: series, Bars: bars, Total: total}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	switch m.state {
	case StateSeriesSelect:
		s.WriteString(TitleStyle.Render("Argo Data - Bar Browser"))
		s.WriteString("\n\n")

		if m.err != nil {
			s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			s.WriteString("\n\n")
		}

		if len(m.overviews) == 0 {
			s.WriteString("The bar store is empty. Import or download a series first.\n")
		} else {
			s.WriteString(m.seriesList.View())
		}

		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("Enter to open, / to filter, q to quit"))

	case StateBarDisplay:
		s.WriteString(TitleStyle.Render(fmt.Sprintf("%s (%s)", m.selected.VtSymbol(), m.selected.Interval)))
		s.WriteString("\n\n")

		if m.err != nil {
			s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			s.WriteString("\n\n")
		}

		s.WriteString(m.barTable.View())
		s.WriteString("\n")

		shown := len(m.barTable.Rows())
		s.WriteString(HelpStyle.Render(fmt.Sprintf("Esc: back | q: quit | showing %d of %d bars", shown, m.totalBars)))
	}

	return s.String()
}
