package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true)
)

// FormatCloseWithTrend formats a close price with a direction marker
// against the previous bar's close. The first bar has no previous
// close and renders plain.
func FormatCloseWithTrend(current, previous float64) string {
	closeStr := fmt.Sprintf("%.4f", current)

	if previous == 0 {
		return closeStr
	}

	if current > previous {
		return closeStr + " ▲"
	} else if current < previous {
		return closeStr + " ▼"
	}

	return closeStr
}
