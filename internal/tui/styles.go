package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary  = lipgloss.Color("#00FA9A")
	colorAccent   = lipgloss.Color("#2E8B57")
	colorDanger   = lipgloss.Color("#EF4444")
	colorWarning  = lipgloss.Color("#F59E0B")
	colorMuted    = lipgloss.Color("#6B7280")
	colorText     = lipgloss.Color("#F3F4F6")
	colorBorder   = lipgloss.Color("#4B5563")
	colorOutStock = lipgloss.Color("#87CEEB")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	topBarStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorAccent).
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(22)

	focusedLabelStyle = labelStyle.
				Foreground(colorPrimary).
				Bold(true)

	// catalog rows
	cellStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Padding(0, 1)

	headerStyle = cellStyle.
			Bold(true).
			Foreground(colorPrimary)

	largeDiscountStyle = cellStyle.
				Foreground(colorText).
				Background(colorAccent)

	outOfStockStyle = cellStyle.
			Foreground(lipgloss.Color("#1F2937")).
			Background(colorOutStock)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	activeButtonStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Background(colorAccent).
				Padding(0, 3).
				Bold(true)

	inactiveButtonStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Background(lipgloss.Color("#1F2937")).
				Padding(0, 3)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	errorTitleStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	warningTitleStyle = lipgloss.NewStyle().
				Foreground(colorWarning).
				Bold(true)
)

// FormatKey formats a help key
func FormatKey(key, description string) string {
	return helpKeyStyle.Render(key) + " " + mutedStyle.Render(description)
}

// helpLine joins key hints with bullets
func helpLine(pairs ...string) string {
	out := ""
	for i := 0; i+1 < len(pairs); i += 2 {
		if out != "" {
			out += " • "
		}
		out += FormatKey(pairs[i], pairs[i+1])
	}
	return helpStyle.Render(out)
}
