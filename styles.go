package main

import "github.com/charmbracelet/lipgloss"

// Styles are rebuilt from CurrentTheme by InitStyles whenever the theme
// changes.
var (
	baseStyle      lipgloss.Style
	titleStyle     lipgloss.Style
	labelStyle     lipgloss.Style
	accentStyle    lipgloss.Style
	subtleStyle    lipgloss.Style
	linkStyle      lipgloss.Style
	statusBarStyle lipgloss.Style
	loadingStyle   lipgloss.Style
	tabStyle       lipgloss.Style
	activeTabStyle lipgloss.Style
	cardStyle      lipgloss.Style
	selectedStyle  lipgloss.Style
)

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// InitStyles must be called after the theme is set
func InitStyles() {
	t := CurrentTheme

	baseStyle = fg(t.Foreground)
	titleStyle = fg(t.Foreground).Bold(true)
	labelStyle = fg(t.Gray)
	accentStyle = fg(t.Green).Bold(true)
	subtleStyle = fg(t.BrightBlack)
	linkStyle = fg(t.Blue)
	statusBarStyle = fg(t.Gray).Background(lipgloss.Color(t.Subtle))
	loadingStyle = fg(t.Gray).Bold(true)

	tabStyle = fg(t.Gray).Padding(0, 1)
	activeTabStyle = fg(t.Foreground).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color(t.Yellow))

	cardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Border)).
		Padding(0, 1)

	selectedStyle = fg(t.Blue).Bold(true)
}

// barStyle fills share of maxWidth with color, at least one cell.
func barStyle(share float64, maxWidth int, color string) lipgloss.Style {
	width := int(share * float64(maxWidth))
	if width < 1 {
		width = 1
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Width(width)
}
