package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/willyv3/ghprofile/internal/contrib"
)

// Graph dimensions.
const (
	daysPerWeek   = 7
	maxWeeks      = 54
	cellWidth     = 2 // block + space
	dayLabelWidth = 4
	blockChar     = "■"
)

// minGraphWidth fits the widest calendar plus the weekday labels.
const minGraphWidth = dayLabelWidth + maxWeeks*cellWidth

// gridWidth is the width the grid of weeks needs, weekday labels included.
func gridWidth(weeks int) int {
	return dayLabelWidth + weeks*cellWidth
}

var numbers = message.NewPrinter(language.English)

// formatCount renders n with thousands separators, e.g. 1,753.
func formatCount(n int) string {
	return numbers.Sprintf("%d", n)
}

// Graph renders one year of contribution data and tracks the selected year.
type Graph struct {
	data     contrib.Data
	selected int // index into data.Years
	today    time.Time
}

// NewGraph selects the newest year.
func NewGraph(data contrib.Data, today time.Time) *Graph {
	return &Graph{data: data, today: today}
}

// Year is the selected year's data.
func (g *Graph) Year() contrib.Year {
	if len(g.data.Years) == 0 {
		return contrib.Year{Year: g.today.Year()}
	}
	return g.data.Years[g.selected]
}

// OlderYear moves the selection one year back. It reports whether the
// selection changed.
func (g *Graph) OlderYear() bool {
	if g.selected+1 >= len(g.data.Years) {
		return false
	}
	g.selected++
	return true
}

// NewerYear moves the selection one year forward.
func (g *Graph) NewerYear() bool {
	if g.selected == 0 {
		return false
	}
	g.selected--
	return true
}

// MinWidth is the width the selected year's grid needs. Years without
// weeks need the widest grid.
func (g *Graph) MinWidth() int {
	if weeks := len(g.Year().Weeks); weeks > 0 {
		return gridWidth(weeks)
	}
	return minGraphWidth
}

// Render draws the graph for the available width. Narrow terminals get a
// width warning in place of the grid.
func (g *Graph) Render(width int) string {
	year := g.Year()

	var sections []string
	sections = append(sections, titleStyle.Render(g.title(year)))

	switch {
	case !year.HasData():
		sections = append(sections, labelStyle.Render(fmt.Sprintf("No contribution data for %d", year.Year)))
	case width < g.MinWidth():
		sections = append(sections, renderWidthWarning(width, g.MinWidth()))
	default:
		sections = append(sections, g.renderMonthLabels(year.Weeks), g.renderGrid(year.Weeks))
	}

	sections = append(sections, g.renderLegend(), g.renderYearSelector(width))
	if year.HasData() {
		sections = append(sections, g.renderStats(year))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (g *Graph) title(year contrib.Year) string {
	if g.selected == 0 {
		return fmt.Sprintf("%s contributions in the last year", formatCount(year.Total))
	}
	return fmt.Sprintf("%s contributions in %d", formatCount(year.Total), year.Year)
}

// renderMonthLabels places a month name above the first week of each month,
// skipping names that would overlap the previous one or run past the grid.
func (g *Graph) renderMonthLabels(weeks []contrib.Week) string {
	labelChars := []rune(strings.Repeat(" ", len(weeks)*cellWidth))

	lastMonth := time.Month(0)
	nextFree := 0
	for i, w := range weeks {
		if len(w.Days) == 0 {
			continue
		}
		month := w.Days[0].Date.Month()
		if month == lastMonth {
			continue
		}
		lastMonth = month

		pos := i * cellWidth
		if pos < nextFree {
			continue
		}
		name := []rune(month.String()[:3])
		if pos+len(name) > len(labelChars) {
			continue
		}
		copy(labelChars[pos:], name)
		nextFree = pos + len(name) + 1
	}

	return strings.Repeat(" ", dayLabelWidth) + labelStyle.Render(string(labelChars))
}

// renderGrid draws one row per weekday and one column per week. Days are
// placed by weekday, so short first and last weeks leave blanks.
func (g *Graph) renderGrid(weeks []contrib.Week) string {
	var grid [daysPerWeek][]*contrib.Day
	for day := range grid {
		grid[day] = make([]*contrib.Day, len(weeks))
	}
	for i := range weeks {
		for j := range weeks[i].Days {
			d := &weeks[i].Days[j]
			grid[d.Date.Weekday()][i] = d
		}
	}

	dayLabels := [daysPerWeek]string{"", "Mon", "", "Wed", "", "Fri", ""}

	rows := make([]string, 0, daysPerWeek)
	for day := 0; day < daysPerWeek; day++ {
		var row strings.Builder
		row.WriteString(labelStyle.Width(dayLabelWidth).Render(dayLabels[day]))
		for _, d := range grid[day] {
			if d == nil {
				row.WriteString(strings.Repeat(" ", cellWidth))
				continue
			}
			row.WriteString(renderCell(d.Level))
		}
		rows = append(rows, row.String())
	}

	return strings.Join(rows, "\n")
}

// renderCell colours a block purely by its level.
func renderCell(level contrib.Level) string {
	return fg(CurrentTheme.LevelColor(level)).Render(blockChar) + " "
}

// renderLegend creates the "Less -> More" colour scale.
func (g *Graph) renderLegend() string {
	parts := []string{labelStyle.Render("Less ")}
	for level := contrib.LevelNone; level <= contrib.LevelMax; level++ {
		parts = append(parts, renderCell(level))
	}
	parts = append(parts, labelStyle.Render("More"))

	return strings.Repeat(" ", dayLabelWidth) + strings.Join(parts, "")
}

// renderYearSelector lists the selectable years, newest first, wrapping to
// width.
func (g *Graph) renderYearSelector(width int) string {
	if len(g.data.Years) <= 1 {
		return ""
	}

	var lines []string
	var line strings.Builder
	lineWidth := 0
	for i, y := range g.data.Years {
		label := fmt.Sprintf(" %d ", y.Year)
		style := labelStyle
		if i == g.selected {
			style = selectedStyle.Reverse(true)
		}
		if lineWidth > 0 && width > 0 && lineWidth+len(label) > width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		line.WriteString(style.Render(label))
		lineWidth += len(label)
	}
	lines = append(lines, line.String())

	return strings.Join(lines, "\n")
}

func (g *Graph) renderStats(year contrib.Year) string {
	stats := contrib.Summarize(year, g.today)
	parts := []string{
		labelStyle.Render("Active days ") + accentStyle.Render(fmt.Sprintf("%d/%d", stats.ActiveDays, stats.TotalDays)),
		labelStyle.Render("Current streak ") + accentStyle.Render(plural(stats.CurrentStreak, "day")),
		labelStyle.Render("Longest streak ") + accentStyle.Render(plural(stats.LongestStreak, "day")),
		labelStyle.Render("Best day ") + accentStyle.Render(formatCount(stats.MaxDay)),
	}
	return strings.Join(parts, subtleStyle.Render("  ·  "))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%s %ss", formatCount(n), noun)
}

// renderWidthWarning displays a helpful message when the terminal is too narrow.
// The message adapts to the available width.
func renderWidthWarning(currentWidth, minWidth int) string {
	maxBoxWidth := currentWidth - 4 // border and padding

	msg := "Increase terminal width to view contribution grid"
	detail := fmt.Sprintf("Need %d columns, have %d", minWidth, currentWidth)

	if maxBoxWidth < len(msg) {
		if maxBoxWidth < 30 {
			msg = "Terminal too narrow"
		} else {
			msg = "Increase width for graph"
		}
		detail = ""
	}
	if maxBoxWidth < 1 {
		maxBoxWidth = 1
	}

	style := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(CurrentTheme.Border)).
		Padding(0, 1).
		Width(maxBoxWidth).
		Align(lipgloss.Center)

	content := labelStyle.Bold(true).Render(msg)
	if detail != "" {
		content = lipgloss.JoinVertical(lipgloss.Center, content, subtleStyle.Render(detail))
	}

	return style.Render(content)
}
