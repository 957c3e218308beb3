package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/willyv3/ghprofile/internal/profile"
)

// Layout constants.
const (
	sidebarWidth     = 30
	stackBelowWidth  = 90 // narrower terminals stack the sidebar above the content
	minCardWidth     = 28
	timelineBarWidth = 20
	maxContributed   = 3
)

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return ""
	}
	if m.page == nil {
		return m.renderLoading()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(m.width),
		m.viewport.View(),
		m.renderStatusBar(m.width),
	)
}

// bodyHeight is what is left for the scrolling body.
func (m Model) bodyHeight() int {
	h := m.height - lipgloss.Height(m.renderHeader(m.width)) - 1
	return max(h, 1)
}

func (m Model) renderLoading() string {
	msg := fmt.Sprintf("%s Loading profile...", m.spinner.View())
	if m.username != "" {
		msg = fmt.Sprintf("%s Loading @%s...", m.spinner.View(), m.username)
	}
	return loadingStyle.
		Width(m.width).
		Align(lipgloss.Center).
		Padding(2).
		Render(msg)
}

// renderHeader renders the login and the tab row
func (m Model) renderHeader(width int) string {
	login := m.username
	if m.page != nil {
		login = m.page.Profile.Username
	}

	brand := titleStyle.Render("ghprofile")
	if login != "" {
		brand += subtleStyle.Render(" / ") + baseStyle.Render(login)
	}
	if m.page != nil && !m.page.Live {
		brand += subtleStyle.Render("  (offline sample)")
	}
	if m.loading && m.page != nil {
		brand += "  " + m.spinner.View()
	}

	tabs := make([]string, 0, tabCount)
	for t := tabOverview; t < tabCount; t++ {
		label := t.String()
		if t == tabRepositories && m.page != nil {
			label += " " + subtleStyle.Render(fmt.Sprint(len(m.page.Repositories)))
		}
		if t == m.activeTab {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		PaddingLeft(1).
		Render(lipgloss.JoinVertical(lipgloss.Left, brand, lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)))
}

// renderBody lays out the sidebar and the active tab.
func (m Model) renderBody(width int) string {
	width = max(width-2, minCardWidth)

	var content string
	mainWidth := width - sidebarWidth - 2
	stacked := width < stackBelowWidth
	if stacked {
		mainWidth = width
	}
	// A graph wider than the content column moves under the sidebar.
	graphBelow := m.activeTab == tabOverview && !stacked && mainWidth < m.graph.MinWidth()

	if m.activeTab == tabOverview {
		content = m.renderOverview(mainWidth, !graphBelow)
	} else {
		content = renderEmptyTab(m.activeTab, mainWidth)
	}

	sidebar := m.renderSidebar(min(sidebarWidth, width))
	var body string
	if stacked {
		body = lipgloss.JoinVertical(lipgloss.Left, sidebar, "", content)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(sidebarWidth).MarginRight(2).Render(sidebar),
			content)
	}
	if graphBelow {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", m.graph.Render(width))
	}
	return lipgloss.NewStyle().PaddingLeft(1).Render(body)
}

// renderSidebar renders the profile card
func (m Model) renderSidebar(width int) string {
	p := m.page.Profile
	wrap := lipgloss.NewStyle().Width(width)

	lines := []string{m.avatar, ""}
	lines = append(lines, titleStyle.Render(p.Name), labelStyle.Render(p.Username), "")

	if p.Bio.Title != "" {
		lines = append(lines, wrap.Render(baseStyle.Render(p.Bio.Title)))
	}
	if p.Bio.Description != "" {
		lines = append(lines, wrap.Render(labelStyle.Render(p.Bio.Description)))
	}
	if len(p.Bio.Skills) > 0 {
		lines = append(lines, "", wrap.Render(accentStyle.UnsetBold().Render(strings.Join(p.Bio.Skills, " · "))))
	}

	lines = append(lines, "",
		baseStyle.Render(fmt.Sprint(p.Stats.Followers))+labelStyle.Render(" followers · ")+
			baseStyle.Render(fmt.Sprint(p.Stats.Following))+labelStyle.Render(" following"))

	repoStats := profile.RepoStatsOf(m.page.Repositories)
	lines = append(lines,
		labelStyle.Render("★ ")+baseStyle.Render(formatCount(repoStats.TotalStars))+labelStyle.Render(" stars · ⑂ ")+
			baseStyle.Render(formatCount(repoStats.TotalForks))+labelStyle.Render(" forks"))
	if len(repoStats.Languages) > 0 {
		lines = append(lines, wrap.Render(labelStyle.Render(strings.Join(repoStats.Languages, ", "))))
	}

	details := []struct{ icon, value string }{
		{"⌂", p.Bio.Company},
		{"⚲", p.Bio.Location},
		{"✉", p.Bio.Email},
		{"⛓", p.Bio.Website},
		{"𝕏", p.Bio.Twitter},
		{"in", p.Bio.LinkedIn},
	}
	var detailLines []string
	for _, d := range details {
		if d.value != "" {
			detailLines = append(detailLines, wrap.Render(labelStyle.Render(d.icon+" ")+baseStyle.Render(d.value)))
		}
	}
	if len(detailLines) > 0 {
		lines = append(lines, "")
		lines = append(lines, detailLines...)
	}

	if len(p.Achievements) > 0 {
		lines = append(lines, "", titleStyle.Render("Achievements"))
		for _, a := range p.Achievements {
			lines = append(lines, wrap.Render(accentStyle.Render("★ "+a.Name)+" "+labelStyle.Render(a.Description)))
		}
	}

	if len(p.Organizations) > 0 {
		lines = append(lines, "", titleStyle.Render("Organizations"))
		var orgs []string
		for _, o := range p.Organizations {
			orgs = append(orgs, linkStyle.Render("@"+o.Login))
		}
		lines = append(lines, wrap.Render(strings.Join(orgs, " ")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderOverview renders the overview tab, leaving out the graph when the
// body draws it.
func (m Model) renderOverview(width int, withGraph bool) string {
	sections := []string{m.renderPopularRepos(width)}
	if withGraph {
		sections = append(sections, m.graph.Render(width))
	}
	sections = append(sections,
		m.renderActivityOverview(width),
		m.renderTimeline(width),
	)
	return strings.Join(sections, "\n\n")
}

// renderPopularRepos lays the repository cards out two per row.
func (m Model) renderPopularRepos(width int) string {
	title := titleStyle.Render("Popular repositories")
	if len(m.page.Repositories) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, labelStyle.Render("No repositories"))
	}

	columns := 2
	cardWidth := (width - 1) / 2
	if cardWidth < minCardWidth {
		columns, cardWidth = 1, width
	}

	var rows []string
	for i := 0; i < len(m.page.Repositories); i += columns {
		var cards []string
		for j := i; j < i+columns && j < len(m.page.Repositories); j++ {
			cards = append(cards, renderRepoCard(m.page.Repositories[j], cardWidth))
			if j < i+columns-1 {
				cards = append(cards, " ")
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, append([]string{title}, rows...)...)
}

// renderRepoCard renders one repository card at an outer width.
func renderRepoCard(r profile.Repository, width int) string {
	inner := max(width-4, 1) // border and padding

	name := linkStyle.Bold(true).Render(r.Name)
	badge := labelStyle.Render("[" + r.Visibility + "]")
	lines := []string{name + " " + badge}

	if r.ForkedFrom != nil {
		lines = append(lines, subtleStyle.Render(fmt.Sprintf("Forked from %s/%s", r.ForkedFrom.Owner, r.ForkedFrom.Repo)))
	}
	lines = append(lines, labelStyle.Width(inner).Render(r.Description))

	meta := fg(r.Language.Color).Render("●") + " " + labelStyle.Render(r.Language.Name)
	if r.Stars > 0 {
		meta += labelStyle.Render(fmt.Sprintf("  ★ %s", formatCount(r.Stars)))
	}
	if r.Forks > 0 {
		meta += labelStyle.Render(fmt.Sprintf("  ⑂ %s", formatCount(r.Forks)))
	}
	lines = append(lines, meta)

	return cardStyle.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderActivityOverview renders contributed repositories, organizations and
// the per-kind split.
func (m Model) renderActivityOverview(width int) string {
	ov := m.page.Overview
	lines := []string{titleStyle.Render("Activity overview")}

	if len(ov.Organizations) > 0 {
		var orgs []string
		for _, o := range ov.Organizations {
			orgs = append(orgs, linkStyle.Render("@"+o.Login))
		}
		lines = append(lines, strings.Join(orgs, "  "))
	}

	if len(ov.ContributedRepositories) > 0 {
		shown := ov.ContributedRepositories
		if len(shown) > maxContributed {
			shown = shown[:maxContributed]
		}
		names := make([]string, 0, len(shown))
		for _, r := range shown {
			names = append(names, linkStyle.Render(r.Name))
		}
		text := labelStyle.Render("Contributed to ") + strings.Join(names, labelStyle.Render(", "))
		if more := ov.TotalRepositories - len(shown); more > 0 {
			text += labelStyle.Render(fmt.Sprintf(" and %d other %s", more, pluralWord(more, "repository", "repositories")))
		}
		lines = append(lines, lipgloss.NewStyle().Width(width).Render(text))
	}

	lines = append(lines, "")
	kinds := []struct {
		label string
		kind  profile.ActivityKind
	}{
		{"Commits", profile.KindCommit},
		{"Pull requests", profile.KindPullRequest},
		{"Issues", profile.KindIssue},
		{"Code review", profile.KindReview},
	}
	barWidth := max(min(width-24, 40), 5)
	for _, k := range kinds {
		pct := ov.CodeReview.Percent(k.kind)
		label := labelStyle.Render(fmt.Sprintf("%-14s %3d%% ", k.label, pct))
		bar := ""
		if pct > 0 {
			bar = barStyle(float64(pct)/100, barWidth, CurrentTheme.LevelColor(4)).Render("")
		}
		lines = append(lines, label+bar)
	}

	if ov.PeakHour != "" {
		lines = append(lines, "", labelStyle.Render("Most active ")+accentStyle.Render(ov.PeakHour))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderTimeline renders the monthly activity timeline. The selected entry is
// marked, and expanded entries list their repositories.
func (m Model) renderTimeline(width int) string {
	lines := []string{titleStyle.Render("Contribution activity")}
	if len(m.page.Activities) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, labelStyle.Render("No recent activity"))...)
	}

	month := ""
	for i, a := range m.page.Activities {
		if a.Month != month {
			month = a.Month
			rule := strings.Repeat("─", max(width-len(month)-1, 0))
			lines = append(lines, "", baseStyle.Bold(true).Render(month)+" "+subtleStyle.Render(rule))
		}

		marker := "  "
		summary := baseStyle.Render(a.Summary())
		if i == m.selected {
			marker = selectedStyle.Render("▸ ")
			summary = selectedStyle.Render(a.Summary())
		}
		fold := subtleStyle.Render(" [+]")
		if m.expanded[a.ID] {
			fold = subtleStyle.Render(" [-]")
		}
		lines = append(lines, marker+labelStyle.Render(kindIcon(a.Kind)+" ")+summary+fold)

		if m.expanded[a.ID] {
			lines = append(lines, renderActivityRepos(a, width)...)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderActivityRepos lists an expanded entry's repositories with a bar
// proportional to their share of the entry.
func renderActivityRepos(a profile.Activity, width int) []string {
	nameWidth := 0
	for _, r := range a.Repositories {
		nameWidth = max(nameWidth, lipgloss.Width(r.Name))
	}
	nameWidth = min(nameWidth, max(width-timelineBarWidth-16, 10))

	lines := make([]string, 0, len(a.Repositories))
	for _, r := range a.Repositories {
		name := linkStyle.Width(nameWidth).MaxWidth(nameWidth).Render(r.Name)
		share := 0.0
		if a.Count > 0 {
			share = float64(r.Count) / float64(a.Count)
		}
		bar := barStyle(share, timelineBarWidth, CurrentTheme.LevelColor(3)).Render("")
		lines = append(lines, "      "+name+"  "+bar+" "+labelStyle.Render(fmt.Sprint(r.Count)))
	}
	return lines
}

func kindIcon(k profile.ActivityKind) string {
	switch k {
	case profile.KindCommit:
		return "◉"
	case profile.KindPullRequest:
		return "⇄"
	case profile.KindIssue:
		return "◎"
	case profile.KindReview:
		return "✓"
	default:
		return "•"
	}
}

func pluralWord(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// renderEmptyTab is shown for tabs without content.
func renderEmptyTab(t tab, width int) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("No content available"),
		"",
		labelStyle.Render(fmt.Sprintf("The %s tab has nothing to show yet.", t)),
	)
	return cardStyle.
		Width(max(width-2, 1)).
		Align(lipgloss.Center).
		Padding(2, 1).
		Render(content)
}

// renderStatusBar renders the bottom status bar with keybindings
func (m Model) renderStatusBar(width int) string {
	help := m.help.ShortHelpView(m.keys.ShortHelp())
	theme := labelStyle.Render("theme: " + currentThemeName)
	gap := max(width-lipgloss.Width(help)-lipgloss.Width(theme)-2, 1)

	return statusBarStyle.
		Width(width).
		Render(" " + help + strings.Repeat(" ", gap) + theme)
}

// renderStatic renders the whole page once, for non-interactive output.
func (m Model) renderStatic(width int) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(width),
		m.renderBody(width),
	)
}
