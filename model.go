package main

import (
	"context"
	"image"
	"net/http"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// tab is one of the profile page tabs.
type tab int

const (
	tabOverview tab = iota
	tabRepositories
	tabProjects
	tabPackages
	tabStars
	tabCount
)

var tabNames = [tabCount]string{"Overview", "Repositories", "Projects", "Packages", "Stars"}

func (t tab) String() string { return tabNames[t] }

type keyMap struct {
	NextTab   key.Binding
	PrevTab   key.Binding
	OlderYear key.Binding
	NewerYear key.Binding
	Down      key.Binding
	Up        key.Binding
	Toggle    key.Binding
	Theme     key.Binding
	Refresh   key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		OlderYear: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "older year")),
		NewerYear: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "newer year")),
		Down:      key.NewBinding(key.WithKeys("j"), key.WithHelp("j/k", "select activity")),
		Up:        key.NewBinding(key.WithKeys("k")),
		Toggle:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "expand")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.OlderYear, k.NewerYear, k.Down, k.Toggle, k.Theme, k.Refresh, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab},
		{k.OlderYear, k.NewerYear},
		{k.Down, k.Up, k.Toggle},
		{k.Theme, k.Refresh, k.Quit},
	}
}

// Model represents the application state following Elm architecture
type Model struct {
	username     string
	loader       *pageLoader
	avatarClient *http.Client
	logger       *zap.Logger

	page      *Page
	graph     *Graph
	avatarImg image.Image
	avatar    string

	activeTab tab
	selected  int             // index into page.Activities
	expanded  map[string]bool // expanded activity IDs

	keys     keyMap
	help     help.Model
	viewport viewport.Model
	spinner  spinner.Model
	loading  bool
	ready    bool
	width    int
	height   int
}

// Messages for async loading
type pageMsg struct{ page *Page }

type avatarMsg struct {
	img image.Image
	err error
}

func newModel(username string, loader *pageLoader, avatarClient *http.Client, logger *zap.Logger) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = loadingStyle

	return Model{
		username:     username,
		loader:       loader,
		avatarClient: avatarClient,
		logger:       logger,
		expanded:     make(map[string]bool),
		keys:         defaultKeyMap(),
		help:         help.New(),
		spinner:      s,
		loading:      true,
	}
}

// Init kicks off page loading
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadPage(m.loader, m.username))
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		// Ignore all other keys while loading
		if m.loading {
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.NextTab):
			m.activeTab = (m.activeTab + 1) % tabCount
			m.viewport.GotoTop()
		case key.Matches(msg, m.keys.PrevTab):
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			m.viewport.GotoTop()
		case key.Matches(msg, m.keys.OlderYear):
			m.graph.OlderYear()
		case key.Matches(msg, m.keys.NewerYear):
			m.graph.NewerYear()
		case key.Matches(msg, m.keys.Down):
			if m.selected < len(m.page.Activities)-1 {
				m.selected++
			}
		case key.Matches(msg, m.keys.Up):
			if m.selected > 0 {
				m.selected--
			}
		case key.Matches(msg, m.keys.Toggle):
			m.toggleSelected()
		case key.Matches(msg, m.keys.Theme):
			name := NextTheme()
			m.spinner.Style = loadingStyle
			m.renderAvatar()
			m.logger.Debug("Theme changed", zap.String("theme", name))
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, loadPage(m.loader, m.username))
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		m.refreshContent()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if !m.ready {
			m.viewport = viewport.New(m.width, m.bodyHeight())
			m.viewport.KeyMap.Up = key.NewBinding(key.WithKeys("up"))
			m.viewport.KeyMap.Down = key.NewBinding(key.WithKeys("down"))
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = m.bodyHeight()
		}
		m.refreshContent()

	case pageMsg:
		m.applyPage(msg.page)
		m.refreshContent()
		cmds = append(cmds, fetchAvatarCmd(m.avatarClient, msg.page.Profile.Avatar))

	case avatarMsg:
		if msg.err != nil {
			m.logger.Warn("Avatar unavailable", zap.Error(msg.err))
			return m, nil
		}
		m.avatarImg = msg.img
		m.renderAvatar()
		m.refreshContent()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// applyPage installs a freshly loaded page. The year selection resets, and
// expanded entries that still exist stay expanded.
func (m *Model) applyPage(p *Page) {
	m.page = p
	m.graph = NewGraph(p.Contributions, p.Today)
	m.loading = false

	ids := make(map[string]bool, len(p.Activities))
	for _, a := range p.Activities {
		ids[a.ID] = true
	}
	for id := range m.expanded {
		if !ids[id] {
			delete(m.expanded, id)
		}
	}
	if m.selected >= len(p.Activities) {
		m.selected = max(len(p.Activities)-1, 0)
	}
	if m.avatar == "" {
		m.avatar = avatarPlaceholder(p.Profile.Username)
	}
}

// toggleSelected expands or collapses the selected timeline entry.
func (m *Model) toggleSelected() {
	if m.page == nil || m.selected >= len(m.page.Activities) {
		return
	}
	id := m.page.Activities[m.selected].ID
	if m.expanded[id] {
		delete(m.expanded, id)
	} else {
		m.expanded[id] = true
	}
}

// renderAvatar redraws the avatar in the current theme.
func (m *Model) renderAvatar() {
	if m.avatarImg == nil {
		return
	}
	art, err := newAvatarRenderer(CurrentTheme).Render(m.avatarImg)
	if err != nil {
		m.logger.Warn("Avatar render failed", zap.Error(err))
		return
	}
	m.avatar = art
}

func (m *Model) refreshContent() {
	if !m.ready || m.page == nil {
		return
	}
	m.viewport.Height = m.bodyHeight()
	m.viewport.SetContent(m.renderBody(m.width))
}

// Async commands

func loadPage(loader *pageLoader, username string) tea.Cmd {
	return func() tea.Msg {
		return pageMsg{page: loader.Load(context.Background(), username)}
	}
}

func fetchAvatarCmd(client *http.Client, avatarURL string) tea.Cmd {
	if client == nil || avatarURL == "" {
		return nil
	}
	return func() tea.Msg {
		img, err := fetchAvatar(context.Background(), client, avatarURL, avatarPixels)
		return avatarMsg{img: img, err: err}
	}
}
