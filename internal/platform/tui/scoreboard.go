package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/llama-arcade/internal/leaderboard"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 100 // Minimum width to show level list sidebar
	sidebarWidth       = 24  // Width of level list sidebar
	scoresPerPage      = 10
	loadTimeout        = 2 * time.Second
	allLevelsTitle     = "All levels"
)

// ScoreSource serves leaderboard pages.
type ScoreSource interface {
	Leaderboard(ctx context.Context, q leaderboard.Query) (*leaderboard.Page, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextLevel, k.PrevLevel, k.NextPage, k.PrevPage, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLevel, k.PrevLevel},
		{k.NextPage, k.PrevPage, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev level"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("pgdown", "]"),
			key.WithHelp("]", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("pgup", "["),
			key.WithHelp("[", "prev page"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the leaderboard screen.
// Tab 0 is the global board, the others filter by level.
type ScoreboardModel struct {
	source      ScoreSource
	levels      []string
	levelCursor int
	offset      int
	page        *leaderboard.Page
	loadErr     error
	now         func() time.Time
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a new scoreboard model. source may be nil when
// no database is available.
func NewScoreboardModel(source ScoreSource, levels []string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		source:      source,
		levels:      append([]string{""}, levels...),
		now:         time.Now,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func levelTitle(level string) string {
	if level == "" {
		return allLevelsTitle
	}
	return level
}

// createTable creates a new table sized to the window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 12},
		{Title: "Level", Width: 18},
		{Title: "Time", Width: 8},
		{Title: "Points", Width: 8},
		{Title: "When", Width: 14},
	}

	tableHeight := m.height - 10
	if tableHeight < 3 {
		tableHeight = 3
	}
	if tableHeight > scoresPerPage+1 {
		tableHeight = scoresPerPage + 1
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(tableHeight),
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

// load fetches the current page for the selected level.
func (m *ScoreboardModel) load() {
	m.page, m.loadErr = nil, nil
	if m.source != nil {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		m.page, m.loadErr = m.source.Leaderboard(ctx, leaderboard.Query{
			Level:  m.levels[m.levelCursor],
			Limit:  scoresPerPage,
			Offset: m.offset,
		})
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded page.
func (m *ScoreboardModel) updateTableRows() {
	var rows []table.Row
	if m.page != nil {
		rows = make([]table.Row, len(m.page.Entries))
		for i, e := range m.page.Entries {
			points := humanize.Comma(int64(e.Points))
			if !e.Won {
				points = "-"
			}
			rows[i] = table.Row{
				fmt.Sprintf("#%d", e.Rank),
				e.DisplayName(),
				e.Level,
				fmt.Sprintf("%.2fs", e.CompletionTime),
				points,
				humanize.RelTime(e.CreatedAt, m.now(), "ago", "from now"),
			}
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) switchLevel(delta int) {
	n := len(m.levels)
	m.levelCursor = ((m.levelCursor+delta)%n + n) % n
	m.offset = 0
	m.load()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextLevel):
			m.switchLevel(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel):
			m.switchLevel(-1)
			return m, nil

		case key.Matches(msg, m.keys.NextPage):
			if m.page != nil && m.page.HasMore {
				m.offset += scoresPerPage
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevPage):
			if m.offset > 0 {
				m.offset -= scoresPerPage
				if m.offset < 0 {
					m.offset = 0
				}
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := fmt.Sprintf("LEADERBOARD - %s", levelTitle(m.levels[m.levelCursor]))
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.pageLine(), m.width))
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ScoreboardModel) pageLine() string {
	page := m.offset/scoresPerPage + 1
	more := ""
	if m.page != nil && m.page.HasMore {
		more = " ..."
	}
	return fmt.Sprintf("Page %d%s", page, more)
}

// renderWideLayout renders the scoreboard with a level list sidebar.
func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Levels\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, level := range m.levels {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.levelCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + levelTitle(level)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout shows the current level between arrows above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	tab := fmt.Sprintf("< %s >", levelTitle(m.levels[m.levelCursor]))
	b.WriteString(centerText(tab, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or an explanatory message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.source == nil:
		return emptyStyle.Render("Leaderboard unavailable.\nNo score database is open.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load scores.\n" + m.loadErr.Error())
	case m.page == nil || len(m.page.Entries) == 0:
		return emptyStyle.Render("No runs recorded yet.\nFinish a level to set a time!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
