package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/llama-arcade/internal/core"
	"github.com/vovakirdan/llama-arcade/internal/leaderboard"
	"github.com/vovakirdan/llama-arcade/internal/registry"
)

// SessionDeps are the leaderboard services a session reports to. Any of
// them may be nil; the session then plays unranked.
type SessionDeps struct {
	Service *leaderboard.Service
	Outbox  *leaderboard.Outbox
	User    *leaderboard.User
	Logger  *log.Logger
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
	screenName
)

// SessionModel manages the full session flow: menu -> game -> menu, plus the
// leaderboard and name entry screens. It backs both local and SSH play.
type SessionModel struct {
	deps     SessionDeps
	config   core.RuntimeConfig
	screen   sessionScreen
	menu     MenuModel
	scores   ScoreboardModel
	name     NameModel
	game     *Model
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg core.RuntimeConfig, deps SessionDeps) SessionModel {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	return SessionModel{
		deps:   deps,
		config: cfg,
		menu:   NewMenuModel(deps.User, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenName:
		return m.updateName(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) showMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.game = nil
	m.menu = NewMenuModel(m.deps.User, m.config)
	return m, m.menu.Init()
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.screen = screenScores
		m.scores = NewScoreboardModel(m.scoreSource(), m.scoreLevels(), m.config.ScreenW, m.config.ScreenH)
		return m, m.scores.Init()

	case m.menu.WantsRename():
		if m.deps.Service == nil || m.deps.User == nil {
			return m.showMenu()
		}
		m.screen = screenName
		m.name = NewNameModel(m.deps.Service, *m.deps.User, m.config.ScreenW)
		return m, m.name.Init()

	case m.menu.Selected() != nil:
		game, err := registry.Create(m.menu.Selected().GameID)
		if err != nil {
			m.deps.Logger.Error("cannot create game", "error", err)
			return m.showMenu()
		}
		gm := NewModel(game, m.reporter(), m.config)
		m.game = &gm
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.showMenu()
	}

	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.showMenu()
	}

	return m, cmd
}

func (m SessionModel) updateName(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.name.Update(msg)
	if nm, ok := newModel.(NameModel); ok {
		m.name = nm
	}

	if m.name.Done() {
		if m.name.Saved() {
			u := m.name.User()
			m.deps.User = &u
		}
		return m.showMenu()
	}

	return m, cmd
}

// reporter returns the leaderboard reporter, or nil when runs cannot be ranked.
func (m SessionModel) reporter() Reporter {
	d := m.deps
	if d.Service == nil || d.Outbox == nil || d.User == nil {
		return nil
	}
	return NewLeaderboardReporter(d.Service, d.Outbox, d.User.ID, d.Logger)
}

func (m SessionModel) scoreSource() ScoreSource {
	if m.deps.Service == nil {
		return nil
	}
	return m.deps.Service
}

// scoreLevels returns the leaderboard tabs: the service's ranked levels.
func (m SessionModel) scoreLevels() []string {
	if m.deps.Service == nil {
		return nil
	}
	return m.deps.Service.Levels()
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	case screenName:
		return m.name.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the interactive menu in the local terminal.
func RunSession(cfg core.RuntimeConfig, deps SessionDeps) error {
	p := tea.NewProgram(
		NewSessionModel(cfg, deps),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
