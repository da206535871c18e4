package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/llama-arcade/internal/core"
	"github.com/vovakirdan/llama-arcade/internal/games/llama"
)

type recordingReporter struct {
	runs []core.Completion
}

func (r *recordingReporter) Report(c core.Completion) {
	r.runs = append(r.runs, c)
}

type modelDriver struct {
	t     *testing.T
	model Model
	now   time.Time
}

func newModelDriver(t *testing.T, level string, rep Reporter) (*modelDriver, *llama.Game) {
	t.Helper()
	game := llama.New()
	m := NewModel(game, rep, core.RuntimeConfig{
		ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7, Level: level,
	})
	m.Init()
	return &modelDriver{t: t, model: m, now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}, game
}

func (d *modelDriver) send(msg tea.Msg) tea.Cmd {
	d.t.Helper()
	next, cmd := d.model.Update(msg)
	m, ok := next.(Model)
	require.True(d.t, ok)
	d.model = m
	return cmd
}

func (d *modelDriver) tick(n int) {
	for range n {
		d.now = d.now.Add(20 * time.Millisecond)
		d.send(TickMsg(d.now))
	}
}

func TestModelReportsFinishedRun(t *testing.T) {
	rep := &recordingReporter{}
	d, game := newModelDriver(t, "HI", rep)

	d.tick(1)
	d.send(tea.KeyMsg{Type: tea.KeyCtrlD})
	d.tick(1)
	require.True(t, game.Debug())

	d.send(runes("f"))
	d.tick(1)

	require.Len(t, rep.runs, 1)
	assert.Equal(t, "HI", rep.runs[0].Level)
	assert.True(t, rep.runs[0].Won)
	assert.Equal(t, llama.PhaseWon, game.Phase())

	d.tick(10)
	assert.Len(t, rep.runs, 1, "a run is reported once")
}

func TestModelHoldsMovementBetweenKeyPresses(t *testing.T) {
	d, game := newModelDriver(t, "HI", nil)
	d.tick(30) // settle on the ground

	start := game.View().Player.X
	d.send(runes("d"))
	d.tick(10)

	assert.Greater(t, game.View().Player.X, start, "one press keeps running for several ticks")
}

func TestModelBackFromLevelMenu(t *testing.T) {
	d, game := newModelDriver(t, "", nil)
	d.tick(1)
	require.Equal(t, llama.PhaseMenu, game.Phase())

	d.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, d.model.BackToMenu())
	assert.False(t, d.model.IsQuitting())
}

func TestModelBackDuringPlayStaysInGame(t *testing.T) {
	d, _ := newModelDriver(t, "HI", nil)
	d.tick(1)

	d.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, d.model.BackToMenu())
}

func TestModelQuit(t *testing.T) {
	d, _ := newModelDriver(t, "HI", nil)

	cmd := d.send(runes("q"))
	assert.True(t, d.model.IsQuitting())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, d.model.View())
}

func TestModelResizeKeepsRun(t *testing.T) {
	d, game := newModelDriver(t, "HI", nil)
	d.tick(5)
	tick := game.Snapshot().Tick

	d.send(tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Equal(t, tick, game.Snapshot().Tick)
	assert.Equal(t, llama.PhasePlaying, game.Phase())
	assert.Contains(t, d.model.View(), "♥")
}
