package llama

import (
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/llama-arcade/internal/config"
	"github.com/vovakirdan/llama-arcade/internal/core"
	"github.com/vovakirdan/llama-arcade/internal/leaderboard"
	"github.com/vovakirdan/llama-arcade/internal/registry"
)

// Phase is the state of the game state machine.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseWon
	PhaseLost
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "MENU"
	case PhasePlaying:
		return "PLAYING"
	case PhaseWon:
		return "WON"
	case PhaseLost:
		return "LOST"
	default:
		return "UNKNOWN"
	}
}

// Presentation timers, in ticks.
const (
	slotFlashTicks   = 30
	damageFlashTicks = 20
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

func init() {
	registry.Register("llama", func() registry.Game { return New() })
	registry.Register("llama_easy", func() registry.Game { return NewWithPreset(config.DifficultyEasy) })
	registry.Register("llama_hard", func() registry.Game { return NewWithPreset(config.DifficultyHard) })
}

// Game runs Llama Adventure: level menu, play, and the end-of-run screens.
type Game struct {
	preset  config.DifficultyPreset
	cfg     config.LlamaConfig
	runtime core.RuntimeConfig
	rng     *rand.Rand
	now     func() time.Time
	logger  *log.Logger

	phase  Phase
	phrase string
	world  *World
	lives  int
	tick   uint64

	startedAt   time.Time
	pausedAt    time.Time
	pausedTotal time.Duration
	paused      bool
	elapsed     float64 // frozen once the run ends

	menuCursor int
	debug      bool

	slotFlash   map[int]int
	damageFlash int
}

// New creates a game at normal difficulty.
func New() *Game {
	return NewWithPreset(config.DifficultyNormal)
}

// NewWithPreset creates a game with a difficulty preset applied.
func NewWithPreset(preset config.DifficultyPreset) *Game {
	return &Game{
		preset:    preset,
		cfg:       config.DefaultLlamaConfig(),
		now:       time.Now,
		logger:    log.Default(),
		slotFlash: make(map[int]int),
	}
}

// SetLogger routes the game's warnings to l.
func (g *Game) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.Default()
	}
	g.logger = l
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	switch g.preset {
	case config.DifficultyEasy:
		return "llama_easy"
	case config.DifficultyHard:
		return "llama_hard"
	default:
		return "llama"
	}
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	switch g.preset {
	case config.DifficultyEasy:
		return "Llama Adventure (Easy)"
	case config.DifficultyHard:
		return "Llama Adventure (Hard)"
	default:
		return "Llama Adventure"
	}
}

// Reset loads configuration and opens the level menu, or starts
// runtime.Level directly when it is set.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadLlama(configPath)
	if err != nil {
		g.logger.Warn("using default llama config", "error", err)
		cfg = config.DefaultLlamaConfig()
	}
	config.ApplyLlamaPreset(&cfg, g.preset)
	g.cfg = cfg

	seed := runtime.Seed
	if seed == 0 {
		seed = g.now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))

	g.tick = 0
	g.debug = false
	g.menuCursor = 0
	g.world = nil
	g.phrase = ""
	g.phase = PhaseMenu

	if runtime.Level != "" {
		g.Start(runtime.Level)
	}
}

// Start begins a fresh run of phrase with a newly generated layout.
func (g *Game) Start(phrase string) {
	g.phrase = phrase
	lvl := Generate(phrase, g.rng, g.cfg.Generator)
	g.world = NewWorld(lvl, g.cfg, g.rng)
	g.lives = g.cfg.Gameplay.Lives
	g.startedAt = g.now()
	g.pausedTotal = 0
	g.paused = false
	g.elapsed = 0
	g.slotFlash = make(map[int]int)
	g.damageFlash = 0
	g.phase = PhasePlaying
}

// Retry replays the last phrase after a finished run.
func (g *Game) Retry() {
	if g.phase != PhaseWon && g.phase != PhaseLost {
		return
	}
	g.Start(g.phrase)
}

// ReturnToMenu leaves a finished run for the level menu.
func (g *Game) ReturnToMenu() {
	if g.phase != PhaseWon && g.phase != PhaseLost {
		return
	}
	g.phase = PhaseMenu
	g.world = nil
}

// Abandon gives up the current run, which counts as a loss.
func (g *Game) Abandon() *core.Completion {
	return g.finish(false)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	var done *core.Completion

	if in.Has(core.ActionDebugToggle) {
		g.debug = !g.debug
		g.logger.Debug("debug mode", "enabled", g.debug)
	}

	switch g.phase {
	case PhaseMenu:
		g.stepMenu(in)
	case PhasePlaying:
		done = g.stepPlaying(in)
	case PhaseWon, PhaseLost:
		switch {
		case in.Has(core.ActionRestart) || in.Has(core.ActionConfirm):
			g.Retry()
		case in.Has(core.ActionBack):
			g.ReturnToMenu()
		case g.debug && in.Has(core.ActionDebugNext):
			g.startNext()
		}
	}

	g.decayFlashes()
	return core.StepResult{State: g.State(), Completion: done}
}

func (g *Game) stepMenu(in core.InputFrame) {
	levels := g.cfg.LevelNames()
	n := len(levels)
	if n == 0 {
		return
	}
	switch {
	case in.Has(core.ActionUp):
		g.menuCursor = (g.menuCursor - 1 + n) % n
	case in.Has(core.ActionDown):
		g.menuCursor = (g.menuCursor + 1) % n
	case in.Has(core.ActionConfirm):
		g.Start(levels[g.menuCursor])
	}
}

func (g *Game) stepPlaying(in core.InputFrame) *core.Completion {
	if in.Has(core.ActionPause) {
		g.togglePause()
	}
	if g.paused {
		if in.Has(core.ActionBack) {
			return g.Abandon()
		}
		return nil
	}

	if g.debug {
		switch {
		case in.Has(core.ActionDebugCollect):
			g.world.CollectAll()
		case in.Has(core.ActionDebugTeleport):
			g.world.PlacePlayer(g.world.Flag.X-50, g.world.Flag.Y-FlagReach)
		case in.Has(core.ActionDebugFinish):
			g.world.CollectAll()
			g.world.PlacePlayer(g.world.Flag.X-50, g.world.Flag.Y-50)
			return g.finish(true)
		case in.Has(core.ActionDebugNext):
			g.startNext()
			return nil
		}
	}

	out := g.world.Step(ControlsFrom(in))
	for _, n := range out.Notices {
		switch n.Kind {
		case NoticeSlotFilled:
			g.slotFlash[n.Index] = slotFlashTicks
		case NoticeDamage:
			g.damageFlash = damageFlashTicks
		}
	}

	// A fall ends the tick; the flag check used the pre-respawn position.
	if out.LifeLost {
		return g.loseLife()
	}
	if out.Finished {
		return g.finish(true)
	}
	return nil
}

func (g *Game) loseLife() *core.Completion {
	g.lives--
	if g.lives <= 0 {
		g.lives = 0
		return g.finish(false)
	}
	g.world.Respawn()
	return nil
}

// finish ends the run and builds its completion report. Signals received
// after the run has ended are ignored.
func (g *Game) finish(won bool) *core.Completion {
	if g.phase != PhasePlaying {
		return nil
	}
	now := g.now()
	if g.paused {
		g.pausedTotal += now.Sub(g.pausedAt)
		g.paused = false
	}
	if won {
		g.phase = PhaseWon
	} else {
		g.phase = PhaseLost
	}

	if g.startedAt.IsZero() {
		g.logger.Warn("run finished without a start time, not reporting", "won", won)
		return nil
	}
	g.elapsed = max(0, (now.Sub(g.startedAt) - g.pausedTotal).Seconds())

	if strings.TrimSpace(g.phrase) == "" {
		g.logger.Warn("run finished without a level phrase, not reporting", "won", won)
		return nil
	}
	return &core.Completion{Level: g.phrase, ElapsedSecs: g.elapsed, Won: won}
}

func (g *Game) togglePause() {
	now := g.now()
	if g.paused {
		g.pausedTotal += now.Sub(g.pausedAt)
		g.paused = false
		return
	}
	g.pausedAt = now
	g.paused = true
}

// startNext jumps to the level after the current phrase in the menu order.
func (g *Game) startNext() {
	levels := g.cfg.LevelNames()
	for i, l := range levels {
		if l == g.phrase && i+1 < len(levels) {
			g.menuCursor = i + 1
			g.Start(levels[i+1])
			return
		}
	}
	g.logger.Debug("no next level", "phrase", g.phrase)
}

func (g *Game) decayFlashes() {
	for i, t := range g.slotFlash {
		if t <= 1 {
			delete(g.slotFlash, i)
		} else {
			g.slotFlash[i] = t - 1
		}
	}
	if g.damageFlash > 0 {
		g.damageFlash--
	}
}

// Elapsed returns the run time in seconds, excluding pauses.
func (g *Game) Elapsed() float64 {
	switch g.phase {
	case PhaseWon, PhaseLost:
		return g.elapsed
	case PhasePlaying:
		end := g.now()
		if g.paused {
			end = g.pausedAt
		}
		return max(0, (end.Sub(g.startedAt) - g.pausedTotal).Seconds())
	default:
		return 0
	}
}

// Points returns what the run is worth: the winning score once won,
// otherwise what finishing right now would earn.
func (g *Game) Points() int {
	switch g.phase {
	case PhaseWon, PhasePlaying:
		return leaderboard.Points(g.Elapsed(), g.cfg.Multiplier(g.phrase))
	default:
		return 0
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.Points(),
		InMenu:   g.phase == PhaseMenu,
		GameOver: g.phase == PhaseWon || g.phase == PhaseLost,
		Won:      g.phase == PhaseWon,
		Paused:   g.paused,
	}
}

// Phase returns the current state machine phase.
func (g *Game) Phase() Phase { return g.phase }

// Lives returns the remaining lives.
func (g *Game) Lives() int { return g.lives }

// Phrase returns the phrase of the current or last run.
func (g *Game) Phrase() string { return g.phrase }

// Debug reports whether debug shortcuts are enabled.
func (g *Game) Debug() bool { return g.debug }

// Levels returns the level names offered by the menu.
func (g *Game) Levels() []string {
	return g.cfg.LevelNames()
}
