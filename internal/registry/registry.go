// Package registry maps game mode IDs to factories.
// Modes register themselves in init() so the platform layers can list and
// create them without importing each game package directly.
package registry

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/llama-arcade/internal/core"
)

// Game is the contract between a game and the platform that runs it.
// Games hold pure logic; the platform owns input mapping, timing and output.
type Game interface {
	// ID returns the mode identifier used on the command line (e.g. "llama_hard").
	ID() string

	// Title returns a human-readable name for menus.
	Title() string

	// Reset initializes the game for a new session.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick. A run that ends on this
	// tick is reported in StepResult.Completion.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame into a cleared screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	modes     []GameInfo // registration order
)

// Register adds a mode. Panics if the ID is taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
	modes = append(modes, GameInfo{ID: id, Title: f().Title()})
}

// List returns all modes in registration order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()
	return append([]GameInfo(nil), modes...)
}

// Create instantiates the mode with the given ID.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := factories[id]
	return ok
}
