package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Simulation ticks per second (60, or 30 in low-power mode)
	Seed     int64  // RNG seed for level layout; 0 means use current time in platform layer
	Level    string // Level to start immediately; empty opens the level menu
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: DefaultTickRate,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Points the run is worth right now
	InMenu   bool // Level menu is showing
	GameOver bool // Run has ended, won or lost
	Won      bool // Run ended at the flag
	Paused   bool // Whether the game is paused
}

// Completion is emitted once when a run ends.
type Completion struct {
	Level       string  // Phrase of the finished level
	ElapsedSecs float64 // Wall-clock duration of the run, never negative
	Won         bool
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State      GameState
	Completion *Completion // Set only on the tick a run ends
}
