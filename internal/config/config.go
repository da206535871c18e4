// Package config provides YAML-based game configuration loading and
// difficulty presets for the llama platformer.
package config

import "github.com/vovakirdan/llama-arcade/internal/leaderboard"

// LlamaConfig contains all tunables of the platformer.
type LlamaConfig struct {
	Physics   LlamaPhysics        `yaml:"physics"`
	Player    LlamaPlayer         `yaml:"player"`
	Generator LlamaGenerator      `yaml:"generator"`
	Gameplay  LlamaGameplay       `yaml:"gameplay"`
	Levels    []leaderboard.Level `yaml:"levels"`
}

// LevelNames returns the menu's level phrases in order.
func (c LlamaConfig) LevelNames() []string {
	return leaderboard.LevelNames(c.Levels)
}

// Multiplier returns the point multiplier of level, 1.0 when it is not listed.
func (c LlamaConfig) Multiplier(level string) float64 {
	if l, ok := leaderboard.FindLevel(c.Levels, level); ok {
		return l.Multiplier
	}
	return 1.0
}

// LlamaPhysics defines the per-tick movement model. Units are world units
// (the playfield is 800x400) and ticks at 60 Hz.
type LlamaPhysics struct {
	Gravity          float64 `yaml:"gravity"`
	TerminalVelocity float64 `yaml:"terminal_velocity"`
	MaxSpeed         float64 `yaml:"max_speed"`
	Acceleration     float64 `yaml:"acceleration"`
	GroundFriction   float64 `yaml:"ground_friction"`
	AirFriction      float64 `yaml:"air_friction"`
	AirControl       float64 `yaml:"air_control"`
	StopThreshold    float64 `yaml:"stop_threshold"` // |vx| below this snaps to 0 on the ground
	JumpPower        float64 `yaml:"jump_power"`     // negative = up
	JumpHoldPower    float64 `yaml:"jump_hold_power"`
	MaxJumpHoldTicks int     `yaml:"max_jump_hold_ticks"`
	CoyoteTicks      int     `yaml:"coyote_ticks"`
}

// LlamaPlayer defines the player body and respawn placement.
type LlamaPlayer struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	SpawnX           float64 `yaml:"spawn_x"`
	SpawnY           float64 `yaml:"spawn_y"`
	RespawnBacktrack float64 `yaml:"respawn_backtrack"` // distance moved back after a fall
	RespawnMinX      float64 `yaml:"respawn_min_x"`
}

// LlamaGenerator defines random placement ranges of the level generator.
type LlamaGenerator struct {
	GapMin       float64 `yaml:"gap_min"`
	GapMax       float64 `yaml:"gap_max"`
	LetterChance float64 `yaml:"letter_chance"` // otherwise a mystery box
	FlowerChance float64 `yaml:"flower_chance"` // per 20 units of platform
}

// LlamaGameplay defines lives and presentation timing.
type LlamaGameplay struct {
	Lives             int     `yaml:"lives"`
	InvulnerableTicks int     `yaml:"invulnerable_ticks"`
	CameraLead        float64 `yaml:"camera_lead"` // player distance from the left viewport edge
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty maps a preset name to its value; unknown names yield "".
func ParseDifficulty(name string) DifficultyPreset {
	switch DifficultyPreset(name) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(name)
	default:
		return ""
	}
}
