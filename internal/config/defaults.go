package config

import (
	_ "embed"
	"slices"

	"github.com/vovakirdan/llama-arcade/internal/leaderboard"
)

//go:embed defaults/llama.yaml
var defaultLlamaYAML []byte

// DefaultLlamaConfig returns the default platformer configuration.
func DefaultLlamaConfig() LlamaConfig {
	return LlamaConfig{
		Physics: LlamaPhysics{
			Gravity:          0.8,
			TerminalVelocity: 15,
			MaxSpeed:         6,
			Acceleration:     0.5,
			GroundFriction:   0.85,
			AirFriction:      0.95,
			AirControl:       0.3,
			StopThreshold:    0.1,
			JumpPower:        -14,
			JumpHoldPower:    -0.4,
			MaxJumpHoldTicks: 12,
			CoyoteTicks:      8,
		},
		Player: LlamaPlayer{
			Width:            40,
			Height:           40,
			SpawnX:           50,
			SpawnY:           250,
			RespawnBacktrack: 200,
			RespawnMinX:      50,
		},
		Generator: LlamaGenerator{
			GapMin:       150,
			GapMax:       250,
			LetterChance: 0.5,
			FlowerChance: 0.4,
		},
		Gameplay: LlamaGameplay{
			Lives:             3,
			InvulnerableTicks: 60,
			CameraLead:        200,
		},
		Levels: slices.Clone(leaderboard.DefaultLevels),
	}
}
