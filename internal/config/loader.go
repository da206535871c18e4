package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/llama-arcade/internal/leaderboard"
)

const llamaFile = "llama.yaml"

// LoadLlama loads the platformer configuration.
// Search order: customPath -> ~/.llama/configs/llama.yaml -> ./configs/llama.yaml -> embedded default.
// Fields missing from a partial file keep their default values.
func LoadLlama(customPath string) (LlamaConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultLlamaConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseLlama(data)
		if err != nil {
			return DefaultLlamaConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(llamaFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseLlama(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", llamaFile)); err == nil {
		if cfg, err := parseLlama(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseLlama(defaultLlamaYAML)
	if err != nil {
		return DefaultLlamaConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseLlama decodes data over the hardcoded defaults and validates the result.
func parseLlama(data []byte) (LlamaConfig, error) {
	cfg := DefaultLlamaConfig()
	cfg.Levels = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if len(cfg.Levels) == 0 {
		cfg.Levels = slices.Clone(leaderboard.DefaultLevels)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values that would produce degenerate geometry or a stuck game.
func (c LlamaConfig) Validate() error {
	switch {
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("player size must be positive, got %vx%v", c.Player.Width, c.Player.Height)
	case c.Physics.MaxSpeed <= 0:
		return fmt.Errorf("max_speed must be positive, got %v", c.Physics.MaxSpeed)
	case c.Physics.TerminalVelocity <= 0:
		return fmt.Errorf("terminal_velocity must be positive, got %v", c.Physics.TerminalVelocity)
	case c.Generator.GapMin <= 0 || c.Generator.GapMax < c.Generator.GapMin:
		return fmt.Errorf("gap range [%v, %v) is invalid", c.Generator.GapMin, c.Generator.GapMax)
	case c.Generator.LetterChance < 0 || c.Generator.LetterChance > 1:
		return fmt.Errorf("letter_chance must be within [0, 1], got %v", c.Generator.LetterChance)
	case c.Gameplay.Lives <= 0:
		return fmt.Errorf("lives must be positive, got %d", c.Gameplay.Lives)
	}
	for _, l := range c.Levels {
		if strings.TrimSpace(l.Name) == "" {
			return fmt.Errorf("level name must not be empty")
		}
		if l.Multiplier <= 0 {
			return fmt.Errorf("level %q multiplier must be positive, got %v", l.Name, l.Multiplier)
		}
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".llama", "configs", filename)
}

// ApplyLlamaPreset adjusts the loaded config for a difficulty preset. Normal
// keeps the configured values; easy and hard are relative to them.
func ApplyLlamaPreset(cfg *LlamaConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives += 2
		cfg.Physics.CoyoteTicks += 4
	case DifficultyHard:
		cfg.Gameplay.Lives = max(1, cfg.Gameplay.Lives-1)
		cfg.Physics.CoyoteTicks /= 2
	}
}
