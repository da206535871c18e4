package leaderboard

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

const (
	basePoints  = 10000
	timePenalty = 100 // points lost per second
)

// Level is a ranked level and its point multiplier.
type Level struct {
	Name       string  `yaml:"name"`
	Multiplier float64 `yaml:"multiplier"`
}

// UnmarshalYAML accepts either a bare name, which scores at 1.0, or a
// mapping with name and multiplier.
func (l *Level) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		l.Name, l.Multiplier = node.Value, 1.0
		return nil
	}
	type plain Level
	var p plain
	if err := node.Decode(&p); err != nil {
		return fmt.Errorf("level: %w", err)
	}
	if p.Multiplier == 0 {
		p.Multiplier = 1.0
	}
	*l = Level(p)
	return nil
}

// DefaultLevels are the event levels, in menu order.
var DefaultLevels = []Level{
	{Name: "CRAFTER STATION", Multiplier: 1.0},
	{Name: "IA PLAYGROUNDS", Multiplier: 1.2},
	{Name: "START HACK PERU", Multiplier: 1.3},
	{Name: "YAVENDIO!", Multiplier: 1.1},
	{Name: "INSPIRA TECH", Multiplier: 1.4},
	{Name: "HACKEANDO PRODUCTOS", Multiplier: 1.5},
}

// LevelNames returns the names of levels in order.
func LevelNames(levels []Level) []string {
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = l.Name
	}
	return names
}

// FindLevel looks name up in levels.
func FindLevel(levels []Level, name string) (Level, bool) {
	for _, l := range levels {
		if l.Name == name {
			return l, true
		}
	}
	return Level{}, false
}

// Points scores a winning run: 10000 minus 100 per second, floored at zero,
// times multiplier.
func Points(completionTime, multiplier float64) int {
	base := math.Max(0, basePoints-completionTime*timePenalty)
	return int(math.Floor(base * multiplier))
}
