// Package llama implements Llama Adventure, a side-scrolling platformer in
// which the player spells a level's phrase by collecting floating letters and
// bumping mystery boxes, then reaches the finish flag.
//
// All geometry is in world units: the visible playfield is 800x400 with the
// origin at the top-left corner and y growing downwards.
package llama

import "github.com/vovakirdan/llama-arcade/internal/core"

// World geometry.
const (
	ViewportWidth = 800.0
	GameHeight    = 400.0
	GroundY       = GameHeight - 40

	LetterSize = 20.0
	BoxSize    = 30.0

	// The flag is a thin marker; the player reaches it when overlapping its
	// width while no more than FlagReach above its base.
	FlagWidth = 20.0
	FlagReach = 100.0
)

// Particle lifetimes in ticks.
const (
	sparkleLife   = 30
	sparkleCount  = 10
	sparkleSpread = 10.0
	revealLife    = 60
	revealRise    = -2.0
)

// flowerColors are the decorative flower tints.
var flowerColors = []core.Color{
	core.ColorPink,
	core.ColorGold,
	core.ColorBrightCyan,
	core.ColorBrightMagenta,
}

// Flower is a decoration drawn on a platform's top edge.
type Flower struct {
	Offset float64 // distance from the platform's left edge
	Color  core.Color
}

// Platform is a static solid rectangle.
type Platform struct {
	core.Box
	Flowers []Flower
}

// Letter is a floating collectible for one phrase character.
type Letter struct {
	core.Box
	Char        rune
	TargetIndex int // index into the phrase, spaces included
	Collected   bool
}

// MysteryBox is a solid block that reveals its character when bumped from below.
// Once revealed it is neither solid nor collectible.
type MysteryBox struct {
	core.Box
	Char        rune
	TargetIndex int
	Active      bool
}

// Particle is a short-lived visual effect with no gameplay meaning.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   int // remaining ticks
	Color  core.Color
	Text   string // drawn instead of a dot when set
}

// Flag marks the end of the level. Y is the flag base.
type Flag struct {
	X, Y float64
}
