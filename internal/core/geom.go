// Package core provides fundamental types and utilities shared by the game
// core and every presentation surface. It has no dependency on Bubble Tea or
// Ebiten so the simulation stays pure and testable.
package core

import "math"

// Rect is an integer axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is a world-space axis-aligned rectangle with float coordinates.
// (X, Y) is the top-left corner; W and H must be positive.
type Box struct {
	X, Y float64
	W, H float64
}

// NewBox creates a new world-space box.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Center returns the center point of the box.
func (b Box) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Overlaps reports whether two boxes share any area. Touching edges do not count.
func (b Box) Overlaps(other Box) bool {
	return b.X < other.Right() && b.Right() > other.X &&
		b.Y < other.Bottom() && b.Bottom() > other.Y
}

// Contact describes the side of the moving box that touched the static one.
type Contact int

const (
	ContactNone   Contact = iota
	ContactTop            // moving box hit the static box from below
	ContactBottom         // moving box rests on top of the static box
	ContactLeft           // moving box was pushed right
	ContactRight          // moving box was pushed left
)

// String returns a human-readable name for the contact.
func (c Contact) String() string {
	switch c {
	case ContactNone:
		return "none"
	case ContactTop:
		return "top"
	case ContactBottom:
		return "bottom"
	case ContactLeft:
		return "left"
	case ContactRight:
		return "right"
	default:
		return "unknown"
	}
}

// Resolve tests a against b and, on overlap, pushes a out of b along the axis
// of least penetration. Only a's position changes; velocities are left to the
// caller. Ties between the two axes resolve vertically.
func Resolve(a *Box, b Box) Contact {
	ax, ay := a.Center()
	bx, by := b.Center()
	vX := ax - bx
	vY := ay - by
	hW := a.W/2 + b.W/2
	hH := a.H/2 + b.H/2

	if math.Abs(vX) >= hW || math.Abs(vY) >= hH {
		return ContactNone
	}

	oX := hW - math.Abs(vX)
	oY := hH - math.Abs(vY)

	if oX >= oY {
		if vY > 0 {
			a.Y += oY
			return ContactTop
		}
		a.Y -= oY
		return ContactBottom
	}

	if vX > 0 {
		a.X += oX
		return ContactLeft
	}
	a.X -= oX
	return ContactRight
}

// ClampF restricts a float64 value to be within [min, max].
// When max < min the result is min.
func ClampF(val, min, max float64) float64 {
	if val > max {
		val = max
	}
	if val < min {
		val = min
	}
	return val
}
