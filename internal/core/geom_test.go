package core

import (
	"math"
	"testing"
)

func TestBoxOverlaps(t *testing.T) {
	player := NewBox(100, 100, 40, 40)

	tests := []struct {
		name     string
		other    Box
		expected bool
	}{
		{"letter inside", NewBox(110, 110, 20, 20), true},
		{"touching right edge", NewBox(140, 100, 20, 20), false},
		{"touching bottom edge", NewBox(100, 140, 20, 20), false},
		{"one unit overlap", NewBox(139, 139, 20, 20), true},
		{"far away", NewBox(500, 100, 20, 20), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := player.Overlaps(tc.other); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.other.Overlaps(player); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestResolveRestingOnPlatform(t *testing.T) {
	// 40x40 player sinking 5 units into a 100x20 platform directly beneath it.
	player := NewBox(30, 65, 40, 40)
	platform := NewBox(0, 100, 100, 20)

	contact := Resolve(&player, platform)

	if contact != ContactBottom {
		t.Fatalf("Resolve() = %v, expected bottom", contact)
	}
	if math.Abs(player.Y-60) > 1e-9 {
		t.Errorf("player.Y = %f, expected 60 (pushed up by 5)", player.Y)
	}
	if player.X != 30 {
		t.Errorf("player.X = %f, horizontal position must not change", player.X)
	}
}

func TestResolveDirections(t *testing.T) {
	static := NewBox(100, 100, 40, 40)

	tests := []struct {
		name      string
		moving    Box
		expected  Contact
		expectedX float64
		expectedY float64
	}{
		{
			name:      "hit from below",
			moving:    NewBox(100, 135, 40, 40),
			expected:  ContactTop,
			expectedX: 100,
			expectedY: 140,
		},
		{
			name:      "landing on top",
			moving:    NewBox(100, 62, 40, 40),
			expected:  ContactBottom,
			expectedX: 100,
			expectedY: 60,
		},
		{
			name:      "pushed right",
			moving:    NewBox(137, 100, 40, 40),
			expected:  ContactLeft,
			expectedX: 140,
			expectedY: 100,
		},
		{
			name:      "pushed left",
			moving:    NewBox(63, 100, 40, 40),
			expected:  ContactRight,
			expectedX: 60,
			expectedY: 100,
		},
		{
			name:      "separated",
			moving:    NewBox(200, 100, 40, 40),
			expected:  ContactNone,
			expectedX: 200,
			expectedY: 100,
		},
		{
			name:      "edges touching",
			moving:    NewBox(140, 100, 40, 40),
			expected:  ContactNone,
			expectedX: 140,
			expectedY: 100,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.moving
			got := Resolve(&b, static)
			if got != tc.expected {
				t.Errorf("Resolve() = %v, expected %v", got, tc.expected)
			}
			if math.Abs(b.X-tc.expectedX) > 1e-9 || math.Abs(b.Y-tc.expectedY) > 1e-9 {
				t.Errorf("position = (%f, %f), expected (%f, %f)", b.X, b.Y, tc.expectedX, tc.expectedY)
			}
		})
	}
}

func TestResolveTieIsVertical(t *testing.T) {
	// Equal overlap on both axes resolves vertically.
	static := NewBox(0, 0, 20, 20)
	moving := NewBox(15, 15, 20, 20)

	if got := Resolve(&moving, static); got != ContactTop {
		t.Errorf("Resolve() = %v, expected top on a tie", got)
	}
	if moving.X != 15 || moving.Y != 20 {
		t.Errorf("position = (%f, %f), expected (15, 20)", moving.X, moving.Y)
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
		{3.0, 0.0, -1.0, 0.0},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}
