package llama

import "math"

// Snapshot contains the gameplay-relevant state for determinism checks.
// Positions are stored in hundredths of a world unit.
type Snapshot struct {
	Tick      uint64
	Phase     Phase
	Lives     int
	Collected int
	Required  int

	PlayerX, PlayerY   int
	PlayerVX, PlayerVY int
	Coyote, JumpHold   int
	Invulnerable       int
	Grounded           bool

	LetterBits []bool // collected flag per letter
	BoxBits    []bool // active flag per box
	Particles  int
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:  g.tick,
		Phase: g.phase,
		Lives: g.lives,
	}
	w := g.world
	if w == nil {
		return snap
	}

	p := w.Player
	snap.Collected = w.CollectedCount()
	snap.Required = w.Required()
	snap.PlayerX = centi(p.X)
	snap.PlayerY = centi(p.Y)
	snap.PlayerVX = centi(p.VX)
	snap.PlayerVY = centi(p.VY)
	snap.Coyote = p.Coyote
	snap.JumpHold = p.JumpHold
	snap.Invulnerable = p.Invulnerable
	snap.Grounded = p.Grounded
	snap.Particles = len(w.Particles)

	snap.LetterBits = make([]bool, len(w.Letters))
	for i, l := range w.Letters {
		snap.LetterBits[i] = l.Collected
	}
	snap.BoxBits = make([]bool, len(w.Boxes))
	for i, b := range w.Boxes {
		snap.BoxBits[i] = b.Active
	}
	return snap
}

func centi(v float64) int {
	return int(math.Round(v * 100))
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Phase)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Collected)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Required)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerX)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerY)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerVX)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerVY)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Coyote)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.JumpHold)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Invulnerable) //#nosec G115 -- hash computation
	h = h*31 + bit(snap.Grounded)
	h = h*31 + uint64(snap.Particles) //#nosec G115 -- hash computation

	for _, b := range snap.LetterBits {
		h = h*31 + bit(b)
	}
	for _, b := range snap.BoxBits {
		h = h*31 + bit(b)
	}
	return h
}

func bit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
