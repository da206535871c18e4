package llama

import (
	"math/rand"

	"github.com/vovakirdan/llama-arcade/internal/config"
	"github.com/vovakirdan/llama-arcade/internal/core"
)

// NoticeKind identifies a presentation-only event.
type NoticeKind int

const (
	NoticeSlotFilled NoticeKind = iota // a phrase slot was filled; Index is the phrase index
	NoticeDamage                       // the player lost a life
)

// Notice is a hint for renderers. It never affects gameplay.
type Notice struct {
	Kind  NoticeKind
	Index int
}

// Outcome is everything one world tick produced.
type Outcome struct {
	BoxesTriggered   []int // indexes into World.Boxes
	LettersCollected []int // indexes into World.Letters
	LifeLost         bool
	Finished         bool
	Notices          []Notice
}

// World owns all mutable state of one level attempt.
type World struct {
	Phrase     []rune
	Platforms  []Platform
	Letters    []Letter
	Boxes      []MysteryBox
	Flag       Flag
	WorldWidth float64

	Player    *Player
	Particles []Particle
	CameraX   float64

	collected map[int]bool
	required  int
	rng       *rand.Rand
	gameplay  config.LlamaGameplay
}

// NewWorld takes ownership of a generated level and places the player at spawn.
// rng drives particle effects only.
func NewWorld(lvl Level, cfg config.LlamaConfig, rng *rand.Rand) *World {
	w := &World{
		Phrase:     lvl.Phrase,
		Platforms:  lvl.Platforms,
		Letters:    lvl.Letters,
		Boxes:      lvl.Boxes,
		Flag:       lvl.Flag,
		WorldWidth: lvl.WorldWidth,
		Player:     NewPlayer(cfg.Physics, cfg.Player, lvl.WorldWidth),
		collected:  make(map[int]bool),
		required:   RequiredLetters(lvl.Phrase),
		rng:        rng,
		gameplay:   cfg.Gameplay,
	}
	w.updateCamera()
	return w
}

// Step runs one tick: player physics, box triggers, the finish check,
// camera follow, letter pickup and particle decay, in that order.
func (w *World) Step(c Controls) Outcome {
	var out Outcome

	m := w.Player.Update(c, w.Platforms, w.Boxes, w.Flag)
	for _, i := range m.BoxHits {
		if w.TriggerBox(i) {
			out.BoxesTriggered = append(out.BoxesTriggered, i)
			out.Notices = append(out.Notices, Notice{Kind: NoticeSlotFilled, Index: w.Boxes[i].TargetIndex})
		}
	}
	out.LifeLost = m.FellOut
	if m.FellOut {
		out.Notices = append(out.Notices, Notice{Kind: NoticeDamage})
	}
	out.Finished = m.AtFlag && w.Complete()

	w.updateCamera()

	for i := range w.Letters {
		if w.Letters[i].Collected || !w.Player.Overlaps(w.Letters[i].Box) {
			continue
		}
		if w.CollectLetter(i) {
			out.LettersCollected = append(out.LettersCollected, i)
			out.Notices = append(out.Notices, Notice{Kind: NoticeSlotFilled, Index: w.Letters[i].TargetIndex})
		}
	}

	w.updateParticles()
	return out
}

// TriggerBox reveals box i. It reports false if the box was already revealed.
func (w *World) TriggerBox(i int) bool {
	if i < 0 || i >= len(w.Boxes) || !w.Boxes[i].Active {
		return false
	}
	b := &w.Boxes[i]
	b.Active = false
	w.collected[b.TargetIndex] = true
	w.Particles = append(w.Particles, Particle{
		X:     b.X + 5,
		Y:     b.Y - 20,
		VY:    revealRise,
		Life:  revealLife,
		Color: core.ColorGold,
		Text:  string(b.Char),
	})
	return true
}

// CollectLetter picks up letter i. It reports false if it was already collected.
func (w *World) CollectLetter(i int) bool {
	if i < 0 || i >= len(w.Letters) || w.Letters[i].Collected {
		return false
	}
	l := &w.Letters[i]
	l.Collected = true
	w.collected[l.TargetIndex] = true
	for n := 0; n < sparkleCount; n++ {
		w.Particles = append(w.Particles, Particle{
			X:     l.X,
			Y:     l.Y,
			VX:    (w.rng.Float64() - 0.5) * sparkleSpread,
			VY:    (w.rng.Float64() - 0.5) * sparkleSpread,
			Life:  sparkleLife,
			Color: core.ColorGold,
		})
	}
	return true
}

// CollectAll marks every collectible as gathered without particle effects.
func (w *World) CollectAll() {
	for i := range w.Letters {
		w.Letters[i].Collected = true
		w.collected[w.Letters[i].TargetIndex] = true
	}
	for i := range w.Boxes {
		w.Boxes[i].Active = false
		w.collected[w.Boxes[i].TargetIndex] = true
	}
}

// PlacePlayer moves the player to (x, y) with no momentum.
func (w *World) PlacePlayer(x, y float64) {
	p := w.Player
	p.X = core.ClampF(x, 0, w.WorldWidth-p.W)
	p.Y = y
	p.VX, p.VY = 0, 0
	p.JumpHold = 0
	w.updateCamera()
}

// Respawn returns the player to the level after a fall.
func (w *World) Respawn() {
	w.Player.Respawn(w.gameplay.InvulnerableTicks)
	w.updateCamera()
}

// Complete reports whether every required character has been gathered.
func (w *World) Complete() bool {
	return len(w.collected) == w.required
}

// Required returns the number of characters needed to win.
func (w *World) Required() int {
	return w.required
}

// CollectedCount returns how many characters have been gathered.
func (w *World) CollectedCount() int {
	return len(w.collected)
}

// IsCollected reports whether the phrase character at index has been gathered.
func (w *World) IsCollected(index int) bool {
	return w.collected[index]
}

func (w *World) updateCamera() {
	w.CameraX = core.ClampF(w.Player.X-w.gameplay.CameraLead, 0, w.WorldWidth-ViewportWidth)
}

func (w *World) updateParticles() {
	alive := w.Particles[:0]
	for _, p := range w.Particles {
		p.X += p.VX
		p.Y += p.VY
		p.Life--
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	w.Particles = alive
}
