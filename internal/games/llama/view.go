package llama

import "github.com/vovakirdan/llama-arcade/internal/core"

// Slot is one phrase character as shown in the HUD.
type Slot struct {
	Char      rune
	Space     bool
	Collected bool
	Flash     int // ticks left of the "just filled" highlight
}

// PlayerPose is the part of the player a renderer needs.
type PlayerPose struct {
	core.Box
	FacingRight  bool
	Grounded     bool
	Invulnerable bool
	Running      bool
}

// View is a read-only copy of everything a renderer draws for one frame.
// Mutating it has no effect on the game.
type View struct {
	Title  string
	Phase  Phase
	Phrase string
	Slots  []Slot

	Lives       int
	MaxLives    int
	Elapsed     float64
	Points      int
	Paused      bool
	Debug       bool
	DamageFlash int
	Tick        uint64

	CameraX    float64
	WorldWidth float64
	Player     PlayerPose
	Platforms  []Platform
	Letters    []Letter
	Boxes      []MysteryBox
	Particles  []Particle
	Flag       Flag

	Menu       []string
	MenuCursor int
}

// View returns a snapshot of the current frame for rendering.
func (g *Game) View() View {
	v := View{
		Title:       g.Title(),
		Phase:       g.phase,
		Phrase:      g.phrase,
		Lives:       g.lives,
		MaxLives:    g.cfg.Gameplay.Lives,
		Elapsed:     g.Elapsed(),
		Points:      g.Points(),
		Paused:      g.paused,
		Debug:       g.debug,
		DamageFlash: g.damageFlash,
		Tick:        g.tick,
		Menu:        g.Levels(),
		MenuCursor:  g.menuCursor,
	}

	w := g.world
	if w == nil {
		return v
	}

	v.Slots = make([]Slot, len(w.Phrase))
	for i, ch := range w.Phrase {
		v.Slots[i] = Slot{
			Char:      ch,
			Space:     ch == ' ',
			Collected: w.IsCollected(i),
			Flash:     g.slotFlash[i],
		}
	}

	p := w.Player
	v.CameraX = w.CameraX
	v.WorldWidth = w.WorldWidth
	v.Player = PlayerPose{
		Box:          p.Box,
		FacingRight:  p.FacingRight,
		Grounded:     p.Grounded,
		Invulnerable: p.Invulnerable > 0,
		Running:      p.VX > 0.5 || p.VX < -0.5,
	}
	v.Platforms = make([]Platform, len(w.Platforms))
	for i, pl := range w.Platforms {
		v.Platforms[i] = Platform{Box: pl.Box, Flowers: append([]Flower(nil), pl.Flowers...)}
	}
	v.Letters = append([]Letter(nil), w.Letters...)
	v.Boxes = append([]MysteryBox(nil), w.Boxes...)
	v.Particles = append([]Particle(nil), w.Particles...)
	v.Flag = w.Flag
	return v
}
