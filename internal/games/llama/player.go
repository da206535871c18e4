package llama

import (
	"math"

	"github.com/vovakirdan/llama-arcade/internal/config"
	"github.com/vovakirdan/llama-arcade/internal/core"
)

// Controls are the held movement inputs for one tick.
type Controls struct {
	Left  bool
	Right bool
	Jump  bool
}

// ControlsFrom extracts the held movement inputs from a frame.
func ControlsFrom(in core.InputFrame) Controls {
	return Controls{
		Left:  in.Has(core.ActionLeft),
		Right: in.Has(core.ActionRight),
		Jump:  in.Has(core.ActionJump),
	}
}

// Motion reports what happened to the player body during one physics step.
type Motion struct {
	BoxHits []int // indexes of active boxes bumped from below
	FellOut bool  // player dropped below the playfield
	AtFlag  bool  // player is within the flag's reach
}

// Player is the controllable llama.
type Player struct {
	core.Box
	VX, VY       float64
	FacingRight  bool
	Grounded     bool
	Coyote       int // ticks left in which a jump is still allowed after leaving ground
	JumpHold     int // ticks the current jump has been held, 0 when not jumping
	Invulnerable int // ticks of post-respawn invulnerability left
	WorldWidth   float64

	phys config.LlamaPhysics
	body config.LlamaPlayer
}

// NewPlayer creates a player at the spawn point for a world of the given width.
func NewPlayer(phys config.LlamaPhysics, body config.LlamaPlayer, worldWidth float64) *Player {
	p := &Player{phys: phys, body: body}
	p.Reset(worldWidth)
	return p
}

// Reset puts the player back at the spawn point with no momentum.
func (p *Player) Reset(worldWidth float64) {
	p.Box = core.NewBox(p.body.SpawnX, p.body.SpawnY, p.body.Width, p.body.Height)
	p.VX, p.VY = 0, 0
	p.FacingRight = true
	p.Grounded = false
	p.Coyote = 0
	p.JumpHold = 0
	p.Invulnerable = 0
	p.WorldWidth = worldWidth
}

// Respawn moves the player back a stretch and drops it in from the top,
// invulnerable for the given number of ticks.
func (p *Player) Respawn(invulnerableTicks int) {
	p.X = math.Max(p.body.RespawnMinX, p.X-p.body.RespawnBacktrack)
	p.Y = 0
	p.VX, p.VY = 0, 0
	p.JumpHold = 0
	p.Coyote = 0
	p.Grounded = false
	p.Invulnerable = invulnerableTicks
}

// Update advances the player by one tick against the level geometry.
// Only active boxes are solid. Box triggers are reported, not applied.
func (p *Player) Update(c Controls, platforms []Platform, boxes []MysteryBox, flag Flag) Motion {
	var m Motion
	ph := p.phys

	if p.Invulnerable > 0 {
		p.Invulnerable--
	}

	canJump := p.Grounded || p.Coyote > 0
	if p.Grounded {
		p.Coyote = ph.CoyoteTicks
	} else if p.Coyote > 0 {
		p.Coyote--
	}

	p.steer(c)

	if c.Jump && canJump && p.JumpHold == 0 {
		p.VY = ph.JumpPower
		p.Grounded = false
		p.Coyote = 0
		p.JumpHold = 1
	}
	if c.Jump && p.JumpHold > 0 && p.JumpHold < ph.MaxJumpHoldTicks && p.VY < 0 {
		p.VY += ph.JumpHoldPower
		p.JumpHold++
	} else if !c.Jump {
		p.JumpHold = 0
	}

	p.VY = math.Min(p.VY+ph.Gravity, ph.TerminalVelocity)

	p.X += p.VX
	p.Y += p.VY
	p.X = core.ClampF(p.X, 0, p.WorldWidth-p.W)

	p.Grounded = false
	for _, plat := range platforms {
		p.collide(core.Resolve(&p.Box, plat.Box))
	}
	for i, box := range boxes {
		if !box.Active {
			continue
		}
		if p.collide(core.Resolve(&p.Box, box.Box)) == core.ContactTop {
			m.BoxHits = append(m.BoxHits, i)
		}
	}
	// A side push can move the player past the world edge.
	p.X = core.ClampF(p.X, 0, p.WorldWidth-p.W)

	m.FellOut = p.Y > GameHeight
	m.AtFlag = p.Right() > flag.X && p.X < flag.X+FlagWidth && p.Y > flag.Y-FlagReach
	return m
}

// steer applies horizontal input, friction and facing.
func (p *Player) steer(c Controls) {
	ph := p.phys
	accel := ph.Acceleration
	if !p.Grounded {
		accel *= ph.AirControl
	}

	switch {
	case c.Right:
		p.VX = math.Min(p.VX+accel, ph.MaxSpeed)
		p.FacingRight = true
	case c.Left:
		p.VX = math.Max(p.VX-accel, -ph.MaxSpeed)
		p.FacingRight = false
	case p.Grounded:
		p.VX *= ph.GroundFriction
		if math.Abs(p.VX) < ph.StopThreshold {
			p.VX = 0
		}
	}

	if !p.Grounded {
		p.VX *= ph.AirFriction
	}
}

// collide applies the velocity consequences of a resolved contact.
func (p *Player) collide(c core.Contact) core.Contact {
	switch c {
	case core.ContactBottom:
		p.Grounded = true
		p.Coyote = p.phys.CoyoteTicks
		if p.VY > 0 {
			p.VY = 0
		}
		p.JumpHold = 0
	case core.ContactTop:
		if p.VY < 0 {
			p.VY = 0
		}
	}
	return c
}
