package llama

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/llama-arcade/internal/config"
	"github.com/vovakirdan/llama-arcade/internal/core"
)

// flatLevel is a long floor with the flag near the far end.
func flatLevel(phrase string) Level {
	return Level{
		Phrase:     []rune(phrase),
		Platforms:  []Platform{{Box: core.NewBox(0, GroundY, 2000, 40)}},
		Flag:       Flag{X: 1500, Y: GroundY},
		WorldWidth: 2000,
	}
}

func newTestWorld(lvl Level) *World {
	return NewWorld(lvl, config.DefaultLlamaConfig(), rand.New(rand.NewSource(1)))
}

// settle steps with no input until the player rests on the floor.
func settle(t *testing.T, w *World) {
	t.Helper()
	for range 60 {
		w.Step(Controls{})
	}
	require.True(t, w.Player.Grounded)
}

func TestPlayerLandsOnGround(t *testing.T) {
	w := newTestWorld(flatLevel("A"))
	settle(t, w)

	p := w.Player
	assert.InDelta(t, GroundY-p.H, p.Y, 1e-9)
	assert.Equal(t, 0.0, p.VY)
	assert.Equal(t, 8, p.Coyote)
}

func TestPlayerRunsAndStops(t *testing.T) {
	w := newTestWorld(flatLevel("A"))
	settle(t, w)

	for range 30 {
		w.Step(Controls{Right: true})
	}
	assert.InDelta(t, 6.0, w.Player.VX, 1e-9, "speed caps at max")
	assert.True(t, w.Player.FacingRight)

	for range 60 {
		w.Step(Controls{})
	}
	assert.Equal(t, 0.0, w.Player.VX, "ground friction snaps to zero")

	w.Step(Controls{Left: true, Right: true})
	assert.True(t, w.Player.FacingRight, "right wins when both are held")

	w.Step(Controls{Left: true})
	assert.False(t, w.Player.FacingRight)
}

func TestJumpHoldGoesHigher(t *testing.T) {
	peak := func(holdTicks int) float64 {
		w := newTestWorld(flatLevel("A"))
		settle(t, w)
		top := w.Player.Y
		for i := range 60 {
			w.Step(Controls{Jump: i < holdTicks})
			top = math.Min(top, w.Player.Y)
		}
		return top
	}

	tap := peak(1)
	held := peak(20)
	assert.Less(t, tap, GroundY-40, "a tap still leaves the ground")
	assert.Less(t, held, tap, "holding jump reaches higher")
}

func TestCoyoteTime(t *testing.T) {
	cfg := config.DefaultLlamaConfig()

	p := NewPlayer(cfg.Physics, cfg.Player, 2000)
	p.Coyote = 3
	p.Update(Controls{Jump: true}, nil, nil, Flag{X: 1900})
	assert.InDelta(t, -14-0.4+0.8, p.VY, 1e-9, "jump allowed just after leaving ground")
	assert.Equal(t, 0, p.Coyote)

	p = NewPlayer(cfg.Physics, cfg.Player, 2000)
	p.Coyote = 0
	p.Update(Controls{Jump: true}, nil, nil, Flag{X: 1900})
	assert.InDelta(t, 0.8, p.VY, 1e-9, "no jump once coyote time is spent")
}

func TestTerminalVelocity(t *testing.T) {
	cfg := config.DefaultLlamaConfig()
	p := NewPlayer(cfg.Physics, cfg.Player, 2000)
	p.Y = -1000
	for range 100 {
		p.Update(Controls{}, nil, nil, Flag{X: 1900})
		assert.LessOrEqual(t, p.VY, 15.0)
	}
	assert.Equal(t, 15.0, p.VY)
}

func TestPlayerStaysInsideWorld(t *testing.T) {
	cfg := config.DefaultLlamaConfig()
	rng := rand.New(rand.NewSource(5))
	lvl := Generate("IA PLAYGROUNDS", rng, cfg.Generator)
	w := NewWorld(lvl, cfg, rng)

	hold := Controls{}
	for tick := range 5000 {
		if tick%20 == 0 {
			hold = Controls{Left: rng.Intn(3) == 0, Right: rng.Intn(2) == 0, Jump: rng.Intn(2) == 0}
		}
		out := w.Step(hold)
		p := w.Player
		require.GreaterOrEqual(t, p.X, 0.0, "tick %d", tick)
		require.LessOrEqual(t, p.X, w.WorldWidth-p.W, "tick %d", tick)
		require.GreaterOrEqual(t, w.CameraX, 0.0)
		require.LessOrEqual(t, w.CameraX, w.WorldWidth-ViewportWidth)
		if out.LifeLost {
			w.Respawn()
		}
	}

	w.PlacePlayer(-500, 100)
	assert.Equal(t, 0.0, w.Player.X)
	w.PlacePlayer(1e9, 100)
	assert.Equal(t, w.WorldWidth-w.Player.W, w.Player.X)
}

func TestBoxBumpedFromBelow(t *testing.T) {
	lvl := flatLevel("AB")
	lvl.Boxes = []MysteryBox{{Box: core.NewBox(100, 250, BoxSize, BoxSize), Char: 'B', TargetIndex: 1, Active: true}}
	w := newTestWorld(lvl)
	settle(t, w)
	w.PlacePlayer(100, GroundY-40)
	settle(t, w)

	var triggered []int
	for i := range 30 {
		out := w.Step(Controls{Jump: i < 15})
		triggered = append(triggered, out.BoxesTriggered...)
	}

	assert.Equal(t, []int{0}, triggered, "box triggers exactly once")
	assert.False(t, w.Boxes[0].Active)
	assert.True(t, w.IsCollected(1))
	assert.Equal(t, 1, w.CollectedCount())
}

func TestStandOnActiveBox(t *testing.T) {
	lvl := flatLevel("A")
	lvl.Boxes = []MysteryBox{{Box: core.NewBox(100, 300, BoxSize, BoxSize), Char: 'A', Active: true}}
	w := newTestWorld(lvl)
	w.PlacePlayer(95, 250)
	for range 30 {
		w.Step(Controls{})
	}
	assert.True(t, w.Player.Grounded)
	assert.InDelta(t, 300-w.Player.H, w.Player.Y, 1e-9)
	assert.True(t, w.Boxes[0].Active, "landing on a box does not trigger it")
}

func TestCollectionIsIdempotent(t *testing.T) {
	lvl := flatLevel("AB")
	lvl.Letters = []Letter{{Box: core.NewBox(60, 260, LetterSize, LetterSize), Char: 'A', TargetIndex: 0}}
	lvl.Boxes = []MysteryBox{{Box: core.NewBox(600, 130, BoxSize, BoxSize), Char: 'B', TargetIndex: 1, Active: true}}
	w := newTestWorld(lvl)

	out := w.Step(Controls{})
	assert.Equal(t, []int{0}, out.LettersCollected)
	assert.Len(t, w.Particles, sparkleCount)
	require.Len(t, out.Notices, 1)
	assert.Equal(t, Notice{Kind: NoticeSlotFilled, Index: 0}, out.Notices[0])

	out = w.Step(Controls{})
	assert.Empty(t, out.LettersCollected)
	assert.Len(t, w.Particles, sparkleCount, "no second burst")
	assert.False(t, w.CollectLetter(0))

	assert.True(t, w.TriggerBox(0))
	assert.False(t, w.TriggerBox(0))
	assert.Len(t, w.Particles, sparkleCount+1)
	assert.Equal(t, "B", w.Particles[len(w.Particles)-1].Text)
	assert.True(t, w.IsCollected(0))
	assert.True(t, w.IsCollected(1))
	assert.Equal(t, 2, w.CollectedCount())
}

func TestParticlesExpire(t *testing.T) {
	lvl := flatLevel("A")
	lvl.Letters = []Letter{{Box: core.NewBox(60, 260, LetterSize, LetterSize), Char: 'A'}}
	w := newTestWorld(lvl)

	for range sparkleLife - 1 {
		w.Step(Controls{})
	}
	assert.Len(t, w.Particles, sparkleCount)
	w.Step(Controls{})
	assert.Empty(t, w.Particles)
}

func TestFinishRequiresEveryLetter(t *testing.T) {
	lvl := flatLevel("AB")
	lvl.Letters = []Letter{
		{Box: core.NewBox(900, 100, LetterSize, LetterSize), Char: 'A', TargetIndex: 0},
		{Box: core.NewBox(1000, 100, LetterSize, LetterSize), Char: 'B', TargetIndex: 1},
	}
	w := newTestWorld(lvl)
	w.PlacePlayer(lvl.Flag.X-10, GroundY-40)

	out := w.Step(Controls{})
	assert.False(t, out.Finished, "flag reached with letters missing")

	w.CollectLetter(0)
	out = w.Step(Controls{})
	assert.False(t, out.Finished)

	w.CollectLetter(1)
	out = w.Step(Controls{})
	assert.True(t, out.Finished)
}

func TestFallingOutLosesLife(t *testing.T) {
	w := newTestWorld(flatLevel("A"))
	w.PlacePlayer(400, 450)

	out := w.Step(Controls{})
	assert.True(t, out.LifeLost)
	assert.Contains(t, out.Notices, Notice{Kind: NoticeDamage})

	w.Respawn()
	p := w.Player
	assert.InDelta(t, 200.0, p.X, 1e-9)
	assert.Equal(t, 0.0, p.Y)
	assert.Equal(t, 0.0, p.VX)
	assert.Equal(t, 60, p.Invulnerable)

	w.PlacePlayer(120, 450)
	w.Respawn()
	assert.Equal(t, 50.0, w.Player.X, "respawn never goes left of the start")

	for range 60 {
		w.Step(Controls{})
	}
	assert.Equal(t, 0, w.Player.Invulnerable, "invulnerability counts down")
}

func TestCameraFollowsPlayer(t *testing.T) {
	w := newTestWorld(flatLevel("A"))
	w.PlacePlayer(700, GroundY-40)
	assert.Equal(t, 500.0, w.CameraX)

	w.PlacePlayer(100, GroundY-40)
	assert.Equal(t, 0.0, w.CameraX)

	w.PlacePlayer(1950, GroundY-40)
	assert.Equal(t, 1200.0, w.CameraX)
}
