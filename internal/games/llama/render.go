package llama

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/llama-arcade/internal/core"
)

// Visual characters for rendering
const (
	GrassChar    = '▀'
	DirtChar     = '█'
	FlowerChar   = '*'
	BoxChar      = '▣'
	SparkChar    = '·'
	PoleChar     = '│'
	PennantChar  = '▶'
	HeartFull    = '♥'
	HeartEmpty   = '♡'
	LlamaBody    = '█'
	LlamaHeadR   = '▜'
	LlamaHeadL   = '▛'
	SlotEmpty    = '_'
	minScreenW   = 40
	minScreenH   = 12
	hudRows      = 1
	blinkPeriod  = 4
	cursorMarker = "> "
)

// Render draws the current frame into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	RenderView(dst, g.View())
}

// RenderView draws v into a terminal screen. The 800x400 viewport is scaled
// to fit below a one-row HUD.
func RenderView(dst *core.Screen, v View) {
	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	if v.Phase == PhaseMenu {
		renderMenu(dst, v)
		return
	}

	c := newCamera(dst, v.CameraX)
	renderPlatforms(dst, c, v.Platforms)
	renderFlag(dst, c, v.Flag)
	renderBoxes(dst, c, v.Boxes)
	renderLetters(dst, c, v.Letters)
	renderPlayer(dst, c, v)
	renderParticles(dst, c, v.Particles)
	renderHUD(dst, v)
	renderOverlay(dst, v)
}

// camera maps world coordinates to screen cells.
type camera struct {
	x      float64
	sx, sy float64
	top    int
}

func newCamera(dst *core.Screen, x float64) camera {
	rows := dst.Height() - hudRows
	return camera{
		x:   x,
		sx:  ViewportWidth / float64(dst.Width()),
		sy:  GameHeight / float64(rows),
		top: hudRows,
	}
}

func (c camera) cell(x, y float64) (int, int) {
	return int(math.Floor((x - c.x) / c.sx)), c.top + int(math.Floor(y/c.sy))
}

// rect converts a box to cells, never smaller than one cell.
func (c camera) rect(b core.Box) core.Rect {
	x0, y0 := c.cell(b.X, b.Y)
	x1, y1 := c.cell(b.Right(), b.Bottom())
	return core.NewRect(x0, y0, max(1, x1-x0), max(1, y1-y0))
}

func renderPlatforms(dst *core.Screen, c camera, platforms []Platform) {
	for _, p := range platforms {
		r := c.rect(p.Box)
		if r.Right() < 0 || r.X >= dst.Width() {
			continue
		}
		dst.DrawRectColor(r, DirtChar, core.ColorBrown)
		dst.DrawHLine(r.X, r.Y, r.W, GrassChar, core.ColorGreen)
		for _, f := range p.Flowers {
			fx, _ := c.cell(p.X+f.Offset, p.Y)
			dst.SetColor(fx, r.Y, FlowerChar, f.Color)
		}
	}
}

func renderFlag(dst *core.Screen, c camera, f Flag) {
	x, base := c.cell(f.X, f.Y)
	_, top := c.cell(f.X, f.Y-FlagReach)
	for y := top; y < base; y++ {
		dst.SetColor(x, y, PoleChar, core.ColorWhite)
	}
	dst.SetColor(x+1, top, PennantChar, core.ColorRed)
}

func renderBoxes(dst *core.Screen, c camera, boxes []MysteryBox) {
	for _, b := range boxes {
		if !b.Active {
			continue
		}
		r := c.rect(b.Box)
		dst.DrawRectColor(r, BoxChar, core.ColorOrange)
		cx, cy := c.cell(b.Center())
		dst.SetColor(cx, cy, '?', core.ColorBrightYellow)
	}
}

func renderLetters(dst *core.Screen, c camera, letters []Letter) {
	for _, l := range letters {
		if l.Collected {
			continue
		}
		x, y := c.cell(l.Center())
		dst.SetColor(x, y, l.Char, core.ColorGold)
	}
}

func renderPlayer(dst *core.Screen, c camera, v View) {
	p := v.Player
	// Blink while invulnerable.
	if p.Invulnerable && (v.Tick/blinkPeriod)%2 == 1 {
		return
	}
	r := c.rect(p.Box)
	dst.DrawRectColor(r, LlamaBody, core.ColorBrightWhite)
	if p.FacingRight {
		dst.SetColor(r.Right()-1, r.Y, LlamaHeadR, core.ColorBrightWhite)
	} else {
		dst.SetColor(r.X, r.Y, LlamaHeadL, core.ColorBrightWhite)
	}
}

func renderParticles(dst *core.Screen, c camera, particles []Particle) {
	for _, p := range particles {
		x, y := c.cell(p.X, p.Y)
		if p.Text != "" {
			dst.DrawTextColor(x, y, p.Text, p.Color)
			continue
		}
		dst.SetColor(x, y, SparkChar, p.Color)
	}
}

// renderHUD draws lives, the phrase slots and the timer on the top row.
func renderHUD(dst *core.Screen, v View) {
	heartColor := core.ColorRed
	if v.DamageFlash > 0 && (v.DamageFlash/blinkPeriod)%2 == 0 {
		heartColor = core.ColorBrightWhite
	}
	for i := 0; i < v.MaxLives; i++ {
		r := HeartEmpty
		if i < v.Lives {
			r = HeartFull
		}
		dst.SetColor(1+i, 0, r, heartColor)
	}

	x := v.MaxLives + 3
	for _, s := range v.Slots {
		switch {
		case s.Space:
			dst.Set(x, 0, ' ')
		case s.Collected && s.Flash > 0:
			dst.SetColor(x, 0, s.Char, core.ColorBrightYellow)
		case s.Collected:
			dst.SetColor(x, 0, s.Char, core.ColorGold)
		default:
			dst.SetColor(x, 0, SlotEmpty, core.ColorGray)
		}
		x++
	}

	timer := fmt.Sprintf("%.2fs", v.Elapsed)
	if v.Debug {
		timer = "DEBUG " + timer
	}
	dst.DrawText(dst.Width()-len(timer)-1, 0, timer)
}

func renderOverlay(dst *core.Screen, v View) {
	mid := dst.Height() / 2
	switch {
	case v.Paused:
		dst.DrawTextCentered(mid-1, "PAUSED")
		dst.DrawTextCentered(mid+1, "P: resume  B: give up")
	case v.Phase == PhaseWon:
		dst.DrawTextCenteredColor(mid-2, "LEVEL COMPLETE!", core.ColorBrightGreen)
		dst.DrawTextCentered(mid, fmt.Sprintf("%s in %.2fs", v.Phrase, v.Elapsed))
		dst.DrawTextCenteredColor(mid+1, fmt.Sprintf("%d points", v.Points), core.ColorGold)
		dst.DrawTextCentered(mid+3, "R: play again  B: levels")
	case v.Phase == PhaseLost:
		dst.DrawTextCenteredColor(mid-2, "GAME OVER", core.ColorBrightRed)
		dst.DrawTextCentered(mid, fmt.Sprintf("%s after %.2fs", v.Phrase, v.Elapsed))
		dst.DrawTextCentered(mid+2, "R: try again  B: levels")
	}
}

func renderMenu(dst *core.Screen, v View) {
	top := max(1, dst.Height()/2-len(v.Menu)/2-3)
	dst.DrawTextCenteredColor(top, strings.ToUpper(v.Title), core.ColorBrightYellow)
	dst.DrawTextCentered(top+1, "Spell the phrase, reach the flag")

	width := 0
	for _, l := range v.Menu {
		width = max(width, len([]rune(l)))
	}
	x := (dst.Width() - width - len(cursorMarker)) / 2
	for i, l := range v.Menu {
		y := top + 3 + i
		if i == v.MenuCursor {
			dst.DrawTextColor(x, y, cursorMarker+l, core.ColorBrightCyan)
			continue
		}
		dst.DrawText(x+len(cursorMarker), y, l)
	}

	dst.DrawTextCenteredColor(top+4+len(v.Menu), "↑/↓ choose  Enter play  Q quit", core.ColorGray)
}
