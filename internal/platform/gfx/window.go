// Package gfx runs Llama Adventure in a desktop window using Ebitengine.
// It reads the same View snapshot as the terminal renderer and draws it with
// filled rectangles at world scale.
package gfx

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/vovakirdan/llama-arcade/internal/core"
	"github.com/vovakirdan/llama-arcade/internal/games/llama"
)

// Window layout, in logical pixels.
const (
	hudHeight    = 30
	screenWidth  = llama.ViewportWidth
	screenHeight = llama.GameHeight + hudHeight
	glyphWidth   = 6 // ebitenutil debug font
	slotWidth    = 14
)

// Reporter receives runs that ended in the window.
type Reporter interface {
	Report(c core.Completion)
}

// Window implements ebiten.Game for one llama game.
type Window struct {
	game     *llama.Game
	reporter Reporter
	logger   *log.Logger
}

// NewWindow creates a window for game. reporter may be nil.
func NewWindow(game *llama.Game, reporter Reporter, logger *log.Logger) *Window {
	if logger == nil {
		logger = log.Default()
	}
	return &Window{game: game, reporter: reporter, logger: logger}
}

// Update advances the game by one tick.
func (w *Window) Update() error {
	frame, quit := readInput()
	if quit {
		return ebiten.Termination
	}
	if w.game.Phase() == llama.PhaseMenu && frame.Has(core.ActionBack) {
		return ebiten.Termination
	}

	result := w.game.Step(frame)
	if result.Completion != nil && w.reporter != nil {
		w.reporter.Report(*result.Completion)
	}
	return nil
}

// Draw renders the current view.
func (w *Window) Draw(screen *ebiten.Image) {
	v := w.game.View()
	screen.Fill(colorSky)

	if v.Phase == llama.PhaseMenu {
		drawMenu(screen, v)
		return
	}

	drawWorld(screen, v)
	drawHUD(screen, v)
	drawOverlay(screen, v)
}

// Layout fixes the logical screen to the viewport plus the HUD bar.
func (w *Window) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}

// Run opens the window and blocks until it is closed.
func Run(game *llama.Game, reporter Reporter, cfg core.RuntimeConfig, logger *log.Logger) error {
	game.Reset(cfg)

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetTPS(cfg.TickRate)

	if err := ebiten.RunGame(NewWindow(game, reporter, logger)); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("gfx: %w", err)
	}
	return nil
}

func rect(dst *ebiten.Image, b core.Box, camX float64, c color.Color) {
	ebitenutil.DrawRect(dst, b.X-camX, b.Y+hudHeight, b.W, b.H, c)
}

func printCentered(dst *ebiten.Image, text string, y int) {
	ebitenutil.DebugPrintAt(dst, text, (screenWidth-len(text)*glyphWidth)/2, y)
}

func drawMenu(dst *ebiten.Image, v llama.View) {
	dst.Fill(colorHUD)
	printCentered(dst, strings.ToUpper(v.Title), 60)
	printCentered(dst, "Choose a level", 90)
	for i, name := range v.Menu {
		line := "  " + name
		if i == v.MenuCursor {
			line = "> " + name
		}
		printCentered(dst, line, 130+i*20)
	}
	printCentered(dst, "Up/Down: Choose  Enter: Play  Esc: Quit", screenHeight-40)
}

func drawWorld(dst *ebiten.Image, v llama.View) {
	cam := v.CameraX

	for _, p := range v.Platforms {
		rect(dst, p.Box, cam, colorDirt)
		grass := p.Box
		grass.H = 6
		rect(dst, grass, cam, colorGrass)
		for _, f := range p.Flowers {
			ebitenutil.DrawRect(dst, p.X+f.Offset-cam-2, p.Y+hudHeight-6, 4, 4, rgba(f.Color))
		}
	}

	pole := core.NewBox(v.Flag.X, v.Flag.Y-llama.FlagReach, 4, llama.FlagReach)
	rect(dst, pole, cam, colorPole)
	rect(dst, core.NewBox(v.Flag.X+4, v.Flag.Y-llama.FlagReach, llama.FlagWidth, 12), cam, colorPennant)

	for _, b := range v.Boxes {
		c := colorBoxUsed
		if b.Active {
			c = colorBox
		}
		rect(dst, b.Box, cam, c)
		if b.Active {
			ebitenutil.DebugPrintAt(dst, "?", int(b.X-cam)+12, int(b.Y)+hudHeight+7)
		}
	}

	for _, l := range v.Letters {
		if l.Collected {
			continue
		}
		rect(dst, l.Box, cam, colorLetter)
		ebitenutil.DebugPrintAt(dst, string(l.Char), int(l.X-cam)+7, int(l.Y)+hudHeight+2)
	}

	drawLlama(dst, v)

	for _, p := range v.Particles {
		if p.Text != "" {
			ebitenutil.DebugPrintAt(dst, p.Text, int(p.X-cam), int(p.Y)+hudHeight)
			continue
		}
		ebitenutil.DrawRect(dst, p.X-cam-2, p.Y+hudHeight-2, 4, 4, rgba(p.Color))
	}

	if v.DamageFlash > 0 {
		ebitenutil.DrawRect(dst, 0, hudHeight, screenWidth, llama.GameHeight, colorDamage)
	}
}

func drawLlama(dst *ebiten.Image, v llama.View) {
	p := v.Player
	if p.Invulnerable && v.Tick/4%2 == 1 {
		return
	}
	cam := v.CameraX

	body := core.NewBox(p.X, p.Y+p.H/3, p.W, p.H*2/3)
	rect(dst, body, cam, colorLlama)

	neckX, eyeX := p.X+p.W-10, p.X+p.W-6
	if !p.FacingRight {
		neckX, eyeX = p.X, p.X+3
	}
	rect(dst, core.NewBox(neckX, p.Y, 10, p.H/3+1), cam, colorLlama)
	rect(dst, core.NewBox(eyeX, p.Y+4, 3, 3), cam, colorEye)

	legShift := 0.0
	if p.Running && v.Tick/6%2 == 0 {
		legShift = 3
	}
	rect(dst, core.NewBox(p.X+4+legShift, p.Bottom()-6, 4, 6), cam, colorEye)
	rect(dst, core.NewBox(p.Right()-8-legShift, p.Bottom()-6, 4, 6), cam, colorEye)
}

func drawHUD(dst *ebiten.Image, v llama.View) {
	ebitenutil.DrawRect(dst, 0, 0, screenWidth, hudHeight, colorHUD)

	for i := range v.MaxLives {
		c := colorHeartBG
		if i < v.Lives {
			c = colorHeart
		}
		ebitenutil.DrawRect(dst, float64(10+i*18), 9, 12, 12, c)
	}

	x := 20 + v.MaxLives*18
	for _, s := range v.Slots {
		if !s.Space {
			c := colorSlot
			if s.Collected {
				c = colorSlotHit
			}
			ebitenutil.DrawRect(dst, float64(x), 22, slotWidth-2, 2, c)
			if s.Collected {
				ebitenutil.DebugPrintAt(dst, string(s.Char), x+3, 6)
			}
		}
		x += slotWidth
	}

	timer := fmt.Sprintf("%.2fs", v.Elapsed)
	if v.Debug {
		timer = "DEBUG " + timer
	}
	ebitenutil.DebugPrintAt(dst, timer, screenWidth-len(timer)*glyphWidth-10, 8)
}

func drawOverlay(dst *ebiten.Image, v llama.View) {
	var lines []string
	switch {
	case v.Phase == llama.PhaseWon:
		lines = []string{
			"LEVEL COMPLETE!",
			fmt.Sprintf("%s in %.2fs - %d points", v.Phrase, v.Elapsed, v.Points),
			"R: Play again   Esc: Levels",
		}
	case v.Phase == llama.PhaseLost:
		lines = []string{"GAME OVER", "R: Try again   Esc: Levels"}
	case v.Paused:
		lines = []string{"PAUSED", "P: Resume   Esc: Give up"}
	default:
		return
	}

	ebitenutil.DrawRect(dst, 0, hudHeight, screenWidth, llama.GameHeight, colorOverlay)
	y := screenHeight/2 - len(lines)*10
	for _, line := range lines {
		printCentered(dst, line, y)
		y += 20
	}
}
