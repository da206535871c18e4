package gfx

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/llama-arcade/internal/core"
)

// Window keys report releases, so movement and jump are read as held state
// every tick and need no hold emulation.
var (
	heldKeys = map[core.Action][]ebiten.Key{
		core.ActionLeft:  {ebiten.KeyA, ebiten.KeyArrowLeft},
		core.ActionRight: {ebiten.KeyD, ebiten.KeyArrowRight},
		core.ActionJump:  {ebiten.KeyW, ebiten.KeyArrowUp, ebiten.KeySpace},
	}
	pressedKeys = map[core.Action][]ebiten.Key{
		core.ActionUp:      {ebiten.KeyW, ebiten.KeyArrowUp},
		core.ActionDown:    {ebiten.KeyS, ebiten.KeyArrowDown},
		core.ActionConfirm: {ebiten.KeyEnter},
		core.ActionBack:    {ebiten.KeyEscape, ebiten.KeyB},
		core.ActionPause:   {ebiten.KeyP},
		core.ActionRestart: {ebiten.KeyR},
	}
	debugKeys = map[core.Action]ebiten.Key{
		core.ActionDebugCollect:  ebiten.KeyC,
		core.ActionDebugTeleport: ebiten.KeyT,
		core.ActionDebugFinish:   ebiten.KeyF,
		core.ActionDebugNext:     ebiten.KeyN,
	}
)

// readInput builds this tick's input frame from the keyboard.
// quit is set for Q or Ctrl+C.
func readInput() (frame core.InputFrame, quit bool) {
	frame = core.NewInputFrame()
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || (ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC)) {
		return frame, true
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyD) {
		frame.Set(core.ActionDebugToggle)
		return frame, false
	}

	for a, keys := range heldKeys {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				frame.Set(a)
			}
		}
	}
	for a, keys := range pressedKeys {
		for _, k := range keys {
			if inpututil.IsKeyJustPressed(k) {
				frame.Set(a)
			}
		}
	}
	for a, k := range debugKeys {
		if inpututil.IsKeyJustPressed(k) {
			frame.Set(a)
		}
	}

	return frame, false
}
