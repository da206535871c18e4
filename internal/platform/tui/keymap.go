package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/llama-arcade/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// A key may stand for several actions: up is both "jump" in play and
// "cursor up" in the level menu.
type KeyMapper struct {
	bindings map[string][]core.Action
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		bindings: map[string][]core.Action{
			"left":   {core.ActionLeft},
			"a":      {core.ActionLeft},
			"right":  {core.ActionRight},
			"d":      {core.ActionRight},
			"up":     {core.ActionJump, core.ActionUp},
			"w":      {core.ActionJump, core.ActionUp},
			" ":      {core.ActionJump},
			"down":   {core.ActionDown},
			"s":      {core.ActionDown},
			"enter":  {core.ActionConfirm},
			"b":      {core.ActionBack},
			"esc":    {core.ActionBack},
			"p":      {core.ActionPause},
			"r":      {core.ActionRestart},
			"ctrl+d": {core.ActionDebugToggle},
			"c":      {core.ActionDebugCollect},
			"t":      {core.ActionDebugTeleport},
			"f":      {core.ActionDebugFinish},
			"n":      {core.ActionDebugNext},
		},
	}
}

// MapKey translates a key message to actions.
// Returns the actions (possibly none) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (actions []core.Action, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return []core.Action{core.ActionQuit}, true
	}

	return km.bindings[key], false
}

// MapKeyToFrame updates an input frame based on a key message. Actions the
// hold tracker knows about are started as holds instead of set directly.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame, holds *core.HoldTracker) bool {
	actions, isQuit := km.MapKey(msg)
	for _, a := range actions {
		if holds != nil && holds.Tracks(a) {
			holds.Press(a)
			continue
		}
		frame.Set(a)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
	MenuActionRename
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	case "n":
		return MenuActionRename
	}

	return MenuActionNone
}
