package core

// Action represents a semantic game action, abstracted from physical key presses.
// Keyboards, SSH keystrokes and window key states all map onto the same actions.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - run left (held)
	ActionRight          // D, Right arrow - run right (held)
	ActionUp             // W, Up arrow - menu up
	ActionDown           // S, Down arrow - menu down
	ActionJump           // Space, W, Up - jump (held for a higher jump)
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - retry after a finished run
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game

	ActionDebugToggle   // Ctrl+D - toggle debug shortcuts
	ActionDebugCollect  // C in debug mode - collect every letter
	ActionDebugTeleport // T in debug mode - jump next to the flag
	ActionDebugFinish   // F in debug mode - finish the level
	ActionDebugNext     // N in debug mode - skip to the next level
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionJump:
		return "Jump"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionDebugToggle:
		return "DebugToggle"
	case ActionDebugCollect:
		return "DebugCollect"
	case ActionDebugTeleport:
		return "DebugTeleport"
	case ActionDebugFinish:
		return "DebugFinish"
	case ActionDebugNext:
		return "DebugNext"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for one simulation tick.
// Held actions (Left, Right, Jump) stay set for every tick they are held;
// the rest are set only on the tick they were pressed.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// HoldTracker turns discrete key presses into held states for sources that
// never report key releases, such as terminals. A press keeps its action held
// for a fixed number of ticks; repeated presses (key auto-repeat) extend it.
type HoldTracker struct {
	length    map[Action]int
	remaining map[Action]int
}

// DefaultHoldTicks holds movement long enough to bridge the terminal
// auto-repeat delay, and jump for the full variable-height window.
func DefaultHoldTicks() map[Action]int {
	return map[Action]int{
		ActionLeft:  18,
		ActionRight: 18,
		ActionJump:  12,
	}
}

// NewHoldTracker creates a tracker for the given per-action hold lengths.
func NewHoldTracker(length map[Action]int) *HoldTracker {
	l := make(map[Action]int, len(length))
	for a, n := range length {
		l[a] = n
	}
	return &HoldTracker{
		length:    l,
		remaining: make(map[Action]int, len(length)),
	}
}

// Tracks reports whether presses of a are turned into held states.
func (h *HoldTracker) Tracks(a Action) bool {
	_, ok := h.length[a]
	return ok
}

// Press starts or extends the hold of a. Pressing one direction releases the other.
func (h *HoldTracker) Press(a Action) {
	n, ok := h.length[a]
	if !ok {
		return
	}
	switch a {
	case ActionLeft:
		delete(h.remaining, ActionRight)
	case ActionRight:
		delete(h.remaining, ActionLeft)
	}
	h.remaining[a] = n
}

// Apply marks every held action in frame and consumes one tick of each hold.
func (h *HoldTracker) Apply(frame *InputFrame) {
	for a, n := range h.remaining {
		frame.Set(a)
		if n <= 1 {
			delete(h.remaining, a)
		} else {
			h.remaining[a] = n - 1
		}
	}
}

// Reset drops all holds.
func (h *HoldTracker) Reset() {
	for a := range h.remaining {
		delete(h.remaining, a)
	}
}
