package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move up
	ActionDown           // S, Down arrow - move down
	ActionLeft           // A, Left arrow - move left
	ActionRight          // D, Right arrow - move right
	ActionDash           // Space - dash (edge-triggered)
	ActionStart          // Enter - start the match from Ready
	ActionPause          // P, Escape - pause/unpause game
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionDash:
		return "Dash"
	case ActionStart:
		return "Start"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single simulation tick.
// It contains all actions that are active (held or triggered) during this frame.
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

// Intent is the movement snapshot a controller consumes each tick.
// Directions are held states; Dash is an edge that is true only on the
// tick the dash key went down.
type Intent struct {
	Up, Down, Left, Right bool
	Dash                  bool
}

// Intent extracts the movement snapshot from the frame.
func (f InputFrame) Intent() Intent {
	return Intent{
		Up:    f.Has(ActionUp),
		Down:  f.Has(ActionDown),
		Left:  f.Has(ActionLeft),
		Right: f.Has(ActionRight),
		Dash:  f.Has(ActionDash),
	}
}

// Axis returns the raw direction for the held keys.
// Opposing keys cancel to zero on their axis. Y grows upward.
func (in Intent) Axis() Vec2 {
	var d Vec2
	if in.Up {
		d.Y++
	}
	if in.Down {
		d.Y--
	}
	if in.Left {
		d.X--
	}
	if in.Right {
		d.X++
	}
	return d
}
