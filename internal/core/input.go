package core

// Action represents a semantic game action, abstracted from physical key presses
// and clicks. Platform layers translate raw input into actions.
type Action int

const (
	ActionNone  Action = iota
	ActionUp           // Up arrow
	ActionDown         // Down arrow
	ActionLeft         // Left arrow
	ActionRight        // Right arrow
	ActionStart        // Click, Space, Enter - start a run
	ActionReset        // R - rebuild the board and return to idle
	ActionQuit         // Q, Ctrl+C - exit
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
	case ActionStart:
		return "Start"
	case ActionReset:
		return "Reset"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Direction returns the movement direction for a directional action.
// The second result is false for non-directional actions.
func (a Action) Direction() (Direction, bool) {
	switch a {
	case ActionUp:
		return Up, true
	case ActionDown:
		return Down, true
	case ActionLeft:
		return Left, true
	case ActionRight:
		return Right, true
	default:
		return Direction{}, false
	}
}
