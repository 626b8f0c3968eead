package core

// Action is a semantic game action, abstracted from physical key presses.
// Games consume actions; the platform decides which keys produce them.
type Action int

const (
	ActionNone             Action = iota
	ActionUp                      // slide tiles up
	ActionDown                    // slide tiles down
	ActionLeft                    // slide tiles left
	ActionRight                   // slide tiles right
	ActionUndo                    // restore the previous board
	ActionRestart                 // start a new game
	ActionSave                    // write the save slot
	ActionLoad                    // read the save slot
	ActionToggleDifficulty        // switch between easy and difficult
	ActionConfirm                 // Enter in menus
	ActionBack                    // Esc in menus
	ActionQuit                    // leave the session
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
	case ActionUndo:
		return "Undo"
	case ActionRestart:
		return "Restart"
	case ActionSave:
		return "Save"
	case ActionLoad:
		return "Load"
	case ActionToggleDifficulty:
		return "ToggleDifficulty"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions delivered to a game in one Step call.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// FrameOf builds a frame holding the given actions.
func FrameOf(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
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

// Empty reports whether no action is set.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
