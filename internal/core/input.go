package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space, Up - flap
	ActionRestart        // R - restart after game over
	ActionQuit           // Q, Ctrl+C - leave the game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the actions triggered during one simulation tick.
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

// Unset removes an action from this frame.
func (f *InputFrame) Unset(a Action) {
	delete(f.Actions, a)
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

// EdgeTrigger turns a per-tick "key is down" sample into a press event.
// Terminals resend a held key at the autorepeat rate, so a held key shows up
// on many consecutive ticks; only the first of them is a press.
type EdgeTrigger struct {
	down bool
}

// Sample records whether the key was seen this tick and reports whether
// that is a transition from up to down.
func (e *EdgeTrigger) Sample(seen bool) bool {
	pressed := seen && !e.down
	e.down = seen
	return pressed
}

// Reset forgets the previous sample.
func (e *EdgeTrigger) Reset() {
	e.down = false
}

// Filter applies the trigger to one action of a frame in place.
func (e *EdgeTrigger) Filter(f *InputFrame, a Action) {
	if !e.Sample(f.Has(a)) {
		f.Unset(a)
	}
}
