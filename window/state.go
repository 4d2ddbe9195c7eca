// Package window holds the main window's visibility state machine and the
// registry of ephemeral dialogs. Everything here runs on the GUI thread.
package window

// State is the visibility of the main window.
type State int

const (
	// Hidden is the initial state.
	Hidden State = iota
	// AnimatingIn means the window is shown and fading in.
	AnimatingIn
	// Visible means the window is fully shown.
	Visible
	// AnimatingOut means the window is fading out before it is withdrawn.
	AnimatingOut
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "Hidden"
	case AnimatingIn:
		return "AnimatingIn"
	case Visible:
		return "Visible"
	case AnimatingOut:
		return "AnimatingOut"
	default:
		return "Unknown"
	}
}

// Snapshot is a copy of the controller's observable state. It carries no
// references back into the controller and may be handed to other goroutines.
type Snapshot struct {
	State     State
	Tooltip   string
	StayOnTop bool
}

// WindowVisible reports whether the window is up or on its way up.
func (s Snapshot) WindowVisible() bool {
	return s.State == Visible || s.State == AnimatingIn
}
