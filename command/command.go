// Package command defines the values that cross from the tray listener to
// the GUI thread, and the bounded queue that carries them.
package command

import "fmt"

// Kind identifies the action a Command requests.
type Kind int

const (
	// CmdShowWindow brings the main window up.
	CmdShowWindow Kind = iota
	// CmdHideWindow withdraws the main window and closes ephemeral dialogs.
	CmdHideWindow
	// CmdToggleWindow shows a hidden window or hides a visible one.
	CmdToggleWindow
	// CmdQuickAction opens the quick-entry dialog.
	CmdQuickAction
	// CmdQuit shuts the application down.
	CmdQuit
	// CmdUpdateTooltip replaces the tray tooltip text.
	CmdUpdateTooltip
	// CmdSetStayOnTop relays a stay-on-top setting change.
	CmdSetStayOnTop
)

// String returns a human-readable name for the command kind.
func (k Kind) String() string {
	switch k {
	case CmdShowWindow:
		return "ShowWindow"
	case CmdHideWindow:
		return "HideWindow"
	case CmdToggleWindow:
		return "ToggleWindow"
	case CmdQuickAction:
		return "QuickAction"
	case CmdQuit:
		return "Quit"
	case CmdUpdateTooltip:
		return "UpdateTooltip"
	case CmdSetStayOnTop:
		return "SetStayOnTop"
	default:
		return "Unknown"
	}
}

// Command is one requested action. It is a plain value with no references
// into GUI-owned memory, so it may be copied between goroutines freely.
type Command struct {
	Kind Kind
	// Text carries the tooltip for CmdUpdateTooltip.
	Text string
	// Flag carries the setting for CmdSetStayOnTop.
	Flag bool
}

func (c Command) String() string {
	switch c.Kind {
	case CmdUpdateTooltip:
		return fmt.Sprintf("%s(%q)", c.Kind, c.Text)
	case CmdSetStayOnTop:
		return fmt.Sprintf("%s(%t)", c.Kind, c.Flag)
	default:
		return c.Kind.String()
	}
}

func ShowWindow() Command { return Command{Kind: CmdShowWindow} }
func HideWindow() Command { return Command{Kind: CmdHideWindow} }
func ToggleWindow() Command { return Command{Kind: CmdToggleWindow} }
func QuickAction() Command { return Command{Kind: CmdQuickAction} }
func Quit() Command { return Command{Kind: CmdQuit} }

// UpdateTooltip returns a command that replaces the tray tooltip with text.
func UpdateTooltip(text string) Command {
	return Command{Kind: CmdUpdateTooltip, Text: text}
}

// SetStayOnTop returns a command that changes the stay-on-top setting.
func SetStayOnTop(on bool) Command {
	return Command{Kind: CmdSetStayOnTop, Flag: on}
}

// Sink accepts commands from any goroutine without blocking.
type Sink interface {
	Push(cmd Command) error
}
