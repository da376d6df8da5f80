// Package keymap provides key binding definitions and lookup for the TUI.
// Bindings are grouped by input mode so the same key can mean different
// things on the instruction screens, during trials, and on the end screen.
package keymap

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents the current input mode of the TUI.
// Different modes have different key bindings active.
type Mode string

const (
	ModeGate  Mode = "gate"  // Intro and break screens, any key advances
	ModeTrial Mode = "trial" // Trial running, arrow keys respond
	ModeEnd   Mode = "end"   // Session over, export available
)

// Command represents a named action that can be triggered by a key binding.
type Command string

const (
	CmdAdvance      Command = "advance"
	CmdRespondLeft  Command = "respond_left"
	CmdRespondRight Command = "respond_right"
	CmdExport       Command = "export"
	CmdQuit         Command = "quit"
)

// KeyBinding represents a single key binding configuration.
type KeyBinding struct {
	// Key is the primary key for this binding.
	// For special keys, use tea.KeyType constants (e.g., tea.KeyEnter).
	// For rune keys, use tea.KeyRunes and set Rune field.
	KeyType tea.KeyType

	// Rune is the character for rune-based keys (when KeyType is tea.KeyRunes).
	Rune rune

	// Alt requires the Alt modifier. Ctrl combinations are distinct key
	// types in bubbletea (e.g., tea.KeyCtrlC) and need no flag.
	Alt bool

	// Command is the action to execute when this binding is triggered.
	Command Command

	// Description is a human-readable description for help display.
	Description string
}

// Matches checks if a tea.KeyMsg matches this binding.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	if msg.Alt != kb.Alt {
		return false
	}

	// For special keys (not runes), match the key type directly
	if kb.KeyType != tea.KeyRunes {
		return msg.Type == kb.KeyType
	}

	// For rune keys, check the rune value
	if msg.Type != tea.KeyRunes || len(msg.Runes) == 0 {
		return false
	}

	// If Rune is 0, this is a catch-all binding for any rune
	if kb.Rune == 0 {
		return true
	}

	return msg.Runes[0] == kb.Rune
}

// String returns a human-readable representation of the key binding.
func (kb KeyBinding) String() string {
	prefix := ""
	if kb.Alt {
		prefix = "alt+"
	}

	if kb.KeyType != tea.KeyRunes {
		return prefix + kb.KeyType.String()
	}

	// Handle special display cases
	switch kb.Rune {
	case 0:
		return prefix + "any"
	case ' ':
		return prefix + "space"
	default:
		return prefix + string(kb.Rune)
	}
}

// ModeBindings holds all key bindings for a specific mode.
type ModeBindings struct {
	Mode     Mode
	Bindings []KeyBinding
}

// GetBinding looks up a command for a key in this mode.
// Returns the command and true if found, or empty command and false if not.
func (mb *ModeBindings) GetBinding(msg tea.KeyMsg) (Command, bool) {
	for _, binding := range mb.Bindings {
		if binding.Matches(msg) {
			return binding.Command, true
		}
	}
	return "", false
}

// Keymap contains all key bindings organized by mode.
type Keymap struct {
	// Name identifies this keymap.
	Name string

	// Description provides a human-readable description.
	Description string

	// Modes maps each mode to its bindings.
	Modes map[Mode]*ModeBindings
}

// GetBinding looks up a command for a key in a specific mode.
// Returns the command and true if found, or empty command and false if not.
func (km *Keymap) GetBinding(msg tea.KeyMsg, mode Mode) (Command, bool) {
	mb, ok := km.Modes[mode]
	if !ok {
		return "", false
	}
	return mb.GetBinding(msg)
}

// GetModeBindings returns all bindings for a specific mode.
func (km *Keymap) GetModeBindings(mode Mode) []KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}
	return mb.Bindings
}

// GetBindingsForCommand returns all bindings that trigger a specific command.
// Useful for displaying "Press X or Y to do Z" in help.
func (km *Keymap) GetBindingsForCommand(cmd Command, mode Mode) []KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}

	var result []KeyBinding
	for _, binding := range mb.Bindings {
		if binding.Command == cmd {
			result = append(result, binding)
		}
	}
	return result
}

// Help returns a one-line hint listing the first key for each command in
// mode, in binding order.
func (km *Keymap) Help(mode Mode) string {
	seen := make(map[Command]bool)
	var parts []string
	for _, binding := range km.GetModeBindings(mode) {
		if seen[binding.Command] {
			continue
		}
		seen[binding.Command] = true
		parts = append(parts, binding.String()+" "+binding.Description)
	}
	return strings.Join(parts, " · ")
}
