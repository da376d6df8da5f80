package experiment

import "time"

// InputKind classifies a participant input event.
type InputKind int

const (
	InputLeft InputKind = iota
	InputRight
	InputAnyKey
	InputClick
)

// String returns the input name used in logs.
func (k InputKind) String() string {
	switch k {
	case InputLeft:
		return "left"
	case InputRight:
		return "right"
	case InputAnyKey:
		return "key"
	case InputClick:
		return "click"
	default:
		return "unknown"
	}
}

// IsKey reports whether k is a key press of any kind.
func (k InputKind) IsKey() bool {
	return k == InputLeft || k == InputRight || k == InputAnyKey
}

// IsDirectional reports whether k counts as a response.
func (k InputKind) IsDirectional() bool {
	return k == InputLeft || k == InputRight
}

// Input is a timestamped participant event. X and Y are logical canvas
// coordinates and are only meaningful for clicks.
type Input struct {
	Kind InputKind
	At   time.Time
	X, Y float64
}

// Action is what the host must do after an input was handled.
type Action int

const (
	ActionNone Action = iota
	// ActionExport asks the host to call Export with its sink.
	ActionExport
)
