// Package trial defines the trial vocabulary of the response-inhibition task
// and generates balanced, shuffled blocks of trials.
package trial

// Type is the condition of a single trial.
type Type string

const (
	CongruentGo   Type = "congruent_go"   // respond; arrow points the true direction
	IncongruentGo Type = "incongruent_go" // respond; arrow is inverted
	NoGo          Type = "nogo"           // withhold; signal shown at stimulus onset
	Stop          Type = "stop"           // respond unless the delayed stop signal appears
)

// Types returns every trial type in generation order.
func Types() []Type {
	return []Type{CongruentGo, IncongruentGo, NoGo, Stop}
}

// IsGo reports whether the participant is expected to respond.
func (t Type) IsGo() bool {
	return t == CongruentGo || t == IncongruentGo
}

// Direction is a target or arrow direction.
type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
)

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == Left {
		return Right
	}
	return Left
}

// Glyph returns the arrow character drawn for d.
func (d Direction) Glyph() string {
	if d == Left {
		return "←"
	}
	return "→"
}

// Signal is the appearance of the frame around the fixation point. The
// values are the colors written to the exported table.
type Signal string

const (
	SignalNeutral Signal = "white"
	SignalInhibit Signal = "blue"
)

// Trial is one stimulus presentation. It is read-only once generated.
type Trial struct {
	Type      Type
	Direction Direction
}

// DisplayedDirection is the direction the arrow points on screen: inverted
// for incongruent trials, the true direction otherwise.
func (t Trial) DisplayedDirection() Direction {
	if t.Type == IncongruentGo {
		return t.Direction.Opposite()
	}
	return t.Direction
}
