// Package record keeps the session's trial outcomes and writes them out as a
// semicolon-delimited table.
package record

import (
	"time"

	"github.com/Iron-Ham/stopsignal/internal/trial"
)

// Outcome is the result of one completed trial. Block and Trial are 1-based.
type Outcome struct {
	Block     int
	Trial     int
	Type      trial.Type
	Direction trial.Direction
	Responded bool
	Signal    trial.Signal

	// Not part of the exported table.
	SSD          time.Duration // delay in effect; zero for non-stop trials
	ReactionTime time.Duration // zero when there was no response
	SignalDelay  time.Duration // onset to inhibit signal; meaningful when Signal is inhibit
	CompletedAt  time.Time
}

// Recorder is an append-only log of outcomes in completion order.
type Recorder struct {
	outcomes []Outcome
}

// NewRecorder creates an empty Recorder with room for capacity outcomes.
func NewRecorder(capacity int) *Recorder {
	return &Recorder{outcomes: make([]Outcome, 0, max(capacity, 0))}
}

// Append adds o to the end of the log. Past entries are never modified.
func (r *Recorder) Append(o Outcome) {
	r.outcomes = append(r.outcomes, o)
}

// Len returns the number of recorded outcomes.
func (r *Recorder) Len() int {
	return len(r.outcomes)
}

// Outcomes returns a copy of the log.
func (r *Recorder) Outcomes() []Outcome {
	out := make([]Outcome, len(r.outcomes))
	copy(out, r.outcomes)
	return out
}
