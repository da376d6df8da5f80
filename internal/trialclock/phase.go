// Package trialclock turns elapsed wall time into the phase sequence of a
// single trial: ISI, fixation, stimulus, inter-trial interval.
//
// The clock never reads the system time. Callers pass timestamps in, which
// keeps every transition a pure function of the timestamps it has seen.
package trialclock

// Phase is one step of a trial.
type Phase int

const (
	PhaseISI Phase = iota
	PhaseFixation
	PhaseStimulus
	PhaseInterTrial
	// PhaseDone follows the inter-trial interval; the caller moves on to the
	// next trial, a break, or the end of the session.
	PhaseDone
)

// String returns the phase name used in logs.
func (p Phase) String() string {
	switch p {
	case PhaseISI:
		return "ISI"
	case PhaseFixation:
		return "fixation"
	case PhaseStimulus:
		return "stimulus"
	case PhaseInterTrial:
		return "interTrial"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// next returns the phase that follows p.
func (p Phase) next() Phase {
	if p >= PhaseDone {
		return PhaseDone
	}
	return p + 1
}
