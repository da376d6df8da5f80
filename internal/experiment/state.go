package experiment

import "github.com/Iron-Ham/stopsignal/internal/trialclock"

// State is the machine's current screen or trial phase.
type State int

const (
	StateIntro State = iota
	StateISI
	StateFixation
	StateStimulus
	StateInterTrial
	StateBreak
	StateEnd
)

// String returns the state name used in logs and errors.
func (s State) String() string {
	switch s {
	case StateIntro:
		return "intro"
	case StateISI:
		return "ISI"
	case StateFixation:
		return "fixation"
	case StateStimulus:
		return "stimulus"
	case StateInterTrial:
		return "interTrial"
	case StateBreak:
		return "break"
	case StateEnd:
		return "end"
	default:
		return "unknown"
	}
}

// InTrial reports whether a trial is running.
func (s State) InTrial() bool {
	return s >= StateISI && s <= StateInterTrial
}

// Gated reports whether the state waits for a key press.
func (s State) Gated() bool {
	return s == StateIntro || s == StateBreak
}

func stateForPhase(p trialclock.Phase) State {
	switch p {
	case trialclock.PhaseISI:
		return StateISI
	case trialclock.PhaseFixation:
		return StateFixation
	case trialclock.PhaseStimulus:
		return StateStimulus
	default:
		return StateInterTrial
	}
}
