package trialclock

import (
	"time"

	"github.com/Iron-Ham/stopsignal/internal/trial"
)

// Clock tracks the phase of one trial.
//
// Each phase is entered at the exact boundary where the previous one ended
// (its entry time plus its duration), not at the tick that noticed it, so
// phase lengths do not drift with frame jitter. Advance moves at most one
// phase per call.
type Clock struct {
	timing  Timing
	isi     time.Duration
	phase   Phase
	entered time.Time

	inhibit   bool
	inhibitAt time.Time
}

// New starts a trial in the ISI phase at start.
func New(timing Timing, isi time.Duration, start time.Time) *Clock {
	return &Clock{
		timing:  timing,
		isi:     isi,
		phase:   PhaseISI,
		entered: start,
	}
}

// Phase returns the current phase.
func (c *Clock) Phase() Phase {
	return c.phase
}

// PhaseStart returns when the current phase was entered.
func (c *Clock) PhaseStart() time.Time {
	return c.entered
}

// ISI returns the foreperiod drawn for this trial.
func (c *Clock) ISI() time.Duration {
	return c.isi
}

// Duration returns the nominal length of p for this trial. The stimulus
// phase may end earlier on a response.
func (c *Clock) Duration(p Phase) time.Duration {
	switch p {
	case PhaseISI:
		return c.isi
	case PhaseFixation:
		return c.timing.Fixation
	case PhaseStimulus:
		return c.timing.Stimulus
	case PhaseInterTrial:
		return c.timing.InterTrial
	default:
		return 0
	}
}

// Elapsed returns the time spent in the current phase at now.
func (c *Clock) Elapsed(now time.Time) time.Duration {
	return now.Sub(c.entered)
}

// Advance evaluates the clock at now. It returns the resulting phase and
// whether a boundary was crossed by this call.
func (c *Clock) Advance(now time.Time) (Phase, bool) {
	if c.phase == PhaseDone {
		return c.phase, false
	}
	d := c.Duration(c.phase)
	if c.Elapsed(now) < d {
		return c.phase, false
	}
	c.entered = c.entered.Add(d)
	c.phase = c.phase.next()
	return c.phase, true
}

// InResponseWindow reports whether at falls inside the open stimulus window
// [onset, onset+stimulus).
func (c *Clock) InResponseWindow(at time.Time) bool {
	if c.phase != PhaseStimulus {
		return false
	}
	return !at.Before(c.entered) && at.Before(c.entered.Add(c.timing.Stimulus))
}

// EndStimulus closes the stimulus phase early at the response time at and
// starts the inter-trial interval there. It returns false when at is outside
// the response window.
func (c *Clock) EndStimulus(at time.Time) bool {
	if !c.InResponseWindow(at) {
		return false
	}
	c.phase = PhaseInterTrial
	c.entered = at
	return true
}

// UpdateSignal switches the frame to the inhibit appearance when the trial
// calls for it at now: immediately for no-go trials, once ssd has elapsed for
// stop trials. The switch is latched and happens at most once per trial. A
// delay at or beyond the stimulus duration never shows the signal. It
// returns true on the call that made the switch.
func (c *Clock) UpdateSignal(now time.Time, t trial.Type, ssd time.Duration) bool {
	if c.inhibit || c.phase != PhaseStimulus {
		return false
	}

	switch t {
	case trial.NoGo:
		c.inhibit = true
		c.inhibitAt = c.entered
	case trial.Stop:
		if ssd >= c.timing.Stimulus || c.Elapsed(now) < ssd {
			return false
		}
		c.inhibit = true
		c.inhibitAt = c.entered.Add(ssd)
	default:
		return false
	}
	return true
}

// Signal returns the current frame appearance. Outside the stimulus phase
// the frame is neutral unless the trial already latched the inhibit signal.
func (c *Clock) Signal() trial.Signal {
	if c.inhibit {
		return trial.SignalInhibit
	}
	return trial.SignalNeutral
}

// SignalOnset returns when the inhibit signal appeared, and false if it
// never did.
func (c *Clock) SignalOnset() (time.Time, bool) {
	return c.inhibitAt, c.inhibit
}
