package trialclock

import (
	"math/rand/v2"
	"time"

	"github.com/Iron-Ham/stopsignal/internal/errors"
)

// Timing holds the phase durations of a trial.
type Timing struct {
	ISIMean    time.Duration
	ISISD      time.Duration
	ISIFloor   time.Duration
	Fixation   time.Duration
	Stimulus   time.Duration
	InterTrial time.Duration
}

// DefaultTiming returns an ISI of N(1.5s, 0.372s) floored at 0.2s, 0.5s
// fixation, a 1s response window and a 0.5s inter-trial interval.
func DefaultTiming() Timing {
	return Timing{
		ISIMean:    1500 * time.Millisecond,
		ISISD:      372 * time.Millisecond,
		ISIFloor:   200 * time.Millisecond,
		Fixation:   500 * time.Millisecond,
		Stimulus:   1000 * time.Millisecond,
		InterTrial: 500 * time.Millisecond,
	}
}

// Validate rejects non-positive fixed durations and a negative ISI spread.
func (t Timing) Validate() error {
	fields := []struct {
		name  string
		value time.Duration
	}{
		{"timing.isi_mean_ms", t.ISIMean},
		{"timing.isi_floor_ms", t.ISIFloor},
		{"timing.fixation_ms", t.Fixation},
		{"timing.stimulus_ms", t.Stimulus},
		{"timing.inter_trial_ms", t.InterTrial},
	}
	for _, f := range fields {
		if f.value <= 0 {
			return errors.NewConfigurationError(f.name, f.value.Milliseconds(), errors.ErrInvalidTiming).
				WithDetail("must be positive")
		}
	}
	if t.ISISD < 0 {
		return errors.NewConfigurationError("timing.isi_sd_ms", t.ISISD.Milliseconds(), errors.ErrInvalidTiming).
			WithDetail("must be non-negative")
	}
	return nil
}

// DrawISI samples one foreperiod: max(floor, N(mean, sd)).
func (t Timing) DrawISI(rng *rand.Rand) time.Duration {
	d := t.ISIMean + time.Duration(rng.NormFloat64()*float64(t.ISISD))
	return max(t.ISIFloor, d)
}
