// Package staircase adapts the stop-signal delay with a 1-up/1-down rule.
//
// A failed stop (the participant responded) shortens the delay, making the
// next stop easier; a successful stop lengthens it. The delay therefore
// oscillates around the point where stopping succeeds half of the time.
package staircase

import (
	"time"

	"github.com/Iron-Ham/stopsignal/internal/errors"
)

// Config bounds and steps the stop-signal delay.
type Config struct {
	Initial time.Duration
	Step    time.Duration
	Min     time.Duration
	Max     time.Duration
}

// DefaultConfig returns 220ms initial delay, 50ms steps within [20ms, 900ms].
func DefaultConfig() Config {
	return Config{
		Initial: 220 * time.Millisecond,
		Step:    50 * time.Millisecond,
		Min:     20 * time.Millisecond,
		Max:     900 * time.Millisecond,
	}
}

// Validate checks that the bounds are ordered and contain the initial delay.
func (c Config) Validate() error {
	switch {
	case c.Step <= 0:
		return errors.NewConfigurationError("staircase.step_ms", c.Step.Milliseconds(), errors.ErrInvalidStaircase).
			WithDetail("must be positive")
	case c.Min < 0:
		return errors.NewConfigurationError("staircase.min_ms", c.Min.Milliseconds(), errors.ErrInvalidStaircase).
			WithDetail("must be non-negative")
	case c.Max < c.Min:
		return errors.NewConfigurationError("staircase.max_ms", c.Max.Milliseconds(), errors.ErrInvalidStaircase).
			WithDetail("must not be below min_ms")
	case c.Initial < c.Min || c.Initial > c.Max:
		return errors.NewConfigurationError("staircase.initial_ms", c.Initial.Milliseconds(), errors.ErrInvalidStaircase).
			WithDetail("must lie within [min_ms, max_ms]")
	}
	return nil
}

// Controller owns the session-wide stop-signal delay. It is not reset
// between blocks.
type Controller struct {
	cfg       Config
	ssd       time.Duration
	successes int
	failures  int
}

// New returns a Controller starting at cfg.Initial.
func New(cfg Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Controller{cfg: cfg, ssd: cfg.Initial}, nil
}

// CurrentDelay returns the delay to use for the next stop trial.
func (c *Controller) CurrentDelay() time.Duration {
	return c.ssd
}

// OnStopTrialOutcome applies one staircase step and returns the new delay.
// Call it only for stop trials.
func (c *Controller) OnStopTrialOutcome(responded bool) time.Duration {
	if responded {
		c.failures++
		c.ssd = max(c.cfg.Min, c.ssd-c.cfg.Step)
	} else {
		c.successes++
		c.ssd = min(c.cfg.Max, c.ssd+c.cfg.Step)
	}
	return c.ssd
}

// Tally returns the number of successful and failed stops seen so far.
func (c *Controller) Tally() (successes, failures int) {
	return c.successes, c.failures
}
