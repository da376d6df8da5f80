package experiment

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Iron-Ham/stopsignal/internal/errors"
	"github.com/Iron-Ham/stopsignal/internal/event"
	"github.com/Iron-Ham/stopsignal/internal/logging"
	"github.com/Iron-Ham/stopsignal/internal/record"
	"github.com/Iron-Ham/stopsignal/internal/staircase"
	"github.com/Iron-Ham/stopsignal/internal/trial"
	"github.com/Iron-Ham/stopsignal/internal/trialclock"
)

// Params are the session constants.
type Params struct {
	TrialsPerSet int
	TotalSets    int
	Proportions  trial.Proportions
	Timing       trialclock.Timing
	Staircase    staircase.Config
}

// DefaultParams returns 3 blocks of 80 trials with the default timing and
// staircase.
func DefaultParams() Params {
	return Params{
		TrialsPerSet: 80,
		TotalSets:    3,
		Proportions:  trial.DefaultProportions(),
		Timing:       trialclock.DefaultTiming(),
		Staircase:    staircase.DefaultConfig(),
	}
}

// Validate rejects parameter sets that cannot produce a session.
func (p Params) Validate() error {
	if p.TotalSets < 1 {
		return errors.NewConfigurationError("task.total_sets", p.TotalSets, errors.ErrBlockTooSmall).
			WithDetail("must be at least 1")
	}
	if _, err := p.Proportions.Counts(p.TrialsPerSet); err != nil {
		return err
	}
	if err := p.Timing.Validate(); err != nil {
		return err
	}
	return p.Staircase.Validate()
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger for discarded inputs and internal faults.
func WithLogger(l *logging.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

// WithBus sets the bus that receives the machine's events.
func WithBus(b *event.Bus) Option {
	return func(m *Machine) { m.bus = b }
}

// Machine owns all mutable session state: the block list, the running
// trial, the stop-signal staircase and the outcome log.
type Machine struct {
	params Params
	rng    *rand.Rand
	gen    *trial.Generator
	stairs *staircase.Controller
	rec    *record.Recorder
	bus    *event.Bus
	logger *logging.Logger

	state State
	block int // 0-based index of the current or last block

	trials  []trial.Trial
	next    int // index into trials of the next trial to run
	current *trial.Trial
	clock   *trialclock.Clock

	ssd       time.Duration // delay in effect for the current stop trial
	onset     time.Time     // stimulus onset of the current trial
	responded bool
	rt        time.Duration

	exported bool
}

// New validates p and returns a Machine parked on the intro screen.
func New(p Params, rng *rand.Rand, opts ...Option) (*Machine, error) {
	if rng == nil {
		return nil, fmt.Errorf("experiment requires a random source")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	gen, err := trial.NewGenerator(p.Proportions, rng)
	if err != nil {
		return nil, err
	}
	stairs, err := staircase.New(p.Staircase)
	if err != nil {
		return nil, err
	}

	m := &Machine{
		params: p,
		rng:    rng,
		gen:    gen,
		stairs: stairs,
		rec:    record.NewRecorder(p.TrialsPerSet * p.TotalSets),
		bus:    event.NewBus(),
		logger: logging.NopLogger(),
		state:  StateIntro,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Tick evaluates the running trial at now. It returns true when the frame
// content changed: a phase boundary was crossed or the inhibit signal appeared.
func (m *Machine) Tick(now time.Time) bool {
	if !m.state.InTrial() {
		return false
	}

	changed := false
	if m.state == StateStimulus && m.clock.UpdateSignal(now, m.current.Type, m.ssd) {
		m.phaseLogger().Debug("inhibit signal shown", "trial_type", m.current.Type, "ssd_ms", m.ssd.Milliseconds())
		changed = true
	}

	was := m.state
	phase, crossed := m.clock.Advance(now)
	if !crossed {
		return changed
	}

	if was == StateStimulus {
		// Window closed without a response.
		m.state = StateInterTrial
		if err := m.finalize(m.clock.PhaseStart(), false); err != nil {
			m.phaseLogger().Debug("timeout discarded", "error", err.Error())
		}
		return true
	}
	if phase == trialclock.PhaseDone {
		m.advanceTrial(m.clock.PhaseStart())
		return true
	}
	m.state = stateForPhase(phase)
	if m.state == StateStimulus {
		m.onset = m.clock.PhaseStart()
		m.clock.UpdateSignal(now, m.current.Type, m.ssd)
	}
	return true
}

// HandleInput applies one participant event at its timestamp.
func (m *Machine) HandleInput(in Input) Action {
	// Catch up with boundaries crossed since the last tick, so acceptance
	// depends on the input's timestamp rather than on frame timing.
	m.Tick(in.At)

	switch m.state {
	case StateIntro:
		if in.Kind.IsKey() {
			m.startBlock(0, in.At)
		}
	case StateBreak:
		if in.Kind.IsKey() {
			m.startBlock(m.block+1, in.At)
		}
	case StateStimulus:
		if in.Kind.IsDirectional() {
			m.respond(in)
		}
	case StateEnd:
		if in.Kind == InputClick && !m.exported && ExportButton.Contains(in.X, in.Y) {
			return ActionExport
		}
	default:
		if in.Kind.IsDirectional() {
			m.phaseLogger().Debug("response outside stimulus window ignored", "input", in.Kind.String())
		}
	}
	return ActionNone
}

// Export hands the outcome table to sink. It is refused before the session
// ends and after a successful export; a failed write may be retried.
func (m *Machine) Export(sink record.Sink, at time.Time) error {
	if m.state != StateEnd {
		return errors.NewStateError("export", m.state.String(), errors.ErrExportNotReady)
	}
	if m.exported {
		return errors.NewStateError("export", m.state.String(), errors.ErrAlreadyExported)
	}

	outcomes := m.rec.Outcomes()
	err := sink.Write(outcomes)
	m.bus.Publish(event.NewSessionExportedEvent(at, len(outcomes), err))
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	m.exported = true
	return nil
}

func (m *Machine) startBlock(block int, at time.Time) {
	trials, err := m.gen.Generate(m.params.TrialsPerSet)
	if err != nil {
		// Params were validated in New; reaching this is a bug, not a
		// participant-facing condition.
		m.logger.Error("block generation failed", "block", block+1, "error", err.Error())
		m.endSession(at)
		return
	}

	m.block = block
	m.trials = trials
	m.next = 0
	m.bus.Publish(event.NewBlockStartedEvent(at, block+1, m.params.TotalSets, len(trials)))
	m.advanceTrial(at)
}

// advanceTrial starts the next trial of the block at at, or leaves the
// block for a break or the end screen.
func (m *Machine) advanceTrial(at time.Time) {
	if m.next >= len(m.trials) {
		m.current = nil
		m.clock = nil
		m.bus.Publish(event.NewBlockCompletedEvent(at, m.block+1, m.params.TotalSets, m.rec.Len()))
		if m.block+1 < m.params.TotalSets {
			m.state = StateBreak
			return
		}
		m.endSession(at)
		return
	}

	m.current = &m.trials[m.next]
	m.next++
	m.clock = trialclock.New(m.params.Timing, m.params.Timing.DrawISI(m.rng), at)
	m.responded = false
	m.rt = 0
	m.onset = time.Time{}
	m.ssd = 0
	if m.current.Type == trial.Stop {
		m.ssd = m.stairs.CurrentDelay()
	}
	m.state = StateISI
}

func (m *Machine) endSession(at time.Time) {
	m.state = StateEnd
	m.current = nil
	m.trials = nil
	successes, failures := m.stairs.Tally()
	m.bus.Publish(event.NewSessionEndedEvent(at, m.rec.Len(), m.stairs.CurrentDelay(), successes, failures))
}

// respond handles a directional key press during the stimulus phase. Only
// the first press inside [onset, onset+stimulus) counts.
func (m *Machine) respond(in Input) {
	if m.responded {
		return
	}
	if !m.clock.InResponseWindow(in.At) {
		m.phaseLogger().Debug("late response ignored", "input", in.Kind.String())
		return
	}

	// The signal may have become due between the last tick and the press.
	m.clock.UpdateSignal(in.At, m.current.Type, m.ssd)

	m.responded = true
	m.rt = in.At.Sub(m.clock.PhaseStart())
	m.clock.EndStimulus(in.At)
	m.state = StateInterTrial
	if err := m.finalize(in.At, true); err != nil {
		m.phaseLogger().Debug("response discarded", "error", err.Error())
	}
}

// finalize records the current trial's outcome and, for stop trials, steps
// the staircase before the next trial can read the delay.
func (m *Machine) finalize(at time.Time, responded bool) error {
	if m.current == nil || m.clock == nil {
		return errors.NewStateError("finalize", m.state.String(), errors.ErrNoActiveTrial)
	}

	o := record.Outcome{
		Block:       m.block + 1,
		Trial:       m.next,
		Type:        m.current.Type,
		Direction:   m.current.Direction,
		Responded:   responded,
		Signal:      m.clock.Signal(),
		SSD:         m.ssd,
		CompletedAt: at,
	}
	if responded {
		o.ReactionTime = m.rt
	}
	if shownAt, ok := m.clock.SignalOnset(); ok {
		o.SignalDelay = shownAt.Sub(m.onset)
	}

	if m.current.Type == trial.Stop {
		prev := m.stairs.CurrentDelay()
		cur := m.stairs.OnStopTrialOutcome(responded)
		m.bus.Publish(event.NewStaircaseUpdatedEvent(at, prev, cur, responded))
	}

	m.rec.Append(o)
	m.bus.Publish(event.NewTrialCompletedEvent(at, o.Block, o.Trial, string(o.Type), string(o.Direction),
		o.Responded, string(o.Signal), o.SSD, o.ReactionTime, o.SignalDelay))
	return nil
}

// phaseLogger tags log lines with the current state.
func (m *Machine) phaseLogger() *logging.Logger {
	return m.logger.WithPhase(m.state.String())
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Block returns the 1-based number of the current (or last) block, or 0
// before the first block starts.
func (m *Machine) Block() int {
	if m.state == StateIntro {
		return 0
	}
	return m.block + 1
}

// TotalBlocks returns the number of blocks in the session.
func (m *Machine) TotalBlocks() int {
	return m.params.TotalSets
}

// Current returns the running trial and its 1-based index in the block.
func (m *Machine) Current() (trial.Trial, int, bool) {
	if m.current == nil {
		return trial.Trial{}, 0, false
	}
	return *m.current, m.next, true
}

// Phase returns the phase of the running trial.
func (m *Machine) Phase() (trialclock.Phase, bool) {
	if m.clock == nil {
		return 0, false
	}
	return m.clock.Phase(), true
}

// PhaseStart returns when the running trial entered its current phase.
func (m *Machine) PhaseStart() (time.Time, bool) {
	if m.clock == nil {
		return time.Time{}, false
	}
	return m.clock.PhaseStart(), true
}

// Signal returns the frame appearance of the running trial.
func (m *Machine) Signal() trial.Signal {
	if m.clock == nil {
		return trial.SignalNeutral
	}
	return m.clock.Signal()
}

// SSD returns the stop-signal delay the next stop trial will use.
func (m *Machine) SSD() time.Duration {
	return m.stairs.CurrentDelay()
}

// Completed returns the number of finished trials.
func (m *Machine) Completed() int {
	return m.rec.Len()
}

// TotalTrials returns the number of trials in the session.
func (m *Machine) TotalTrials() int {
	return m.params.TrialsPerSet * m.params.TotalSets
}

// Outcomes returns a copy of the recorded outcomes.
func (m *Machine) Outcomes() []record.Outcome {
	return m.rec.Outcomes()
}

// Exported reports whether the one-time export has happened.
func (m *Machine) Exported() bool {
	return m.exported
}

// Params returns the session constants.
func (m *Machine) Params() Params {
	return m.params
}

// Bus returns the bus the machine publishes to.
func (m *Machine) Bus() *event.Bus {
	return m.bus
}
