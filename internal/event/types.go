package event

import "time"

// Event is the interface that all events implement.
type Event interface {
	// EventType returns "category.action", e.g. "trial.completed".
	EventType() string
	// Timestamp returns when the event occurred on the task clock.
	Timestamp() time.Time
}

type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string, at time.Time) baseEvent {
	return baseEvent{eventType: eventType, timestamp: at}
}

// BlockStartedEvent is emitted when a block's trial list has been generated.
type BlockStartedEvent struct {
	baseEvent
	Block       int // 1-based
	TotalBlocks int
	Trials      int
}

// NewBlockStartedEvent creates a BlockStartedEvent.
func NewBlockStartedEvent(at time.Time, block, totalBlocks, trials int) BlockStartedEvent {
	return BlockStartedEvent{
		baseEvent:   newBaseEvent("block.started", at),
		Block:       block,
		TotalBlocks: totalBlocks,
		Trials:      trials,
	}
}

// BlockCompletedEvent is emitted when the last trial of a block is recorded.
type BlockCompletedEvent struct {
	baseEvent
	Block       int // 1-based
	TotalBlocks int
	Completed   int // trials recorded so far across the session
}

// NewBlockCompletedEvent creates a BlockCompletedEvent.
func NewBlockCompletedEvent(at time.Time, block, totalBlocks, completed int) BlockCompletedEvent {
	return BlockCompletedEvent{
		baseEvent:   newBaseEvent("block.completed", at),
		Block:       block,
		TotalBlocks: totalBlocks,
		Completed:   completed,
	}
}

// TrialCompletedEvent is emitted once per trial when its outcome is recorded.
type TrialCompletedEvent struct {
	baseEvent
	Block        int
	Trial        int
	Type         string
	Direction    string
	Responded    bool
	Signal       string
	SSD          time.Duration
	ReactionTime time.Duration
	SignalDelay  time.Duration // onset to inhibit signal, zero when none was shown
}

// NewTrialCompletedEvent creates a TrialCompletedEvent.
func NewTrialCompletedEvent(at time.Time, block, trial int, typ, direction string, responded bool, signal string, ssd, rt, signalDelay time.Duration) TrialCompletedEvent {
	return TrialCompletedEvent{
		baseEvent:    newBaseEvent("trial.completed", at),
		Block:        block,
		Trial:        trial,
		Type:         typ,
		Direction:    direction,
		Responded:    responded,
		Signal:       signal,
		SSD:          ssd,
		ReactionTime: rt,
		SignalDelay:  signalDelay,
	}
}

// StaircaseUpdatedEvent is emitted after each stop trial moves the delay.
type StaircaseUpdatedEvent struct {
	baseEvent
	Previous  time.Duration
	Current   time.Duration
	Responded bool
}

// NewStaircaseUpdatedEvent creates a StaircaseUpdatedEvent.
func NewStaircaseUpdatedEvent(at time.Time, previous, current time.Duration, responded bool) StaircaseUpdatedEvent {
	return StaircaseUpdatedEvent{
		baseEvent: newBaseEvent("staircase.updated", at),
		Previous:  previous,
		Current:   current,
		Responded: responded,
	}
}

// SessionEndedEvent is emitted when the last block finishes.
type SessionEndedEvent struct {
	baseEvent
	Trials        int
	FinalSSD      time.Duration
	StopSuccesses int // stop trials withheld
	StopFailures  int // stop trials answered
}

// NewSessionEndedEvent creates a SessionEndedEvent.
func NewSessionEndedEvent(at time.Time, trials int, finalSSD time.Duration, successes, failures int) SessionEndedEvent {
	return SessionEndedEvent{
		baseEvent:     newBaseEvent("session.ended", at),
		Trials:        trials,
		FinalSSD:      finalSSD,
		StopSuccesses: successes,
		StopFailures:  failures,
	}
}

// SessionExportedEvent is emitted after the export attempt.
type SessionExportedEvent struct {
	baseEvent
	Rows int
	Err  error
}

// NewSessionExportedEvent creates a SessionExportedEvent.
func NewSessionExportedEvent(at time.Time, rows int, err error) SessionExportedEvent {
	return SessionExportedEvent{
		baseEvent: newBaseEvent("session.exported", at),
		Rows:      rows,
		Err:       err,
	}
}
