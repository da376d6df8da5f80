// Package event provides a synchronous pub-sub bus for task events.
//
// The experiment state machine publishes what happened (a block started or
// completed, a trial completed, the staircase moved, the session ended or was
// exported)
// without knowing who listens. The CLI subscribes the session logger; tests
// subscribe recorders of their own.
//
// # Main Types
//
//   - [Event]: interface providing EventType() and Timestamp()
//   - [Bus]: synchronous dispatcher, safe for concurrent use
//   - [Handler]: func(Event)
//
// # Event Types
//
//   - [BlockStartedEvent] ("block.started")
//   - [BlockCompletedEvent] ("block.completed")
//   - [TrialCompletedEvent] ("trial.completed")
//   - [StaircaseUpdatedEvent] ("staircase.updated")
//   - [SessionEndedEvent] ("session.ended")
//   - [SessionExportedEvent] ("session.exported")
//
// # Usage
//
//	bus := event.NewBus()
//	bus.Subscribe("trial.completed", func(e event.Event) {
//	    tc := e.(event.TrialCompletedEvent)
//	    fmt.Println(tc.Type, tc.Responded)
//	})
//
// Handlers run on the publisher's goroutine, in registration order, specific
// subscriptions before wildcard ones. A panicking handler is recovered and
// reported to the bus's panic handler; delivery continues.
package event
