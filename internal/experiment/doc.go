// Package experiment runs a go/no-go + stop-signal session as an explicit
// state machine.
//
// The machine is driven from outside: a scheduler calls [Machine.Tick] once
// per frame with the current time, and input events are delivered through
// [Machine.HandleInput] with their own timestamps. Neither call blocks or
// reads the system clock, so a whole session can be replayed in a test with
// synthetic times and a seeded random source.
//
// # States
//
//	intro -> (ISI -> fixation -> stimulus -> interTrial)* -> break -> ... -> end
//
// intro and break wait for a key press. end is terminal: the only input it
// accepts is the one-time export trigger.
//
// # Collaborators
//
//   - [trial.Generator] builds each block's trial list at block start.
//   - [trialclock.Clock] sequences the phases of the running trial.
//   - [staircase.Controller] owns the stop-signal delay across blocks.
//   - [record.Recorder] receives one outcome per completed trial.
//   - [Renderer] is told what to draw; how it looks is up to the renderer.
package experiment
