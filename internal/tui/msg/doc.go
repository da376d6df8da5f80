// Package msg defines the message types used by the TUI's Bubbletea event loop.
//
// This package contains the [tea.Msg] types the task display can receive,
// such as frame ticks and status expiry, along with the command factories
// that produce them.
package msg
