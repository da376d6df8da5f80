package msg

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Tick returns a command that sends a TickMsg after interval.
// This drives the frame loop.
func Tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// RingBell returns a command that outputs a terminal bell character.
// Used to alert the experimenter when the session ends.
func RingBell() tea.Cmd {
	return func() tea.Msg {
		// Write the bell character directly to stdout
		// This works even when Bubbletea is in alt-screen mode
		_, _ = os.Stdout.Write([]byte{'\a'})
		return nil
	}
}

// ClearStatusAfter returns a command that expires the status set at setAt
// once d has passed.
func ClearStatusAfter(d time.Duration, setAt time.Time) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{SetAt: setAt}
	})
}
