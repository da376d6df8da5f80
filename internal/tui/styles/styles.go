package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/stopsignal/internal/trial"
)

var (
	// Colors - the frame colors are fixed by the task; the rest only need
	// to stay readable on dark terminals
	NeutralColor = lipgloss.Color("#FFFFFF") // White frame, go signal
	InhibitColor = lipgloss.Color("#3B82F6") // Blue frame, withhold signal
	TextColor    = lipgloss.Color("#F9FAFB") // Light text
	MutedColor   = lipgloss.Color("#9CA3AF") // Gray
	PrimaryColor = lipgloss.Color("#A78BFA") // Purple
	SuccessColor = lipgloss.Color("#10B981") // Green
	ErrorColor   = lipgloss.Color("#F87171") // Red

	// Convenience styles for colors
	Text    = lipgloss.NewStyle().Foreground(TextColor)
	Muted   = lipgloss.NewStyle().Foreground(MutedColor)
	Success = lipgloss.NewStyle().Foreground(SuccessColor)
	Error   = lipgloss.NewStyle().Foreground(ErrorColor)

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor)

	// Stimulus styles
	Fixation = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor)

	Arrow = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextColor)

	// Button styles
	Button = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor)

	ButtonDone = lipgloss.NewStyle().
			Foreground(MutedColor)

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 1)
)

// SignalColor returns the frame color for a stimulus signal
func SignalColor(signal trial.Signal) lipgloss.Color {
	if signal == trial.SignalInhibit {
		return InhibitColor
	}
	return NeutralColor
}

// Frame returns the style for the stimulus frame
func Frame(signal trial.Signal) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(SignalColor(signal))
}
