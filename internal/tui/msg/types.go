package msg

import "time"

// TickMsg is sent once per display frame to drive the trial clock.
type TickMsg time.Time

// ClearStatusMsg asks the model to clear a status line set at SetAt.
// A newer status is left alone.
type ClearStatusMsg struct {
	SetAt time.Time
}
