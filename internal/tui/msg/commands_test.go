package msg

import (
	"testing"
	"time"
)

func TestTick(t *testing.T) {
	cmd := Tick(20 * time.Millisecond)

	if cmd == nil {
		t.Fatal("Tick() returned nil command")
	}

	// Execute the command and verify the message type
	start := time.Now()
	result := cmd()
	elapsed := time.Since(start)

	if elapsed < 10*time.Millisecond {
		t.Errorf("Tick() returned too quickly: %v", elapsed)
	}

	// Result should be a TickMsg
	tickMsg, ok := result.(TickMsg)
	if !ok {
		t.Fatalf("Tick() returned %T, want TickMsg", result)
	}

	// The time should be close to now
	if diff := time.Since(time.Time(tickMsg)); diff > time.Second {
		t.Errorf("TickMsg time is too old: %v ago", diff)
	}
}

func TestRingBell(t *testing.T) {
	cmd := RingBell()

	if cmd == nil {
		t.Fatal("RingBell() returned nil command")
	}
	if result := cmd(); result != nil {
		t.Errorf("RingBell() returned %v, want nil", result)
	}
}

func TestClearStatusAfter(t *testing.T) {
	setAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	cmd := ClearStatusAfter(5*time.Millisecond, setAt)

	result, ok := cmd().(ClearStatusMsg)
	if !ok {
		t.Fatalf("ClearStatusAfter() returned %T, want ClearStatusMsg", result)
	}
	if !result.SetAt.Equal(setAt) {
		t.Errorf("SetAt = %v, want %v", result.SetAt, setAt)
	}
}
