package experiment

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Iron-Ham/stopsignal/internal/trial"
)

// recorder collects draw calls as strings.
type recorder struct {
	calls []string
}

func (r *recorder) Text(p Point, s string) {
	r.calls = append(r.calls, fmt.Sprintf("text(%g,%g) %s", p.X, p.Y, s))
}

func (r *recorder) Ellipse(signal trial.Signal) {
	r.calls = append(r.calls, "ellipse "+string(signal))
}

func (r *recorder) Arrow(d trial.Direction, offset Point) {
	r.calls = append(r.calls, fmt.Sprintf("arrow %s at (%g,%g)", d, offset.X, offset.Y))
}

func (r *recorder) Button(rect Rect, label string) {
	r.calls = append(r.calls, "button "+label)
}

func (r *recorder) has(prefix string) bool {
	for _, c := range r.calls {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

func render(m *Machine) *recorder {
	r := &recorder{}
	m.Render(r)
	return r
}

func TestRenderIntro(t *testing.T) {
	m := newMachine(t, DefaultParams())
	r := render(m)

	if !r.has("text(0,160) Press any key to begin") {
		t.Errorf("intro calls = %v", r.calls)
	}
	if r.has("ellipse") {
		t.Error("intro should not draw the frame")
	}
}

func TestRenderTrialPhases(t *testing.T) {
	m := newMachine(t, smallParams(trial.IncongruentGo, 4, 1))
	d := newDriver(t, m)
	d.press(InputAnyKey)

	if r := render(m); len(r.calls) != 0 {
		t.Errorf("ISI should be blank, got %v", r.calls)
	}

	d.until(func() bool { return m.State() == StateFixation })
	r := render(m)
	if !r.has("ellipse white") || !r.has("text(0,0) +") || r.has("arrow") {
		t.Errorf("fixation calls = %v", r.calls)
	}

	d.toStimulus()
	cur, _, _ := m.Current()
	shown := cur.Direction.Opposite()
	r = render(m)
	want := fmt.Sprintf("arrow %s at (%g,-4)", shown, ArrowOffset(shown).X)
	if !r.has(want) {
		t.Errorf("stimulus calls = %v, want %q", r.calls, want)
	}
	if !r.has("ellipse white") {
		t.Errorf("incongruent go trial drew %v", r.calls)
	}

	d.until(func() bool { return m.State() == StateInterTrial })
	if r := render(m); len(r.calls) != 0 {
		t.Errorf("interTrial should be blank, got %v", r.calls)
	}
}

func TestRenderNoGoFrame(t *testing.T) {
	m := newMachine(t, smallParams(trial.NoGo, 4, 1))
	d := newDriver(t, m)
	d.toStimulus()

	if r := render(m); !r.has("ellipse blue") {
		t.Errorf("no-go stimulus calls = %v", r.calls)
	}
}

func TestRenderBreakAndEnd(t *testing.T) {
	m := newMachine(t, smallParams(trial.CongruentGo, 4, 2))
	d := newDriver(t, m)
	d.press(InputAnyKey)
	d.until(func() bool { return m.State() == StateBreak })

	if r := render(m); !r.has("text(0,-40) Block 1 of 2 complete") {
		t.Errorf("break calls = %v", r.calls)
	}

	d.press(InputAnyKey)
	d.until(func() bool { return m.State() == StateEnd })
	if r := render(m); !r.has("button Export data") {
		t.Errorf("end calls = %v", r.calls)
	}

	if err := m.Export(&memSink{}, d.now); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if r := render(m); !r.has("button Data exported") {
		t.Errorf("end calls after export = %v", r.calls)
	}
}

func TestArrowOffset(t *testing.T) {
	if got := ArrowOffset(trial.Left); got != (Point{-80, -4}) {
		t.Errorf("ArrowOffset(left) = %v", got)
	}
	if got := ArrowOffset(trial.Right); got != (Point{80, -4}) {
		t.Errorf("ArrowOffset(right) = %v", got)
	}
}

func TestRectContains(t *testing.T) {
	tests := []struct {
		x, y float64
		want bool
	}{
		{0, 120, true},
		{-120, 90, true},
		{120, 150, true},
		{121, 120, false},
		{0, 151, false},
	}
	for _, tt := range tests {
		if got := ExportButton.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%g, %g) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
