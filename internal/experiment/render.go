package experiment

import (
	"fmt"

	"github.com/Iron-Ham/stopsignal/internal/trial"
)

// Logical canvas. The origin is the centre; y grows downwards.
const (
	CanvasWidth  = 800
	CanvasHeight = 600

	EllipseWidth  = 400
	EllipseHeight = 200

	ArrowOffsetX = 80
	ArrowOffsetY = -4
)

// FixationMark is drawn at the centre during fixation and stimulus.
const FixationMark = "+"

// Point is a logical canvas position.
type Point struct {
	X, Y float64
}

// Rect is a logical canvas rectangle anchored at its centre.
type Rect struct {
	Center        Point
	Width, Height float64
}

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Center.X-r.Width/2 && x <= r.Center.X+r.Width/2 &&
		y >= r.Center.Y-r.Height/2 && y <= r.Center.Y+r.Height/2
}

// ExportButton is the clickable control on the end screen.
var ExportButton = Rect{Center: Point{0, 120}, Width: 240, Height: 60}

// Renderer receives the semantic draw calls for one frame.
type Renderer interface {
	// Text draws a centered line of text at p.
	Text(p Point, s string)
	// Ellipse draws the fixed-size open frame around the centre.
	Ellipse(signal trial.Signal)
	// Arrow draws the direction glyph at offset from the centre.
	Arrow(d trial.Direction, offset Point)
	// Button draws a clickable control.
	Button(r Rect, label string)
}

// ArrowOffset returns where the arrow for d is drawn.
func ArrowOffset(d trial.Direction) Point {
	if d == trial.Left {
		return Point{-ArrowOffsetX, ArrowOffsetY}
	}
	return Point{ArrowOffsetX, ArrowOffsetY}
}

var introLines = []string{
	"Press the arrow key that matches the arrow on screen.",
	"Respond as quickly as you can.",
	"If the frame turns blue, do not press anything.",
}

// Render issues the draw calls for the current state.
func (m *Machine) Render(r Renderer) {
	switch m.state {
	case StateIntro:
		r.Text(Point{0, -120}, "Arrow task")
		for i, line := range introLines {
			r.Text(Point{0, -40 + float64(i)*40}, line)
		}
		r.Text(Point{0, 160}, "Press any key to begin")

	case StateFixation:
		r.Ellipse(trial.SignalNeutral)
		r.Text(Point{}, FixationMark)

	case StateStimulus:
		if m.current == nil {
			return
		}
		arrow := m.current.DisplayedDirection()
		r.Ellipse(m.clock.Signal())
		r.Text(Point{}, FixationMark)
		r.Arrow(arrow, ArrowOffset(arrow))

	case StateBreak:
		r.Text(Point{0, -40}, fmt.Sprintf("Block %d of %d complete", m.block+1, m.params.TotalSets))
		r.Text(Point{0, 0}, "Take a short rest.")
		r.Text(Point{0, 60}, "Press any key to continue")

	case StateEnd:
		r.Text(Point{0, -60}, "The task is complete. Thank you!")
		label := "Export data"
		if m.exported {
			label = "Data exported"
		}
		r.Button(ExportButton, label)
	}
}
