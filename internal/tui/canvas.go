package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Iron-Ham/stopsignal/internal/experiment"
	"github.com/Iron-Ham/stopsignal/internal/trial"
	"github.com/Iron-Ham/stopsignal/internal/tui/styles"
)

// RingGlyph is drawn along the stimulus frame.
const RingGlyph = "•"

type cellKind uint8

const (
	kindBlank cellKind = iota
	kindText
	kindFrameNeutral
	kindFrameInhibit
	kindArrow
	kindButton
)

type cell struct {
	ch   string
	kind cellKind
}

// Canvas maps the logical task canvas onto a grid of terminal cells. It
// implements experiment.Renderer; the logical origin sits at the centre cell.
type Canvas struct {
	cols, rows int
	cells      [][]cell

	// ButtonDone dims buttons drawn on this canvas.
	ButtonDone bool
}

// NewCanvas returns a blank canvas of cols x rows cells.
func NewCanvas(cols, rows int) *Canvas {
	cols = max(cols, 1)
	rows = max(rows, 1)
	cells := make([][]cell, rows)
	for r := range cells {
		cells[r] = make([]cell, cols)
		for c := range cells[r] {
			cells[r][c] = cell{ch: " "}
		}
	}
	return &Canvas{cols: cols, rows: rows, cells: cells}
}

// Size returns the canvas dimensions in cells.
func (c *Canvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// Cell returns the cell a logical point falls in. The result may lie
// outside the grid.
func (c *Canvas) Cell(p experiment.Point) (col, row int) {
	col = int(math.Round((p.X + experiment.CanvasWidth/2) / experiment.CanvasWidth * float64(c.cols-1)))
	row = int(math.Round((p.Y + experiment.CanvasHeight/2) / experiment.CanvasHeight * float64(c.rows-1)))
	return col, row
}

// Logical returns the logical point at the centre of a cell.
func (c *Canvas) Logical(col, row int) (x, y float64) {
	if c.cols > 1 {
		x = float64(col)/float64(c.cols-1)*experiment.CanvasWidth - experiment.CanvasWidth/2
	}
	if c.rows > 1 {
		y = float64(row)/float64(c.rows-1)*experiment.CanvasHeight - experiment.CanvasHeight/2
	}
	return x, y
}

func (c *Canvas) set(col, row int, ch string, kind cellKind) {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return
	}
	c.cells[row][col] = cell{ch: ch, kind: kind}
}

func (c *Canvas) write(col, row int, s string, kind cellKind) {
	for _, r := range s {
		ch := string(r)
		w := ansi.StringWidth(ch)
		if w == 0 {
			continue
		}
		c.set(col, row, ch, kind)
		// Wide glyphs own the following cell.
		for i := 1; i < w; i++ {
			c.set(col+i, row, "", kind)
		}
		col += w
	}
}

// Text draws s centred on p.
func (c *Canvas) Text(p experiment.Point, s string) {
	col, row := c.Cell(p)
	c.write(col-ansi.StringWidth(s)/2, row, s, kindText)
}

// Ellipse draws the stimulus frame as a ring of glyphs.
func (c *Canvas) Ellipse(signal trial.Signal) {
	kind := kindFrameNeutral
	if signal == trial.SignalInhibit {
		kind = kindFrameInhibit
	}

	a := float64(experiment.EllipseWidth) / 2
	b := float64(experiment.EllipseHeight) / 2
	steps := 8 * (c.cols + c.rows)
	for i := range steps {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		col, row := c.Cell(experiment.Point{X: a * math.Cos(theta), Y: b * math.Sin(theta)})
		c.set(col, row, RingGlyph, kind)
	}
}

// Arrow draws the direction glyph at offset from the centre.
func (c *Canvas) Arrow(d trial.Direction, offset experiment.Point) {
	col, row := c.Cell(offset)
	c.write(col, row, d.Glyph(), kindArrow)
}

// Button draws a box around r with label centred inside. The box grows to
// fit the label when the terminal is small.
func (c *Canvas) Button(r experiment.Rect, label string) {
	left, top := c.Cell(experiment.Point{X: r.Center.X - r.Width/2, Y: r.Center.Y - r.Height/2})
	right, bottom := c.Cell(experiment.Point{X: r.Center.X + r.Width/2, Y: r.Center.Y + r.Height/2})

	labelWidth := ansi.StringWidth(label)
	if right-left < labelWidth+3 {
		mid := (left + right) / 2
		left = mid - labelWidth/2 - 2
		right = left + labelWidth + 3
	}
	if bottom-top < 2 {
		bottom = top + 2
	}

	for col := left + 1; col < right; col++ {
		c.set(col, top, "─", kindButton)
		c.set(col, bottom, "─", kindButton)
	}
	for row := top + 1; row < bottom; row++ {
		c.set(left, row, "│", kindButton)
		c.set(right, row, "│", kindButton)
	}
	c.set(left, top, "┌", kindButton)
	c.set(right, top, "┐", kindButton)
	c.set(left, bottom, "└", kindButton)
	c.set(right, bottom, "┘", kindButton)

	c.write((left+right+1)/2-labelWidth/2, (top+bottom)/2, label, kindButton)
}

// Lines returns the canvas as plain text rows.
func (c *Canvas) Lines() []string {
	lines := make([]string, c.rows)
	for r, row := range c.cells {
		var sb strings.Builder
		for _, cl := range row {
			sb.WriteString(cl.ch)
		}
		lines[r] = sb.String()
	}
	return lines
}

func (c *Canvas) style(kind cellKind) lipgloss.Style {
	switch kind {
	case kindText:
		return styles.Text
	case kindFrameNeutral:
		return styles.Frame(trial.SignalNeutral)
	case kindFrameInhibit:
		return styles.Frame(trial.SignalInhibit)
	case kindArrow:
		return styles.Arrow
	case kindButton:
		if c.ButtonDone {
			return styles.ButtonDone
		}
		return styles.Button
	default:
		return lipgloss.NewStyle()
	}
}

// View renders the canvas with styles applied to runs of like cells.
func (c *Canvas) View() string {
	var sb strings.Builder
	for r, row := range c.cells {
		if r > 0 {
			sb.WriteByte('\n')
		}
		var run strings.Builder
		kind := row[0].kind
		for _, cl := range row {
			if cl.kind != kind {
				sb.WriteString(c.style(kind).Render(run.String()))
				run.Reset()
				kind = cl.kind
			}
			run.WriteString(cl.ch)
		}
		sb.WriteString(c.style(kind).Render(run.String()))
	}
	return sb.String()
}
