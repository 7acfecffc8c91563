package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/sortviz/internal/trace"
)

const (
	maxRows     = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
	accent      = "\033[1;33m"
	reset       = "\033[0m"
)

// LiveRenderer draws each Event as a bar chart on a terminal. It drops
// frames arriving faster than frameRate but always draws the final one.
type LiveRenderer struct {
	out       io.Writer
	frameRate int
	lastFrame time.Time
	clear     bool
	frames    int
	last      trace.Event
}

// NewLiveRenderer renders to out. frameRate <= 0 draws every Event.
func NewLiveRenderer(out io.Writer, frameRate int) *LiveRenderer {
	return &LiveRenderer{
		out:       out,
		frameRate: frameRate,
		clear:     true,
	}
}

// SetClear toggles clearing the screen before each frame.
func (r *LiveRenderer) SetClear(on bool) { r.clear = on }

func (r *LiveRenderer) OnStep(ev trace.Event) {
	r.last = ev
	if !ev.Final && r.frameRate > 0 {
		if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
			return
		}
	}
	r.lastFrame = time.Now()
	r.frames++
	fmt.Fprint(r.out, r.Render(ev))
}

// Frames returns how many frames were drawn.
func (r *LiveRenderer) Frames() int { return r.frames }

// Last returns the most recent Event seen, drawn or not.
func (r *LiveRenderer) Last() trace.Event { return r.last }

func (r *LiveRenderer) Render(ev trace.Event) string {
	var b strings.Builder
	if r.clear {
		b.WriteString(clearScreen)
	}

	step := ev.Step
	status := fmt.Sprintf("step %d", ev.Index)
	switch {
	case ev.Final:
		status = fmt.Sprintf("done in %d steps", ev.Index)
	case ev.Session == "":
		status = "idle"
	}
	name := ev.Algorithm
	if name == "" {
		name = "sortviz"
	}
	b.WriteString(fmt.Sprintf("  %s  %s\n", name, status))

	n := step.Len()
	b.WriteString("  " + strings.Repeat("-", n*3) + "\n")

	values := step.Values()
	top := values.Max()
	rows := top
	if rows > maxRows {
		rows = maxRows
	}
	for row := rows; row >= 1; row-- {
		b.WriteString("  ")
		for i, v := range values {
			cell := "   "
			if scaled(v, top, rows) >= row {
				cell = "## "
			}
			if step.Active(i) && cell != "   " {
				cell = accent + "##" + reset + " "
			}
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", n*3) + "\n")
	b.WriteString("  ")
	for i, v := range values {
		label := fmt.Sprintf("%-3d", v)
		if step.Active(i) {
			label = accent + fmt.Sprintf("%-2d", v) + reset + " "
		}
		b.WriteString(label)
	}
	b.WriteString("\n")
	return b.String()
}

// scaled maps v onto [0, rows] relative to top.
func scaled(v, top, rows int) int {
	if top <= 0 || v <= 0 {
		return 0
	}
	if top <= rows {
		return v
	}
	return (v*rows + top - 1) / top
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
