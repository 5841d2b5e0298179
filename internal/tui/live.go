package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/statesim/internal/sim"
	"github.com/san-kum/statesim/internal/viz"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer redraws the container on out as a run progresses, at most
// frameRate times a second. It is attached to a simulator as an observer.
type LiveRenderer struct {
	out       io.Writer
	frameRate int
	lastFrame time.Time
	canvas    *viz.Canvas
}

func NewLiveRenderer(out io.Writer, frameRate int) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LiveRenderer{
		out:       out,
		frameRate: frameRate,
		canvas:    viz.NewCanvas(width, height),
	}
}

func (r *LiveRenderer) OnStep(s sim.Snapshot) {
	elapsed := time.Since(r.lastFrame)
	if elapsed < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()

	viz.DrawSnapshot(r.canvas, s, sim.InitialContainerHeight)
	r.render(s)
}

func (r *LiveRenderer) render(s sim.Snapshot) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  tick %d\n", s.Species, s.Tick))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas.Grid {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	b.WriteString(fmt.Sprintf("  T=%.1fK set=%.3f P=%.2fatm n=%d", s.TemperatureKelvin, s.TemperatureSetPoint, s.PressureAtm, s.Molecules))
	if s.Exploded {
		b.WriteString("  EXPLODED")
	}
	b.WriteString("\n")

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
