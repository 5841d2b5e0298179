package viz

import (
	"math"

	"github.com/san-kum/statesim/internal/sim"
)

// DrawSnapshot clears c and draws s on it. viewHeight is the height in
// picometers mapped onto the canvas, so a rising lid stays in view; it is
// raised to the container height when smaller. The lid is omitted once
// the container has exploded.
func DrawSnapshot(c *Canvas, s sim.Snapshot, viewHeight float64) {
	c.Clear()
	if s.Container.Width <= 0 {
		return
	}
	viewHeight = math.Max(viewHeight, s.Container.Height)

	w, h := c.DotWidth()-1, c.DotHeight()-1
	scale := math.Min(float64(w)/s.Container.Width, float64(h)/viewHeight)
	right := int(s.Container.Width * scale)

	toDots := func(x, y float64) (int, int) {
		return int((x - s.Container.X) * scale), h - int((y-s.Container.Y)*scale)
	}

	top := h - int(viewHeight*scale)
	c.DrawLine(0, h, right, h)
	c.DrawLine(0, top, 0, h)
	c.DrawLine(right, top, right, h)
	if !s.Exploded {
		_, lid := toDots(0, s.Container.Height)
		c.DrawLine(0, lid, right, lid)
	}

	for _, a := range s.Atoms {
		x, y := toDots(a.Position.X, a.Position.Y)
		c.FillCircle(x, y, int(a.Radius*scale))
	}
}
