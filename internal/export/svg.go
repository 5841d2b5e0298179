package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/statesim/internal/sim"
)

// SnapshotToSVG draws the container and its atoms, width pixels across.
// Model coordinates grow upward so rows are flipped.
func SnapshotToSVG(s sim.Snapshot, width int, fill string) string {
	if width <= 0 || s.Container.Width <= 0 || s.Container.Height <= 0 {
		return ""
	}

	scale := float64(width) / s.Container.Width
	height := int(s.Container.Height*scale + 0.5)
	if height < 1 {
		height = 1
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a" stroke="#888888" stroke-width="2"/>
<g fill="%s">
`, width, height, width, height, fill))

	for _, a := range s.Atoms {
		cx := (a.Position.X - s.Container.X) * scale
		cy := float64(height) - (a.Position.Y-s.Container.Y)*scale
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, a.Radius*scale))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
