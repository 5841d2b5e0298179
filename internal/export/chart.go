package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/statesim/internal/analysis"
	"github.com/san-kum/statesim/internal/sim"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	ChartWidth  = 6 * vg.Inch
	ChartHeight = 4 * vg.Inch
)

// TraceChart plots the named sample fields against tick, one line each.
func TraceChart(title string, samples []sim.Sample, fields ...string) (*plot.Plot, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples to plot")
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to plot")
	}

	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "tick"
	p.Y.Label.Text = strings.Join(fields, ", ")
	p.Add(plotter.NewGrid())

	for i, field := range fields {
		ys, err := analysis.Series(samples, field)
		if err != nil {
			return nil, err
		}
		pts := make(plotter.XYs, len(samples))
		for j, s := range samples {
			pts[j].X = float64(s.Tick)
			pts[j].Y = ys[j]
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(field, line)
	}
	return p, nil
}

// SaveChart writes p to path. The extension picks the format
// (png, svg, pdf, ...).
func SaveChart(p *plot.Plot, path string) error {
	return p.Save(ChartWidth, ChartHeight, path)
}

func WriteChart(p *plot.Plot, w io.Writer, format string) error {
	wt, err := p.WriterTo(ChartWidth, ChartHeight, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
