package analysis

import (
	"context"
	"fmt"

	"github.com/san-kum/statesim/internal/config"
	"github.com/san-kum/statesim/internal/experiment"
	"github.com/san-kum/statesim/internal/logging"
)

// SweepPoint is the equilibrium of one run of a temperature sweep.
type SweepPoint struct {
	SetPoint       float64
	MeanKelvin     float64
	MeanPressure   float64
	PressureSpread float64
	Exploded       bool
}

// TemperatureSweep runs base once per set-point. The first transient
// ticks of each run are discarded before averaging.
func TemperatureSweep(ctx context.Context, base *config.Config, setPoints []float64, transient int, logger logging.Logger) ([]SweepPoint, error) {
	if transient < 0 || transient >= base.Ticks {
		return nil, fmt.Errorf("transient %d must be within the %d ticks of a run", transient, base.Ticks)
	}

	results := make([]SweepPoint, 0, len(setPoints))
	for _, t := range setPoints {
		cfg := *base
		cfg.Temperature = t
		cfg.Heating = 0
		cfg.Events = nil

		exp, err := experiment.New(&cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := exp.Setup(nil, nil); err != nil {
			return nil, err
		}
		res, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		settled := res.Samples[transient+1:]
		kelvin, _ := Series(settled, "temperature_k")
		pressure, _ := Series(settled, "pressure_atm")
		ps := Summarize(pressure)

		results = append(results, SweepPoint{
			SetPoint:       t,
			MeanKelvin:     Summarize(kelvin).Mean,
			MeanPressure:   ps.Mean,
			PressureSpread: ps.StdDev,
			Exploded:       res.Exploded,
		})
	}
	return results, nil
}

// SweepToASCII plots mean pressure against set-point.
func SweepToASCII(data []SweepPoint, width, height int) string {
	points := make([]Point, len(data))
	for i, p := range data {
		points[i] = Point{X: p.SetPoint, Y: p.MeanPressure}
	}
	return ScatterToASCII(points, width, height)
}
