package stream

import (
	"encoding/json"

	"github.com/san-kum/statesim/internal/sim"
)

const (
	EventTemperature = "temperature"
	EventPressure    = "pressure"
	EventExploded    = "exploded"
	EventSpecies     = "species"
	EventFrame       = "frame"
)

type Event struct {
	Type    string  `json:"type"`
	Value   float64 `json:"value,omitempty"`
	Species string  `json:"species,omitempty"`
	Frame   *Frame  `json:"frame,omitempty"`
}

// Frame is a compact snapshot. Atom coordinates are in picometers.
type Frame struct {
	Tick         int       `json:"tick"`
	Species      string    `json:"species"`
	Width        float64   `json:"width"`
	Height       float64   `json:"height"`
	TemperatureK float64   `json:"temperature_k"`
	SetPoint     float64   `json:"set_point"`
	PressureAtm  float64   `json:"pressure_atm"`
	Molecules    int       `json:"molecules"`
	Exploded     bool      `json:"exploded"`
	X            []float64 `json:"x"`
	Y            []float64 `json:"y"`
	Radius       []float64 `json:"r"`
}

func NewFrame(s sim.Snapshot) *Frame {
	f := &Frame{
		Tick:         s.Tick,
		Species:      s.Species.String(),
		Width:        s.Container.Width,
		Height:       s.Container.Height,
		TemperatureK: s.TemperatureKelvin,
		SetPoint:     s.TemperatureSetPoint,
		PressureAtm:  s.PressureAtm,
		Molecules:    s.Molecules,
		Exploded:     s.Exploded,
		X:            make([]float64, len(s.Atoms)),
		Y:            make([]float64, len(s.Atoms)),
		Radius:       make([]float64, len(s.Atoms)),
	}
	for i, a := range s.Atoms {
		f.X[i] = a.Position.X
		f.Y[i] = a.Position.Y
		f.Radius[i] = a.Radius
	}
	return f
}

func (e Event) JSON() ([]byte, error) {
	return json.Marshal(e)
}
