package store

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/san-kum/statesim/internal/sim"
)

type ExportData struct {
	Species       string             `json:"species"`
	Phase         string             `json:"phase"`
	Thermostat    string             `json:"thermostat"`
	Dt            float64            `json:"dt"`
	Ticks         int                `json:"ticks"`
	Exploded      bool               `json:"exploded"`
	ExplosionTick int                `json:"explosion_tick"`
	Samples       []sim.Sample       `json:"samples"`
	Metrics       map[string]float64 `json:"metrics"`
	Final         *FinalState        `json:"final,omitempty"`
}

// FinalState is the particle layout at the end of a run, in picometers.
type FinalState struct {
	Container sim.Rect  `json:"container"`
	X         []float64 `json:"x"`
	Y         []float64 `json:"y"`
	Radius    []float64 `json:"radius"`
}

// Header names the run an export belongs to.
type Header struct {
	Species    string
	Phase      string
	Thermostat string
	Dt         float64
}

func NewExportData(h Header, result *sim.Result, final *sim.Snapshot) ExportData {
	data := ExportData{
		Species:       h.Species,
		Phase:         h.Phase,
		Thermostat:    h.Thermostat,
		Dt:            h.Dt,
		Ticks:         result.TicksTaken,
		Exploded:      result.Exploded,
		ExplosionTick: result.ExplosionTick,
		Samples:       result.Samples,
		Metrics:       result.Metrics,
	}

	if final != nil {
		fs := &FinalState{
			Container: final.Container,
			X:         make([]float64, len(final.Atoms)),
			Y:         make([]float64, len(final.Atoms)),
			Radius:    make([]float64, len(final.Atoms)),
		}
		for i, a := range final.Atoms {
			fs.X[i] = a.Position.X
			fs.Y[i] = a.Position.Y
			fs.Radius[i] = a.Radius
		}
		data.Final = fs
	}
	return data
}

// ExportJSON writes the data to path, gzip-compressed when the path ends
// in ".gz".
func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if !strings.HasSuffix(path, ".gz") {
		return encode(file, data)
	}

	zw := gzip.NewWriter(file)
	if err := encode(zw, data); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

func ExportJSONStdout(data ExportData) error {
	return encode(os.Stdout, data)
}

// ImportJSON reads an export written by ExportJSON.
func ImportJSON(path string) (*ExportData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(file)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	}

	var data ExportData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

func encode(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
