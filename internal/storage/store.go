package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/statesim/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string             `json:"id"`
	Species       string             `json:"species"`
	Phase         string             `json:"phase"`
	Thermostat    string             `json:"thermostat"`
	Preset        string             `json:"preset,omitempty"`
	Timestamp     time.Time          `json:"timestamp"`
	Seed          uint64             `json:"seed"`
	Dt            float64            `json:"dt"`
	Ticks         int                `json:"ticks"`
	Exploded      bool               `json:"exploded"`
	ExplosionTick int                `json:"explosion_tick"`
	Metrics       map[string]float64 `json:"metrics"`
}

var sampleHeader = []string{
	"tick", "set_point", "temperature", "temperature_k", "pressure", "pressure_atm",
	"potential_energy", "kinetic_energy", "molecules", "container_height", "exploded",
}

// Save writes metadata.json and samples.csv into a new run directory and
// returns the run ID. ID, Timestamp, Ticks and the explosion fields of
// meta are filled in from the result.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", meta.Species, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Ticks = result.TicksTaken
	meta.Exploded = result.Exploded
	meta.ExplosionTick = result.ExplosionTick
	meta.Metrics = result.Metrics

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "samples.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteSamplesCSV(csvFile, result.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

// WriteSamplesCSV writes a header row followed by one row per sample.
func WriteSamplesCSV(out io.Writer, samples []sim.Sample) error {
	w := csv.NewWriter(out)

	if err := w.Write(sampleHeader); err != nil {
		return err
	}

	for _, smp := range samples {
		row := []string{
			strconv.Itoa(smp.Tick),
			formatFloat(smp.TemperatureSetPoint),
			formatFloat(smp.Temperature),
			formatFloat(smp.TemperatureKelvin),
			formatFloat(smp.Pressure),
			formatFloat(smp.PressureAtm),
			formatFloat(smp.PotentialEnergy),
			formatFloat(smp.KineticEnergy),
			strconv.Itoa(smp.Molecules),
			formatFloat(smp.ContainerHeight),
			strconv.FormatBool(smp.Exploded),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

// List returns the saved runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSamples reads samples.csv back. Rows that fail to parse are skipped.
func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	csvPath := filepath.Join(s.baseDir, runID, "samples.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []sim.Sample{}, nil
	}

	samples := make([]sim.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		smp, ok := parseSample(record)
		if !ok {
			continue
		}
		samples = append(samples, smp)
	}

	return samples, nil
}

func parseSample(record []string) (sim.Sample, bool) {
	if len(record) != len(sampleHeader) {
		return sim.Sample{}, false
	}

	var smp sim.Sample
	var err error
	floats := make([]float64, 0, 8)
	for _, idx := range []int{1, 2, 3, 4, 5, 6, 7, 9} {
		v, perr := strconv.ParseFloat(record[idx], 64)
		if perr != nil {
			return sim.Sample{}, false
		}
		floats = append(floats, v)
	}

	if smp.Tick, err = strconv.Atoi(record[0]); err != nil {
		return sim.Sample{}, false
	}
	if smp.Molecules, err = strconv.Atoi(record[8]); err != nil {
		return sim.Sample{}, false
	}
	if smp.Exploded, err = strconv.ParseBool(record[10]); err != nil {
		return sim.Sample{}, false
	}

	smp.TemperatureSetPoint = floats[0]
	smp.Temperature = floats[1]
	smp.TemperatureKelvin = floats[2]
	smp.Pressure = floats[3]
	smp.PressureAtm = floats[4]
	smp.PotentialEnergy = floats[5]
	smp.KineticEnergy = floats[6]
	smp.ContainerHeight = floats[7]
	return smp, true
}
