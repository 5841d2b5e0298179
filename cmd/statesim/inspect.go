package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/statesim/internal/analysis"
	"github.com/san-kum/statesim/internal/export"
	"github.com/san-kum/statesim/internal/sim"
	"github.com/san-kum/statesim/internal/storage"
	"github.com/san-kum/statesim/internal/store"
	"github.com/spf13/cobra"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSPECIES\tPHASE\tTIME\tTICKS\tTHERMOSTAT\tEXPLODED")

	for _, run := range runs {
		exploded := "-"
		if run.Exploded {
			exploded = fmt.Sprintf("tick %d", run.ExplosionTick)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			run.ID,
			run.Species,
			run.Phase,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Thermostat,
			exploded,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []sim.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("no samples in run %s", runID)
	}
	return meta, samples, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("species: %s\n", meta.Species)
	fmt.Printf("samples: %d\n\n", len(samples))

	for _, name := range fields {
		data, err := analysis.Series(samples, name)
		if err != nil {
			return fmt.Errorf("%w (available: %v)", err, analysis.Fields())
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func chartRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	p, err := export.TraceChart(meta.ID, samples, fields...)
	if err != nil {
		return err
	}
	if err := export.SaveChart(p, args[1]); err != nil {
		return err
	}
	fmt.Printf("chart written to %s\n", args[1])
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	result := &sim.Result{
		Samples:       samples,
		Metrics:       meta.Metrics,
		TicksTaken:    meta.Ticks,
		ExplosionTick: meta.ExplosionTick,
		Exploded:      meta.Exploded,
	}
	h := store.Header{Species: meta.Species, Phase: meta.Phase, Thermostat: meta.Thermostat, Dt: meta.Dt}
	data := store.NewExportData(h, result, nil)

	if len(args) == 2 {
		return store.ExportJSON(args[1], data)
	}
	return store.ExportJSONStdout(data)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no data to export")
	}

	return storage.WriteSamplesCSV(os.Stdout, samples)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	data, err := analysis.Series(samples, field)
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, analysis.Fields())
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("species: %s  field: %s\n\n", meta.Species, field)

	s := analysis.Summarize(data)
	fmt.Printf("mean:   %.6f\n", s.Mean)
	fmt.Printf("stddev: %.6f\n", s.StdDev)
	fmt.Printf("range:  [%.6f, %.6f]\n\n", s.Min, s.Max)

	ps := analysis.PowerSpectrum(data)
	if len(ps) < 4 {
		return nil
	}
	plotData := ps[:len(ps)/2]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum ("+field+")"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(data, 1/meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	points := analysis.PhaseDiagram(samples)
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("x: temperature (K)  y: pressure (atm)  points: %d\n\n", len(points))
	fmt.Print(analysis.ScatterToASCII(points, 70, 20))
	return nil
}
