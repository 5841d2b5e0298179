package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/san-kum/statesim/internal/analysis"
	"github.com/san-kum/statesim/internal/config"
	"github.com/san-kum/statesim/internal/experiment"
	"github.com/san-kum/statesim/internal/export"
	"github.com/san-kum/statesim/internal/storage"
	"github.com/san-kum/statesim/internal/store"
	"github.com/san-kum/statesim/internal/tui"
	"github.com/spf13/cobra"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := newLogger()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	if runs > 1 {
		return runEnsemble(cfg, st)
	}

	registry := experiment.NewRegistry()
	metrics, err := registry.Metrics(metricNames)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg, logger)
	if err != nil {
		return err
	}
	if err := exp.Setup(nil, metrics); err != nil {
		return err
	}

	if watch {
		live := tui.NewLiveRenderer(os.Stdout, frameRate)
		live.Start()
		defer live.Stop()
		exp.GetSimulator().AddObserver(live)
	}

	fmt.Printf("running %s %s for %d ticks...\n", cfg.Species, cfg.Phase, cfg.Ticks)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(metadataFor(cfg), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", result.TicksTaken)
	if result.Exploded {
		fmt.Printf("container exploded at tick %d\n", result.ExplosionTick)
	}
	printMetrics(result.Metrics)

	final := exp.GetSimulator().Model().Snapshot()
	if exportPath != "" {
		data := store.NewExportData(headerFor(cfg), result, &final)
		if err := store.ExportJSON(exportPath, data); err != nil {
			return err
		}
		fmt.Printf("exported to %s\n", exportPath)
	}
	if chartPath != "" {
		p, err := export.TraceChart(runID, result.Samples, "temperature_k", "pressure_atm")
		if err != nil {
			return err
		}
		if err := export.SaveChart(p, chartPath); err != nil {
			return err
		}
		fmt.Printf("chart written to %s\n", chartPath)
	}
	if svgPath != "" {
		if err := os.WriteFile(svgPath, []byte(export.SnapshotToSVG(final, 600, "#00ccff")), 0644); err != nil {
			return err
		}
		fmt.Printf("layout written to %s\n", svgPath)
	}

	return nil
}

func runEnsemble(cfg *config.Config, st *storage.Store) error {
	fmt.Printf("running %d %s simulations from seed %d...\n", runs, cfg.Species, cfg.Seed)
	start := time.Now()

	results, err := experiment.RunEnsemble(context.Background(), cfg, runs, metricNames, newLogger())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	for i, result := range results {
		meta := metadataFor(cfg)
		meta.Seed = cfg.Seed + uint64(i)
		runID, err := st.Save(meta, result)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s (seed %d)\n", runID, meta.Seed)
		printMetrics(result.Metrics)
	}
	return nil
}

func metadataFor(cfg *config.Config) storage.RunMetadata {
	return storage.RunMetadata{
		Species:    cfg.Species,
		Phase:      cfg.Phase,
		Thermostat: cfg.Thermostat,
		Preset:     preset,
		Seed:       cfg.Seed,
		Dt:         cfg.Dt,
	}
}

func headerFor(cfg *config.Config) store.Header {
	return store.Header{Species: cfg.Species, Phase: cfg.Phase, Thermostat: cfg.Thermostat, Dt: cfg.Dt}
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("metrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, metrics[name])
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if sweepSteps < 2 {
		return fmt.Errorf("sweep needs at least 2 steps, got %d", sweepSteps)
	}

	setPoints := make([]float64, sweepSteps)
	for i := range setPoints {
		setPoints[i] = sweepFrom + (sweepTo-sweepFrom)*float64(i)/float64(sweepSteps-1)
	}

	fmt.Printf("sweeping %s over %d set-points...\n", cfg.Species, sweepSteps)
	points, err := analysis.TemperatureSweep(context.Background(), cfg, setPoints, transient, newLogger())
	if err != nil {
		return err
	}

	fmt.Printf("\n%10s %10s %12s %10s\n", "set-point", "T (K)", "P (atm)", "spread")
	for _, p := range points {
		mark := ""
		if p.Exploded {
			mark = "  exploded"
		}
		fmt.Printf("%10.3f %10.1f %12.3f %10.3f%s\n", p.SetPoint, p.MeanKelvin, p.MeanPressure, p.PressureSpread, mark)
	}
	fmt.Println()
	fmt.Print(analysis.SweepToASCII(points, 60, 15))
	return nil
}
