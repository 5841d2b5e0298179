package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/san-kum/statesim/internal/config"
	"github.com/san-kum/statesim/internal/logging"
	"github.com/san-kum/statesim/internal/tui"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string

	configFile  string
	preset      string
	phase       string
	thermostat  string
	ticks       int
	dt          float64
	seed        uint64
	temperature float64
	heating     float64
	gravity     float64
	height      float64
	injections  int
	epsilon     float64
	collision   float64

	metricNames []string
	runs        int
	exportPath  string
	chartPath   string
	svgPath     string
	watch       bool
	frameRate   int

	fields []string
	field  string

	addr       string
	frameEvery int

	grid   []string
	metric string

	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
	transient  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "statesim",
		Short: "molecular dynamics states of matter lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.RunInteractive(seed, newLogger())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".statesim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 1, "random seed")

	runCmd := &cobra.Command{
		Use:   "run [species]",
		Short: "run simulation and save the samples",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addModelFlags(runCmd)
	runCmd.Flags().StringSliceVar(&metricNames, "metrics", nil, "metrics to record (default: standard set)")
	runCmd.Flags().IntVar(&runs, "runs", 1, "number of runs with consecutive seeds")
	runCmd.Flags().StringVar(&exportPath, "export", "", "also export the run as JSON (.gz compresses)")
	runCmd.Flags().StringVar(&chartPath, "chart", "", "also plot temperature and pressure to this file (png, svg, pdf)")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final particle layout as SVG")
	runCmd.Flags().BoolVar(&watch, "watch", false, "draw the container while running")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --watch")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run traces in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&fields, "fields", []string{"temperature_k", "pressure_atm"}, "sample fields to plot")

	chartCmd := &cobra.Command{
		Use:   "chart [run_id] [file]",
		Short: "plot run traces to an image file",
		Args:  cobra.ExactArgs(2),
		RunE:  chartRun,
	}
	chartCmd.Flags().StringSliceVar(&fields, "fields", []string{"temperature_k", "pressure_atm"}, "sample fields to plot")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id] [file]",
		Short: "export run data to JSON, stdout when no file is given",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "statistics and frequency analysis of a trace",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&field, "field", "pressure_atm", "sample field to analyze")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "temperature against pressure",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [species]",
		Short: "equilibrium pressure across a range of temperatures",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addModelFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.2, "first set-point (model units)")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1.2, "last set-point (model units)")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 6, "number of set-points")
	sweepCmd.Flags().IntVar(&transient, "transient", 200, "ticks discarded before averaging")

	searchCmd := &cobra.Command{
		Use:   "search [species]",
		Short: "grid search for the parameters minimizing a metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSearch,
	}
	addModelFlags(searchCmd)
	searchCmd.Flags().StringArrayVar(&grid, "grid", nil, "parameter values as name=v1,v2,... (repeatable)")
	searchCmd.Flags().StringVar(&metric, "metric", "tracking_error", "metric to minimize")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of simulations and save each",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal view",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.RunInteractive(seed, newLogger())
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve [species]",
		Short: "run in real time and stream events over websocket",
		Args:  cobra.MaximumNArgs(1),
		RunE:  serve,
	}
	addModelFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	serveCmd.Flags().IntVar(&frameEvery, "frame-every", 6, "ticks between particle frames (0 disables)")

	presetsCmd := &cobra.Command{
		Use:   "presets [species]",
		Short: "list available presets for a species",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for species: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, chartCmd, exportCmd, exportJSONCmd, exportCSVCmd,
		analyzeCmd, phaseCmd, sweepCmd, searchCmd, scenarioCmd, liveCmd, serveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&phase, "phase", config.DefaultPhase, "initial phase (solid, liquid, gas)")
	cmd.Flags().StringVar(&thermostat, "thermostat", config.DefaultThermostat, "thermostat (none, isokinetic, andersen, adaptive)")
	cmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "tick duration in seconds")
	cmd.Flags().Float64Var(&temperature, "temperature", 0, "temperature set-point in model units (0 keeps the phase temperature)")
	cmd.Flags().Float64Var(&heating, "heating", 0, "heating (+) or cooling (-) amount in [-1, 1]")
	cmd.Flags().Float64Var(&gravity, "gravity", config.DefaultGravity, "gravitational acceleration")
	cmd.Flags().Float64Var(&height, "height", 0, "container height target in picometers")
	cmd.Flags().IntVar(&injections, "inject", 0, "molecules to inject at the start")
	cmd.Flags().Float64Var(&epsilon, "epsilon", 0, "interaction strength of the user atom in K")
	cmd.Flags().Float64Var(&collision, "collision", 0, "andersen collision probability per molecule and sub-step (0 keeps the default)")
}

// buildConfig layers the preset, the config file and the explicitly set
// flags, in that order, over the defaults.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	species := cfg.Species
	if len(args) > 0 {
		species = strings.ToLower(args[0])
	}

	if preset != "" {
		p := config.GetPreset(species, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(species))
		}
		c := *p
		c.Events = append([]config.Event(nil), p.Events...)
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Species = species
	}

	flags := cmd.Flags()
	if flags.Changed("phase") {
		cfg.Phase = phase
	}
	if flags.Changed("thermostat") {
		cfg.Thermostat = thermostat
	}
	if flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("temperature") {
		cfg.Temperature = temperature
	}
	if flags.Changed("heating") {
		cfg.Heating = heating
	}
	if flags.Changed("gravity") {
		cfg.Gravity = gravity
	}
	if flags.Changed("height") {
		cfg.ContainerHeight = height
	}
	if flags.Changed("inject") {
		cfg.Injections = injections
	}
	if flags.Changed("epsilon") {
		cfg.Epsilon = epsilon
	}
	if flags.Changed("collision") {
		cfg.CollisionProbability = collision
	}

	if _, err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger() logging.Logger {
	return logging.New(logLevel, log.New(os.Stderr, "statesim: ", log.LstdFlags))
}
