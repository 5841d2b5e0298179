package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/statesim/internal/automation"
	"github.com/san-kum/statesim/internal/optim"
	"github.com/san-kum/statesim/internal/storage"
	"github.com/spf13/cobra"
)

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if len(grid) == 0 {
		return fmt.Errorf("at least one --grid is required (parameters: %v)", optim.Params())
	}

	g, err := optim.ParseGrid(grid)
	if err != nil {
		return err
	}

	fmt.Printf("searching %s for minimum %s...\n", cfg.Species, metric)
	build := optim.ConfigBuilder(cfg, metric, newLogger())
	params, best, err := g.Search(context.Background(), build, metric)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("best %s: %.6f\n", metric, best)
	for _, name := range names {
		fmt.Printf("  %s = %g\n", name, params[name])
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario %s: %d steps\n", scenario.Name, len(scenario.Steps))
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}

	results, runErr := automation.RunScenario(context.Background(), scenario, newLogger())
	for i, r := range results {
		meta := metadataFor(&r.Config)
		meta.Preset = scenario.Steps[i].Preset
		runID, err := st.Save(meta, r.Result)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s: run id %s\n", r.Name, runID)
		printMetrics(r.Result.Metrics)
	}
	return runErr
}
