package optim

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/statesim/internal/config"
	"github.com/san-kum/statesim/internal/experiment"
	"github.com/san-kum/statesim/internal/logging"
	"github.com/san-kum/statesim/internal/sim"
)

// Params that a grid search may vary, and how each lands in a config.
var setters = map[string]func(c *config.Config, v float64){
	"temperature":      func(c *config.Config, v float64) { c.Temperature = v },
	"heating":          func(c *config.Config, v float64) { c.Heating = v },
	"gravity":          func(c *config.Config, v float64) { c.Gravity = v },
	"container_height": func(c *config.Config, v float64) { c.ContainerHeight = v },
	"epsilon":          func(c *config.Config, v float64) { c.Epsilon = v },
	"injections":       func(c *config.Config, v float64) { c.Injections = int(v) },

	"collision_probability": func(c *config.Config, v float64) { c.CollisionProbability = v },
}

func Params() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// ParseGrid reads name=v1,v2,... specs into a grid search.
func ParseGrid(specs []string) (*GridSearch, error) {
	g := &GridSearch{}
	for _, spec := range specs {
		name, values, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("grid %q: expected name=v1,v2,...", spec)
		}
		if _, ok := setters[name]; !ok {
			return nil, fmt.Errorf("grid %q: unknown parameter (available: %v)", spec, Params())
		}
		var vals []float64
		for _, s := range strings.Split(values, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, fmt.Errorf("grid %q: %w", spec, err)
			}
			vals = append(vals, v)
		}
		g.paramNames = append(g.paramNames, name)
		g.ranges = append(g.ranges, vals)
	}
	return g, nil
}

// ConfigBuilder returns a build function for Search that applies the
// parameters to a copy of base and records metricName.
func ConfigBuilder(base *config.Config, metricName string, logger logging.Logger) func(map[string]float64) (*experiment.Experiment, error) {
	registry := experiment.NewRegistry()
	return func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := *base
		for name, v := range params {
			set, ok := setters[name]
			if !ok {
				return nil, fmt.Errorf("unknown parameter %s", name)
			}
			set(&cfg, v)
		}

		m, err := registry.GetMetric(metricName)
		if err != nil {
			return nil, err
		}
		exp, err := experiment.New(&cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := exp.Setup(nil, []sim.Metric{m}); err != nil {
			return nil, err
		}
		return exp, nil
	}
}

// Search runs every point of the grid and returns the parameters with
// the smallest value of metricName. Points that fail to build or run are
// skipped; an error is returned only when none succeeded.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	metricName string,
) (map[string]float64, float64, error) {

	best := math.Inf(1)
	var bestParams map[string]float64

	g.searchRecursive(ctx, 0, make(map[string]float64), buildExperiment, metricName, &best, &bestParams)

	if bestParams == nil {
		return nil, best, fmt.Errorf("no grid point produced %s", metricName)
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) {
	if ctx.Err() != nil {
		return
	}
	if depth == len(g.paramNames) {
		exp, err := buildExperiment(current)
		if err != nil {
			return
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return
		}

		val, ok := result.Metrics[metricName]
		if ok && val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.searchRecursive(ctx, depth+1, newParams, buildExperiment, metricName, best, bestParams)
	}
}
