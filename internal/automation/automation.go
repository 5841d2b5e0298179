package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/san-kum/statesim/internal/config"
	"github.com/san-kum/statesim/internal/experiment"
	"github.com/san-kum/statesim/internal/logging"
	"github.com/san-kum/statesim/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run. When Preset is set the step starts from that
// preset of Config.Species; the fields written under config override it.
type ScenarioStep struct {
	Name    string   `yaml:"name"`
	Preset  string   `yaml:"preset"`
	Metrics []string `yaml:"metrics"`

	Config config.Config `yaml:"config"`
}

type StepResult struct {
	Name   string
	Config config.Config
	Result *sim.Result
}

// LoadScenario loads a scenario from a YAML file. Each step's config
// starts from the defaults, or from its preset.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var raw struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Steps       []struct {
			Name    string    `yaml:"name"`
			Preset  string    `yaml:"preset"`
			Metrics []string  `yaml:"metrics"`
			Config  yaml.Node `yaml:"config"`
		} `yaml:"steps"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	scenario := &Scenario{Name: raw.Name, Description: raw.Description}
	for i, s := range raw.Steps {
		species := config.DefaultSpecies
		var probe struct {
			Species string `yaml:"species"`
		}
		if !s.Config.IsZero() {
			if err := s.Config.Decode(&probe); err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
			if probe.Species != "" {
				species = probe.Species
			}
		}

		base := config.DefaultConfig()
		if s.Preset != "" {
			p := config.GetPreset(species, s.Preset)
			if p == nil {
				return nil, fmt.Errorf("step %d: unknown preset %s for %s", i+1, s.Preset, species)
			}
			c := *p
			c.Events = append([]config.Event(nil), p.Events...)
			base = &c
		}
		if !s.Config.IsZero() {
			if err := s.Config.Decode(base); err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
		}

		name := s.Name
		if name == "" {
			name = fmt.Sprintf("step%d", i+1)
		}
		scenario.Steps = append(scenario.Steps, ScenarioStep{
			Name:    name,
			Preset:  s.Preset,
			Metrics: s.Metrics,
			Config:  *base,
		})
	}
	return scenario, nil
}

// RunScenario executes all steps in order. The results of the steps that
// completed are returned along with the first error.
func RunScenario(ctx context.Context, scenario *Scenario, logger logging.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	registry := experiment.NewRegistry()
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		logger.Infof("running step %d/%d: %s (%s)", i+1, len(scenario.Steps), step.Name, step.Config.Species)

		metrics, err := registry.Metrics(step.Metrics)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		cfg := step.Config
		exp, err := experiment.New(&cfg, logger)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		if err := exp.Setup(nil, metrics); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Name: step.Name, Config: cfg, Result: result})
	}

	return results, nil
}
