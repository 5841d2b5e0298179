package config

import (
	"fmt"
	"os"

	"github.com/san-kum/statesim/internal/dynamo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTicks      = 600
	DefaultDt         = 1.0 / 60
	DefaultSpecies    = "neon"
	DefaultPhase      = "solid"
	DefaultThermostat = "adaptive"
	DefaultGravity    = 0.045
)

type Config struct {
	Species    string  `yaml:"species"`
	Phase      string  `yaml:"phase"`
	Thermostat string  `yaml:"thermostat"`
	Ticks      int     `yaml:"ticks"`
	Dt         float64 `yaml:"dt"`
	Seed       uint64  `yaml:"seed"`

	// Temperature overrides the phase temperature when positive.
	Temperature float64 `yaml:"temperature"`
	Heating     float64 `yaml:"heating"`
	Gravity     float64 `yaml:"gravity"`
	// ContainerHeight is the lid target in picometers; zero leaves the
	// container at its initial height.
	ContainerHeight float64 `yaml:"container_height"`
	Injections      int     `yaml:"injections"`
	// Epsilon is the interaction strength of the user-defined atom in K.
	Epsilon float64 `yaml:"epsilon"`
	// CollisionProbability is the Andersen heat-bath collision chance per
	// molecule and sub-step; zero keeps the engine default.
	CollisionProbability float64 `yaml:"collision_probability,omitempty"`

	Events []Event `yaml:"events,omitempty"`
}

// Event changes a control at a given tick. Zero-valued pointer fields are
// left alone.
type Event struct {
	Tick            int      `yaml:"tick"`
	Heating         *float64 `yaml:"heating,omitempty"`
	Temperature     *float64 `yaml:"temperature,omitempty"`
	ContainerHeight *float64 `yaml:"container_height,omitempty"`
	Inject          int      `yaml:"inject,omitempty"`
	ReturnLid       bool     `yaml:"return_lid,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Species:    DefaultSpecies,
		Phase:      DefaultPhase,
		Thermostat: DefaultThermostat,
		Ticks:      DefaultTicks,
		Dt:         DefaultDt,
		Seed:       1,
		Gravity:    DefaultGravity,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Parsed holds the enum fields of a validated config.
type Parsed struct {
	Species    dynamo.Species
	Phase      dynamo.Phase
	Thermostat dynamo.ThermostatMode
}

// Validate checks the config and parses its enum fields.
func (c *Config) Validate() (Parsed, error) {
	var p Parsed
	var err error

	if p.Species, err = dynamo.ParseSpecies(c.Species); err != nil {
		return p, err
	}
	if p.Phase, err = dynamo.ParsePhase(c.Phase); err != nil {
		return p, err
	}
	if p.Thermostat, err = dynamo.ParseThermostatMode(c.Thermostat); err != nil {
		return p, err
	}
	if c.Ticks <= 0 {
		return p, fmt.Errorf("%w: ticks must be positive, got %d", dynamo.ErrParameterBounds, c.Ticks)
	}
	if c.Dt <= 0 {
		return p, fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrParameterBounds, c.Dt)
	}
	if c.Heating < -1 || c.Heating > 1 {
		return p, fmt.Errorf("%w: heating must be in [-1, 1], got %f", dynamo.ErrParameterBounds, c.Heating)
	}
	if c.CollisionProbability < 0 || c.CollisionProbability > 1 {
		return p, fmt.Errorf("%w: collision probability must be in [0, 1], got %f", dynamo.ErrParameterBounds, c.CollisionProbability)
	}
	if c.Injections < 0 {
		return p, fmt.Errorf("%w: injections must not be negative", dynamo.ErrParameterBounds)
	}
	for _, e := range c.Events {
		if e.Tick < 0 || e.Tick >= c.Ticks {
			return p, fmt.Errorf("%w: event tick %d outside run of %d ticks", dynamo.ErrParameterBounds, e.Tick, c.Ticks)
		}
	}
	return p, nil
}
