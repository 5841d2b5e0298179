package config

import "sort"

func f(v float64) *float64 { return &v }

var Presets = map[string]map[string]*Config{
	"neon": {
		"solid": {
			Species: "neon", Phase: "solid", Thermostat: "adaptive", Ticks: 600, Dt: DefaultDt, Seed: 1,
			Gravity: DefaultGravity,
		},
		"melt": {
			Species: "neon", Phase: "solid", Thermostat: "adaptive", Ticks: 900, Dt: DefaultDt, Seed: 1,
			Gravity: DefaultGravity, Heating: 0.3,
		},
		"compress": {
			Species: "neon", Phase: "gas", Thermostat: "adaptive", Ticks: 1200, Dt: DefaultDt, Seed: 1,
			Gravity: DefaultGravity, ContainerHeight: 3000,
		},
	},
	"argon": {
		"liquid": {
			Species: "argon", Phase: "liquid", Thermostat: "adaptive", Ticks: 600, Dt: DefaultDt, Seed: 1,
			Gravity: DefaultGravity,
		},
		"freeze": {
			Species: "argon", Phase: "liquid", Thermostat: "adaptive", Ticks: 900, Dt: DefaultDt, Seed: 1,
			Gravity: DefaultGravity, Heating: -0.5,
		},
	},
	"oxygen": {
		"gas": {
			Species: "oxygen", Phase: "gas", Thermostat: "adaptive", Ticks: 600, Dt: DefaultDt, Seed: 1,
			Gravity: DefaultGravity,
		},
		"pump": {
			Species: "oxygen", Phase: "gas", Thermostat: "adaptive", Ticks: 900, Dt: DefaultDt, Seed: 1,
			Gravity: DefaultGravity, Injections: 60,
		},
	},
	"water": {
		"ice": {
			Species: "water", Phase: "solid", Thermostat: "adaptive", Ticks: 600, Dt: DefaultDt, Seed: 1,
			Gravity: DefaultGravity,
		},
		"boil": {
			Species: "water", Phase: "liquid", Thermostat: "adaptive", Ticks: 1500, Dt: DefaultDt, Seed: 1,
			Gravity: DefaultGravity,
			Events: []Event{
				{Tick: 0, Heating: f(1)},
				{Tick: 600, Heating: f(0)},
			},
		},
	},
	"user": {
		"sticky": {
			Species: "user", Phase: "liquid", Thermostat: "adaptive", Ticks: 600, Dt: DefaultDt, Seed: 1,
			Gravity: DefaultGravity, Epsilon: 400,
		},
		"explode": {
			Species: "user", Phase: "gas", Thermostat: "isokinetic", Ticks: 1200, Dt: DefaultDt, Seed: 1,
			Gravity: DefaultGravity, Temperature: 8,
			Events: []Event{
				{Tick: 0, ContainerHeight: f(2000)},
				{Tick: 900, ReturnLid: true},
			},
		},
	},
}

func GetPreset(species, preset string) *Config {
	speciesPresets, ok := Presets[species]
	if !ok {
		return nil
	}
	cfg, ok := speciesPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(species string) []string {
	speciesPresets, ok := Presets[species]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(speciesPresets))
	for name := range speciesPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
