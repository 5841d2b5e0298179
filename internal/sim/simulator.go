package sim

import (
	"context"
	"fmt"
)

// Simulator drives a Model for a fixed number of ticks, feeding every
// post-tick snapshot to its metrics and observers.
type Simulator struct {
	model     *Model
	metrics   []Metric
	observers []Observer
}

func New(model *Model) *Simulator {
	return &Simulator{
		model:     model,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) Model() *Model { return s.model }

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Samples:       make([]Sample, 0, cfg.Ticks+1),
		Metrics:       make(map[string]float64),
		ExplosionTick: -1,
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result.Samples = append(result.Samples, SampleOf(s.model.Snapshot()))

	var runErr error
	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		if err := s.model.Step(cfg.Dt); err != nil {
			runErr = fmt.Errorf("tick %d: %w", i, err)
			break
		}
		result.TicksTaken++

		snap := s.model.Snapshot()
		for _, m := range s.metrics {
			m.Observe(snap)
		}
		for _, obs := range s.observers {
			obs.OnStep(snap)
		}
		result.Samples = append(result.Samples, SampleOf(snap))

		if snap.Exploded && !result.Exploded {
			result.Exploded = true
			result.ExplosionTick = snap.Tick
			if cfg.StopOnExplosion {
				break
			}
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, runErr
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	return nil
}

// RunWithCallback steps until the callback returns false, the context is
// done or the tick limit is reached. A zero limit runs until stopped.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(Snapshot) bool) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}

	for i := 0; cfg.Ticks <= 0 || i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.model.Step(cfg.Dt); err != nil {
			return err
		}
		if !callback(s.model.Snapshot()) {
			return nil
		}
	}

	return nil
}
