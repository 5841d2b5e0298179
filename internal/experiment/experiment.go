package experiment

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/statesim/internal/config"
	"github.com/san-kum/statesim/internal/dynamo"
	"github.com/san-kum/statesim/internal/logging"
	"github.com/san-kum/statesim/internal/sim"
)

type Experiment struct {
	cfg       config.Config
	parsed    config.Parsed
	logger    logging.Logger
	simulator *sim.Simulator
	events    map[int][]config.Event
}

// New validates cfg and returns an experiment ready for Setup.
func New(cfg *config.Config, logger logging.Logger) (*Experiment, error) {
	parsed, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}

	events := make(map[int][]config.Event)
	for _, ev := range cfg.Events {
		events[ev.Tick] = append(events[ev.Tick], ev)
	}

	return &Experiment{
		cfg:    *cfg,
		parsed: parsed,
		logger: logger,
		events: events,
	}, nil
}

// Setup builds the model described by the config and attaches metrics.
// notifier may be nil.
func (e *Experiment) Setup(notifier sim.Notifier, metrics []sim.Metric) error {
	model := sim.NewModel(sim.Options{Seed: e.cfg.Seed, Logger: e.logger, Notifier: notifier})

	if err := model.SetMoleculeType(e.parsed.Species); err != nil {
		return err
	}
	if err := model.SetThermostatType(e.parsed.Thermostat); err != nil {
		return err
	}
	if err := model.SetPhase(e.parsed.Phase); err != nil {
		var pe *dynamo.PlacementError
		if !errors.As(err, &pe) {
			return err
		}
		e.logger.Warnf("%v", err)
	}

	if e.parsed.Species == dynamo.UserDefined && e.cfg.Epsilon > 0 {
		model.SetAdjustableEpsilon(e.cfg.Epsilon)
	}
	if e.cfg.Temperature > 0 {
		model.SetTemperature(e.cfg.Temperature)
	}
	model.SetGravitationalAcceleration(e.cfg.Gravity)
	if e.cfg.CollisionProbability > 0 {
		model.SetCollisionProbability(e.cfg.CollisionProbability)
	}
	model.SetHeatingCoolingAmount(e.cfg.Heating)
	if e.cfg.ContainerHeight > 0 {
		model.SetTargetParticleContainerHeight(e.cfg.ContainerHeight)
	}
	inject(model, e.cfg.Injections, e.logger)

	e.simulator = sim.New(model)
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	if len(e.events) > 0 {
		e.apply(0)
		e.simulator.AddObserver(e)
	}
	return nil
}

// OnStep applies the events scheduled for the tick about to run.
func (e *Experiment) OnStep(s sim.Snapshot) {
	e.apply(s.Tick)
}

func (e *Experiment) apply(tick int) {
	m := e.simulator.Model()
	for _, ev := range e.events[tick] {
		if ev.Heating != nil {
			m.SetHeatingCoolingAmount(*ev.Heating)
		}
		if ev.Temperature != nil {
			m.SetTemperature(*ev.Temperature)
		}
		if ev.ContainerHeight != nil {
			m.SetTargetParticleContainerHeight(*ev.ContainerHeight)
		}
		if ev.ReturnLid {
			m.ReturnLid()
		}
		inject(m, ev.Inject, e.logger)
		e.logger.Debugf("tick %d: applied event %+v", tick, ev)
	}
}

func inject(m *sim.Model, n int, logger logging.Logger) {
	for i := 0; i < n; i++ {
		if !m.InjectMolecule() {
			logger.Warnf("injection %d of %d: %v", i+1, n, dynamo.ErrCapacity)
			return
		}
	}
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	return e.simulator.Run(ctx, sim.Config{Ticks: e.cfg.Ticks, Dt: e.cfg.Dt})
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

// RunEnsemble runs n copies of cfg concurrently with seeds cfg.Seed,
// cfg.Seed+1, ... and a fresh set of the named metrics each.
func RunEnsemble(ctx context.Context, cfg *config.Config, n int, metricNames []string, logger logging.Logger) ([]*sim.Result, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: ensemble size must be positive, got %d", dynamo.ErrParameterBounds, n)
	}
	reg := NewRegistry()

	build := func(seed uint64) (*sim.Simulator, error) {
		c := *cfg
		c.Seed = seed
		exp, err := New(&c, logger)
		if err != nil {
			return nil, err
		}
		ms, err := reg.Metrics(metricNames)
		if err != nil {
			return nil, err
		}
		if err := exp.Setup(nil, ms); err != nil {
			return nil, err
		}
		return exp.GetSimulator(), nil
	}

	return sim.NewEnsemble(build, n, cfg.Seed).Run(ctx, sim.Config{Ticks: cfg.Ticks, Dt: cfg.Dt})
}
