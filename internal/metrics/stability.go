package metrics

import (
	"github.com/san-kum/statesim/internal/sim"
)

// Stability is the fraction of ticks with the container intact and the
// pressure below a threshold in atmospheres.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(snap sim.Snapshot) {
	s.samples++
	if snap.Exploded || snap.PressureAtm > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// ExplosionTick records the first tick the container was seen exploded,
// or -1.
type ExplosionTick struct {
	tick int
}

func NewExplosionTick() *ExplosionTick { return &ExplosionTick{tick: -1} }

func (e *ExplosionTick) Name() string { return "explosion_tick" }

func (e *ExplosionTick) Observe(s sim.Snapshot) {
	if s.Exploded && e.tick < 0 {
		e.tick = s.Tick
	}
}

func (e *ExplosionTick) Value() float64 { return float64(e.tick) }

func (e *ExplosionTick) Reset() { e.tick = -1 }
