// Package sampling is the single seeded source of randomness shared by the
// phase changers, thermostats and molecule injection.
package sampling

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler draws Gaussian and uniform variates from one seeded stream.
type Sampler struct {
	src    rand.Source
	rng    *rand.Rand
	normal distuv.Normal
}

func New(seed uint64) *Sampler {
	src := rand.NewSource(seed)
	return &Sampler{
		src:    src,
		rng:    rand.New(src),
		normal: distuv.Normal{Mu: 0, Sigma: 1, Src: src},
	}
}

// Gaussian returns a standard normal variate.
func (s *Sampler) Gaussian() float64 { return s.normal.Rand() }

// Range returns a uniform variate in [min, max).
func (s *Sampler) Range(min, max float64) float64 {
	return distuv.Uniform{Min: min, Max: max, Src: s.src}.Rand()
}

// Bernoulli reports true with probability p.
func (s *Sampler) Bernoulli(p float64) bool { return s.rng.Float64() < p }
