package sim

import (
	"context"
	"sync"
)

// Ensemble runs independent copies of a set-up with consecutive seeds.
type Ensemble struct {
	build     func(seed uint64) (*Simulator, error)
	numRuns   int
	seedStart uint64
}

// NewEnsemble creates an ensemble. build is called once per run from its
// own goroutine and must return a simulator that shares nothing with the
// others.
func NewEnsemble(build func(seed uint64) (*Simulator, error), numRuns int, seedStart uint64) *Ensemble {
	return &Ensemble{build: build, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			s, err := e.build(e.seedStart + uint64(idx))
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = s.Run(ctx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
