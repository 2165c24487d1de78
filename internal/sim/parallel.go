package sim

import (
	"context"
	"sync"
)

// Ensemble runs the same visualizer under consecutive seeds in parallel.
type Ensemble struct {
	base      *Simulator
	numRuns   int
	seedStart uint64
}

func NewEnsemble(s *Simulator, numRuns int, seedStart uint64) *Ensemble {
	return &Ensemble{base: s, numRuns: numRuns, seedStart: seedStart}
}

// Run returns one result per seed, in seed order. Observers of the base
// simulator are not shared with the runs.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + uint64(idx)

			sim := New(e.base.kind, e.base.set, e.base.log)
			sim.registry = e.base.registry
			sim.stage = e.base.stage
			results[idx], errs[idx] = sim.Run(ctx, cfgCopy)
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
