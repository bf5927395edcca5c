package sim

import (
	"context"
	"fmt"
)

// Ensemble repeats a run across consecutive solver seeds to expose how much
// the stick ordering affects the outcome. Runs execute one after another.
type Ensemble struct {
	build     func(seed int64) (*Runner, error)
	numRuns   int
	seedStart int64
}

func NewEnsemble(build func(seed int64) (*Runner, error), numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{build: build, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, 0, e.numRuns)

	for i := 0; i < e.numRuns; i++ {
		seed := e.seedStart + int64(i)
		runner, err := e.build(seed)
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", seed, err)
		}
		res, err := runner.Run(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", seed, err)
		}
		results = append(results, res)
	}

	return results, nil
}
