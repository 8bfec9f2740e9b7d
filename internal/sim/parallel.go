package sim

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/magnify-ai/fluidmesh/internal/mesh"
)

// SeededFactory mounts an animator for a given seed.
type SeededFactory func(seed int64) func() *mesh.Animator

// Ensemble runs independent simulators side by side, one per seed. Members
// share nothing; each owns its animator, pool and metrics.
type Ensemble struct {
	mount     SeededFactory
	metrics   func() []Metric
	numRuns   int
	seedStart int64
}

func NewEnsemble(mount SeededFactory, metrics func() []Metric, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{mount: mount, metrics: metrics, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			seed := e.seedStart + int64(idx)
			s := New(e.mount(seed))
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			cfgCopy := cfg
			cfgCopy.Seed = seed
			res, err := s.Run(ctx, cfgCopy)
			if err != nil {
				return err
			}
			results[idx] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
