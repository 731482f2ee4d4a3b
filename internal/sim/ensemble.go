package sim

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Ensemble runs the same scene under consecutive seeds concurrently. Each
// run owns its own Engine.
type Ensemble struct {
	cfg       Config
	scene     string
	numRuns   int
	seedStart int64
	metrics   func() []Metric
}

func NewEnsemble(cfg Config, scene string, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{cfg: cfg, scene: scene, numRuns: numRuns, seedStart: seedStart}
}

// WithMetrics sets a factory for per-run metrics. Metrics hold state, so
// each run gets fresh instances.
func (en *Ensemble) WithMetrics(factory func() []Metric) *Ensemble {
	en.metrics = factory
	return en
}

func (en *Ensemble) Run(ctx context.Context, rc RunConfig) ([]*Result, error) {
	results := make([]*Result, en.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < en.numRuns; i++ {
		idx := i
		g.Go(func() error {
			cfg := en.cfg
			cfg.Seed = en.seedStart + int64(idx)

			e, err := New(cfg)
			if err != nil {
				return err
			}
			if en.metrics != nil {
				for _, m := range en.metrics() {
					e.AddMetric(m)
				}
			}
			if err := Populate(e, en.scene); err != nil {
				return err
			}

			res, err := Run(ctx, e, rc)
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
