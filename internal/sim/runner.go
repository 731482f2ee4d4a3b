package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// Run advances e with a fixed dt until duration has elapsed, sampling
// telemetry after every tick. A non-finite state stops the run; the
// partial result is returned with the error recorded in Result.Errors.
func Run(ctx context.Context, e *Engine, cfg RunConfig) (*Result, error) {
	if err := validateRunConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Samples: make([]Sample, 0, steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	e.ResetMetrics()
	result.Samples = append(result.Samples, e.sample())
	initialMomentum := e.Momentum()

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := e.Tick(cfg.Dt); err != nil {
			result.Errors = append(result.Errors, err)
			var te *dynamo.TickError
			if errors.As(err, &te) {
				break
			}
			return result, err
		}

		result.StepsTaken++
		result.Samples = append(result.Samples, e.sample())
	}

	result.MomentumDrift = e.Momentum().Sub(initialMomentum).Len()
	result.Final = e.Bodies()
	for k, v := range e.Metrics() {
		result.Metrics[k] = v
	}

	return result, nil
}

func validateRunConfig(cfg RunConfig) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

func (e *Engine) sample() Sample {
	return Sample{
		Time:     e.t,
		Bodies:   e.registry.Len(),
		Kinetic:  e.KineticEnergy(),
		Momentum: e.Momentum(),
	}
}
