// Package automation runs scripted sequences of headless simulations and
// parameter sweeps.
package automation

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run in a scenario. Zero fields fall back to the
// base config the scenario is run with.
type ScenarioStep struct {
	Scene      string  `yaml:"scene"`
	Integrator string  `yaml:"integrator"`
	Duration   float64 `yaml:"duration"`
	Dt         float64 `yaml:"dt"`
	Seed       int64   `yaml:"seed"`
	Count      int     `yaml:"count"`
	Parallel   bool    `yaml:"parallel"`
}

// StepResult pairs a step's resolved config with its outcome.
type StepResult struct {
	Config *config.Config
	Result *sim.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

func (s ScenarioStep) apply(base *config.Config) *config.Config {
	cfg := *base
	if s.Scene != "" {
		cfg.Scene = s.Scene
	}
	if s.Integrator != "" {
		cfg.Integrator = s.Integrator
	}
	if s.Duration != 0 {
		cfg.Duration = s.Duration
	}
	if s.Dt != 0 {
		cfg.Dt = s.Dt
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if s.Count != 0 {
		cfg.Spawn.Count = s.Count
	}
	if s.Parallel {
		cfg.Compute.Parallel = true
	}
	return &cfg
}

// Metrics returns the standard metric set for a world of cfg's size.
func Metrics(cfg *config.Config) []sim.Metric {
	return []sim.Metric{
		metrics.NewKineticEnergy(),
		metrics.NewMomentumDrift(),
		metrics.NewContainment(cfg.World.Width, cfg.World.Height),
		metrics.NewPeakSpeed(),
	}
}

// RunConfig builds an engine for cfg, populates its scene and runs it.
func RunConfig(ctx context.Context, cfg *config.Config) (*sim.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e, err := sim.New(cfg.SimConfig())
	if err != nil {
		return nil, err
	}
	for _, m := range Metrics(cfg) {
		e.AddMetric(m)
	}
	if err := sim.Populate(e, cfg.Scene); err != nil {
		return nil, err
	}
	return sim.Run(ctx, e, cfg.RunConfig())
}

// RunScenario executes all steps in order, stopping at the first failure.
// Progress lines go to out.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config, out io.Writer) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg := step.apply(base)
		fmt.Fprintf(out, "running step %d/%d: %s (%s)\n", i+1, len(scenario.Steps), cfg.Scene, cfg.Integrator)

		result, err := RunConfig(ctx, cfg)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		results = append(results, StepResult{Config: cfg, Result: result})
	}

	return results, nil
}

// DtSweep runs the same scene across evenly spaced timesteps.
type DtSweep struct {
	DtMin    float64
	DtMax    float64
	NumSteps int
}

// SweepResult summarizes one sweep point.
type SweepResult struct {
	Dt            float64
	Steps         int
	MomentumDrift float64
	MaxKinetic    float64
	Stable        bool
}

// RunSweep executes a timestep sweep over base. A run that hits a
// non-finite state is reported as unstable rather than failing the sweep.
func RunSweep(ctx context.Context, sweep DtSweep, base *config.Config, out io.Writer) ([]SweepResult, error) {
	if sweep.NumSteps < 1 || !(sweep.DtMin > 0) || sweep.DtMax < sweep.DtMin {
		return nil, fmt.Errorf("%w: sweep dt [%g, %g] x %d", dynamo.ErrParameterBounds, sweep.DtMin, sweep.DtMax, sweep.NumSteps)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.DtMax - sweep.DtMin) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		cfg := *base
		cfg.Dt = sweep.DtMin + float64(i)*paramStep

		result, err := RunConfig(ctx, &cfg)
		if err != nil {
			return nil, err
		}

		maxE := 0.0
		for _, s := range result.Samples {
			maxE = max(maxE, s.Kinetic)
		}

		results = append(results, SweepResult{
			Dt:            cfg.Dt,
			Steps:         result.StepsTaken,
			MomentumDrift: result.MomentumDrift,
			MaxKinetic:    maxE,
			Stable:        len(result.Errors) == 0,
		})

		fmt.Fprintf(out, "sweep %d/%d: dt=%.5f\n", i+1, sweep.NumSteps, cfg.Dt)
	}

	return results, nil
}

// SweepStats counts stable and unstable sweep points.
func SweepStats(results []SweepResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
