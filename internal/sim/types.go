package sim

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/placement"
)

const (
	DefaultWidth             = 800.0
	DefaultHeight            = 600.0
	DefaultParallelThreshold = 64
)

// Metric accumulates a scalar over ticks.
type Metric interface {
	Name() string
	Observe(bodies []physics.Body, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every tick. bodies is only valid for the
// duration of the call.
type Observer interface {
	OnTick(bodies []physics.Body, t float64)
}

type Config struct {
	Width             float64
	Height            float64
	Spawn             placement.SpawnConfig
	Integrator        string
	Parallel          bool
	ParallelThreshold int
	Workers           int
	ValidateState     bool
	Seed              int64
}

func DefaultConfig() Config {
	return Config{
		Width:             DefaultWidth,
		Height:            DefaultHeight,
		Spawn:             placement.DefaultSpawnConfig(),
		Integrator:        "hybrid",
		ParallelThreshold: DefaultParallelThreshold,
		ValidateState:     true,
	}
}

func (c Config) Validate() error {
	if !(c.Width > 0) || !(c.Height > 0) {
		return fmt.Errorf("%w: world size %gx%g", dynamo.ErrParameterBounds, c.Width, c.Height)
	}
	if c.ParallelThreshold < 0 {
		return fmt.Errorf("%w: parallel threshold %d", dynamo.ErrParameterBounds, c.ParallelThreshold)
	}
	return c.Spawn.Validate()
}

// BodySnapshot is the read-only view of a body handed to presentation.
type BodySnapshot struct {
	ID     physics.BodyID
	Pos    dynamo.Vec2
	Vel    dynamo.Vec2
	Radius float64
	Mass   float64
	Color  colorful.Color
}

// RunConfig drives a headless fixed-step run.
type RunConfig struct {
	Dt       float64
	Duration float64
}

func DefaultRunConfig() RunConfig {
	return RunConfig{Dt: 1.0 / 60, Duration: 10.0}
}

// Sample is one row of run telemetry.
type Sample struct {
	Time     float64
	Bodies   int
	Kinetic  float64
	Momentum dynamo.Vec2
}

type Result struct {
	Samples       []Sample
	Final         []BodySnapshot
	Metrics       map[string]float64
	MomentumDrift float64
	StepsTaken    int
	Errors        []error
}
