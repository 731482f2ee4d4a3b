package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/placement"
	"github.com/san-kum/gravsim/internal/sim"
)

const (
	DefaultDt         = 1.0 / 60
	DefaultDuration   = 10.0
	DefaultFPS        = 30
	DefaultScene      = "random"
	DefaultIntegrator = "hybrid"
)

type Config struct {
	Scene      string        `yaml:"scene"`
	Integrator string        `yaml:"integrator"`
	Dt         float64       `yaml:"dt"`
	Duration   float64       `yaml:"duration"`
	Seed       int64         `yaml:"seed"`
	FPS        int           `yaml:"fps"`
	World      WorldConfig   `yaml:"world"`
	Spawn      SpawnConfig   `yaml:"spawn"`
	Compute    ComputeConfig `yaml:"compute"`
}

type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type SpawnConfig struct {
	Count     int     `yaml:"count"`
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`
	Extent    float64 `yaml:"extent"`
}

type ComputeConfig struct {
	Parallel          bool `yaml:"parallel"`
	ParallelThreshold int  `yaml:"parallel_threshold"`
	Workers           int  `yaml:"workers"`
	ValidateState     bool `yaml:"validate_state"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene:      DefaultScene,
		Integrator: DefaultIntegrator,
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		FPS:        DefaultFPS,
		World: WorldConfig{
			Width:  sim.DefaultWidth,
			Height: sim.DefaultHeight,
		},
		Spawn: SpawnConfig{
			Count:     placement.DefaultSpawnCount,
			MinRadius: placement.DefaultMinRadius,
			MaxRadius: placement.DefaultMaxRadius,
			Extent:    placement.DefaultExtent,
		},
		Compute: ComputeConfig{
			ParallelThreshold: sim.DefaultParallelThreshold,
			ValidateState:     true,
		},
	}
}

// Load reads a YAML file over the defaults; keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrParameterBounds, c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", dynamo.ErrParameterBounds, c.Duration)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", dynamo.ErrParameterBounds, c.FPS)
	}
	return c.SimConfig().Validate()
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Width:  c.World.Width,
		Height: c.World.Height,
		Spawn: placement.SpawnConfig{
			Count:     c.Spawn.Count,
			MinRadius: c.Spawn.MinRadius,
			MaxRadius: c.Spawn.MaxRadius,
			Extent:    c.Spawn.Extent,
		},
		Integrator:        c.Integrator,
		Parallel:          c.Compute.Parallel,
		ParallelThreshold: c.Compute.ParallelThreshold,
		Workers:           c.Compute.Workers,
		ValidateState:     c.Compute.ValidateState,
		Seed:              c.Seed,
	}
}

func (c *Config) RunConfig() sim.RunConfig {
	return sim.RunConfig{Dt: c.Dt, Duration: c.Duration}
}
