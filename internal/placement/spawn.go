package placement

import (
	"fmt"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
)

const (
	DefaultSpawnCount = 10
	DefaultMinRadius  = 2.0
	DefaultMaxRadius  = 15.0
	DefaultExtent     = 0.4
)

type SpawnConfig struct {
	Count     int
	MinRadius float64
	MaxRadius float64
	// Extent is the half-size of the spawn rectangle as a fraction of the
	// view width and height.
	Extent float64
}

func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{
		Count:     DefaultSpawnCount,
		MinRadius: DefaultMinRadius,
		MaxRadius: DefaultMaxRadius,
		Extent:    DefaultExtent,
	}
}

func (c SpawnConfig) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("%w: spawn count %d", dynamo.ErrParameterBounds, c.Count)
	}
	if !(c.MinRadius > 0) || !(c.MaxRadius > c.MinRadius) {
		return fmt.Errorf("%w: spawn radius range [%g, %g)", dynamo.ErrParameterBounds, c.MinRadius, c.MaxRadius)
	}
	if c.Extent < 0 {
		return fmt.Errorf("%w: spawn extent %g", dynamo.ErrParameterBounds, c.Extent)
	}
	return nil
}

// Spawner draws random bodies and color tags from a single source.
type Spawner struct {
	cfg SpawnConfig
	rng *rand.Rand
}

func NewSpawner(cfg SpawnConfig, rng *rand.Rand) *Spawner {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Spawner{cfg: cfg, rng: rng}
}

func (s *Spawner) Config() SpawnConfig { return s.cfg }

// Random returns Count motionless bodies scattered over the centered
// rectangle [-Extent·width, Extent·width] × [-Extent·height, Extent·height].
func (s *Spawner) Random(width, height float64) []physics.Body {
	bodies := make([]physics.Body, 0, s.cfg.Count)
	for i := 0; i < s.cfg.Count; i++ {
		radius := s.cfg.MinRadius + s.rng.Float64()*(s.cfg.MaxRadius-s.cfg.MinRadius)
		x := (s.rng.Float64()*2 - 1) * s.cfg.Extent * width
		y := (s.rng.Float64()*2 - 1) * s.cfg.Extent * height

		b, err := physics.NewBody(dynamo.V(x, y), dynamo.Vec2{}, radius, s.Color())
		if err != nil {
			continue
		}
		bodies = append(bodies, b)
	}
	return bodies
}

// Color returns a uniformly random RGB tag.
func (s *Spawner) Color() colorful.Color {
	return colorful.Color{R: s.rng.Float64(), G: s.rng.Float64(), B: s.rng.Float64()}
}
