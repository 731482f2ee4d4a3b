package sim

import (
	"fmt"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
)

// Scene populates an engine with its starting bodies.
type Scene func(e *Engine) error

var scenes = map[string]Scene{
	"empty":  func(e *Engine) error { return nil },
	"random": randomScene,
	"binary": binaryScene,
	"trio":   trioScene,
}

func SceneNames() []string {
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Populate loads the named scene into e. An empty name is the random scene.
func Populate(e *Engine, name string) error {
	if name == "" {
		name = "random"
	}
	scene, ok := scenes[name]
	if !ok {
		return fmt.Errorf("unknown scene: %s (available: %v)", name, SceneNames())
	}
	return scene(e)
}

func randomScene(e *Engine) error {
	e.SpawnRandom()
	return nil
}

// binaryScene is two radius-10 bodies at rest at (-50, 0) and (50, 0).
func binaryScene(e *Engine) error {
	for _, x := range []float64{-50, 50} {
		b, err := physics.NewBody(dynamo.V(x, 0), dynamo.Vec2{}, 10, colorful.Hcl(x+180, 0.6, 0.7).Clamped())
		if err != nil {
			return err
		}
		if _, err := e.AddBody(b); err != nil {
			return err
		}
	}
	return nil
}

func trioScene(e *Engine) error {
	const r = 120.0
	for i := 0; i < 3; i++ {
		angle := math.Pi/2 + float64(i)*2*math.Pi/3
		pos := dynamo.V(r*math.Cos(angle), r*math.Sin(angle))
		b, err := physics.NewBody(pos, dynamo.Vec2{}, 8, colorful.Hcl(float64(i)*120, 0.6, 0.7).Clamped())
		if err != nil {
			return err
		}
		if _, err := e.AddBody(b); err != nil {
			return err
		}
	}
	return nil
}
