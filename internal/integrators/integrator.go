package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
)

// Integrator advances every body by one tick and clears its acceleration.
type Integrator interface {
	Name() string
	Step(bodies []physics.Body, dt float64)
}

var registry = map[string]func() Integrator{
	"hybrid":     func() Integrator { return NewHybridEuler() },
	"symplectic": func() Integrator { return NewSymplecticEuler() },
}

// New resolves an integrator by name.
func New(name string) (Integrator, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", dynamo.ErrUnknownIntegrator, name, Names())
	}
	return ctor(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
