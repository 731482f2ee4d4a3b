package sim

import (
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/placement"
)

// Engine owns the bodies and the pending gesture and advances them one
// tick at a time. It is not safe for concurrent use.
type Engine struct {
	cfg        Config
	registry   *physics.Registry
	gesture    placement.Gesture
	spawner    *placement.Spawner
	integrator integrators.Integrator
	metrics    []Metric
	observers  []Observer
	logger     *log.Logger
	t          float64
	ticks      int
}

func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Engine{
		cfg:        cfg,
		registry:   physics.NewRegistry(),
		spawner:    placement.NewSpawner(cfg.Spawn, rand.New(rand.NewSource(seed))),
		integrator: integ,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		logger:     log.New(io.Discard, "", 0),
	}, nil
}

func (e *Engine) AddMetric(m Metric)     { e.metrics = append(e.metrics, m) }
func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Engine) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	e.logger = l
}

func (e *Engine) Config() Config                     { return e.cfg }
func (e *Engine) Integrator() integrators.Integrator { return e.integrator }
func (e *Engine) Time() float64                      { return e.t }
func (e *Engine) Ticks() int                         { return e.ticks }
func (e *Engine) Len() int                           { return e.registry.Len() }

func (e *Engine) GestureStart(pos dynamo.Vec2) {
	e.gesture.Start(pos)
}

func (e *Engine) GestureDrag(pos dynamo.Vec2) {
	e.gesture.Drag(pos)
}

// GestureEnd commits the pending gesture. It returns id 0 and a nil error
// when no gesture was active.
func (e *Engine) GestureEnd(pos dynamo.Vec2) (physics.BodyID, error) {
	b, ok, err := e.gesture.End(pos, e.spawner.Color())
	if !ok {
		return 0, nil
	}
	if err != nil {
		e.logger.Printf("gesture rejected at %v: %v", pos, err)
		return 0, err
	}
	id, err := e.registry.Add(b)
	if err != nil {
		return 0, err
	}
	e.logger.Printf("placed body %d r=%.1f vel=%v", id, b.Radius, b.Vel)
	return id, nil
}

func (e *Engine) GestureCancel() {
	e.gesture.Cancel()
}

// ClearAll removes every body and returns how many were removed.
func (e *Engine) ClearAll() int {
	n := e.registry.Len()
	e.registry.Clear()
	e.logger.Printf("cleared %d bodies", n)
	return n
}

// SpawnRandom scatters a batch of motionless bodies across the world.
func (e *Engine) SpawnRandom() []physics.BodyID {
	batch := e.spawner.Random(e.cfg.Width, e.cfg.Height)
	ids := make([]physics.BodyID, 0, len(batch))
	for _, b := range batch {
		id, err := e.registry.Add(b)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	e.logger.Printf("spawned %d random bodies", len(ids))
	return ids
}

// AddBody inserts a fully formed body, e.g. from a scene.
func (e *Engine) AddBody(b physics.Body) (physics.BodyID, error) {
	return e.registry.Add(b)
}

// Tick runs the force pass and then the integrator over every body.
// With ValidateState on, a non-finite body is reported as a *dynamo.TickError
// after the tick has been fully applied; state is never altered to hide it.
func (e *Engine) Tick(dt float64) error {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: dt=%g", dynamo.ErrParameterBounds, dt)
	}

	bodies := e.registry.Bodies()
	if e.cfg.Parallel && len(bodies) >= e.cfg.ParallelThreshold {
		physics.AccumulateParallel(bodies, e.cfg.Workers)
	} else {
		physics.Accumulate(bodies)
	}
	e.integrator.Step(bodies, dt)

	e.t += dt
	e.ticks++

	for _, m := range e.metrics {
		m.Observe(bodies, e.t)
	}
	for _, obs := range e.observers {
		obs.OnTick(bodies, e.t)
	}

	if e.cfg.ValidateState {
		if i := physics.FirstInvalid(bodies); i >= 0 {
			return &dynamo.TickError{
				Tick:    e.ticks,
				Time:    e.t,
				Body:    uint64(bodies[i].ID),
				Wrapped: dynamo.ErrInvalidState,
			}
		}
	}
	return nil
}

func (e *Engine) Bodies() []BodySnapshot {
	bodies := e.registry.Bodies()
	out := make([]BodySnapshot, len(bodies))
	for i, b := range bodies {
		out[i] = BodySnapshot{
			ID:     b.ID,
			Pos:    b.Pos,
			Vel:    b.Vel,
			Radius: b.Radius,
			Mass:   b.Mass,
			Color:  b.Color,
		}
	}
	return out
}

func (e *Engine) Body(id physics.BodyID) (physics.Body, error) {
	b, ok := e.registry.Get(id)
	if !ok {
		return physics.Body{}, fmt.Errorf("%w: %d", dynamo.ErrBodyNotFound, id)
	}
	return b, nil
}

func (e *Engine) Gesture() placement.GestureSnapshot {
	return e.gesture.Snapshot()
}

// LaunchVelocity previews the velocity a release at pos would produce.
func (e *Engine) LaunchVelocity(pos dynamo.Vec2) dynamo.Vec2 {
	return e.gesture.Velocity(pos)
}

func (e *Engine) Metrics() map[string]float64 {
	out := make(map[string]float64, len(e.metrics))
	for _, m := range e.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (e *Engine) ResetMetrics() {
	for _, m := range e.metrics {
		m.Reset()
	}
}

func (e *Engine) Momentum() dynamo.Vec2 {
	return physics.TotalMomentum(e.registry.Bodies())
}

func (e *Engine) KineticEnergy() float64 {
	return physics.TotalKineticEnergy(e.registry.Bodies())
}
