// Package placement turns user gestures and spawn requests into new bodies.
package placement

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
)

const (
	// GrowthStep is added to the pending radius on every drag poll.
	GrowthStep = 0.5
	// ThrowScale maps the drag vector to launch velocity. The body is
	// thrown opposite to the drag.
	ThrowScale = -1.5
)

// Gesture is the press-drag-release state for one pending body. The zero
// value is inert.
type Gesture struct {
	anchor dynamo.Vec2
	cursor dynamo.Vec2
	radius float64
	active bool
}

// GestureSnapshot is the read-only view handed to presentation.
type GestureSnapshot struct {
	Anchor dynamo.Vec2
	Cursor dynamo.Vec2
	Radius float64
	Active bool
}

// Start anchors a new gesture at pos, discarding any gesture in flight.
func (g *Gesture) Start(pos dynamo.Vec2) {
	g.anchor = pos
	g.cursor = pos
	g.radius = 0
	g.active = true
}

// Drag grows the pending radius while the gesture is active.
func (g *Gesture) Drag(pos dynamo.Vec2) {
	if !g.active {
		return
	}
	g.radius += GrowthStep
	g.cursor = pos
}

// End consumes the gesture and returns the body it describes. ok is false
// when no gesture was active. A gesture released without any drag has zero
// radius; End still resets and returns dynamo.ErrDegenerateBody.
func (g *Gesture) End(pos dynamo.Vec2, color colorful.Color) (b physics.Body, ok bool, err error) {
	if !g.active {
		return physics.Body{}, false, nil
	}
	vel := g.Velocity(pos)
	anchor, radius := g.anchor, g.radius
	g.Cancel()

	b, err = physics.NewBody(anchor, vel, radius, color)
	if err != nil {
		return physics.Body{}, true, err
	}
	return b, true, nil
}

// Cancel drops the gesture without producing a body.
func (g *Gesture) Cancel() {
	*g = Gesture{}
}

// Velocity is the launch velocity a release at pos would produce.
func (g *Gesture) Velocity(pos dynamo.Vec2) dynamo.Vec2 {
	return pos.Sub(g.anchor).Mul(dynamo.V(ThrowScale, ThrowScale))
}

func (g *Gesture) Active() bool { return g.active }

func (g *Gesture) Snapshot() GestureSnapshot {
	return GestureSnapshot{
		Anchor: g.anchor,
		Cursor: g.cursor,
		Radius: g.radius,
		Active: g.active,
	}
}
