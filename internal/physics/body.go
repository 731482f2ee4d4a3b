package physics

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/gravsim/internal/dynamo"
)

const (
	// G is the gravitational constant, 8.31 * 10e-5.
	G = 8.31 * 10e-5
	// Density converts cubed radius to mass.
	Density = 100.0
)

type BodyID uint64

// Body is a circular point mass. Acc is a per-tick accumulator and is
// zero between ticks.
type Body struct {
	ID     BodyID
	Mass   float64
	Radius float64
	Pos    dynamo.Vec2
	Vel    dynamo.Vec2
	Acc    dynamo.Vec2
	Color  colorful.Color
}

// MassFromRadius returns π·r³·Density.
func MassFromRadius(radius float64) float64 {
	return math.Pi * radius * radius * radius * Density
}

// NewBody builds a body with mass derived from radius. Zero or negative
// radii are rejected with dynamo.ErrDegenerateBody.
func NewBody(pos, vel dynamo.Vec2, radius float64, color colorful.Color) (Body, error) {
	b := Body{
		Mass:   MassFromRadius(radius),
		Radius: radius,
		Pos:    pos,
		Vel:    vel,
		Color:  color,
	}
	if err := b.Validate(); err != nil {
		return Body{}, err
	}
	return b, nil
}

func (b Body) Validate() error {
	if !(b.Radius > 0) || math.IsInf(b.Radius, 0) {
		return fmt.Errorf("%w: radius=%g", dynamo.ErrDegenerateBody, b.Radius)
	}
	if !(b.Mass > 0) || math.IsInf(b.Mass, 0) {
		return fmt.Errorf("%w: mass=%g", dynamo.ErrDegenerateBody, b.Mass)
	}
	return nil
}

// IsFinite reports whether position, velocity and acceleration are all finite.
func (b Body) IsFinite() bool {
	return b.Pos.IsValid() && b.Vel.IsValid() && b.Acc.IsValid()
}

func (b Body) Momentum() dynamo.Vec2 {
	return b.Vel.Scale(b.Mass)
}

func (b Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Vel.LenSq()
}
