package integrators

import "github.com/san-kum/gravsim/internal/physics"

// ImpulseScale is the fixed factor applied to accumulated acceleration
// when it is folded into velocity. It does not depend on dt.
const ImpulseScale = 0.1

// HybridEuler adds a fixed-scale impulse to velocity, then moves the body
// by velocity times the real elapsed dt.
type HybridEuler struct{}

func NewHybridEuler() *HybridEuler {
	return &HybridEuler{}
}

func (h *HybridEuler) Name() string { return "hybrid" }

func (h *HybridEuler) Step(bodies []physics.Body, dt float64) {
	for i := range bodies {
		b := &bodies[i]
		b.Vel = b.Vel.Add(b.Acc.Scale(ImpulseScale))
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
		b.Acc.X, b.Acc.Y = 0, 0
	}
}

// SymplecticEuler is the semi-implicit Euler scheme with both updates
// scaled by dt.
type SymplecticEuler struct{}

func NewSymplecticEuler() *SymplecticEuler {
	return &SymplecticEuler{}
}

func (s *SymplecticEuler) Name() string { return "symplectic" }

func (s *SymplecticEuler) Step(bodies []physics.Body, dt float64) {
	for i := range bodies {
		b := &bodies[i]
		b.Vel = b.Vel.Add(b.Acc.Scale(dt))
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
		b.Acc.X, b.Acc.Y = 0, 0
	}
}
