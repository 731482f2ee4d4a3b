package physics

import "github.com/san-kum/gravsim/internal/dynamo"

// Exert applies the mutual attraction of a and b to both accelerations.
// It returns false and leaves both untouched when the pair overlaps, that
// is when the squared distance is within either body's squared radius.
func Exert(a, b *Body) bool {
	delta := b.Pos.Sub(a.Pos)
	d2 := delta.LenSq()
	if d2 <= a.Radius*a.Radius || d2 <= b.Radius*b.Radius {
		return false
	}

	f := delta.Scale(G * a.Mass * b.Mass / d2)
	a.Acc = a.Acc.Add(f.Div(a.Mass))
	b.Acc = b.Acc.Sub(f.Div(b.Mass))
	return true
}

// Accumulate visits every unordered pair once, in order i < j, and adds
// the gravitational accelerations onto Acc.
func Accumulate(bodies []Body) {
	n := len(bodies)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			Exert(&bodies[i], &bodies[j])
		}
	}
}

// AccumulateParallel produces the same accelerations as Accumulate up to
// summation order. Rows are split across workers and each worker only
// writes the rows it owns, so every pair is evaluated twice.
func AccumulateParallel(bodies []Body, workers int) {
	n := len(bodies)
	dynamo.ParallelFor(n, 8, workers, func(start, end int) {
		for i := start; i < end; i++ {
			bi := &bodies[i]
			acc := bi.Acc
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				bj := &bodies[j]
				delta := bj.Pos.Sub(bi.Pos)
				d2 := delta.LenSq()
				if d2 <= bi.Radius*bi.Radius || d2 <= bj.Radius*bj.Radius {
					continue
				}
				acc = acc.Add(delta.Scale(G * bi.Mass * bj.Mass / d2).Div(bi.Mass))
			}
			bi.Acc = acc
		}
	})
}

// FirstInvalid returns the index of the first body carrying a NaN or Inf,
// or -1.
func FirstInvalid(bodies []Body) int {
	for i := range bodies {
		if !bodies[i].IsFinite() {
			return i
		}
	}
	return -1
}

func TotalMomentum(bodies []Body) dynamo.Vec2 {
	var p dynamo.Vec2
	for i := range bodies {
		p = p.Add(bodies[i].Momentum())
	}
	return p
}

func TotalKineticEnergy(bodies []Body) float64 {
	ke := 0.0
	for i := range bodies {
		ke += bodies[i].KineticEnergy()
	}
	return ke
}

// CenterOfMass returns the mass-weighted mean position, or the zero vector
// for an empty set.
func CenterOfMass(bodies []Body) dynamo.Vec2 {
	var sum dynamo.Vec2
	total := 0.0
	for i := range bodies {
		sum = sum.Add(bodies[i].Pos.Scale(bodies[i].Mass))
		total += bodies[i].Mass
	}
	if total == 0 {
		return dynamo.Vec2{}
	}
	return sum.Div(total)
}
