package physics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/gravsim/internal/dynamo"
)

func body(x, y, radius float64) Body {
	return Body{Mass: MassFromRadius(radius), Radius: radius, Pos: dynamo.V(x, y)}
}

func TestMassFromRadius(t *testing.T) {
	for _, r := range []float64{0, 0.5, 2, 10, 14.999} {
		want := math.Pi * r * r * r * 100
		if got := MassFromRadius(r); got != want {
			t.Errorf("MassFromRadius(%v) = %v, want %v", r, got, want)
		}
	}
}

func TestGravitationalConstant(t *testing.T) {
	if math.Abs(G-8.31e-4) > 1e-12 {
		t.Errorf("G = %v, want 8.31e-4", G)
	}
}

func TestExert_NewtonsThirdLaw(t *testing.T) {
	tests := []struct {
		name string
		a, b Body
	}{
		{"equal masses", body(-50, 0, 10), body(50, 0, 10)},
		{"unequal masses", body(0, 0, 12), body(30, 40, 3)},
		{"diagonal", body(-7, 11, 2), body(60, -25, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := tt.a, tt.b
			if !Exert(&a, &b) {
				t.Fatal("expected pair to interact")
			}
			fa := a.Acc.Scale(a.Mass)
			fb := b.Acc.Scale(b.Mass)
			sum := fa.Add(fb)
			tol := 1e-9 * fa.Len()
			if math.Abs(sum.X) > tol || math.Abs(sum.Y) > tol {
				t.Errorf("forces not equal and opposite: %v vs %v", fa, fb)
			}
		})
	}
}

func TestExert_PullsTogether(t *testing.T) {
	a, b := body(0, 0, 5), body(100, 0, 5)
	Exert(&a, &b)
	if a.Acc.X <= 0 || b.Acc.X >= 0 {
		t.Errorf("expected attraction, got a=%v b=%v", a.Acc, b.Acc)
	}
	if a.Acc.Y != 0 || b.Acc.Y != 0 {
		t.Errorf("expected no y component, got a=%v b=%v", a.Acc, b.Acc)
	}
}

func TestExert_ForceLaw(t *testing.T) {
	a, b := body(0, 0, 2), body(30, 40, 3)
	Exert(&a, &b)

	d2 := 2500.0
	f := G * a.Mass * b.Mass / d2
	wantA := dynamo.V(30*f/a.Mass, 40*f/a.Mass)
	if math.Abs(a.Acc.X-wantA.X) > 1e-9 || math.Abs(a.Acc.Y-wantA.Y) > 1e-9 {
		t.Errorf("acc a = %v, want %v", a.Acc, wantA)
	}
}

func TestExert_ExclusionThreshold(t *testing.T) {
	tests := []struct {
		name string
		a, b Body
	}{
		{"inside a", body(0, 0, 20), body(10, 0, 1)},
		{"inside b", body(0, 0, 1), body(10, 0, 20)},
		{"exactly on radius", body(0, 0, 10), body(10, 0, 1)},
		{"concentric", body(5, 5, 3), body(5, 5, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := tt.a, tt.b
			if Exert(&a, &b) {
				t.Error("expected overlapping pair to be skipped")
			}
			if !a.Acc.IsZero() || !b.Acc.IsZero() {
				t.Errorf("accelerations changed: a=%v b=%v", a.Acc, b.Acc)
			}
		})
	}
}

func TestAccumulate_EachPairOnce(t *testing.T) {
	bodies := []Body{body(0, 0, 2), body(100, 0, 2)}
	Accumulate(bodies)
	once := bodies[0].Acc

	a, b := body(0, 0, 2), body(100, 0, 2)
	Exert(&a, &b)
	if once != a.Acc {
		t.Errorf("Accumulate gave %v, single Exert gave %v", once, a.Acc)
	}
}

func TestAccumulate_MomentumChangeIsZero(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	bodies := make([]Body, 12)
	for i := range bodies {
		bodies[i] = body(rng.Float64()*800-400, rng.Float64()*600-300, 2+rng.Float64()*13)
	}
	Accumulate(bodies)

	var net, scale dynamo.Vec2
	for _, b := range bodies {
		f := b.Acc.Scale(b.Mass)
		net = net.Add(f)
		scale = scale.Add(dynamo.V(math.Abs(f.X), math.Abs(f.Y)))
	}
	if math.Abs(net.X) > 1e-9*scale.X || math.Abs(net.Y) > 1e-9*scale.Y {
		t.Errorf("net force %v not ~0 (scale %v)", net, scale)
	}
}

func TestAccumulateParallel_MatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	seq := make([]Body, 100)
	for i := range seq {
		seq[i] = body(rng.Float64()*800-400, rng.Float64()*600-300, 2+rng.Float64()*13)
	}
	par := make([]Body, len(seq))
	copy(par, seq)

	Accumulate(seq)
	AccumulateParallel(par, 4)

	for i := range seq {
		diff := seq[i].Acc.Sub(par[i].Acc).Len()
		if diff > 1e-9*(1+seq[i].Acc.Len()) {
			t.Fatalf("body %d: sequential %v, parallel %v", i, seq[i].Acc, par[i].Acc)
		}
	}
}

func TestFirstInvalid(t *testing.T) {
	bodies := []Body{body(0, 0, 1), body(1, 1, 1)}
	if got := FirstInvalid(bodies); got != -1 {
		t.Errorf("FirstInvalid = %d, want -1", got)
	}
	bodies[1].Vel.X = math.NaN()
	if got := FirstInvalid(bodies); got != 1 {
		t.Errorf("FirstInvalid = %d, want 1", got)
	}
}

func TestCenterOfMass(t *testing.T) {
	if got := CenterOfMass(nil); !got.IsZero() {
		t.Errorf("CenterOfMass(nil) = %v", got)
	}
	com := CenterOfMass([]Body{body(-50, 0, 10), body(50, 0, 10)})
	if math.Abs(com.X) > 1e-9 || com.Y != 0 {
		t.Errorf("CenterOfMass = %v, want origin", com)
	}
}
