package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/physics"
)

// Containment is the fraction of ticks on which every body stayed inside
// the half-extents (halfW, halfH) around the origin.
type Containment struct {
	name         string
	halfW, halfH float64
	violations   int
	samples      int
}

func NewContainment(width, height float64) *Containment {
	return &Containment{
		name:  "containment",
		halfW: width / 2,
		halfH: height / 2,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(bodies []physics.Body, t float64) {
	c.samples++
	for i := range bodies {
		if math.Abs(bodies[i].Pos.X) > c.halfW || math.Abs(bodies[i].Pos.Y) > c.halfH {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}

// PeakSpeed is the highest body speed seen.
type PeakSpeed struct {
	name string
	peak float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(bodies []physics.Body, t float64) {
	for i := range bodies {
		p.peak = math.Max(p.peak, bodies[i].Vel.Len())
	}
}

func (p *PeakSpeed) Value() float64 { return p.peak }

func (p *PeakSpeed) Reset() { p.peak = 0 }
