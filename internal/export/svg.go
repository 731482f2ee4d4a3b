package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
)

// TrailRecorder is a sim.Observer that keeps every stride-th position of
// each body, keyed by id.
type TrailRecorder struct {
	stride int
	ticks  int
	Trails map[physics.BodyID][]dynamo.Vec2
}

func NewTrailRecorder(stride int) *TrailRecorder {
	if stride < 1 {
		stride = 1
	}
	return &TrailRecorder{stride: stride, Trails: make(map[physics.BodyID][]dynamo.Vec2)}
}

func (r *TrailRecorder) OnTick(bodies []physics.Body, t float64) {
	r.ticks++
	if r.ticks%r.stride != 0 {
		return
	}
	for i := range bodies {
		r.Trails[bodies[i].ID] = append(r.Trails[bodies[i].ID], bodies[i].Pos)
	}
}

// BodiesToSVG draws the world rectangle centered on the origin with each
// body as a filled circle in its color tag and, when trails is non-nil, its
// recorded path. World y points up; SVG y points down.
func BodiesToSVG(bodies []sim.BodySnapshot, trails map[physics.BodyID][]dynamo.Vec2, width, height float64) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="%.1f %.1f %.0f %.0f">
<rect x="%.1f" y="%.1f" width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, -width/2, -height/2, width, height, -width/2, -height/2))

	for _, b := range bodies {
		trail := trails[b.ID]
		if len(trail) < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-opacity="0.4" stroke-width="1" d="M`, b.Color.Hex()))
		for i, p := range trail {
			if i > 0 {
				sb.WriteString(" L")
			}
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, -p.Y))
		}
		sb.WriteString("\"/>\n")
	}

	for _, b := range bodies {
		if math.IsNaN(b.Pos.X) || math.IsNaN(b.Pos.Y) {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, b.Pos.X, -b.Pos.Y, b.Radius, b.Color.Hex()))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectoryToSVG creates an SVG line plot of a scalar series, e.g. kinetic
// energy over time.
func TrajectoryToSVG(points []struct{ X, Y float64 }, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
