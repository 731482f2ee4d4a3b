package viz

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	minScale = 0.05
	maxScale = 50.0
)

// viewAnim holds the active tweens for the view center and scale.
type viewAnim struct {
	x, y, scale *gween.Tween
}

// View maps between world coordinates (y up, origin at the center of the
// screen) and canvas sub-pixels (y down, origin top-left).
type View struct {
	Center dynamo.Vec2
	// Scale is world units per sub-pixel.
	Scale  float64
	subW   int
	subH   int

	scroll *viewAnim
	zoom   *gween.Tween
	target float64
}

// NewView fits a world of the given size onto a canvas.
func NewView(worldW, worldH float64, c *Canvas) *View {
	v := &View{}
	v.Resize(c)
	v.Scale = math.Max(worldW/float64(v.subW), worldH/float64(v.subH))
	v.target = v.Scale
	return v
}

func (v *View) Resize(c *Canvas) {
	v.subW, v.subH = c.SubWidth(), c.SubHeight()
}

func (v *View) WorldToSub(p dynamo.Vec2) (int, int) {
	x := (p.X-v.Center.X)/v.Scale + float64(v.subW)/2
	y := float64(v.subH)/2 - (p.Y-v.Center.Y)/v.Scale
	return int(math.Floor(x)), int(math.Floor(y))
}

// CellToWorld returns the world position at the middle of the terminal
// cell (col, row) of the canvas.
func (v *View) CellToWorld(col, row int) dynamo.Vec2 {
	sx := float64(col*2) + 1
	sy := float64(row*4) + 2
	return dynamo.V(
		v.Center.X+(sx-float64(v.subW)/2)*v.Scale,
		v.Center.Y+(float64(v.subH)/2-sy)*v.Scale,
	)
}

// Pan moves the view by (dx, dy) sub-pixels.
func (v *View) Pan(dx, dy int) {
	v.scroll = nil
	v.Center = v.Center.Add(dynamo.V(float64(dx)*v.Scale, float64(-dy)*v.Scale))
}

// Zoom multiplies the scale by factor, clamped to a sane range.
func (v *View) Zoom(factor float64) {
	v.zoom = nil
	v.Scale = clampScale(v.Scale * factor)
	v.target = v.Scale
}

// ZoomBy eases the scale towards the current target times factor. Repeated
// calls compound on the target, not on the in-flight value.
func (v *View) ZoomBy(factor float64, duration float32) {
	v.target = clampScale(v.target * factor)
	v.zoom = gween.New(float32(v.Scale), float32(v.target), duration, ease.OutQuad)
}

// ScrollTo eases the view center to p.
func (v *View) ScrollTo(p dynamo.Vec2, duration float32) {
	v.scroll = &viewAnim{
		x: gween.New(float32(v.Center.X), float32(p.X), duration, ease.OutCubic),
		y: gween.New(float32(v.Center.Y), float32(p.Y), duration, ease.OutCubic),
	}
}

// Animating reports whether a scroll or zoom is in flight.
func (v *View) Animating() bool { return v.scroll != nil || v.zoom != nil }

// Update advances in-flight animations by dt seconds.
func (v *View) Update(dt float32) {
	if v.scroll != nil {
		x, doneX := v.scroll.x.Update(dt)
		y, doneY := v.scroll.y.Update(dt)
		v.Center = dynamo.V(float64(x), float64(y))
		if doneX && doneY {
			v.scroll = nil
		}
	}
	if v.zoom != nil {
		s, done := v.zoom.Update(dt)
		v.Scale = clampScale(float64(s))
		if done {
			v.Scale = v.target
			v.zoom = nil
		}
	}
}

func clampScale(s float64) float64 {
	return math.Min(maxScale, math.Max(minScale, s))
}
