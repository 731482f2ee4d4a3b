package viz

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/sim"
)

func TestCanvas_SetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(7, 7)
	c.Set(-1, 3)
	c.Set(8, 0)

	if !c.IsSet(0, 0) || !c.IsSet(7, 7) {
		t.Fatal("expected sub-pixels to be lit")
	}
	if c.Grid[0][0] != brailleBlank+0x1 {
		t.Errorf("cell (0,0) = %U", c.Grid[0][0])
	}
	c.Clear()
	if c.IsSet(0, 0) || c.IsSet(7, 7) {
		t.Error("clear left sub-pixels lit")
	}
}

func TestCanvas_FillCircle(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillCircle(10, 10, 0.2)
	if !c.IsSet(10, 10) {
		t.Error("sub-pixel disc should still light its center")
	}

	c.Clear()
	c.FillCircle(10, 10, 3)
	if !c.IsSet(13, 10) || !c.IsSet(10, 7) {
		t.Error("disc edge not lit")
	}
	if c.IsSet(13, 13) {
		t.Error("corner outside radius lit")
	}
}

func TestCanvas_RenderUsesPen(t *testing.T) {
	c := NewCanvas(3, 1)
	c.SetPen("#ff0000")
	c.Set(0, 0)
	if c.Colors[0][0] != "#ff0000" {
		t.Errorf("pen not recorded: %q", c.Colors[0][0])
	}
	if got := strings.Count(c.String(), "\n"); got != 1 {
		t.Errorf("String rows = %d", got)
	}
	if c.Render() == "" {
		t.Error("empty render")
	}
}

func TestView_RoundTrip(t *testing.T) {
	c := NewCanvas(80, 20)
	v := NewView(800, 600, c)
	if v.Scale != 600.0/80 {
		t.Fatalf("scale = %v", v.Scale)
	}

	x, y := v.WorldToSub(dynamo.Vec2{})
	if x != 80 || y != 40 {
		t.Errorf("origin maps to (%d,%d)", x, y)
	}

	// Cell centers land back on their own cell.
	p := v.CellToWorld(10, 3)
	sx, sy := v.WorldToSub(p)
	if sx/2 != 10 || sy/4 != 3 {
		t.Errorf("cell (10,3) round-trips to sub (%d,%d)", sx, sy)
	}

	above := v.CellToWorld(10, 2)
	if !(above.Y > p.Y) {
		t.Error("world y should grow upwards")
	}
}

func TestView_PanZoom(t *testing.T) {
	v := NewView(800, 600, NewCanvas(80, 20))
	s := v.Scale
	v.Pan(4, 0)
	if math.Abs(v.Center.X-4*s) > 1e-9 {
		t.Errorf("pan x = %v", v.Center.X)
	}
	v.Zoom(1e9)
	if v.Scale != maxScale {
		t.Errorf("zoom not clamped: %v", v.Scale)
	}
}

func TestView_Animations(t *testing.T) {
	v := NewView(800, 600, NewCanvas(80, 20))
	start := v.Scale

	v.ZoomBy(2, 0.25)
	v.ZoomBy(2, 0.25)
	if !v.Animating() {
		t.Fatal("expected zoom in flight")
	}
	v.Update(0.1)
	if !(v.Scale > start) || !(v.Scale < 4*start) {
		t.Errorf("mid-zoom scale = %v", v.Scale)
	}
	v.Update(1)
	if v.Animating() || math.Abs(v.Scale-4*start) > 1e-9 {
		t.Errorf("zoom should settle on 4x, got %v", v.Scale)
	}

	v.Pan(10, 10)
	v.ScrollTo(dynamo.Vec2{}, 0.25)
	v.Update(1)
	if math.Abs(v.Center.X) > 1e-3 || math.Abs(v.Center.Y) > 1e-3 {
		t.Errorf("scroll should end at origin, got %v", v.Center)
	}
}

func newLiveModel(t *testing.T) Model {
	t.Helper()
	cfg := sim.DefaultConfig()
	cfg.Seed = 3
	e, err := sim.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	m := NewModel(e, 60)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_PlaceBodyWithMouse(t *testing.T) {
	m := newLiveModel(t)
	m.running = false

	m = send(m, tea.MouseMsg{X: 50, Y: 15, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.engine.Gesture().Active {
		t.Fatal("press should start a gesture")
	}
	for i := 0; i < 10; i++ {
		m.step(m.last)
	}
	if r := m.engine.Gesture().Radius; r != 5 {
		t.Fatalf("radius after 10 frames = %v", r)
	}

	m = send(m, tea.MouseMsg{X: 60, Y: 15, Action: tea.MouseActionRelease})
	if m.engine.Len() != 1 {
		t.Fatalf("bodies = %d", m.engine.Len())
	}
	b := m.engine.Bodies()[0]
	if !(b.Vel.X < 0) || b.Vel.Y != 0 {
		t.Errorf("body should be thrown away from the cursor, vel=%v", b.Vel)
	}
}

func TestModel_RightClickCancels(t *testing.T) {
	m := newLiveModel(t)
	m = send(m, tea.MouseMsg{X: 20, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = send(m, tea.MouseMsg{X: 20, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	m = send(m, tea.MouseMsg{X: 30, Y: 10, Action: tea.MouseActionRelease})

	if m.engine.Gesture().Active || m.engine.Len() != 0 {
		t.Error("cancelled gesture should not place a body")
	}
}

func TestModel_ZeroRadiusRelease(t *testing.T) {
	m := newLiveModel(t)
	m = send(m, tea.MouseMsg{X: 20, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = send(m, tea.MouseMsg{X: 20, Y: 10, Action: tea.MouseActionRelease})
	if m.engine.Len() != 0 {
		t.Error("click without hold should not place a body")
	}
	if m.lastErr == nil {
		t.Error("expected rejection to be surfaced")
	}
}

func TestModel_Keys(t *testing.T) {
	m := newLiveModel(t)
	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	if m.engine.Len() != 10 {
		t.Fatalf("spawn gave %d bodies", m.engine.Len())
	}
	m = send(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	if m.engine.Len() != 0 {
		t.Errorf("space left %d bodies", m.engine.Len())
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	if m.running {
		t.Error("p should pause")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("view should show paused status")
	}
}
