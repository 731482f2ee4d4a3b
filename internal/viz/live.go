package viz

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/placement"
	"github.com/san-kum/gravsim/internal/sim"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	headerRows      = 1
	footerRows      = 2
	graphCols       = 40
	historyCapacity = 300
	panStep         = 8
	zoomStep        = 1.25
	maxFrameDt      = 0.1
	animSeconds     = 0.25
)

var (
	canvasStyle = lipgloss.NewStyle()
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	ghostColor  = "#aaaaaa"
	aimColor    = "#555577"
)

type TickMsg time.Time

// Model drives an engine from terminal input and renders its bodies.
type Model struct {
	engine    *sim.Engine
	canvas    *Canvas
	view      *View
	fps       int
	cols      int
	rows      int
	held      bool
	cursor    dynamo.Vec2
	running   bool
	showGraph bool
	last      time.Time
	energy    []float64
	lastErr   error
}

func NewModel(e *sim.Engine, fps int) Model {
	if fps <= 0 {
		fps = 60
	}
	cfg := e.Config()
	c := NewCanvas(defaultCols, defaultRows-headerRows-footerRows)
	return Model{
		engine:  e,
		canvas:  c,
		view:    NewView(cfg.Width, cfg.Height, c),
		fps:     fps,
		cols:    defaultCols,
		rows:    defaultRows,
		running: true,
		energy:  make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.layout()
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.engine.ClearAll()
			m.energy = m.energy[:0]
			m.lastErr = nil
		case "s":
			m.engine.SpawnRandom()
		case "p":
			m.running = !m.running
		case "g":
			m.showGraph = !m.showGraph
			m.layout()
		case "up", "k":
			m.view.Pan(0, -panStep)
		case "down", "j":
			m.view.Pan(0, panStep)
		case "left", "h":
			m.view.Pan(-panStep, 0)
		case "right", "l":
			m.view.Pan(panStep, 0)
		case "+", "=":
			m.view.ZoomBy(1/zoomStep, animSeconds)
		case "-", "_":
			m.view.ZoomBy(zoomStep, animSeconds)
		case "c":
			m.view.ScrollTo(dynamo.Vec2{}, animSeconds)
		}
	case TickMsg:
		m.step(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) mouse(msg tea.MouseMsg) {
	pos := m.view.CellToWorld(msg.X, msg.Y-headerRows)
	m.cursor = pos

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.view.Zoom(1 / zoomStep)
	case msg.Button == tea.MouseButtonWheelDown:
		m.view.Zoom(zoomStep)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.held = true
		m.engine.GestureStart(pos)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight:
		m.held = false
		m.engine.GestureCancel()
	case msg.Action == tea.MouseActionRelease:
		if !m.held {
			return
		}
		m.held = false
		if _, err := m.engine.GestureEnd(pos); err != nil {
			m.lastErr = err
		}
	}
}

// step grows a held gesture once per frame and advances the world by the
// wall-clock time since the previous frame.
func (m *Model) step(now time.Time) {
	if m.held {
		m.engine.GestureDrag(m.cursor)
	}

	dt := 1.0 / float64(m.fps)
	if !m.last.IsZero() {
		dt = min(now.Sub(m.last).Seconds(), maxFrameDt)
	}
	m.last = now
	m.view.Update(float32(dt))

	if !m.running {
		return
	}
	if err := m.engine.Tick(dt); err != nil {
		var te *dynamo.TickError
		if errors.As(err, &te) && m.lastErr == nil {
			log.Printf("live: %v", te)
		}
		m.lastErr = err
	}

	m.energy = append(m.energy, m.engine.KineticEnergy())
	if len(m.energy) > historyCapacity {
		m.energy = m.energy[len(m.energy)-historyCapacity:]
	}
}

func (m *Model) layout() {
	w := m.cols
	if m.showGraph {
		w -= graphCols + 3
	}
	m.canvas = NewCanvas(w, m.rows-headerRows-footerRows)
	m.view.Resize(m.canvas)
}

func (m *Model) draw() {
	m.canvas.Clear()
	for _, b := range m.engine.Bodies() {
		x, y := m.view.WorldToSub(b.Pos)
		m.canvas.SetPen(b.Color.Clamped().Hex())
		m.canvas.FillCircle(x, y, b.Radius/m.view.Scale)
	}
	m.drawGesture(m.engine.Gesture())
	m.canvas.SetPen("")
}

func (m *Model) drawGesture(g placement.GestureSnapshot) {
	if !g.Active {
		return
	}
	ax, ay := m.view.WorldToSub(g.Anchor)
	m.canvas.SetPen(ghostColor)
	m.canvas.StrokeCircle(ax, ay, g.Radius/m.view.Scale)

	// The body flies away from the cursor; show where it is headed.
	aim := g.Anchor.Add(m.engine.LaunchVelocity(m.cursor).Scale(-1 / placement.ThrowScale))
	tx, ty := m.view.WorldToSub(aim)
	m.canvas.SetPen(aimColor)
	m.canvas.DrawLine(ax, ay, tx, ty)
}

func (m Model) View() string {
	m.draw()

	status := StatusRunning.Render("RUNNING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	if m.lastErr != nil {
		status = StatusError.Render("ERROR")
	}
	header := fmt.Sprintf("%s  %s  %s %s  %s %s",
		GradientText("GRAVSIM", "#00ccff", "#ff66cc"),
		status,
		MetricLabel.Render("bodies"), MetricValue.Render(fmt.Sprintf("%d", m.engine.Len())),
		MetricLabel.Render("t"), MetricValue.Render(fmt.Sprintf("%.1fs", m.engine.Time())),
	)

	body := canvasStyle.Render(m.canvas.Render())
	if m.showGraph {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, panelStyle.Render(m.panel()))
	}

	var footer strings.Builder
	footer.WriteString(SparklineChart(m.energy, min(m.cols, 60)))
	if m.lastErr != nil {
		footer.WriteString("  " + StatusError.Render(m.lastErr.Error()))
	}
	footer.WriteString("\n")
	footer.WriteString(KeyHint.Render("drag:place  right:cancel  space:clear  s:spawn  p:pause  arrows:pan  +/-:zoom  g:graph  q:quit"))

	return header + "\n" + body + "\n" + footer.String()
}

func (m Model) panel() string {
	var s strings.Builder
	s.WriteString(HeaderStyle.Render("TELEMETRY") + "\n\n")
	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(6), asciigraph.Width(graphCols-10), asciigraph.Caption("Kinetic"))
		s.WriteString(GraphStyle.Render(chart) + "\n\n")
	}
	p := m.engine.Momentum()
	s.WriteString(labelStyle.Render("Energy") + MetricValue.Render(fmt.Sprintf("%.3g", m.engine.KineticEnergy())) + "\n")
	s.WriteString(labelStyle.Render("Momentum") + MetricValue.Render(fmt.Sprintf("%.3g", p.Len())) + "\n")
	s.WriteString(labelStyle.Render("Scale") + MetricValue.Render(fmt.Sprintf("%.2f/px", m.view.Scale)) + "\n")
	s.WriteString(labelStyle.Render("Center") + MetricValue.Render(m.view.Center.String()) + "\n")
	return s.String()
}

// RunLive takes over the terminal until the user quits.
func RunLive(e *sim.Engine, fps int) error {
	p := tea.NewProgram(NewModel(e, fps), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
