package viz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sticksim/internal/dynamo"
	"github.com/san-kum/sticksim/internal/editor"
	"github.com/san-kum/sticksim/internal/sim"
)

const (
	width           = 80
	height          = 24
	fps             = 60
	historyCapacity = 600
)

type TickMsg time.Time

// Model is the interactive front end of a Simulation. While paused the mouse
// authors topology; while simulating it drags the anchor.
type Model struct {
	sim   *sim.Simulation
	title string
	dt    float64

	width, height int
	canvas        *Canvas
	view          Viewport

	follow   *follower
	target   dynamo.Vec2
	tracking bool

	residuals []float64
	message   string
	showHelp  bool

	recording bool
	frames    []frame
}

func NewModel(s *sim.Simulation, title string, dt float64) Model {
	m := Model{
		sim:       s,
		title:     title,
		dt:        dt,
		width:     width,
		height:    height,
		canvas:    NewCanvas(width, height),
		residuals: make([]float64, 0, historyCapacity),
	}
	m.view = FitViewport(s.Snapshot(), width, height, 0.3)

	start := m.view.CellToWorld(width/2, height/2)
	if id, ok := s.Anchor(); ok {
		p, _ := s.Store().Point(id)
		start = p.Pos
	}
	m.target = start
	m.follow = newFollower(fps, 8.0, 1.0, start)
	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case TickMsg:
		m.frame()
		if m.recording {
			m.captureFrame()
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		if m.sim.ToggleSimulating() {
			m.apply(editor.CancelStick{})
			m.message = "simulating"
		} else {
			m.message = "editing"
		}
	case "c":
		m.apply(editor.Clear{})
		m.residuals = m.residuals[:0]
	case "a":
		on := !m.sim.Editor().AutoChain()
		m.apply(editor.SetAutoChain{On: on})
		m.message = fmt.Sprintf("auto-chain %v", on)
	case "f":
		m.view = FitViewport(m.sim.Snapshot(), m.width, m.height, 0.3)
	case "r":
		m.toggleAnchor()
	case "t":
		NextTheme()
	case "g":
		if m.recording {
			path, err := m.saveGIF("sticksim.gif")
			if err != nil {
				m.message = err.Error()
			} else {
				m.message = "saved " + path
			}
			m.recording = false
			m.frames = nil
		} else {
			m.recording = true
			m.frames = make([]frame, 0)
		}
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// cellAt converts a terminal mouse position into a canvas cell.
func (m *Model) cellAt(x, y int) (int, int, bool) {
	col, row := x-canvasInset[0], y-canvasInset[1]
	if m.showHelp || col < 0 || row < 0 || col >= m.width || row >= m.height {
		return 0, 0, false
	}
	return col, row, true
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	col, row, ok := m.cellAt(msg.X, msg.Y)
	if !ok {
		return
	}
	pos := m.view.CellToWorld(col, row)

	if m.sim.Simulating() {
		m.target = pos
		m.tracking = true
		return
	}

	ed := m.sim.Editor()
	hit, over := ed.Pick(pos)
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight:
		if over {
			m.apply(editor.ToggleLock{ID: hit})
		}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if over {
			m.apply(editor.BeginStick{From: hit})
		} else {
			m.apply(editor.AddPoint{Pos: pos})
		}
	case msg.Action == tea.MouseActionRelease:
		if _, drawing := ed.Drawing(); !drawing {
			return
		}
		if over {
			m.apply(editor.EndStick{To: hit})
		} else {
			m.apply(editor.CancelStick{})
		}
	}
}

func (m *Model) apply(cmd editor.Command) {
	if err := m.sim.Apply(cmd); err != nil {
		if errors.Is(err, dynamo.ErrSelfLoop) {
			m.message = "stick needs two different points"
			return
		}
		m.message = err.Error()
		return
	}
	m.message = cmd.String()
}

// toggleAnchor attaches the driver to point 0 or releases it.
func (m *Model) toggleAnchor() {
	if _, ok := m.sim.Anchor(); ok {
		m.sim.ReleaseAnchor()
		m.message = "anchor released"
		return
	}
	if err := m.sim.SetAnchor(0); err != nil {
		m.message = err.Error()
		return
	}
	p, _ := m.sim.Store().Point(0)
	m.follow.reset(p.Pos)
	m.target = p.Pos
	m.message = "anchor on point 0"
}

func (m *Model) frame() {
	if m.sim.Simulating() {
		if _, ok := m.sim.Anchor(); ok && m.tracking {
			m.sim.SetDriver(m.follow.update(m.target))
		}
	}
	if m.sim.Frame(m.dt) {
		m.residuals = append(m.residuals, m.sim.Residual())
		if len(m.residuals) > historyCapacity {
			m.residuals = m.residuals[1:]
		}
	}
	m.draw()
}

func (m *Model) draw() {
	m.canvas.Clear()
	anchor, ok := m.sim.Anchor()
	if !ok {
		anchor = dynamo.NoPoint
	}
	m.view.Draw(m.canvas, m.sim.Snapshot(), anchor)
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.Render(glyphStyle))

	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(m.title), CurrentTheme.Primary, CurrentTheme.Anchor) + "\n\n")

	if m.sim.Simulating() {
		s.WriteString(statusStyle(CurrentTheme.Success).Render("SIMULATING"))
	} else {
		s.WriteString(statusStyle(CurrentTheme.Warning).Render("EDITING"))
	}
	if m.recording {
		s.WriteString(" " + statusStyle(CurrentTheme.Error).Render("● REC"))
	}
	s.WriteString("\n")

	if len(m.residuals) > 1 {
		chart := asciigraph.Plot(m.residuals, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Residual"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	} else {
		s.WriteString("\n")
	}

	snap := m.sim.Snapshot()
	p := m.sim.Params()
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.sim.Time()))
	row("Points", fmt.Sprintf("%d", len(snap.Points)))
	row("Sticks", fmt.Sprintf("%d", len(snap.Sticks)))
	row("Passes", fmt.Sprintf("%d", p.Passes))
	row("Residual", fmt.Sprintf("%.2e", m.sim.Residual()))
	row("Auto-chain", fmt.Sprintf("%v", m.sim.Editor().AutoChain()))
	if id, ok := m.sim.Anchor(); ok {
		row("Anchor", fmt.Sprintf("point %d", id))
	}
	if from, ok := m.sim.Editor().Drawing(); ok {
		row("Drawing", fmt.Sprintf("from %d", from))
	}
	if len(m.residuals) > 0 {
		s.WriteString("\n" + SparklineChart(m.residuals, 30) + "\n")
	}
	if m.message != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Render(m.message) + "\n")
	}
	s.WriteString(helpStyle.Render("─────────────────────\nSP:Run/Edit C:Clear A:Chain\nR:Anchor F:Fit T:Theme\nG:Record ?:Help Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║              CONTROLS                ║
╠══════════════════════════════════════╣
║  Space    - Simulate / edit          ║
║  Left     - Add point / drag stick   ║
║  Right    - Toggle lock on point     ║
║  Mouse    - Drag anchor (simulating) ║
║  A        - Toggle auto-chain        ║
║  C        - Clear                    ║
║  R        - Anchor point 0 / release ║
║  F        - Refit view               ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts the live view on the alternate screen with mouse motion events.
func Run(s *sim.Simulation, title string, dt float64) error {
	p := tea.NewProgram(NewModel(s, title, dt), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
