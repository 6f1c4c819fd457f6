package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/deformsim/internal/config"
	"github.com/san-kum/deformsim/internal/contact"
	"github.com/san-kum/deformsim/internal/solver"
	"github.com/san-kum/deformsim/internal/tissue"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600

	frameDt    = 1.0 / 60.0
	probeSpeed = 25.0
)

var (
	canvasStyle  = lipgloss.NewStyle().Padding(1, 2)
	statsStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	contactStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Sound receives the per-frame contact state; nil disables audio.
type Sound interface {
	SetContact(touching bool, intensity float64)
}

// Model is the interactive probing view.
type Model struct {
	engine *solver.Engine
	organ  string
	kind   tissue.ProbeKind
	sound  Sound

	probe   r3.Vec
	force   float64
	engaged bool
	contact bool
	t       float64

	canvas      *Canvas
	camera      *Camera
	dispHistory []float64
	paused      bool
	showHelp    bool
}

// NewModel builds the live view around a loaded engine.
func NewModel(engine *solver.Engine, organ string, kind tissue.ProbeKind, force float64, sound Sound) Model {
	return Model{
		engine:      engine,
		organ:       organ,
		kind:        kind,
		sound:       sound,
		probe:       r3.Vec{Y: -10},
		force:       config.ClampForce(force),
		engaged:     true,
		canvas:      NewCanvas(canvasWidth, canvasHeight),
		camera:      NewCamera(),
		dispHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		step := probeSpeed * frameDt
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "w":
			m.probe.Y += step
		case "s":
			m.probe.Y -= step
		case "a":
			m.probe.X -= step
		case "d":
			m.probe.X += step
		case "q":
			m.probe.Z += step
		case "e":
			m.probe.Z -= step
		case " ":
			m.engaged = !m.engaged
		case "m":
			if m.engine.Stiffness() == tissue.ModeHard {
				m.engine.SetStiffness(tissue.ModeSoft)
			} else {
				m.engine.SetStiffness(tissue.ModeHard)
			}
			m.applyOrgan()
		case "o":
			if m.organ == "liver" {
				m.organ = "nose"
			} else {
				m.organ = "liver"
			}
			m.applyOrgan()
		case "+", "=":
			m.force = config.ClampForce(m.force + 10)
		case "-", "_":
			m.force = config.ClampForce(m.force - 10)
		case "p":
			m.paused = !m.paused
		case "r":
			m.engine.ResetToRest()
			m.dispHistory = m.dispHistory[:0]
			m.t = 0
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case ">":
			m.camera.ZoomIn()
		case "<":
			m.camera.ZoomOut()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if !m.paused {
			m.step()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// applyOrgan swaps the force resolver and scalar pinning for the current
// organ. The liver keeps recovery 8 and damping 10 in both modes; the nose
// derives both from the stiffness mode.
func (m *Model) applyOrgan() {
	if m.organ == "nose" {
		m.engine.SetResolver(contact.ForNose())
		m.engine.SetParams(solver.ParamsFor(m.engine.Stiffness()))
		return
	}
	m.engine.SetResolver(contact.ForLiver())
	m.engine.SetParams(solver.Params{SpringK: 8 * tissue.SpringFactor, Damping: 10})
}

func (m *Model) step() {
	it := tissue.Interaction{
		ProbePos: m.probe,
		Kind:     m.kind,
		Active:   m.engaged,
		Force:    m.force,
	}
	if !m.engaged {
		it = tissue.Inactive()
	}

	touched, err := m.engine.Step(frameDt, it)
	if err != nil {
		return
	}
	m.contact = touched
	m.t += frameDt

	m.dispHistory = append(m.dispHistory, m.engine.MaxDisplacement())
	if len(m.dispHistory) > historyCapacity {
		m.dispHistory = m.dispHistory[1:]
	}

	if m.sound != nil {
		m.sound.SetContact(touched, m.force/config.MaxForce)
	}
}

func (m Model) View() string {
	m.canvas.Clear()
	DrawPoints(m.canvas, m.camera, m.engine.Positions())
	if m.engaged {
		DrawMarker(m.canvas, m.camera, m.probe)
	}
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.organ)) + "\n")

	status := "PROBING"
	if m.paused {
		status = "PAUSED"
	} else if !m.engaged {
		status = "PROBE OFF"
	}
	s.WriteString(status + "\n\n")

	if len(m.dispHistory) > 1 {
		chart := asciigraph.Plot(m.dispHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Displacement"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Mode") + valueStyle.Render(m.engine.Stiffness().String()) + "\n")

	forceBar := renderBar(m.force/config.MaxForce, 10)
	s.WriteString(labelStyle.Render("Force") + valueStyle.Render(fmt.Sprintf("%s %.0f", forceBar, m.force)) + "\n")

	if m.contact {
		s.WriteString(labelStyle.Render("Contact") + contactStyle.Render("TOUCHING") + "\n")
	} else {
		s.WriteString(labelStyle.Render("Contact") + valueStyle.Render("clear") + "\n")
	}
	s.WriteString(labelStyle.Render("Max disp") + valueStyle.Render(fmt.Sprintf("%.4f", m.engine.MaxDisplacement())) + "\n")
	s.WriteString(labelStyle.Render("Probe") + valueStyle.Render(fmt.Sprintf("(%.1f, %.1f, %.1f)", m.probe.X, m.probe.Y, m.probe.Z)) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────────\nWASD/QE:Move SP:Engage M:Mode O:Organ\n+/-:Force R:Reset P:Pause ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  W/A/S/D  - Move probe in the plane  ║
║  Q/E      - Raise / lower probe      ║
║  Space    - Engage/disengage probe   ║
║  M        - Toggle hard/soft tissue  ║
║  O        - Toggle liver/nose organ  ║
║  +/-      - Adjust probe force       ║
║  R        - Restore rest shape       ║
║  P        - Pause/resume             ║
║  X/Y/Z    - Rotate view              ║
║  < >      - Zoom                     ║
║  Esc      - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func renderBar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}
