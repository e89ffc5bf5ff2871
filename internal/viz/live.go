package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/kvasha/gaslab/internal/gas"
	"github.com/kvasha/gaslab/internal/observe"
	"github.com/kvasha/gaslab/internal/thermo"
)

const (
	defaultCanvasW = 80
	defaultCanvasH = 24
	statsWidth     = 46
	histogramBins  = 24
)

// Layout-only styles; colors come from the active theme at render time.
var (
	statsStyle      = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(statsWidth)
	headerStyle     = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle      = lipgloss.NewStyle().Width(12)
	valueStyle      = lipgloss.NewStyle()
	activeKnobStyle = lipgloss.NewStyle().Bold(true)
	graphStyle      = lipgloss.NewStyle().Padding(1, 0)
	helpStyle       = lipgloss.NewStyle().MarginTop(2)
)

type TickMsg time.Time

// knobs the TUI can tune live, in tab order.
var knobOrder = []string{gas.ParamTemperature, gas.ParamPopulation, gas.ParamSize}

// Model hosts a gas engine inside a Bubble Tea program: it is the
// cooperative per-frame scheduler that calls Update then reads state.
type Model struct {
	engine *gas.Engine
	dt     float64

	canvas   *Canvas
	running  bool
	pending  gas.Params
	selected int
	showHelp bool
}

// NewModel wraps an initialized engine for live viewing.
func NewModel(engine *gas.Engine, dt float64) Model {
	return Model{
		engine:  engine,
		dt:      dt,
		canvas:  NewCanvas(defaultCanvasW, defaultCanvasH),
		running: true,
		pending: gas.Params{},
	}
}

// RunLive runs the TUI until the user quits.
func RunLive(engine *gas.Engine, dt float64) error {
	p := tea.NewProgram(NewModel(engine, dt))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			_ = m.engine.Reset()
			m.pending = gas.Params{}
		case "tab":
			m.selected = (m.selected + 1) % len(knobOrder)
		case "up", "k":
			m.adjustKnob(1.05)
		case "down", "j":
			m.adjustKnob(0.95)
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		w := msg.Width - statsWidth - 6
		h := msg.Height - 4
		if w < 20 {
			w = 20
		}
		if h < 10 {
			h = 10
		}
		m.canvas = NewCanvas(w, h)
		pw, ph := m.canvas.PixelSize()
		m.engine.Resize(float64(pw-2), float64(ph-2))
	case TickMsg:
		if m.running {
			m.engine.Update(m.dt, m.pending)
			m.pending = gas.Params{}
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// adjustKnob nudges the selected parameter; the change is applied
// atomically by the engine at the top of the next Update.
func (m *Model) adjustKnob(factor float64) {
	knob := knobOrder[m.selected]
	current := m.knobValue(knob)
	if v, ok := m.pending[knob]; ok {
		current = v
	}
	next := current * factor
	if knob == gas.ParamPopulation {
		// Multiplicative steps stall at small counts; move at least one.
		if int(next) == int(current) {
			if factor > 1 {
				next = current + 1
			} else if current > 1 {
				next = current - 1
			}
		}
	}
	m.pending[knob] = next
}

func (m Model) knobValue(knob string) float64 {
	switch knob {
	case gas.ParamTemperature:
		return m.engine.Temperature()
	case gas.ParamPopulation:
		return float64(m.engine.Population())
	case gas.ParamSize:
		return m.engine.SizeScale()
	}
	return 0
}

// draw renders the region border and every particle onto the canvas.
// The engine region matches the canvas sub-pixel grid, so positions
// map 1:1.
func (m *Model) draw() {
	m.canvas.Clear()
	pw, ph := m.canvas.PixelSize()
	m.canvas.DrawRect(0, 0, pw-1, ph-1)
	for _, p := range m.engine.Particles() {
		m.canvas.FillCircle(1+int(p.X), 1+int(p.Y), int(p.Radius))
	}
}

// View renders the TUI.
func (m Model) View() string {
	m.draw()
	canvasStyle := lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Padding(1, 2)
	canvasView := canvasStyle.Render(m.canvas.String())

	f := m.engine.Observables()

	header := headerStyle.Foreground(CurrentTheme.Accent)
	label := labelStyle.Foreground(CurrentTheme.Muted)
	value := valueStyle.Foreground(CurrentTheme.Text)
	knob := activeKnobStyle.Foreground(CurrentTheme.Warning)
	graph := graphStyle.Foreground(CurrentTheme.Accent)
	help := helpStyle.Foreground(CurrentTheme.Muted)

	var s strings.Builder
	s.WriteString(header.Render("GASLAB") + "\n")
	if m.running {
		s.WriteString(value.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(knob.Render("PAUSED") + "\n\n")
	}

	s.WriteString(label.Render("Time") + value.Render(fmt.Sprintf("%.2fs", m.engine.Elapsed())) + "\n")
	s.WriteString(label.Render("Pressure") + value.Render(fmt.Sprintf("%.3f", f.Pressure)) + "\n")
	s.WriteString(label.Render("Mean speed") + value.Render(fmt.Sprintf("%.1f px/s (theory %.1f)", f.MeanSpeed(), f.TheoreticalMeanSpeed())) + "\n")
	for _, sp := range f.Species {
		s.WriteString(label.Render("  "+sp.Name) + value.Render(fmt.Sprintf("%d @ %.1f px/s", sp.Count, sp.MeanSpeed)) + "\n")
	}

	if samples := m.engine.PressureSamples(); len(samples) > 1 {
		chart := asciigraph.Plot(samples, asciigraph.Height(4), asciigraph.Width(32), asciigraph.Caption("wall impulse"))
		s.WriteString(graph.Render(chart) + "\n")
	}

	if hist := m.histogram(f); hist != nil {
		chart := asciigraph.PlotMany(hist, asciigraph.Height(5), asciigraph.Width(32), asciigraph.Caption("speed vs maxwell-boltzmann"))
		s.WriteString(graph.Render(chart) + "\n")
	}

	s.WriteString("\n" + header.Render("PARAMETERS") + "\n")
	for i, name := range knobOrder {
		val := m.knobValue(name)
		if v, ok := m.pending[name]; ok {
			val = v
		}
		line := fmt.Sprintf("%-12s %.2f", name, val)
		if i == m.selected {
			s.WriteString(knob.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + label.Render(line) + "\n")
		}
	}

	s.WriteString(help.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nT:Theme ?:Help\nTab:Knob ↑↓:Tune"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Reset to defaults        ║
║  Q        - Quit                     ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter (+5%) ║
║  Down/J   - Decrease parameter (-5%) ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// histogram returns the empirical speed histogram alongside the
// Maxwell–Boltzmann curve for the current mix, both peak-normalized
// over the same bins.
func (m Model) histogram(f observe.Frame) [][]float64 {
	particles := m.engine.Particles()
	if len(particles) == 0 {
		return nil
	}
	maxSpeed := 2.5 * f.TheoreticalMeanSpeed()
	if maxSpeed <= 0 {
		return nil
	}

	speeds := make([]float64, len(particles))
	for i, p := range particles {
		speeds[i] = p.Speed()
	}
	empirical := observe.SpeedHistogram(speeds, histogramBins, maxSpeed)

	theory := make([]float64, histogramBins)
	species := m.engine.Species()
	temp := m.engine.Temperature()
	peak := 0.0
	for i := range theory {
		// Bin center in physical units.
		v := (float64(i) + 0.5) / histogramBins * maxSpeed / thermo.PixelsPerMeter
		for si, sp := range species {
			theory[i] += float64(f.Species[si].Count) * thermo.SpeedDensity(sp.Mass, temp, v)
		}
		if theory[i] > peak {
			peak = theory[i]
		}
	}
	if peak > 0 {
		for i := range theory {
			theory[i] /= peak
		}
	}
	return [][]float64{empirical, theory}
}
