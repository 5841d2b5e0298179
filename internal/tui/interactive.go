package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/statesim/internal/dynamo"
	"github.com/san-kum/statesim/internal/logging"
	"github.com/san-kum/statesim/internal/sim"
	"github.com/san-kum/statesim/internal/viz"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

var speciesInfo = map[dynamo.Species]string{
	dynamo.Neon:           "monatomic, weak attraction",
	dynamo.Argon:          "monatomic, heavier",
	dynamo.DiatomicOxygen: "diatomic",
	dynamo.Water:          "triatomic, bent",
	dynamo.UserDefined:    "monatomic, adjustable",
}

const (
	heatingStep   = 0.25
	lidStep       = 500.0
	collisionStep = 0.005
	historyLen    = 60
	tickInterval  = 16 * time.Millisecond
)

type state int

const (
	stateMenu state = iota
	stateSim
)

type model struct {
	state   state
	cursor  int
	species []dynamo.Species
	phase   dynamo.Phase

	seed   uint64
	logger logging.Logger
	sim    *sim.Model
	paused bool

	pressure []float64
	status   string

	width  int
	height int
}

// NewInteractiveApp starts on the species menu. Models are built with
// seed and logger.
func NewInteractiveApp(seed uint64, logger logging.Logger) *model {
	return &model{
		state:   stateMenu,
		species: []dynamo.Species{dynamo.Neon, dynamo.Argon, dynamo.DiatomicOxygen, dynamo.Water, dynamo.UserDefined},
		phase:   dynamo.Solid,
		seed:    seed,
		logger:  logger,
		width:   80,
		height:  24,
	}
}

func (m model) Init() tea.Cmd { return nil }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.state != stateSim {
			return m, nil
		}
		if !m.paused {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateSim:
		return m.simKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.species)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.start()
		return m, tick()
	}
	return m, nil
}

func (m model) simKey(msg tea.KeyMsg) (model, tea.Cmd) {
	s := m.sim
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.state = stateMenu
		m.sim = nil
	case " ":
		m.paused = !m.paused
	case "up", "+":
		s.SetHeatingCoolingAmount(s.HeatingCoolingAmount() + heatingStep)
	case "down", "-":
		s.SetHeatingCoolingAmount(s.HeatingCoolingAmount() - heatingStep)
	case "0":
		s.SetHeatingCoolingAmount(0)
	case "S":
		m.setPhase(dynamo.Solid)
	case "L":
		m.setPhase(dynamo.Liquid)
	case "G":
		m.setPhase(dynamo.Gas)
	case "i":
		if !s.InjectMolecule() {
			m.status = dynamo.ErrCapacity.Error()
		}
	case "[":
		s.SetTargetParticleContainerHeight(s.TargetContainerHeight() - lidStep)
	case "]":
		s.SetTargetParticleContainerHeight(s.TargetContainerHeight() + lidStep)
	case "r":
		s.ReturnLid()
	case ",":
		s.SetCollisionProbability(s.CollisionProbability() - collisionStep)
	case ".":
		s.SetCollisionProbability(s.CollisionProbability() + collisionStep)
	case "t":
		next := (s.ThermostatMode() + 1) % (dynamo.Adaptive + 1)
		if err := s.SetThermostatType(next); err != nil {
			m.status = err.Error()
		}
	}
	return m, nil
}

func (m *model) start() {
	m.sim = sim.NewModel(sim.Options{Seed: m.seed, Logger: m.logger})
	if err := m.sim.SetMoleculeType(m.species[m.cursor]); err != nil {
		m.status = err.Error()
	}
	m.setPhase(dynamo.Solid)
	m.pressure = make([]float64, 0, historyLen)
	m.paused = false
	m.state = stateSim
}

func (m *model) setPhase(p dynamo.Phase) {
	m.status = ""
	if err := m.sim.SetPhase(p); err != nil {
		m.status = err.Error()
	}
}

func (m *model) step() {
	if err := m.sim.Step(sim.NominalTickTime); err != nil {
		m.status = err.Error()
		m.paused = true
		return
	}
	m.pressure = append(m.pressure, m.sim.PressureInAtmospheres())
	if len(m.pressure) > historyLen {
		m.pressure = m.pressure[1:]
	}
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateSim:
		return m.viewSim()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n   " + viz.Title.Render("states of matter") + "\n\n")
	for i, sp := range m.species {
		cursor := "  "
		name := dim.Render(sp.String())
		if i == m.cursor {
			cursor = cyan.Render("▸ ")
			name = white.Render(sp.String())
		}
		b.WriteString(fmt.Sprintf("   %s%-14s %s\n", cursor, name, dim.Render(speciesInfo[sp])))
	}
	b.WriteString("\n" + viz.KeyHint.Render("   ↑/↓ select  enter start  q quit") + "\n")
	return b.String()
}

func (m model) viewSim() string {
	cw := m.width - 8
	ch := m.height - 14
	if cw < 40 {
		cw = 40
	}
	if ch < 10 {
		ch = 10
	}

	snap := m.sim.Snapshot()
	canvas := viz.NewCanvas(cw, ch)
	viz.DrawSnapshot(canvas, snap, sim.InitialContainerHeight)

	var b strings.Builder

	status := viz.StatusRunning.Render("● running")
	if m.paused {
		status = viz.StatusPaused.Render("○ paused")
	}
	if snap.Exploded {
		status = viz.StatusExploded.Render("✸ exploded")
	}
	b.WriteString(fmt.Sprintf("\n   %s  %s  %s\n", cyan.Render(snap.Species.String()), status,
		viz.Subtle.Render(fmt.Sprintf("tick %d  thermostat %s", snap.Tick, m.sim.ActiveThermostat()))))

	b.WriteString(viz.GlassPanel.Render(strings.TrimRight(canvas.String(), "\n")) + "\n")
	b.WriteString(viz.Separator(cw+4) + "\n")

	metric := func(label, value string) string {
		return viz.MetricLabel.Render(label+" ") + viz.MetricValue.Render(value) + "  "
	}
	b.WriteString("   " +
		metric("T", fmt.Sprintf("%.1f K", snap.TemperatureKelvin)) +
		metric("set", fmt.Sprintf("%.3f", snap.TemperatureSetPoint)) +
		metric("P", fmt.Sprintf("%.2f atm", snap.PressureAtm)) +
		metric("n", fmt.Sprintf("%d", snap.Molecules)) +
		metric("bath", fmt.Sprintf("%.3f", m.sim.CollisionProbability())) + "\n")

	heat := m.sim.HeatingCoolingAmount()
	heatLabel := "heat"
	if heat < 0 {
		heatLabel = "cool"
	}
	b.WriteString(fmt.Sprintf("   %s %s  %s %s\n",
		dim.Render(heatLabel), viz.Gauge(math.Abs(heat), 10),
		dim.Render("P"), viz.SparklineChart(m.pressure, 30)))

	if m.status != "" {
		b.WriteString("   " + yellow.Render(m.status) + "\n")
	}

	b.WriteString("\n" + viz.KeyHint.Render("   space pause  ↑/↓ heat/cool  S/L/G phase  i inject  [/] lid  r return lid  t thermostat  ,/. bath  esc menu  q quit") + "\n")
	return b.String()
}

func RunInteractive(seed uint64, logger logging.Logger) error {
	p := tea.NewProgram(NewInteractiveApp(seed, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
