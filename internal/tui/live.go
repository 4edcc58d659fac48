package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/minseo-dev/kinsim/internal/chem"
	"github.com/minseo-dev/kinsim/internal/kinet"
	"github.com/minseo-dev/kinsim/internal/viz"
)

const historyCapacity = 600

type TickMsg time.Time

// Model steps the reaction network live at the terminal frame rate and
// plots the concentration trails.
type Model struct {
	net       *chem.Network
	integ     kinet.Integrator
	state     kinet.State
	initial   kinet.State
	t, dt     float64
	tEnd      float64
	stepsPerF int
	history   [][]float64 // per species ring of recent concentrations
	running   bool
	done      bool
	clamped   int
}

func NewModel(net *chem.Network, integ kinet.Integrator, c0 kinet.State, dt, tEnd float64) Model {
	stepsPerF := int(1.0 / (60 * dt))
	if stepsPerF < 1 {
		stepsPerF = 1
	}
	return Model{
		net:       net,
		integ:     integ,
		state:     c0.Clone(),
		initial:   c0.Clone(),
		dt:        dt,
		tEnd:      tEnd,
		stepsPerF: stepsPerF,
		history:   make([][]float64, net.Dim()),
		running:   true,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running && !m.done {
			for i := 0; i < m.stepsPerF && !m.done; i++ {
				m.step()
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	next := m.integ.Step(m.net, m.state, m.t, m.dt)
	for j, v := range next {
		if v < 0 {
			next[j] = 0
			m.clamped++
		}
	}
	if !next.IsValid() {
		m.done = true
		return
	}
	m.state = next
	m.t += m.dt
	if m.t >= m.tEnd {
		m.done = true
	}

	for j, v := range m.state {
		m.history[j] = append(m.history[j], v)
		if len(m.history[j]) > historyCapacity {
			m.history[j] = m.history[j][1:]
		}
	}
}

func (m *Model) reset() {
	m.state = m.initial.Clone()
	m.t = 0
	m.done = false
	m.clamped = 0
	for j := range m.history {
		m.history[j] = nil
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(viz.HeaderStyle.Render("kinsim live"))
	b.WriteString("\n")

	reg := m.net.Registry()
	for j := 0; j < m.net.Dim(); j++ {
		caption := fmt.Sprintf("[%s] = %.4f mol/L", reg.Name(j), m.state[j])
		graph := viz.Sparkline(m.history[j], caption, 6)
		if graph != "" {
			b.WriteString(graph)
			b.WriteString("\n\n")
		}
	}

	b.WriteString(viz.KV("t", fmt.Sprintf("%.3f / %.1f s", m.t, m.tEnd)))
	b.WriteString("\n")
	b.WriteString(viz.KV("T", fmt.Sprintf("%.2f K", m.net.Temperature(m.t))))
	b.WriteString("\n")
	b.WriteString(viz.KV("total", fmt.Sprintf("%.4f mol/L", m.state.Total())))
	b.WriteString("\n")
	if m.clamped > 0 {
		b.WriteString(viz.WarnStyle.Render(fmt.Sprintf("%d negative values clamped", m.clamped)))
		b.WriteString("\n")
	}

	status := "running"
	if !m.running {
		status = "paused"
	}
	if m.done {
		status = "done"
	}
	b.WriteString(viz.HelpStyle.Render(fmt.Sprintf("%s · space pause · r reset · q quit", status)))
	b.WriteString("\n")
	return b.String()
}

// Run launches the live view and blocks until the user quits.
func Run(net *chem.Network, integ kinet.Integrator, c0 kinet.State, dt, tEnd float64) error {
	p := tea.NewProgram(NewModel(net, integ, c0, dt, tEnd))
	_, err := p.Run()
	return err
}
