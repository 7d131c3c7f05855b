package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/comalice/turingx/internal/core"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	stateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	tapeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	acceptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const (
	autoInterval = 150 * time.Millisecond
	historyLines = 8
)

type interactiveModel struct {
	err     error
	machine *core.Machine
	radius  int
	auto    bool
}

type tickMsg struct{}

func newInteractiveModel(m *core.Machine, radius int) *interactiveModel {
	return &interactiveModel{machine: m, radius: radius}
}

func runInteractive(m *core.Machine, radius int) error {
	_, err := tea.NewProgram(newInteractiveModel(m, radius), tea.WithAltScreen()).Run()
	return err
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case " ", "enter", "n":
			m.auto = false
			m.step()

		case "r":
			m.auto = false
			if _, err := m.machine.Run(context.Background()); err != nil {
				m.err = err
			}

		case "a":
			m.auto = !m.auto
			if m.auto {
				return m, tick()
			}
		}

	case tickMsg:
		if !m.auto {
			return m, nil
		}
		if !m.step() {
			m.auto = false
			return m, nil
		}
		return m, tick()
	}
	return m, nil
}

// step advances one transition and reports whether the machine can continue.
func (m *interactiveModel) step() bool {
	if m.machine.Verdict() != core.Running {
		return false
	}
	if _, err := m.machine.Step(context.Background()); err != nil {
		if !errors.Is(err, core.ErrHalted) {
			m.err = err
		}
		return false
	}
	return m.machine.Verdict() == core.Running
}

func tick() tea.Cmd {
	return tea.Tick(autoInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m *interactiveModel) View() string {
	var b strings.Builder
	mc := m.machine

	b.WriteString(titleStyle.Render(fmt.Sprintf(" turing: %s ", mc.Program().ID)))
	b.WriteString("\n\n")

	verdict := string(mc.Verdict())
	switch mc.Verdict() {
	case core.Accepted:
		verdict = acceptStyle.Render(verdict)
	case core.Rejected, core.Halted:
		verdict = errorStyle.Render(verdict)
	}
	fmt.Fprintf(&b, "State: %s   Verdict: %s   Steps: %d\n\n",
		stateStyle.Render(mc.State()), verdict, mc.Steps())

	b.WriteString(tapeStyle.Render(mc.RenderTape(m.radius)))
	b.WriteString("\n\n")

	for _, ev := range mc.History().Recent(historyLines) {
		b.WriteString(helpStyle.Render(ev.String()))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	auto := "off"
	if m.auto {
		auto = "on"
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("space/n: step • r: run to halt • a: auto (%s) • q: quit", auto)))
	b.WriteString("\n")
	return b.String()
}
