package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateInput modelState = iota
	stateShowResult
)

type interactiveModel struct {
	err      error
	result   string
	decoded  string
	inputs   []textinput.Model
	focusIdx int
	state    modelState
}

const (
	fieldName = iota
	fieldKey
)

func newInteractiveModel(key string) *interactiveModel {
	name := textinput.New()
	name.Prompt = "name: "
	name.Placeholder = "_6b6f766964"
	name.Width = 60
	name.Focus()

	keyInput := textinput.New()
	keyInput.Prompt = "key:  "
	keyInput.Width = 60
	keyInput.SetValue(key)

	return &interactiveModel{
		inputs: []textinput.Model{name, keyInput},
		state:  stateInput,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state == stateShowResult {
				return m, tea.Quit
			}

		case "tab":
			if m.state == stateInput {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "enter":
			switch m.state {
			case stateInput:
				m.decodeName()
				m.state = stateShowResult
			case stateShowResult:
				m.state = stateInput
				m.result = ""
				m.err = nil
			}
			return m, nil

		case "esc":
			if m.state == stateShowResult {
				m.state = stateInput
				m.result = ""
				m.err = nil
			}
		}
	}

	if m.state == stateInput {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) decodeName() {
	m.decoded = strings.TrimSpace(m.inputs[fieldName].Value())
	plain, err := recoverName(m.decoded, m.inputs[fieldKey].Value())
	if err != nil {
		m.err = err
		return
	}
	m.result = plain
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("kovid deobfuscator"))
	b.WriteString("\n\n")

	switch m.state {
	case stateInput:
		b.WriteString("Enter an obfuscated symbol name:\n\n")
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter decode • ctrl+c quit"))

	case stateShowResult:
		b.WriteString(fmt.Sprintf("Result for %s:\n\n", nameStyle.Render(m.decoded)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter decode another • q quit"))
	}

	return b.String()
}

func runInteractive(key string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("interactive mode requires a terminal")
	}
	p := tea.NewProgram(newInteractiveModel(key), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
