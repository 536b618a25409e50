package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// IsYes reports whether answer accepts a confirmation.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// confirmModel is a single text input that ends on Enter.
type confirmModel struct {
	prompt    string
	input     textinput.Model
	done      bool
	cancelled bool
}

func newConfirmModel(prompt string) confirmModel {
	ti := textinput.New()
	ti.Placeholder = "y/N"
	ti.CharLimit = 8
	ti.Width = 10
	ti.Focus()
	return confirmModel{prompt: prompt, input: ti}
}

func (m confirmModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s\n", warnStyle.Render(m.prompt), m.input.View())
}

// Accepted reports whether the finished prompt was confirmed.
func (m confirmModel) Accepted() bool {
	return m.done && !m.cancelled && IsYes(m.input.Value())
}

// Confirm asks a yes/no question on in/out and returns true only for an
// explicit y or yes.
func Confirm(prompt string, in io.Reader, out io.Writer) (bool, error) {
	p := tea.NewProgram(newConfirmModel(prompt), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	m, ok := final.(confirmModel)
	if !ok {
		return false, nil
	}
	return m.Accepted(), nil
}
