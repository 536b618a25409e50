package tui

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ChecklistItem is one toggleable entry.
type ChecklistItem struct {
	Key         string
	Label       string
	Description string
	Checked     bool
}

// checklistModel lets the user toggle items before continuing.
type checklistModel struct {
	title     string
	items     []ChecklistItem
	cursor    int
	done      bool
	cancelled bool
}

func newChecklistModel(title string, items []ChecklistItem) checklistModel {
	cp := make([]ChecklistItem, len(items))
	copy(cp, items)
	return checklistModel{title: title, items: cp}
}

func (m checklistModel) Init() tea.Cmd {
	return nil
}

func (m checklistModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.items) == 0 {
		if ok && keyMsg.Type == tea.KeyEnter {
			m.done = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc", "q":
		m.cancelled = true
		m.done = true
		return m, tea.Quit
	case "enter":
		m.done = true
		return m, tea.Quit
	case "j", "down", "tab":
		m.cursor = (m.cursor + 1) % len(m.items)
	case "k", "up", "shift+tab":
		m.cursor = (m.cursor - 1 + len(m.items)) % len(m.items)
	case " ", "x":
		m.items[m.cursor].Checked = !m.items[m.cursor].Checked
	case "a":
		all := true
		for _, it := range m.items {
			all = all && it.Checked
		}
		for i := range m.items {
			m.items[i].Checked = !all
		}
	}
	return m, nil
}

func (m checklistModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	for i, it := range m.items {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}
		checked := " "
		if it.Checked {
			checked = "x"
		}
		line := fmt.Sprintf("  %s [%s] %s", cursor, checked, it.Label)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
		if it.Description != "" {
			b.WriteString(dimStyle.Render("      "+it.Description) + "\n")
		}
	}
	b.WriteString("\n" + dimStyle.Render("space: toggle  a: all  enter: continue  esc: cancel") + "\n")
	return b.String()
}

// RunChecklist shows items and returns them with the user's choices.
// ErrCancelled is returned when the user aborts.
func RunChecklist(title string, items []ChecklistItem, in io.Reader, out io.Writer) ([]ChecklistItem, error) {
	p := tea.NewProgram(newChecklistModel(title, items), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("checklist failed: %w", err)
	}
	m, ok := final.(checklistModel)
	if !ok || m.cancelled {
		return nil, ErrCancelled
	}
	return m.items, nil
}

// Checked returns the keys of checked items.
func Checked(items []ChecklistItem) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, it := range items {
		if it.Checked {
			out[it.Key] = true
		}
	}
	return out
}
