package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestIsYes(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"y", true},
		{"Y", true},
		{"yes", true},
		{" YES ", true},
		{"", false},
		{"n", false},
		{"no", false},
		{"yep", false},
	}
	for _, tt := range tests {
		if got := IsYes(tt.answer); got != tt.want {
			t.Errorf("IsYes(%q) = %v, want %v", tt.answer, got, tt.want)
		}
	}
}

func typeString(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestConfirmModel(t *testing.T) {
	t.Run("yes then enter accepts", func(t *testing.T) {
		var m tea.Model = newConfirmModel("Continue?")
		m = typeString(m, "yes")
		m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd == nil {
			t.Error("enter should quit")
		}
		if !m.(confirmModel).Accepted() {
			t.Error("yes should be accepted")
		}
	})

	t.Run("empty answer declines", func(t *testing.T) {
		var m tea.Model = newConfirmModel("Continue?")
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if m.(confirmModel).Accepted() {
			t.Error("empty answer should decline")
		}
	})

	t.Run("esc cancels", func(t *testing.T) {
		var m tea.Model = newConfirmModel("Continue?")
		m = typeString(m, "y")
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		cm := m.(confirmModel)
		if !cm.cancelled || cm.Accepted() {
			t.Error("esc should cancel")
		}
	})

	t.Run("view shows prompt", func(t *testing.T) {
		m := newConfirmModel("Remove everything?")
		if !strings.Contains(m.View(), "Remove everything?") {
			t.Errorf("view = %q", m.View())
		}
	})
}

func testItems() []ChecklistItem {
	return []ChecklistItem{
		{Key: "detect", Label: "Detect tools", Checked: true},
		{Key: "deps", Label: "Install deps", Checked: true},
		{Key: "guide", Label: "Show guide", Checked: true},
	}
}

func TestChecklistModel(t *testing.T) {
	t.Run("toggle and accept", func(t *testing.T) {
		var m tea.Model = newChecklistModel("Setup", testItems())
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd == nil {
			t.Error("enter should quit")
		}

		got := Checked(m.(checklistModel).items)
		if !got["detect"] || got["deps"] || !got["guide"] {
			t.Errorf("checked = %v, want deps unchecked", got)
		}
	})

	t.Run("cursor wraps", func(t *testing.T) {
		var m tea.Model = newChecklistModel("Setup", testItems())
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
		if c := m.(checklistModel).cursor; c != 2 {
			t.Errorf("cursor = %d, want 2", c)
		}
	})

	t.Run("a toggles all", func(t *testing.T) {
		var m tea.Model = newChecklistModel("Setup", testItems())
		m = typeString(m, "a")
		if len(Checked(m.(checklistModel).items)) != 0 {
			t.Error("a should clear all when every item is checked")
		}
		m = typeString(m, "a")
		if len(Checked(m.(checklistModel).items)) != 3 {
			t.Error("a should check all")
		}
	})

	t.Run("esc cancels", func(t *testing.T) {
		var m tea.Model = newChecklistModel("Setup", testItems())
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if !m.(checklistModel).cancelled {
			t.Error("esc should cancel")
		}
	})

	t.Run("input items are not modified", func(t *testing.T) {
		items := testItems()
		var m tea.Model = newChecklistModel("Setup", items)
		m = typeString(m, " ")
		_ = m
		if !items[0].Checked {
			t.Error("caller's slice should be untouched")
		}
	})

	t.Run("view lists items", func(t *testing.T) {
		view := newChecklistModel("Setup", testItems()).View()
		for _, want := range []string{"Setup", "[x] Detect tools", "Install deps"} {
			if !strings.Contains(view, want) {
				t.Errorf("view missing %q:\n%s", want, view)
			}
		}
	})
}

func TestIsInteractive_NonFile(t *testing.T) {
	if IsInteractive(strings.NewReader("")) {
		t.Error("a string reader is not a terminal")
	}
}
