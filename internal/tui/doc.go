// Package tui provides the interactive prompts used by dnaspec.
//
// # Confirmation
//
// Confirm shows a one-line text input and accepts "y" or "yes"
// (case-insensitive). Anything else, Esc or Ctrl+C declines:
//
//	ok, err := tui.Confirm(i18n.T("uninstall.confirm"), os.Stdin, os.Stdout)
//
// # Checklist
//
// RunChecklist shows toggleable items (space toggles, enter accepts):
//
//	items, err := tui.RunChecklist(title, []tui.ChecklistItem{
//	    {Key: "detect", Label: "Detect AI tools", Checked: true},
//	}, os.Stdin, os.Stdout)
//
// Callers gate both on IsInteractive and fall back to defaults (or
// refuse) when stdin is not a terminal.
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
