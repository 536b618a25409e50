package skills

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ptreezh/dnaspec-cli/internal/config"
	"github.com/ptreezh/dnaspec-cli/internal/i18n"
)

// SlashPrefix precedes a skill name in an AI tool.
const SlashPrefix = "/speckit.dnaspec."

// Skill is a named capability provided by the Python package.
type Skill struct {
	Name string
}

var catalog = []Skill{
	{Name: "context-analysis"},
	{Name: "context-optimization"},
	{Name: "cognitive-template"},
	{Name: "agent-creator"},
	{Name: "task-decomposer"},
	{Name: "constraint-generator"},
	{Name: "api-checker"},
	{Name: "modulizer"},
	{Name: "system-architect"},
	{Name: "simple-architect"},
	{Name: "git-operations"},
	{Name: "temp-workspace"},
	{Name: "liveness"},
}

// All returns the catalog in display order.
func All() []Skill {
	out := make([]Skill, len(catalog))
	copy(out, catalog)
	return out
}

// Names returns every skill name.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for _, s := range catalog {
		names = append(names, s.Name)
	}
	return names
}

// Lookup finds a skill by name.
func Lookup(name string) (Skill, bool) {
	for _, s := range catalog {
		if s.Name == name {
			return s, true
		}
	}
	return Skill{}, false
}

// Description returns the localized description.
func (s Skill) Description() string {
	return i18n.T("skill." + s.Name)
}

// Slash returns the slash command form, e.g. /speckit.dnaspec.architect.
func (s Skill) Slash() string {
	return SlashPrefix + s.Name
}

// SlashCommand validates name and formats a complete slash command. The
// request words are joined and double quoted.
func SlashCommand(name string, request []string) (string, error) {
	if err := config.ValidateSkillName(name); err != nil {
		return "", err
	}
	s, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf("unknown skill %q", name)
	}
	if len(request) == 0 {
		return s.Slash(), nil
	}
	text := strings.Join(request, " ")
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, `"`, `\"`)
	return fmt.Sprintf(`%s "%s"`, s.Slash(), text), nil
}

// RenderTable writes one aligned row per skill: name, description and
// slash form.
func RenderTable(w io.Writer, list []Skill) error {
	nameWidth, descWidth := 0, 0
	for _, s := range list {
		nameWidth = max(nameWidth, runewidth.StringWidth(s.Name))
		descWidth = max(descWidth, runewidth.StringWidth(s.Description()))
	}
	for _, s := range list {
		_, err := fmt.Fprintf(w, "  • %s  %s  %s\n",
			runewidth.FillRight(s.Name, nameWidth),
			runewidth.FillRight(s.Description(), descWidth),
			s.Slash())
		if err != nil {
			return err
		}
	}
	return nil
}
