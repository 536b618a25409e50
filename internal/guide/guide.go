package guide

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"sync"
	"text/template"

	"github.com/charmbracelet/glamour"

	"github.com/ptreezh/dnaspec-cli/internal/config"
	"github.com/ptreezh/dnaspec-cli/internal/i18n"
	"github.com/ptreezh/dnaspec-cli/internal/skills"
)

// RepoURL is the DNASPEC project home.
const RepoURL = "https://github.com/ptreezh/dnaSpec"

// Name identifies an embedded guide.
type Name string

const (
	// PostInstall is shown after a successful install pipeline.
	PostInstall Name = "post_install"
	// Tips is printed by "dnaspec tips".
	Tips Name = "tips"
	// Deploy is printed at the end of setup.
	Deploy Name = "deploy"
)

// Names lists every guide.
var Names = []Name{PostInstall, Tips, Deploy}

//go:embed templates
var templatesFS embed.FS

// SkillEntry is one skill as shown in a guide.
type SkillEntry struct {
	Name        string
	Slash       string
	Description string
}

// Data is the template input for every guide.
type Data struct {
	Version string
	RepoURL string
	Skills  []SkillEntry
}

// NewData builds guide data from the skill catalog in the active language.
func NewData() Data {
	all := skills.All()
	entries := make([]SkillEntry, 0, len(all))
	for _, s := range all {
		entries = append(entries, SkillEntry{
			Name:        s.Name,
			Slash:       s.Slash(),
			Description: s.Description(),
		})
	}
	return Data{
		Version: config.Version,
		RepoURL: RepoURL,
		Skills:  entries,
	}
}

var funcs = template.FuncMap{
	"slash": func(name, request string) (string, error) {
		return skills.SlashCommand(name, []string{request})
	},
}

// Markdown renders a guide template to markdown. Languages without a
// translation of the guide use English.
func Markdown(name Name, lang string, data Data) (string, error) {
	path := fmt.Sprintf("templates/%s/%s.md", i18n.Normalize(lang), name)
	src, err := fs.ReadFile(templatesFS, path)
	if err != nil {
		path = fmt.Sprintf("templates/en/%s.md", name)
		src, err = fs.ReadFile(templatesFS, path)
		if err != nil {
			return "", fmt.Errorf("unknown guide %q", name)
		}
	}

	tmpl, err := template.New(string(name)).Funcs(funcs).Parse(string(src))
	if err != nil {
		return "", fmt.Errorf("failed to parse guide %s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render guide %s: %w", path, err)
	}
	return buf.String(), nil
}

// Options controls terminal rendering.
type Options struct {
	// Width wraps text; zero uses 80 columns.
	Width int
	// Styled enables colors picked from the terminal background. Plain
	// output is used for pipes and tests.
	Styled bool
}

var rendererCache sync.Map // map[Options]*glamour.TermRenderer

func renderer(opts Options) (*glamour.TermRenderer, error) {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if cached, ok := rendererCache.Load(opts); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	style := glamour.WithStandardStyle("notty")
	if opts.Styled {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(opts.Width))
	if err != nil {
		return nil, err
	}
	rendererCache.Store(opts, r)
	return r, nil
}

// Render writes a guide in the active language to w.
func Render(w io.Writer, name Name, opts Options) error {
	md, err := Markdown(name, i18n.GetLang(), NewData())
	if err != nil {
		return err
	}

	r, err := renderer(opts)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
