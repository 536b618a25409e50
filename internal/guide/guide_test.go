package guide

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ptreezh/dnaspec-cli/internal/config"
	"github.com/ptreezh/dnaspec-cli/internal/i18n"
	"github.com/ptreezh/dnaspec-cli/internal/skills"
)

func TestMarkdown_AllGuides(t *testing.T) {
	data := NewData()
	for _, lang := range i18n.Supported {
		for _, name := range Names {
			t.Run(lang+"/"+string(name), func(t *testing.T) {
				md, err := Markdown(name, lang, data)
				if err != nil {
					t.Fatalf("Markdown() error = %v", err)
				}
				if !strings.Contains(md, config.Version) {
					t.Errorf("guide does not mention version %s", config.Version)
				}
				if !strings.Contains(md, RepoURL) {
					t.Errorf("guide does not link %s", RepoURL)
				}
				if strings.Contains(md, "{{") {
					t.Error("guide contains unrendered template actions")
				}
			})
		}
	}
}

func TestMarkdown_PostInstallListsEverySkill(t *testing.T) {
	md, err := Markdown(PostInstall, "en", NewData())
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range skills.All() {
		if !strings.Contains(md, s.Slash()) {
			t.Errorf("post-install guide missing %s", s.Slash())
		}
	}
	if !strings.Contains(md, `/speckit.dnaspec.context-analysis "Design a user authentication system"`) {
		t.Error("post-install guide missing quick start example")
	}
}

func TestMarkdown_UnknownLanguageFallsBack(t *testing.T) {
	en, err := Markdown(Tips, "en", NewData())
	if err != nil {
		t.Fatal(err)
	}
	fr, err := Markdown(Tips, "fr_FR.UTF-8", NewData())
	if err != nil {
		t.Fatal(err)
	}
	if en != fr {
		t.Error("unsupported language should render the English guide")
	}
}

func TestMarkdown_UnknownGuide(t *testing.T) {
	if _, err := Markdown(Name("nope"), "en", NewData()); err == nil {
		t.Error("expected error for unknown guide")
	}
}

func TestRender_Plain(t *testing.T) {
	i18n.Init("zh")
	defer i18n.Init("en")

	var buf bytes.Buffer
	if err := Render(&buf, Tips, Options{Width: 100}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "快速开始") {
		t.Errorf("expected zh tips guide, got:\n%s", out)
	}
}
