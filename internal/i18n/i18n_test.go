package i18n

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func loadCatalog(t *testing.T, lang string) map[string]string {
	t.Helper()
	data, err := localeFS.ReadFile("locales/active." + lang + ".yaml")
	require.NoError(t, err)
	var m map[string]string
	require.NoError(t, yaml.Unmarshal(data, &m))
	return m
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestCatalogs_SameKeys(t *testing.T) {
	en := loadCatalog(t, "en")
	require.NotEmpty(t, en)
	for _, lang := range Supported {
		assert.Equal(t, keys(en), keys(loadCatalog(t, lang)), "catalog %s", lang)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "en"},
		{"C", "en"},
		{"POSIX", "en"},
		{"en", "en"},
		{"en_US.UTF-8", "en"},
		{"zh", "zh"},
		{"zh_CN.UTF-8", "zh"},
		{"fr_FR", "en"},
		{"not a tag", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestT(t *testing.T) {
	Init("en")
	t.Cleanup(func() { Init("en") })

	assert.Equal(t, "en", GetLang())
	assert.Equal(t, "Cloned from https://example.com/x.git",
		T("install.cloned", map[string]any{"URL": "https://example.com/x.git"}))
	assert.Equal(t, "no.such.message", T("no.such.message"))

	SetLang("zh_CN.UTF-8")
	assert.Equal(t, "zh", GetLang())
	assert.Equal(t, "设置完成", T("setup.complete"))
	assert.Equal(t, "配置已写入 /tmp/x", Tf("config.written", map[string]any{"Path": "/tmp/x"}))
}

func TestT_TemplatesRender(t *testing.T) {
	t.Cleanup(func() { Init("en") })

	data := map[string]any{
		"Count": 1, "Error": "e", "Path": "p", "URL": "u", "Tool": "t", "Command": "c",
		"Method": "m", "Version": "v", "Section": "s", "Item": "i", "Size": "0 B",
		"Items": 1, "Files": 1, "Removed": 1, "Failed": 0, "Vars": "V", "Packages": "x", "Root": "r",
		"Skill": "k",
	}
	for _, lang := range Supported {
		Init(lang)
		for _, id := range keys(loadCatalog(t, lang)) {
			got := T(id, data)
			assert.NotEqual(t, id, got, "%s: %s did not resolve", lang, id)
			assert.False(t, strings.Contains(got, "{{"), "%s: %s left a template action: %q", lang, id, got)
			assert.False(t, strings.Contains(got, "<no value>"), "%s: %s is missing template data: %q", lang, id, got)
		}
	}
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("en"))
	assert.True(t, IsSupported("zh"))
	assert.False(t, IsSupported("fr"))
}
