// Package i18n provides localized user-facing text for dnaspec.
// Catalogs are embedded YAML files loaded into a go-i18n bundle.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Supported lists the language codes with an embedded catalog.
var Supported = []string{"en", "zh"}

var (
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	current   string
)

// Init loads the embedded catalogs and activates lang.
func Init(lang string) {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + f.Name())
		if err != nil {
			continue
		}
		// Embedded catalogs are covered by tests; a parse failure only
		// drops that language.
		_, _ = b.ParseMessageFileBytes(data, f.Name())
	}

	lang = Normalize(lang)

	mu.Lock()
	defer mu.Unlock()
	bundle = b
	localizer = i18n.NewLocalizer(b, lang)
	current = lang
}

// SetLang changes the active language.
func SetLang(lang string) {
	Init(lang)
}

// GetLang returns the active language code.
func GetLang() string {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// IsSupported reports whether lang has an embedded catalog.
func IsSupported(lang string) bool {
	for _, s := range Supported {
		if s == lang {
			return true
		}
	}
	return false
}

// Normalize maps a language or locale string such as "zh_CN.UTF-8" or
// "en-US" onto a supported code, defaulting to English.
func Normalize(lang string) string {
	lang = strings.TrimSpace(lang)
	if i := strings.IndexByte(lang, '.'); i >= 0 {
		lang = lang[:i]
	}
	lang = strings.ReplaceAll(lang, "_", "-")
	if lang == "" || lang == "C" || lang == "POSIX" {
		return "en"
	}

	tag, err := language.Parse(lang)
	if err != nil {
		return "en"
	}
	matcher := language.NewMatcher([]language.Tag{language.English, language.Chinese})
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "en"
	}
	return Supported[idx]
}

// T translates a message by its ID.
//
// A single map argument is used as template data ({{.Name}}); any other
// arguments are applied with fmt.Sprintf to the translated text. Unknown IDs
// return the ID itself.
func T(messageID string, args ...any) string {
	mu.RLock()
	l := localizer
	mu.RUnlock()
	if l == nil {
		Init("en")
		mu.RLock()
		l = localizer
		mu.RUnlock()
	}

	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if len(args) == 1 {
		if data, ok := args[0].(map[string]any); ok {
			cfg.TemplateData = data
			args = nil
		}
	}

	msg, err := l.Localize(cfg)
	if err != nil {
		return messageID
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// Tf translates a message using data as template values.
func Tf(messageID string, data map[string]any) string {
	return T(messageID, data)
}
