package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ptreezh/dnaspec-cli/internal/i18n"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Version is the dnaspec release.
	Version = "2.0.0"

	EnvPrefix         = "DNASPEC"
	ConfigName        = "dnaspec"
	ConfigFileName    = "dnaspec.toml"
	ProjectConfigFile = "dnaspec-config.json"

	// InstallationModeNpmGlobal is recorded in dnaspec-config.json.
	InstallationModeNpmGlobal = "npm-global"

	DefaultTempDir      = "dnaspec-install-tmp"
	DefaultRepoDir      = "dnaSpec"
	DefaultCloneTimeout = 120 * time.Second
	DefaultQueryModule  = "src.dsgs_spec_kit_integration.cli"
	DefaultCLIScript    = "src/dna_spec_kit_integration/cli.py"
	DefaultVerifyImport = "src.dnaspec_context_engineering.skills_system_final"
)

// DefaultRepoURLs lists the clone sources in the order they are tried.
var DefaultRepoURLs = []string{
	"https://github.com/ptreezh/dnaSpec.git",
	"https://gitclone.com/github.com/ptreezh/dnaSpec.git",
	"https://hub.fastgit.xyz/ptreezh/dnaSpec.git",
}

// skillNameRegex validates skill names passed to slash commands.
var skillNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,62}$`)

// ValidateSkillName checks if a skill name is well formed.
func ValidateSkillName(name string) error {
	if name == "" {
		return fmt.Errorf("skill name cannot be empty")
	}
	if !skillNameRegex.MatchString(name) {
		return fmt.Errorf("invalid skill name %q: must start with a lowercase letter or digit and contain only lowercase letters, digits, or hyphens", name)
	}
	return nil
}

// moduleRegex matches a dotted Python module path.
var moduleRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// ValidateModule checks that name is a dotted Python module path, so it can
// be embedded in "python -c" programs.
func ValidateModule(name string) error {
	if !moduleRegex.MatchString(name) {
		return fmt.Errorf("invalid python module %q", name)
	}
	return nil
}

// Settings holds the effective dnaspec configuration.
type Settings struct {
	Lang             string        `mapstructure:"lang" toml:"lang"`
	RepoURLs         []string      `mapstructure:"repo_urls" toml:"repo_urls"`
	CloneTimeout     time.Duration `mapstructure:"clone_timeout" toml:"-"`
	TempDir          string        `mapstructure:"temp_dir" toml:"temp_dir"`
	RepoDir          string        `mapstructure:"repo_dir" toml:"repo_dir"`
	PythonCandidates []string      `mapstructure:"python_candidates" toml:"python_candidates"`
	QueryModule      string        `mapstructure:"query_module" toml:"query_module"`
	CLIScript        string        `mapstructure:"cli_script" toml:"cli_script"`
	VerifyImport     string        `mapstructure:"verify_import" toml:"verify_import"`
	StateDir         string        `mapstructure:"state_dir" toml:"state_dir,omitempty"`
	KeepTemp         bool          `mapstructure:"keep_temp" toml:"keep_temp"`

	// Source is the config file that was read, empty when none was found.
	Source string `mapstructure:"-" toml:"-"`
}

// DefaultPythonCandidates returns the interpreter names tried in order.
func DefaultPythonCandidates() []string {
	candidates := []string{"python", "python3"}
	if runtime.GOOS == "windows" {
		candidates = append(candidates, "py")
	}
	return candidates
}

// Defaults returns the built-in settings.
func Defaults() *Settings {
	return &Settings{
		Lang:             "en",
		RepoURLs:         append([]string(nil), DefaultRepoURLs...),
		CloneTimeout:     DefaultCloneTimeout,
		TempDir:          DefaultTempDir,
		RepoDir:          DefaultRepoDir,
		PythonCandidates: DefaultPythonCandidates(),
		QueryModule:      DefaultQueryModule,
		CLIScript:        DefaultCLIScript,
		VerifyImport:     DefaultVerifyImport,
	}
}

// Validate checks the settings for consistency.
func (s *Settings) Validate() error {
	if len(s.RepoURLs) == 0 {
		return fmt.Errorf("repo_urls must list at least one clone source")
	}
	for _, u := range s.RepoURLs {
		if strings.TrimSpace(u) == "" {
			return fmt.Errorf("repo_urls contains an empty entry")
		}
	}
	if s.CloneTimeout <= 0 {
		return fmt.Errorf("clone_timeout must be positive, got %s", s.CloneTimeout)
	}
	if len(s.PythonCandidates) == 0 {
		return fmt.Errorf("python_candidates cannot be empty")
	}
	if s.Lang != "en" && s.Lang != "zh" {
		return fmt.Errorf("unsupported lang %q: must be en or zh", s.Lang)
	}
	if err := singleElement("temp_dir", s.TempDir); err != nil {
		return err
	}
	if err := singleElement("repo_dir", s.RepoDir); err != nil {
		return err
	}
	if s.QueryModule == "" {
		return fmt.Errorf("query_module cannot be empty")
	}
	if s.CLIScript == "" || filepath.IsAbs(s.CLIScript) {
		return fmt.Errorf("cli_script must be a relative path")
	}
	return nil
}

// singleElement rejects names that would escape their parent directory.
func singleElement(key, name string) error {
	if name == "" {
		return fmt.Errorf("%s cannot be empty", key)
	}
	if filepath.IsAbs(name) || filepath.Base(name) != name || name == "." || name == ".." {
		return fmt.Errorf("%s must be a single directory name, got %q", key, name)
	}
	return nil
}

// Flag names bound into viper.
const (
	FlagLang     = "lang"
	FlagKeepTemp = "keep-temp"
)

// Load builds Settings from defaults, the config file, DNASPEC_* environment
// variables and the given flags, in increasing precedence.
//
// When configFile is empty, dnaspec.toml is searched in searchDirs in order.
// A missing file is not an error; an explicitly named one is.
func Load(flags *pflag.FlagSet, configFile string, searchDirs ...string) (*Settings, error) {
	v := viper.New()

	d := Defaults()
	v.SetDefault("lang", "")
	v.SetDefault("repo_urls", d.RepoURLs)
	v.SetDefault("clone_timeout", d.CloneTimeout.String())
	v.SetDefault("temp_dir", d.TempDir)
	v.SetDefault("repo_dir", d.RepoDir)
	v.SetDefault("python_candidates", d.PythonCandidates)
	v.SetDefault("query_module", d.QueryModule)
	v.SetDefault("cli_script", d.CLIScript)
	v.SetDefault("verify_import", d.VerifyImport)
	v.SetDefault("state_dir", "")
	v.SetDefault("keep_temp", false)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		for _, dir := range searchDirs {
			if dir != "" {
				v.AddConfigPath(dir)
			}
		}
		v.SetConfigName(ConfigName)
	}
	v.SetConfigType("toml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if f := flags.Lookup(FlagLang); f != nil {
			if err := v.BindPFlag("lang", f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", FlagLang, err)
			}
		}
		if f := flags.Lookup(FlagKeepTemp); f != nil {
			if err := v.BindPFlag("keep_temp", f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", FlagKeepTemp, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	s.Source = v.ConfigFileUsed()
	if s.Lang == "" {
		s.Lang = LangFromEnv()
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &s, nil
}

// LangFromEnv picks a catalog language from the locale environment
// (LC_ALL, then LANG). Anything that is not Chinese selects English.
func LangFromEnv() string {
	for _, key := range []string{"LC_ALL", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return i18n.Normalize(v)
		}
	}
	return "en"
}

// fileSettings is the on-disk TOML shape; durations are written as strings.
type fileSettings struct {
	*Settings
	CloneTimeout string `toml:"clone_timeout"`
}

// Encode renders settings as TOML.
func Encode(s *Settings) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(fileSettings{Settings: s, CloneTimeout: s.CloneTimeout.String()}); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes settings to path as TOML. An existing file is only
// replaced when overwrite is set.
func WriteFile(path string, s *Settings, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}
	data, err := Encode(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ProjectConfig is the snapshot written by setup into the working directory.
type ProjectConfig struct {
	Version          string          `json:"version"`
	Timestamp        time.Time       `json:"timestamp"`
	DetectedTools    map[string]bool `json:"detectedTools"`
	ProjectPath      string          `json:"projectPath"`
	InstallationMode string          `json:"installationMode"`
}

// SaveProjectConfig writes dnaspec-config.json into dir and returns its path.
func SaveProjectConfig(dir string, cfg *ProjectConfig) (string, error) {
	path := filepath.Join(dir, ProjectConfigFile)
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal project config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write project config: %w", err)
	}
	return path, nil
}

// LoadProjectConfig reads dnaspec-config.json from dir.
func LoadProjectConfig(dir string) (*ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(dir, ProjectConfigFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read project config: %w", err)
	}
	var cfg ProjectConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse project config: %w", err)
	}
	return &cfg, nil
}
