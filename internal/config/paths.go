package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths holds the directories dnaspec works with. They are resolved once
// and passed explicitly; the process never changes directory.
type Paths struct {
	WorkDir   string
	HomeDir   string
	ConfigDir string
	StateDir  string
}

// DefaultPaths resolves paths from the current process environment.
func DefaultPaths() *Paths {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = wd
	}
	return NewPaths(wd, home)
}

// NewPaths derives config and state directories from a work dir and a home
// dir, honoring XDG_CONFIG_HOME and XDG_STATE_HOME.
func NewPaths(workDir, homeDir string) *Paths {
	configBase := os.Getenv("XDG_CONFIG_HOME")
	if configBase == "" {
		configBase = filepath.Join(homeDir, ".config")
	}
	stateBase := os.Getenv("XDG_STATE_HOME")
	if stateBase == "" {
		stateBase = filepath.Join(homeDir, ".local", "state")
	}
	return &Paths{
		WorkDir:   workDir,
		HomeDir:   homeDir,
		ConfigDir: filepath.Join(configBase, ConfigName),
		StateDir:  filepath.Join(stateBase, ConfigName),
	}
}

// ConfigSearchDirs returns the directories searched for dnaspec.toml.
func (p *Paths) ConfigSearchDirs() []string {
	return []string{p.WorkDir, p.ConfigDir}
}

// UserConfigFile returns the per-user config file path.
func (p *Paths) UserConfigFile() string {
	return filepath.Join(p.ConfigDir, ConfigFileName)
}

// ApplySettings lets settings override path defaults.
func (p *Paths) ApplySettings(s *Settings) {
	if s != nil && s.StateDir != "" {
		p.StateDir = s.StateDir
	}
}

// Validate checks that the required directories are set.
func (p *Paths) Validate() error {
	if p.WorkDir == "" {
		return fmt.Errorf("work directory is not set")
	}
	if p.HomeDir == "" {
		return fmt.Errorf("home directory is not set")
	}
	return nil
}
