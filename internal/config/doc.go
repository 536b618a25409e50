// Package config provides settings, paths and project config files for dnaspec.
//
// # Settings
//
// Settings are resolved by viper in increasing precedence:
//
//  1. Built-in defaults (Defaults)
//  2. dnaspec.toml in the work dir or $XDG_CONFIG_HOME/dnaspec
//  3. DNASPEC_* environment variables (DNASPEC_LANG, DNASPEC_TEMP_DIR, ...)
//  4. Bound flags (--lang, --keep-temp)
//
// Example dnaspec.toml:
//
//	lang = "zh"
//	repo_urls = ["https://github.com/ptreezh/dnaSpec.git"]
//	clone_timeout = "90s"
//	keep_temp = true
//
// # Paths
//
// Paths carries the work, home, config and state directories. Every
// operation receives the directories it needs explicitly.
//
// # Project Config
//
// ProjectConfig is the dnaspec-config.json snapshot written by setup.
package config
