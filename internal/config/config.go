package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "classicalfixes"

// Lookup backends.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

type Config struct {
	Lookup LookupConfig `koanf:"lookup"`
	Log    LogConfig    `koanf:"log"`
	Rules  RulesConfig  `koanf:"rules"`
	Fixes  FixesConfig  `koanf:"fixes"`
}

// LookupConfig selects where the lookup table is stored.
type LookupConfig struct {
	Backend string `koanf:"backend"` // "csv" or "sqlite" (default: "csv")
	Path    string `koanf:"path"`    // default: XDG data dir
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `koanf:"level"`  // zerolog level name (default: "info")
	Pretty *bool  `koanf:"pretty"` // console output instead of JSON (default: true)
}

// RulesConfig holds the token lists and thresholds of the matching rules.
// Empty lists select the built-in defaults.
type RulesConfig struct {
	NumberTokens        []string `koanf:"number_tokens"`
	OpusTokens          []string `koanf:"opus_tokens"`
	OrchestraTokens     []string `koanf:"orchestra_tokens"`
	SimilarityThreshold float64  `koanf:"similarity_threshold"` // 0.0-1.0 (default: 0.85)
}

// FixesConfig holds the options of the classical fixes.
type FixesConfig struct {
	Genre            string `koanf:"genre"`              // default: "Classical"
	Stamp            *bool  `koanf:"stamp"`              // write the change stamp (default: true)
	StripDiscMarkers bool   `koanf:"strip_disc_markers"` // also strip disc markers outside combine
}

// Load reads the config files in order of priority, last wins.
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given config files, skipping missing ones.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	cfg := &Config{
		Lookup: LookupConfig{Backend: BackendCSV},
		Log:    LogConfig{Level: "info"},
		Fixes:  FixesConfig{Genre: "Classical"},
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Lookup.Backend = strings.ToLower(strings.TrimSpace(cfg.Lookup.Backend))
	switch cfg.Lookup.Backend {
	case "":
		cfg.Lookup.Backend = BackendCSV
	case BackendCSV, BackendSQLite:
	default:
		return nil, fmt.Errorf("unknown lookup backend %q", cfg.Lookup.Backend)
	}

	// Expand ~ in lookup path
	if cfg.Lookup.Path != "" {
		cfg.Lookup.Path = expandPath(cfg.Lookup.Path)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/classicalfixes/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// LookupPath returns the configured lookup file, or the backend's default
// file in the XDG data directory.
func (c *Config) LookupPath() (string, error) {
	if c.Lookup.Path != "" {
		return c.Lookup.Path, nil
	}
	name := "artists.csv"
	if c.Lookup.Backend == BackendSQLite {
		name = "artists.db"
	}
	return xdg.DataFile(filepath.Join(appName, name))
}

// PrettyLog reports whether logs go to a console writer.
func (c *Config) PrettyLog() bool {
	return c.Log.Pretty == nil || *c.Log.Pretty
}

// StampEnabled reports whether fixed records get a change stamp.
func (c *Config) StampEnabled() bool {
	return c.Fixes.Stamp == nil || *c.Fixes.Stamp
}

// GetRulesConfig returns the rules configuration with defaults applied.
func (c *Config) GetRulesConfig() RulesConfig {
	cfg := c.Rules
	if cfg.SimilarityThreshold <= 0 || cfg.SimilarityThreshold > 1 {
		cfg.SimilarityThreshold = 0.85
	}
	return cfg
}
