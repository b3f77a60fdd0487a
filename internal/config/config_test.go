//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/music/artists.csv",
			expected: filepath.Join(home, "music", "artists.csv"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/var/lib/classicalfixes/artists.db",
			expected: "/var/lib/classicalfixes/artists.db",
		},
		{
			name:     "relative path unchanged",
			input:    "data/artists.csv",
			expected: "data/artists.csv",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}

	lastPath := paths[len(paths)-1]
	if lastPath != "config.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "config.toml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		expectedFirst := filepath.Join(home, ".config", "classicalfixes", "config.toml")
		if paths[0] != expectedFirst {
			t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
		}
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.Lookup.Backend != BackendCSV {
		t.Errorf("Lookup.Backend = %q, want %q", cfg.Lookup.Backend, BackendCSV)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
	if !cfg.PrettyLog() {
		t.Error("PrettyLog() = false, want true")
	}
	if cfg.Fixes.Genre != "Classical" {
		t.Errorf("Fixes.Genre = %q, want %q", cfg.Fixes.Genre, "Classical")
	}
	if !cfg.StampEnabled() {
		t.Error("StampEnabled() = false, want true")
	}
	if cfg.Fixes.StripDiscMarkers {
		t.Error("Fixes.StripDiscMarkers = true, want false")
	}
	if got := cfg.GetRulesConfig().SimilarityThreshold; got != 0.85 {
		t.Errorf("SimilarityThreshold = %v, want 0.85", got)
	}
}

func TestLoadFrom_Values(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.toml", `
[lookup]
backend = "SQLite"
path = "/data/artists.db"

[log]
level = "debug"
pretty = false

[rules]
number_tokens = ["No", "Nr", "Nummer"]
opus_tokens = ["Opus"]
orchestra_tokens = ["orchestra", "orkester"]
similarity_threshold = 0.9

[fixes]
genre = "Klassik"
stamp = false
strip_disc_markers = true
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.Lookup.Backend != BackendSQLite {
		t.Errorf("Lookup.Backend = %q, want %q", cfg.Lookup.Backend, BackendSQLite)
	}
	if got, err := cfg.LookupPath(); err != nil || got != "/data/artists.db" {
		t.Errorf("LookupPath() = %q, %v, want %q", got, err, "/data/artists.db")
	}
	if cfg.Log.Level != "debug" || cfg.PrettyLog() {
		t.Errorf("Log = %+v, want debug without pretty", cfg.Log)
	}
	rules := cfg.GetRulesConfig()
	if len(rules.NumberTokens) != 3 || rules.NumberTokens[2] != "Nummer" {
		t.Errorf("NumberTokens = %v", rules.NumberTokens)
	}
	if len(rules.OpusTokens) != 1 || len(rules.OrchestraTokens) != 2 {
		t.Errorf("OpusTokens = %v, OrchestraTokens = %v", rules.OpusTokens, rules.OrchestraTokens)
	}
	if rules.SimilarityThreshold != 0.9 {
		t.Errorf("SimilarityThreshold = %v, want 0.9", rules.SimilarityThreshold)
	}
	if cfg.Fixes.Genre != "Klassik" || cfg.StampEnabled() || !cfg.Fixes.StripDiscMarkers {
		t.Errorf("Fixes = %+v", cfg.Fixes)
	}
}

func TestLoadFrom_LastWins(t *testing.T) {
	dir := t.TempDir()
	first := writeConfig(t, dir, "first.toml", "[fixes]\ngenre = \"First\"\n[log]\nlevel = \"warn\"\n")
	second := writeConfig(t, dir, "second.toml", "[fixes]\ngenre = \"Second\"\n")

	cfg, err := LoadFrom(first, second)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Fixes.Genre != "Second" {
		t.Errorf("Fixes.Genre = %q, want %q", cfg.Fixes.Genre, "Second")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}
}

func TestLoadFrom_UnknownBackend(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.toml", "[lookup]\nbackend = \"postgres\"\n")

	if _, err := LoadFrom(path); err == nil || !strings.Contains(err.Error(), "postgres") {
		t.Errorf("LoadFrom() error = %v, want unknown backend", err)
	}
}

func TestLookupPath_Default(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	tests := []struct {
		backend string
		want    string
	}{
		{BackendCSV, filepath.Join("classicalfixes", "artists.csv")},
		{BackendSQLite, filepath.Join("classicalfixes", "artists.db")},
	}
	for _, tt := range tests {
		cfg := &Config{Lookup: LookupConfig{Backend: tt.backend}}
		got, err := cfg.LookupPath()
		if err != nil {
			t.Fatalf("LookupPath() error: %v", err)
		}
		if !strings.HasSuffix(got, tt.want) {
			t.Errorf("LookupPath() = %q, want suffix %q", got, tt.want)
		}
	}
}
