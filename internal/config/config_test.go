package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/ctrail/internal/pattern"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.DefaultLimit != 10 {
		t.Errorf("DefaultLimit = %d, want 10", cfg.General.DefaultLimit)
	}
	if cfg.General.ClaudeCommand != "claude" {
		t.Errorf("ClaudeCommand = %q, want claude", cfg.General.ClaudeCommand)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Errorf("Theme = %q, want flexoki-dark", cfg.Appearance.Theme)
	}
	if cfg.General.TrackEnergy {
		t.Error("TrackEnergy defaults on")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.LogsDir = "/tmp/ctrail-logs"
	cfg.General.DefaultLimit = 25
	cfg.General.TrackEnergy = true
	cfg.Patterns.ExtraEnthusiasm = []string{"ship it"}

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General.LogsDir != "/tmp/ctrail-logs" {
		t.Errorf("LogsDir = %q", got.General.LogsDir)
	}
	if got.General.DefaultLimit != 25 {
		t.Errorf("DefaultLimit = %d, want 25", got.General.DefaultLimit)
	}
	if !got.General.TrackEnergy {
		t.Error("TrackEnergy lost on round trip")
	}
	if len(got.Patterns.ExtraEnthusiasm) != 1 || got.Patterns.ExtraEnthusiasm[0] != "ship it" {
		t.Errorf("ExtraEnthusiasm = %v", got.Patterns.ExtraEnthusiasm)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfgDir := filepath.Join(dir, "ctrail")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte("[general\nbroken"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted corrupt config")
	}
}

func TestLogsDirOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.LogsDir = "/data/logs"

	dir, err := cfg.LogsDir()
	if err != nil {
		t.Fatalf("LogsDir: %v", err)
	}
	if dir != "/data/logs" {
		t.Errorf("LogsDir = %q, want /data/logs", dir)
	}
}

func TestLogsDirDefault(t *testing.T) {
	cfg := DefaultConfig()

	dir, err := cfg.LogsDir()
	if err != nil {
		t.Fatalf("LogsDir: %v", err)
	}
	home, _ := os.UserHomeDir()
	if dir != filepath.Join(home, ".claude-logs") {
		t.Errorf("LogsDir = %q", dir)
	}
}

func TestCompilePatternsWithExtras(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Patterns.ExtraConfusion = []string{"huh??"}

	set, err := cfg.CompilePatterns()
	if err != nil {
		t.Fatalf("CompilePatterns: %v", err)
	}
	if got := set.Count(pattern.Confusion, "well huh?? then"); got != 1 {
		t.Errorf("extra confusion count = %d, want 1", got)
	}
	if got := set.Count(pattern.Confusion, "I am confused about this"); got != 1 {
		t.Errorf("default confusion count = %d, want 1", got)
	}
}
