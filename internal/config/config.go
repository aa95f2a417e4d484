// Package config loads and saves ctrail configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/ctrail/internal/pattern"
)

// Config holds all ctrail configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Patterns   PatternOverrides `toml:"patterns"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	// LogsDir overrides where transcripts and metadata live.
	// Defaults to ~/.claude-logs.
	LogsDir string `toml:"logs_dir,omitempty"`
	// DefaultLimit is the session count shown by list commands.
	DefaultLimit int `toml:"default_limit"`
	// TrackEnergy prompts for a creative-energy rating after every
	// session without needing the --energy flag.
	TrackEnergy bool `toml:"track_energy"`
	// ClaudeCommand is the binary wrapped by the default command.
	ClaudeCommand string `toml:"claude_command,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// PatternOverrides extends the built-in detector vocabularies with
// user-defined words. Extras never replace the defaults.
type PatternOverrides struct {
	ExtraEnthusiasm []string `toml:"extra_enthusiasm,omitempty"`
	ExtraConfusion  []string `toml:"extra_confusion,omitempty"`
	ExtraCompaction []string `toml:"extra_compaction,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultLimit:  10,
			ClaudeCommand: "claude",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ctrail")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ctrail")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.General.ClaudeCommand == "" {
		cfg.General.ClaudeCommand = "claude"
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// LogsDir resolves the logs directory: config override first, then
// ~/.claude-logs.
func (c Config) LogsDir() (string, error) {
	if c.General.LogsDir != "" {
		return c.General.LogsDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".claude-logs"), nil
}

// CompilePatterns builds the detector set from the defaults plus any
// configured extras.
func (c Config) CompilePatterns() (*pattern.Set, error) {
	return pattern.Compile(map[pattern.Category][]string{
		pattern.Enthusiasm: c.Patterns.ExtraEnthusiasm,
		pattern.Confusion:  c.Patterns.ExtraConfusion,
		pattern.Compaction: c.Patterns.ExtraCompaction,
	})
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
