package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "tetris.yaml"

// Load loads the tetris configuration.
// Search order: customPath -> ~/.tetris/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default.
// Fields missing from a file keep their default values.
func Load(customPath string) (TetrisConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TetrisConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return TetrisConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultTetrisYAML)
	if err != nil {
		return DefaultTetrisConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TetrisConfig{}, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return TetrisConfig{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration describes a playable game.
func (c TetrisConfig) Validate() error {
	var errs []error

	if len(c.Scoring.LinePoints) != 5 {
		errs = append(errs, fmt.Errorf("scoring.line_points must have 5 entries, got %d", len(c.Scoring.LinePoints)))
	}
	for i, p := range c.Scoring.LinePoints {
		if p < 0 {
			errs = append(errs, fmt.Errorf("scoring.line_points[%d] is negative", i))
		}
	}
	if c.Scoring.LinesPerLevel <= 0 {
		errs = append(errs, errors.New("scoring.lines_per_level must be positive"))
	}
	if c.Speed.BaseIntervalMs <= 0 {
		errs = append(errs, errors.New("speed.base_interval_ms must be positive"))
	}
	if c.Speed.StepMs < 0 {
		errs = append(errs, errors.New("speed.step_ms must not be negative"))
	}
	if c.Speed.MinIntervalMs <= 0 || c.Speed.MinIntervalMs > c.Speed.BaseIntervalMs {
		errs = append(errs, errors.New("speed.min_interval_ms must be in (0, base_interval_ms]"))
	}

	keys := []struct {
		name string
		list []string
	}{
		{"left", c.Keys.Left},
		{"right", c.Keys.Right},
		{"rotate", c.Keys.Rotate},
		{"soft_drop", c.Keys.SoftDrop},
		{"hard_drop", c.Keys.HardDrop},
		{"pause", c.Keys.Pause},
		{"start", c.Keys.Start},
		{"restart", c.Keys.Restart},
		{"quit", c.Keys.Quit},
	}
	for _, k := range keys {
		if len(k.list) == 0 {
			errs = append(errs, fmt.Errorf("keys.%s must list at least one key", k.name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetris", "configs", filename)
}
