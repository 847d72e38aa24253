// Package config provides YAML-based configuration loading for the tetris
// engine and its terminal host.
package config

// TetrisConfig contains all tunable settings.
type TetrisConfig struct {
	Scoring ScoringConfig `yaml:"scoring"`
	Speed   SpeedConfig   `yaml:"speed"`
	Keys    KeysConfig    `yaml:"keys"`
}

// ScoringConfig defines points and level thresholds.
type ScoringConfig struct {
	LinePoints    []int `yaml:"line_points"`     // Index = rows cleared at once (0-4)
	LinesPerLevel int   `yaml:"lines_per_level"` // Cleared rows per level
}

// SpeedConfig defines the automatic fall interval in milliseconds.
type SpeedConfig struct {
	BaseIntervalMs int `yaml:"base_interval_ms"` // Interval at level 1
	StepMs         int `yaml:"step_ms"`          // Reduction per level
	MinIntervalMs  int `yaml:"min_interval_ms"`  // Floor
}

// KeysConfig lists the terminal keys bound to each action.
// Key names follow Bubble Tea's KeyMsg.String() format.
type KeysConfig struct {
	Left     []string `yaml:"left"`
	Right    []string `yaml:"right"`
	Rotate   []string `yaml:"rotate"`
	SoftDrop []string `yaml:"soft_drop"`
	HardDrop []string `yaml:"hard_drop"`
	Pause    []string `yaml:"pause"`
	Start    []string `yaml:"start"`
	Restart  []string `yaml:"restart"`
	Quit     []string `yaml:"quit"`
}
