package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Scoring: ScoringConfig{
			LinePoints:    []int{0, 40, 100, 300, 1200},
			LinesPerLevel: 10,
		},
		Speed: SpeedConfig{
			BaseIntervalMs: 1000,
			StepMs:         100,
			MinIntervalMs:  100,
		},
		Keys: KeysConfig{
			Left:     []string{"left", "a"},
			Right:    []string{"right", "d"},
			Rotate:   []string{"up", "w"},
			SoftDrop: []string{"down", "s"},
			HardDrop: []string{" "},
			Pause:    []string{"p", "esc"},
			Start:    []string{"enter"},
			Restart:  []string{"r"},
			Quit:     []string{"q", "ctrl+c"},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
