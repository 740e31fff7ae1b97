package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultRecordKey is the key the best score is stored under.
const DefaultRecordKey = "snakeRecord"

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{
			Size: 10,
		},
		Timing: TimingConfig{
			TickMS: 500,
		},
		Storage: StorageConfig{
			DBPath:    "~/.snake/snake.db",
			RecordKey: DefaultRecordKey,
		},
		Theme: ThemeConfig{
			SnakeGlyph:  "██",
			FoodGlyph:   "<>",
			EmptyGlyph:  " ·",
			SnakeColor:  "bright_green",
			FoodColor:   "red",
			EmptyColor:  "gray",
			BorderColor: "white",
		},
		Server: ServerConfig{
			Address:        ":2222",
			HostKeyPath:    ".ssh/snake_ed25519",
			IdleTimeoutMin: 30,
		},
	}
}
