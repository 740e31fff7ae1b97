// Package config provides YAML-based game configuration loading with
// embedded defaults and environment overrides.
package config

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Board size and tick limits accepted by Validate.
const (
	MinBoardSize = 4
	MaxBoardSize = 64
	MinTickMS    = 10
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Timing  TimingConfig  `yaml:"timing"`
	Storage StorageConfig `yaml:"storage"`
	Theme   ThemeConfig   `yaml:"theme"`
	Server  ServerConfig  `yaml:"server"`
}

// BoardConfig defines the playfield.
type BoardConfig struct {
	Size int `yaml:"size"` // Side length N of the N x N torus
}

// TimingConfig defines the game clock.
type TimingConfig struct {
	TickMS int `yaml:"tick_ms"`
}

// StorageConfig defines where the record and run history live.
type StorageConfig struct {
	DBPath    string `yaml:"db_path"`
	RecordKey string `yaml:"record_key"`
}

// ThemeConfig defines how board cells are drawn. Each glyph occupies two
// terminal columns; a single-rune glyph is padded with a space.
type ThemeConfig struct {
	SnakeGlyph  string `yaml:"snake_glyph"`
	FoodGlyph   string `yaml:"food_glyph"`
	EmptyGlyph  string `yaml:"empty_glyph"`
	SnakeColor  string `yaml:"snake_color"`
	FoodColor   string `yaml:"food_color"`
	EmptyColor  string `yaml:"empty_color"`
	BorderColor string `yaml:"border_color"`
}

// ServerConfig defines the SSH server used by "snake serve".
type ServerConfig struct {
	Address        string `yaml:"address"`
	HostKeyPath    string `yaml:"host_key_path"`
	IdleTimeoutMin int    `yaml:"idle_timeout_min"`
}

// TickInterval returns the configured time between ticks.
func (c SnakeConfig) TickInterval() time.Duration {
	return time.Duration(c.Timing.TickMS) * time.Millisecond
}

// IdleTimeout returns the SSH idle timeout.
func (c SnakeConfig) IdleTimeout() time.Duration {
	return time.Duration(c.Server.IdleTimeoutMin) * time.Minute
}

// Runtime builds the runtime configuration handed to the game.
func (c SnakeConfig) Runtime(seed int64) core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.BoardSize = c.Board.Size
	rc.TickInterval = c.TickInterval()
	rc.Seed = seed
	return rc
}

// Validate reports the first setting the game cannot run with.
func (c SnakeConfig) Validate() error {
	if c.Board.Size < MinBoardSize || c.Board.Size > MaxBoardSize {
		return fmt.Errorf("%w: board size %d outside [%d, %d]", ErrInvalid, c.Board.Size, MinBoardSize, MaxBoardSize)
	}
	if c.Timing.TickMS < MinTickMS {
		return fmt.Errorf("%w: tick %dms below %dms", ErrInvalid, c.Timing.TickMS, MinTickMS)
	}
	if c.Storage.RecordKey == "" {
		return fmt.Errorf("%w: empty record key", ErrInvalid)
	}
	for name, g := range map[string]string{
		"snake_glyph": c.Theme.SnakeGlyph,
		"food_glyph":  c.Theme.FoodGlyph,
		"empty_glyph": c.Theme.EmptyGlyph,
	} {
		if n := utf8.RuneCountInString(g); n < 1 || n > 2 {
			return fmt.Errorf("%w: %s %q must be 1 or 2 runes", ErrInvalid, name, g)
		}
	}
	return nil
}
