package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file configuration.
const (
	EnvBoardSize = "SNAKE_BOARD_SIZE"
	EnvTickMS    = "SNAKE_TICK_MS"
	EnvDB        = "SNAKE_DB"
	EnvRecordKey = "SNAKE_RECORD_KEY"
	EnvSSHAddr   = "SNAKE_SSH_ADDR"
)

// Load loads the snake configuration.
// Search order: customPath -> ~/.snake/configs/snake.yaml -> ./configs/snake.yaml -> embedded default.
// Keys missing from the file keep their default values.
func Load(customPath string) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("snake.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if parsed, ok := parse(data); ok {
				return parsed, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "snake.yaml")); err == nil {
		if parsed, ok := parse(data); ok {
			return parsed, nil
		}
	}

	// Use embedded default YAML
	if parsed, ok := parse(defaultSnakeYAML); ok {
		return parsed, nil
	}
	return cfg, nil // Fallback to hardcoded if embed fails
}

// parse decodes data over the hardcoded defaults.
func parse(data []byte) (SnakeConfig, bool) {
	cfg := DefaultSnakeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", "configs", filename)
}

// ApplyEnv overrides cfg from the process environment and the given dotenv
// files (".env" when none are named). Missing files are skipped. Variables
// already set in the environment win over dotenv values.
func ApplyEnv(cfg *SnakeConfig, envFiles ...string) error {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	vars := make(map[string]string)
	for _, f := range envFiles {
		m, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: failed to read %s: %w", f, err)
		}
		maps.Copy(vars, m)
	}

	return applyEnv(cfg, func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	})
}

func applyEnv(cfg *SnakeConfig, lookup func(string) (string, bool)) error {
	ints := []struct {
		key string
		dst *int
	}{
		{EnvBoardSize, &cfg.Board.Size},
		{EnvTickMS, &cfg.Timing.TickMS},
	}
	for _, e := range ints {
		v, ok := lookup(e.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s=%q: %w", e.key, v, err)
		}
		*e.dst = n
	}

	strs := []struct {
		key string
		dst *string
	}{
		{EnvDB, &cfg.Storage.DBPath},
		{EnvRecordKey, &cfg.Storage.RecordKey},
		{EnvSSHAddr, &cfg.Server.Address},
	}
	for _, e := range strs {
		if v, ok := lookup(e.key); ok && v != "" {
			*e.dst = v
		}
	}
	return nil
}
