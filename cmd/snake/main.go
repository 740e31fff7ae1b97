// snake is a terminal snake game on a wraparound board.
//
// Usage:
//
//	snake                    - Play a game (same as "snake play")
//	snake play               - Play a game
//	snake scores             - Show the record and the best runs
//	snake serve              - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Config YAML (default search: ~/.snake/configs, ./configs)
//	--db <path>         - Database path (default: ~/.snake/snake.db)
//	--size <n>          - Board side length
//	--tick <duration>   - Time between moves, e.g. 200ms
//	--seed <value>      - RNG seed for reproducible food placement
//	--log-level <lvl>   - debug, info, warn, error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSize     int
	flagTick     time.Duration
	flagSeed     int64
	flagLogLevel string
	flagLogFile  string

	// cfg is the effective configuration, resolved before any command runs.
	cfg config.SnakeConfig
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake on an N x N board whose edges wrap around.
Eat food to grow; running into yourself ends the run.

Available commands:
  play     - Play a game (default)
  scores   - View the record and the best runs
  serve    - Start SSH server for remote play

Examples:
  snake
  snake play --size 16 --tick 150ms
  snake scores --plain
  snake serve --ssh :2222`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
	Run:               runPlay,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config YAML")
	pf.StringVar(&flagDBPath, "db", "", "Path to database (default from config: ~/.snake/snake.db)")
	pf.IntVar(&flagSize, "size", 0, "Board side length (4-64)")
	pf.DurationVar(&flagTick, "tick", 0, "Time between moves, e.g. 200ms")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig resolves the configuration: file, then environment, then flags.
func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if err := config.ApplyEnv(&loaded); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		loaded.Storage.DBPath = flagDBPath
	}
	if flags.Changed("size") {
		loaded.Board.Size = flagSize
	}
	if flags.Changed("tick") {
		loaded.Timing.TickMS = int(flagTick / time.Millisecond)
	}

	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// newLogger builds a logger writing to the --log-file, or to fallback when
// no file is given. The returned closer releases the file.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	w := fallback
	closer := func() {}
	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}
