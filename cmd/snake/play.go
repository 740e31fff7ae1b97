package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of snake. The board wraps around at every edge.

Controls:
  Arrows/WASD      - Steer
  Space/Enter/Click - Start
  R                - New game
  ?                - More keys
  Q/Ctrl+C         - Quit

Examples:
  snake play
  snake play --size 20 --tick 120ms
  snake play --seed 42 --log-file /tmp/snake.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		fmt.Fprintln(os.Stderr, "Error: snake play needs an interactive terminal")
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(fd); termErr == nil {
		width = w
		height = h
	}

	// Logs go to a file or nowhere; the game owns the screen.
	logger, closeLog, err := newLogger(io.Discard, "snake")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	opts := tui.Options{
		Config: cfg,
		Seed:   flagSeed,
		Logger: logger,
		Width:  width,
		Height: height,
	}

	// Open record storage
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open record database: %v\n", err)
		logger.Warn("playing without storage", "error", err)
		// Continue without storage - game still works
	} else {
		book := store.Book(cfg.Storage.RecordKey)
		opts.Records = book
		opts.History = book
	}

	logger.Info("starting game", "size", cfg.Board.Size, "tick", cfg.TickInterval(), "seed", flagSeed)
	runErr := tui.Run(opts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
