package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagPlain bool
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the record and the best runs",
	Long: `Display the best score and the top runs.

Opens an interactive table in a terminal; use --plain for text output.

Examples:
  snake scores
  snake scores --plain
  snake scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print scores as plain text")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the record and the runs stored under the configured record key")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening record database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	book := store.Book(cfg.Storage.RecordKey)

	if flagClear {
		if err := book.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Record and run history cleared for %q.\n", book.Key())
		return
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(book, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printScores(book)
}

// printScores writes the record, the top runs and the totals to stdout.
func printScores(book *storage.RecordBook) {
	scores, err := book.TopRuns(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Snake")
	fmt.Println()

	if rec, ok, err := book.Record(); err == nil && ok {
		fmt.Printf("Record: %d\n\n", rec)
	}

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-6s  %-8s  %s\n", "Rank", "Score", "Length", "Run", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-8s  %s\n", "----", "-----", "------", "---", "----")

	for i, entry := range scores {
		runID := entry.RunID
		if len(runID) > 8 {
			runID = runID[:8]
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-6d  %-6d  %-8s  %s\n", i+1, entry.Score, entry.Length, runID, dateStr)
	}

	if stats, err := book.Stats(); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Average: %.1f  Last played: %s\n",
			stats.Runs, stats.AvgScore, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
}
