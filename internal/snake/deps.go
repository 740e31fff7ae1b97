package snake

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// CellLabel is the semantic content of a board cell handed to a Renderer.
type CellLabel string

const (
	LabelEmpty CellLabel = "empty"
	LabelSnake CellLabel = "snake"
	LabelFood  CellLabel = "food"
)

// Renderer draws one board cell. Calls for the same coordinate may repeat;
// the last label wins.
type Renderer interface {
	Render(c core.Coord, label CellLabel)
}

// Scoreboard displays the current score and the best record.
type Scoreboard interface {
	SetScore(score int)
	SetRecord(record int)
}

// RecordStore persists the best score across sessions.
// Record reports false when nothing has been stored yet.
type RecordStore interface {
	Record() (int, bool, error)
	SetRecord(score int) error
}

// ScoreHistory keeps a log of finished runs.
type ScoreHistory interface {
	SaveRun(runID string, score, length int) error
}

// GameOverInfo describes a finished run.
type GameOverInfo struct {
	RunID     string
	Score     int
	Record    int
	NewRecord bool
	Length    int    // Snake length at the fatal tick
	Ticks     uint64 // Ticks played in the run
}

// Prompter is told when a run ends so the UI can offer a restart.
type Prompter interface {
	PromptRestart(info GameOverInfo)
}

// Ticker is the periodic tick source. Start arms ticks tagged with epoch;
// Stop disarms them. The controller also rejects ticks whose epoch is stale,
// so a tick already in flight when Stop runs is harmless.
type Ticker interface {
	Start(epoch uint64, interval time.Duration)
	Stop()
}

// Deps bundles the controller's collaborators. Any of them may be nil.
type Deps struct {
	Renderer   Renderer
	Scoreboard Scoreboard
	Records    RecordStore
	History    ScoreHistory
	Prompter   Prompter
	Ticker     Ticker
	Logger     *log.Logger
}
