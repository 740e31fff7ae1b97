package snake

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// State is the lifecycle state of a game.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Config holds the controller's game parameters.
type Config struct {
	BoardSize    int
	TickInterval time.Duration
	Seed         int64
}

// ConfigFromRuntime extracts controller parameters from a runtime config.
func ConfigFromRuntime(rc core.RuntimeConfig) Config {
	return Config{
		BoardSize:    rc.BoardSize,
		TickInterval: rc.TickInterval,
		Seed:         rc.Seed,
	}
}

// Controller owns the run lifecycle, the tick epoch, the score and the record.
// It calls World.Step once per tick and reacts to the outcome.
// A Controller is not safe for concurrent use; drive it from one event loop.
type Controller struct {
	cfg  Config
	deps Deps
	log  *log.Logger
	rng  *rand.Rand

	world *World
	state State
	score int
	ticks uint64
	runID string

	record    int
	hasRecord bool

	// epoch tags the current tick chain. Every start, reset and game over
	// bumps it so ticks armed earlier are rejected.
	epoch uint64
}

// NewController loads the record, builds the first world and renders it.
// The game starts Idle.
func NewController(cfg Config, deps Deps) *Controller {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	c := &Controller{
		cfg:  cfg,
		deps: deps,
		log:  logger,
		rng:  rand.New(rand.NewSource(cfg.Seed)),
	}

	if deps.Records != nil {
		rec, ok, err := deps.Records.Record()
		switch {
		case err != nil:
			c.log.Warn("could not load record", "error", err)
		case ok:
			c.record = rec
			c.hasRecord = true
		}
	}

	c.rebuild()
	return c
}

// rebuild replaces the world and clears per-run bookkeeping.
func (c *Controller) rebuild() {
	c.world = NewWorld(c.cfg.BoardSize, c.rng)
	c.world.SpawnFood()
	c.score = 0
	c.ticks = 0
	c.runID = ""

	c.renderBoard()
	if c.deps.Scoreboard != nil {
		c.deps.Scoreboard.SetScore(0)
		if c.hasRecord {
			c.deps.Scoreboard.SetRecord(c.record)
		}
	}
}

// OnStart moves an idle game to Running and arms the ticker.
// Starting a game that is already running, or over, does nothing.
func (c *Controller) OnStart() bool {
	if c.state != StateIdle {
		return false
	}

	c.state = StateRunning
	c.score = 0
	c.ticks = 0
	c.runID = uuid.NewString()
	c.epoch++

	if c.deps.Scoreboard != nil {
		c.deps.Scoreboard.SetScore(0)
	}
	if c.deps.Ticker != nil {
		c.deps.Ticker.Start(c.epoch, c.cfg.TickInterval)
	}

	c.log.Debug("run started", "run", c.runID, "epoch", c.epoch)
	return true
}

// OnDirection requests a heading change. Only honored while Running.
func (c *Controller) OnDirection(d core.Direction) bool {
	if c.state != StateRunning {
		return false
	}
	return c.world.SetPendingDirection(d)
}

// OnReset cancels any pending tick, rebuilds the world and returns to Idle.
func (c *Controller) OnReset() {
	prev := c.state
	c.stopTicking()
	c.rebuild()
	c.state = StateIdle

	c.log.Debug("game reset", "from", prev, "epoch", c.epoch)
}

// HandleAction dispatches a semantic input action.
// It returns true when the action changed the game.
func (c *Controller) HandleAction(a core.Action) bool {
	if d, ok := a.Direction(); ok {
		return c.OnDirection(d)
	}

	switch a {
	case core.ActionStart:
		return c.OnStart()
	case core.ActionReset:
		c.OnReset()
		return true
	}
	return false
}

// Tick advances the world one step if epoch belongs to the live run.
// The second result is false when the tick was dropped.
func (c *Controller) Tick(epoch uint64) (StepOutcome, bool) {
	if c.state != StateRunning || epoch != c.epoch {
		c.log.Debug("dropping stale tick", "tick_epoch", epoch, "epoch", c.epoch, "state", c.state)
		return Moved, false
	}

	c.ticks++
	res := c.world.Step()

	switch res.Outcome {
	case Moved:
		// Erase first: with a two-segment snake the new head can land on
		// the cell the tail just left.
		if res.Freed {
			c.render(res.Vacated, LabelEmpty)
		}
		c.render(res.Head, LabelSnake)

	case AteFood:
		c.score++
		if c.deps.Scoreboard != nil {
			c.deps.Scoreboard.SetScore(c.score)
		}
		c.render(res.Head, LabelSnake)
		if c.world.Full() {
			// No cell is left for food, so the run ends here.
			c.finish()
			break
		}
		c.render(c.world.SpawnFood(), LabelFood)

	case Collided:
		c.finish()
	}

	return res.Outcome, true
}

// finish ends the run: stop ticking, settle the record, prompt for restart.
func (c *Controller) finish() {
	c.stopTicking()
	c.state = StateGameOver

	newRecord := !c.hasRecord || c.score > c.record
	if newRecord {
		c.record = c.score
		c.hasRecord = true
		if c.deps.Scoreboard != nil {
			c.deps.Scoreboard.SetRecord(c.record)
		}
		if c.deps.Records != nil {
			if err := c.deps.Records.SetRecord(c.score); err != nil {
				c.log.Warn("could not save record", "score", c.score, "error", err)
			}
		}
	}

	if c.deps.History != nil && c.score > 0 {
		if err := c.deps.History.SaveRun(c.runID, c.score, c.world.Len()); err != nil {
			c.log.Warn("could not save run", "run", c.runID, "error", err)
		}
	}

	info := GameOverInfo{
		RunID:     c.runID,
		Score:     c.score,
		Record:    c.record,
		NewRecord: newRecord,
		Length:    c.world.Len(),
		Ticks:     c.ticks,
	}
	c.log.Info("game over", "run", c.runID, "score", c.score, "record", c.record, "ticks", c.ticks)

	if c.deps.Prompter != nil {
		c.deps.Prompter.PromptRestart(info)
	}
}

// stopTicking disarms the ticker and invalidates in-flight ticks.
func (c *Controller) stopTicking() {
	if c.deps.Ticker != nil {
		c.deps.Ticker.Stop()
	}
	c.epoch++
}

func (c *Controller) render(p core.Coord, label CellLabel) {
	if c.deps.Renderer != nil {
		c.deps.Renderer.Render(p, label)
	}
}

// renderBoard repaints every cell.
func (c *Controller) renderBoard() {
	if c.deps.Renderer == nil {
		return
	}
	n := c.world.Size()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			c.render(core.C(x, y), LabelEmpty)
		}
	}
	for _, seg := range c.world.Body() {
		c.render(seg, LabelSnake)
	}
	if food, ok := c.world.Food(); ok {
		c.render(food, LabelFood)
	}
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Score returns the current run's score.
func (c *Controller) Score() int {
	return c.score
}

// Record returns the best score, and false if none exists yet.
func (c *Controller) Record() (int, bool) {
	return c.record, c.hasRecord
}

// Epoch returns the tag that live ticks must carry.
func (c *Controller) Epoch() uint64 {
	return c.epoch
}

// World returns the current world. It is replaced on every reset.
func (c *Controller) World() *World {
	return c.world
}

// RunID returns the current run's identifier, empty while Idle.
func (c *Controller) RunID() string {
	return c.runID
}

// TickInterval returns the time between ticks.
func (c *Controller) TickInterval() time.Duration {
	return c.cfg.TickInterval
}
