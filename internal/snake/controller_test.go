package snake

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

type fakeRenderer struct {
	cells map[core.Coord]CellLabel
	calls int
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{cells: make(map[core.Coord]CellLabel)}
}

func (r *fakeRenderer) Render(c core.Coord, label CellLabel) {
	r.cells[c] = label
	r.calls++
}

func (r *fakeRenderer) count(label CellLabel) int {
	n := 0
	for _, l := range r.cells {
		if l == label {
			n++
		}
	}
	return n
}

type fakeScoreboard struct {
	score     int
	record    int
	recordSet bool
}

func (s *fakeScoreboard) SetScore(score int) { s.score = score }

func (s *fakeScoreboard) SetRecord(record int) {
	s.record = record
	s.recordSet = true
}

type memRecords struct {
	value   int
	ok      bool
	sets    int
	loadErr error
	saveErr error
}

func (m *memRecords) Record() (int, bool, error) {
	if m.loadErr != nil {
		return 0, false, m.loadErr
	}
	return m.value, m.ok, nil
}

func (m *memRecords) SetRecord(score int) error {
	m.sets++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.value = score
	m.ok = true
	return nil
}

type savedRun struct {
	runID         string
	score, length int
}

type fakeHistory struct {
	runs []savedRun
}

func (h *fakeHistory) SaveRun(runID string, score, length int) error {
	h.runs = append(h.runs, savedRun{runID, score, length})
	return nil
}

type fakePrompter struct {
	prompts []GameOverInfo
}

func (p *fakePrompter) PromptRestart(info GameOverInfo) {
	p.prompts = append(p.prompts, info)
}

type fakeTicker struct {
	running  bool
	epoch    uint64
	interval time.Duration
	starts   int
	stops    int
}

func (t *fakeTicker) Start(epoch uint64, interval time.Duration) {
	t.running = true
	t.epoch = epoch
	t.interval = interval
	t.starts++
}

func (t *fakeTicker) Stop() {
	t.running = false
	t.stops++
}

type harness struct {
	c        *Controller
	renderer *fakeRenderer
	board    *fakeScoreboard
	records  *memRecords
	history  *fakeHistory
	prompter *fakePrompter
	ticker   *fakeTicker
}

func newHarness(t *testing.T, records *memRecords) *harness {
	t.Helper()
	if records == nil {
		records = &memRecords{}
	}
	h := &harness{
		renderer: newFakeRenderer(),
		board:    &fakeScoreboard{},
		records:  records,
		history:  &fakeHistory{},
		prompter: &fakePrompter{},
		ticker:   &fakeTicker{},
	}
	h.c = NewController(Config{BoardSize: 10, TickInterval: 500 * time.Millisecond, Seed: 42}, Deps{
		Renderer:   h.renderer,
		Scoreboard: h.board,
		Records:    h.records,
		History:    h.history,
		Prompter:   h.prompter,
		Ticker:     h.ticker,
	})
	return h
}

// script replaces the controller's world with an explicit layout.
func (h *harness) script(t *testing.T, body []core.Coord, heading core.Direction) *World {
	t.Helper()
	h.c.world = newTestWorld(t, 10, body, heading)
	h.c.renderBoard()
	return h.c.world
}

// deadlyLoop is a layout whose first left step hits its own body.
var deadlyLoop = []core.Coord{core.C(5, 5), core.C(5, 6), core.C(4, 6), core.C(4, 5), core.C(4, 4)}

func TestControllerStartsIdle(t *testing.T) {
	h := newHarness(t, nil)

	if h.c.State() != StateIdle {
		t.Errorf("state = %v, expected idle", h.c.State())
	}
	if h.c.Score() != 0 {
		t.Errorf("score = %d, expected 0", h.c.Score())
	}
	if h.ticker.starts != 0 {
		t.Error("ticker should not run before start")
	}

	if got := h.renderer.count(LabelSnake); got != 2 {
		t.Errorf("rendered %d snake cells, expected 2", got)
	}
	if got := h.renderer.count(LabelFood); got != 1 {
		t.Errorf("rendered %d food cells, expected 1", got)
	}
	if got := len(h.renderer.cells); got != 100 {
		t.Errorf("rendered %d cells, expected the full 10x10 board", got)
	}

	food, ok := h.c.World().Food()
	if !ok || h.c.World().Occupied(food) {
		t.Errorf("initial food %v (ok=%v) should be on a free cell", food, ok)
	}
}

func TestStartIsNotReentrant(t *testing.T) {
	h := newHarness(t, nil)

	if !h.c.OnStart() {
		t.Fatal("first start should succeed")
	}
	if h.c.State() != StateRunning {
		t.Fatalf("state = %v, expected running", h.c.State())
	}
	if !h.ticker.running || h.ticker.epoch != h.c.Epoch() || h.ticker.interval != 500*time.Millisecond {
		t.Errorf("ticker = %+v, expected running at epoch %d every 500ms", h.ticker, h.c.Epoch())
	}
	if h.c.RunID() == "" {
		t.Error("a running game should have a run ID")
	}

	epoch := h.c.Epoch()
	if h.c.OnStart() {
		t.Error("second start should be a no-op")
	}
	if h.ticker.starts != 1 || h.c.Epoch() != epoch {
		t.Error("re-entrant start must not restart the ticker")
	}
}

func TestDirectionOnlyWhileRunning(t *testing.T) {
	h := newHarness(t, nil)

	if h.c.OnDirection(core.Up) {
		t.Error("direction should be ignored while idle")
	}
	if h.c.World().Pending() != core.Right {
		t.Errorf("pending = %v, expected right", h.c.World().Pending())
	}

	h.c.OnStart()
	if !h.c.OnDirection(core.Up) {
		t.Error("direction should be honored while running")
	}
	if h.c.OnDirection(core.Left) {
		t.Error("reversal should be ignored")
	}
}

// Scenario A through the controller: score, scoreboard and food respawn.
func TestTickAteFood(t *testing.T) {
	h := newHarness(t, nil)
	h.c.OnStart()
	w := h.script(t, []core.Coord{core.C(5, 5), core.C(4, 5)}, core.Right)
	w.SetFood(core.C(6, 5))

	outcome, ok := h.c.Tick(h.c.Epoch())

	if !ok || outcome != AteFood {
		t.Fatalf("Tick() = %v, %v, expected ate_food, true", outcome, ok)
	}
	if h.c.Score() != 1 || h.board.score != 1 {
		t.Errorf("score = %d (board %d), expected 1", h.c.Score(), h.board.score)
	}
	expected := []core.Coord{core.C(6, 5), core.C(5, 5), core.C(4, 5)}
	if !slices.Equal(w.Body(), expected) {
		t.Errorf("body = %v, expected %v", w.Body(), expected)
	}

	food, hasFood := w.Food()
	if !hasFood {
		t.Fatal("food should be respawned")
	}
	if w.Occupied(food) {
		t.Errorf("new food %v is on the snake", food)
	}
	if h.renderer.cells[food] != LabelFood {
		t.Errorf("new food cell rendered as %q", h.renderer.cells[food])
	}
	if h.renderer.cells[core.C(6, 5)] != LabelSnake {
		t.Errorf("new head rendered as %q", h.renderer.cells[core.C(6, 5)])
	}
}

func TestTickMovedRendersHeadAfterVacatedTail(t *testing.T) {
	h := newHarness(t, nil)
	h.c.OnStart()
	w := h.script(t, []core.Coord{core.C(0, 5), core.C(9, 5)}, core.Left)
	w.SetFood(core.C(2, 2))

	outcome, ok := h.c.Tick(h.c.Epoch())

	if !ok || outcome != Moved {
		t.Fatalf("Tick() = %v, %v, expected moved, true", outcome, ok)
	}
	if h.renderer.cells[core.C(9, 5)] != LabelSnake {
		t.Errorf("cell (9,5) rendered as %q, expected snake", h.renderer.cells[core.C(9, 5)])
	}
	if h.renderer.cells[core.C(0, 5)] != LabelSnake {
		t.Errorf("cell (0,5) rendered as %q, expected snake", h.renderer.cells[core.C(0, 5)])
	}
	if h.c.State() != StateRunning {
		t.Errorf("state = %v, expected running", h.c.State())
	}
}

func TestCollisionEndsRun(t *testing.T) {
	h := newHarness(t, nil)
	h.c.OnStart()
	h.script(t, deadlyLoop, core.Left)
	h.c.score = 3
	epoch := h.c.Epoch()

	outcome, ok := h.c.Tick(epoch)

	if !ok || outcome != Collided {
		t.Fatalf("Tick() = %v, %v, expected collided, true", outcome, ok)
	}
	if h.c.State() != StateGameOver {
		t.Errorf("state = %v, expected game_over", h.c.State())
	}
	if h.ticker.running {
		t.Error("ticker should be stopped after game over")
	}
	if h.c.Epoch() == epoch {
		t.Error("game over should invalidate the tick epoch")
	}
	if _, ok := h.c.Tick(h.c.Epoch()); ok {
		t.Error("ticks after game over should be dropped")
	}

	if len(h.prompter.prompts) != 1 {
		t.Fatalf("prompted %d times, expected 1", len(h.prompter.prompts))
	}
	info := h.prompter.prompts[0]
	if info.Score != 3 || info.Record != 3 || !info.NewRecord || info.Length != len(deadlyLoop) {
		t.Errorf("game over info = %+v", info)
	}

	if h.records.value != 3 || h.records.sets != 1 {
		t.Errorf("record store = %+v, expected 3 saved once", h.records)
	}
	if len(h.history.runs) != 1 || h.history.runs[0].score != 3 || h.history.runs[0].runID == "" {
		t.Errorf("history = %+v, expected one run with score 3", h.history.runs)
	}
	if h.c.OnStart() {
		t.Error("start from game over should require a reset")
	}
}

func TestFillingBoardEndsRun(t *testing.T) {
	h := newHarness(t, nil)
	h.c.OnStart()

	// Serpentine over a 4x4 board, head first, leaving only (0,3) free.
	body := []core.Coord{
		core.C(1, 3), core.C(2, 3), core.C(3, 3),
		core.C(3, 2), core.C(2, 2), core.C(1, 2), core.C(0, 2),
		core.C(0, 1), core.C(1, 1), core.C(2, 1), core.C(3, 1),
		core.C(3, 0), core.C(2, 0), core.C(1, 0), core.C(0, 0),
	}
	h.c.world = newTestWorld(t, 4, body, core.Left)
	h.c.world.SetFood(core.C(0, 3))
	h.c.score = 13
	epoch := h.c.Epoch()

	outcome, ok := h.c.Tick(epoch)

	if !ok || outcome != AteFood {
		t.Fatalf("Tick() = %v, %v, expected ate_food, true", outcome, ok)
	}
	if !h.c.World().Full() {
		t.Fatalf("snake of %d segments should fill the board", h.c.World().Len())
	}
	if h.c.State() != StateGameOver {
		t.Errorf("state = %v, expected game_over", h.c.State())
	}
	if _, hasFood := h.c.World().Food(); hasFood {
		t.Error("no food should be placed on a full board")
	}
	if h.ticker.running || h.c.Epoch() == epoch {
		t.Error("filling the board should stop ticking")
	}
	if len(h.prompter.prompts) != 1 || h.prompter.prompts[0].Score != 14 || h.prompter.prompts[0].Length != 16 {
		t.Errorf("prompts = %+v, expected one with score 14 and length 16", h.prompter.prompts)
	}
}

func TestRecordMonotonic(t *testing.T) {
	records := &memRecords{value: 5, ok: true}
	h := newHarness(t, records)

	if rec, ok := h.c.Record(); !ok || rec != 5 {
		t.Fatalf("Record() = %d, %v, expected 5, true", rec, ok)
	}
	if !h.board.recordSet || h.board.record != 5 {
		t.Error("loaded record should be shown on the scoreboard")
	}

	// Lower score leaves the record alone.
	h.c.OnStart()
	h.script(t, deadlyLoop, core.Left)
	h.c.score = 3
	h.c.Tick(h.c.Epoch())

	if rec, _ := h.c.Record(); rec != 5 {
		t.Errorf("record = %d, expected 5", rec)
	}
	if records.sets != 0 {
		t.Error("record should not be saved for a lower score")
	}
	if h.prompter.prompts[0].NewRecord {
		t.Error("lower score is not a new record")
	}

	// Equal score is not an improvement either.
	h.c.OnReset()
	h.c.OnStart()
	h.script(t, deadlyLoop, core.Left)
	h.c.score = 5
	h.c.Tick(h.c.Epoch())
	if records.sets != 0 {
		t.Error("record should not be saved for an equal score")
	}

	// Higher score replaces it.
	h.c.OnReset()
	h.c.OnStart()
	h.script(t, deadlyLoop, core.Left)
	h.c.score = 7
	h.c.Tick(h.c.Epoch())

	if rec, _ := h.c.Record(); rec != 7 {
		t.Errorf("record = %d, expected 7", rec)
	}
	if records.value != 7 || records.sets != 1 {
		t.Errorf("record store = %+v, expected 7 saved once", records)
	}
}

func TestFirstRunSetsRecord(t *testing.T) {
	h := newHarness(t, nil)
	if _, ok := h.c.Record(); ok {
		t.Fatal("no record expected before the first run")
	}
	if snap := h.c.Snapshot(); snap.HasRecord || snap.Record != 0 {
		t.Errorf("snapshot record = %d, %v, expected 0, false", snap.Record, snap.HasRecord)
	}

	h.c.OnStart()
	h.script(t, deadlyLoop, core.Left)
	h.c.Tick(h.c.Epoch())

	if rec, ok := h.c.Record(); !ok || rec != 0 {
		t.Errorf("Record() = %d, %v, expected 0, true", rec, ok)
	}
	// A stored zero is distinct from no record at all.
	if snap := h.c.Snapshot(); !snap.HasRecord || snap.Record != 0 {
		t.Errorf("snapshot record = %d, %v, expected 0, true", snap.Record, snap.HasRecord)
	}
	if len(h.history.runs) != 0 {
		t.Error("zero-score runs are not kept in history")
	}
}

func TestPersistenceFailureDoesNotAffectGameplay(t *testing.T) {
	records := &memRecords{
		loadErr: errors.New("disk on fire"),
		saveErr: errors.New("disk on fire"),
	}
	h := newHarness(t, records)

	if _, ok := h.c.Record(); ok {
		t.Error("failed load should read as no record")
	}

	h.c.OnStart()
	h.script(t, deadlyLoop, core.Left)
	h.c.score = 2
	h.c.Tick(h.c.Epoch())

	if h.c.State() != StateGameOver {
		t.Errorf("state = %v, expected game_over", h.c.State())
	}
	if rec, ok := h.c.Record(); !ok || rec != 2 {
		t.Errorf("in-memory record = %d, %v, expected 2, true", rec, ok)
	}
	if len(h.prompter.prompts) != 1 {
		t.Error("restart prompt should still be shown")
	}

	h.c.OnReset()
	if !h.c.OnStart() {
		t.Error("game should keep working after a failed save")
	}
}

// Scenario C: reset mid-run cancels the tick source, and a stale tick
// delivered afterwards does not touch the old world.
func TestResetCancelsTicking(t *testing.T) {
	h := newHarness(t, nil)
	h.c.OnStart()
	h.c.Tick(h.c.Epoch())

	staleEpoch := h.c.Epoch()
	oldWorld := h.c.World()
	oldBody := oldWorld.Body()
	oldFood, _ := oldWorld.Food()

	h.c.OnReset()

	if h.ticker.running || h.ticker.stops != 1 {
		t.Errorf("ticker = %+v, expected stopped once", h.ticker)
	}
	if h.c.State() != StateIdle {
		t.Errorf("state = %v, expected idle", h.c.State())
	}
	if h.c.Score() != 0 || h.board.score != 0 {
		t.Error("reset should zero the score")
	}
	if h.c.World() == oldWorld {
		t.Error("reset should build a new world")
	}

	if _, ok := h.c.Tick(staleEpoch); ok {
		t.Error("stale tick should be dropped")
	}
	if _, ok := h.c.Tick(h.c.Epoch()); ok {
		t.Error("tick while idle should be dropped")
	}
	if !slices.Equal(oldWorld.Body(), oldBody) {
		t.Errorf("old world mutated after reset: %v -> %v", oldBody, oldWorld.Body())
	}
	if food, _ := oldWorld.Food(); food != oldFood {
		t.Error("old world food changed after reset")
	}

	// A fresh start gets a fresh epoch; the stale one stays dead.
	h.c.OnStart()
	if h.c.Epoch() == staleEpoch {
		t.Error("new run reused a stale epoch")
	}
	if _, ok := h.c.Tick(staleEpoch); ok {
		t.Error("stale tick should be dropped in the next run")
	}
	if _, ok := h.c.Tick(h.c.Epoch()); !ok {
		t.Error("live tick should be accepted")
	}
}

func TestResetWhileIdle(t *testing.T) {
	h := newHarness(t, nil)
	h.c.OnReset()
	if h.c.State() != StateIdle {
		t.Errorf("state = %v, expected idle", h.c.State())
	}
	if h.c.World().Len() != 2 {
		t.Errorf("length = %d, expected 2", h.c.World().Len())
	}
}

func TestHandleAction(t *testing.T) {
	h := newHarness(t, nil)

	if h.c.HandleAction(core.ActionUp) {
		t.Error("Up while idle should be ignored")
	}
	if !h.c.HandleAction(core.ActionStart) || h.c.State() != StateRunning {
		t.Fatal("Start should begin the run")
	}
	if !h.c.HandleAction(core.ActionDown) || h.c.World().Pending() != core.Down {
		t.Error("Down should become the pending direction")
	}
	if h.c.HandleAction(core.ActionQuit) {
		t.Error("Quit is not a game action")
	}
	if !h.c.HandleAction(core.ActionReset) || h.c.State() != StateIdle {
		t.Error("Reset should return to idle")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		c := NewController(Config{BoardSize: 12, TickInterval: time.Second, Seed: 12345}, Deps{})
		c.OnStart()
		for i := 0; i < 200; i++ {
			switch i % 7 {
			case 2:
				c.OnDirection(core.Down)
			case 4:
				c.OnDirection(core.Left)
			case 6:
				c.OnDirection(core.Up)
			}
			if _, ok := c.Tick(c.Epoch()); !ok {
				break
			}
		}
		return c.Snapshot()
	}

	snap1 := run()
	snap2 := run()
	if snap1 != snap2 {
		t.Errorf("snapshots differ:\n%+v\n%+v", snap1, snap2)
	}
}
