package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Snapshot captures the observable game state for determinism testing and debugging.
type Snapshot struct {
	State     State
	Epoch     uint64
	Ticks     uint64
	Score     int
	Record    int
	HasRecord bool
	SnakeLen  int
	Head      core.Coord
	Heading   core.Direction
	Food      core.Coord
	HasFood   bool
}

// Snapshot returns the current game snapshot.
func (c *Controller) Snapshot() Snapshot {
	food, hasFood := c.world.Food()
	return Snapshot{
		State:     c.state,
		Epoch:     c.epoch,
		Ticks:     c.ticks,
		Score:     c.score,
		Record:    c.record,
		HasRecord: c.hasRecord,
		SnakeLen:  c.world.Len(),
		Head:      c.world.Head(),
		Heading:   c.world.Heading(),
		Food:      food,
		HasFood:   hasFood,
	}
}
