package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// SpawnFood places food on a uniformly random cell not covered by the snake
// and returns it. Any previous food is replaced.
//
// The board must have at least one free cell; a full board is a broken
// precondition and panics. Check Full first.
func (w *World) SpawnFood() core.Coord {
	if w.Full() {
		panic(fmt.Sprintf("snake: no free cell for food on a %dx%d board with %d segments",
			w.size, w.size, len(w.snake)))
	}

	for {
		c := core.Coord{X: w.rng.Intn(w.size), Y: w.rng.Intn(w.size)}
		if !w.Occupied(c) {
			w.food = c
			w.hasFood = true
			return c
		}
	}
}

// SetFood places food at c, wrapped onto the board. Unlike SpawnFood it does
// not check the snake, which lets scripted scenarios put food anywhere.
func (w *World) SetFood(c core.Coord) {
	w.food = c.Wrap(w.size)
	w.hasFood = true
}

// ClearFood removes the food from the board.
func (w *World) ClearFood() {
	w.hasFood = false
}
