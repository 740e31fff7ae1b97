// Package snake implements the snake game: the World that advances the board
// one tick at a time, and the Controller that owns the run lifecycle.
// It has no terminal or storage dependencies; collaborators are injected.
package snake

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// StepOutcome classifies what happened during a single tick.
type StepOutcome int

const (
	Moved StepOutcome = iota
	AteFood
	Collided
)

func (o StepOutcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case AteFood:
		return "ate_food"
	case Collided:
		return "collided"
	default:
		return "unknown"
	}
}

// StepResult is returned by World.Step.
type StepResult struct {
	Outcome StepOutcome
	Head    core.Coord // New head; the attempted cell when Collided
	Vacated core.Coord // Tail cell freed by a Moved step
	Freed   bool       // Whether Vacated is meaningful
}

// Errors returned when building a scripted world.
var (
	ErrBodyTooShort = errors.New("snake: body needs at least 2 segments")
	ErrBodyOutside  = errors.New("snake: body segment outside the board")
	ErrBodyOverlap  = errors.New("snake: body segments overlap")
	ErrBadHeading   = errors.New("snake: heading is not a unit direction")
)

// World owns the board geometry, the snake and the food.
type World struct {
	size    int
	snake   []core.Coord // Head at index 0
	heading core.Direction
	pending core.Direction // Applied at the start of the next Step
	food    core.Coord
	hasFood bool
	rng     *rand.Rand
}

// NewWorld creates a board of the given size with a two-segment snake
// in the middle heading right. No food is placed yet.
func NewWorld(size int, rng *rand.Rand) *World {
	cx, cy := size/2, size/2
	return &World{
		size: size,
		snake: []core.Coord{
			{X: cx, Y: cy},
			core.C(cx-1, cy).Wrap(size),
		},
		heading: core.Right,
		pending: core.Right,
		rng:     rng,
	}
}

// NewWorldFromBody creates a world with an explicit snake, head first.
func NewWorldFromBody(size int, body []core.Coord, heading core.Direction, rng *rand.Rand) (*World, error) {
	if len(body) < 2 {
		return nil, ErrBodyTooShort
	}
	if !heading.Valid() {
		return nil, ErrBadHeading
	}
	if len(body) >= size*size {
		return nil, fmt.Errorf("snake: body of %d segments fills a %dx%d board", len(body), size, size)
	}

	seen := make(map[core.Coord]bool, len(body))
	for _, seg := range body {
		if !seg.In(size) {
			return nil, fmt.Errorf("%w: %v", ErrBodyOutside, seg)
		}
		if seen[seg] {
			return nil, fmt.Errorf("%w: %v", ErrBodyOverlap, seg)
		}
		seen[seg] = true
	}

	return &World{
		size:    size,
		snake:   append([]core.Coord(nil), body...),
		heading: heading,
		pending: heading,
		rng:     rng,
	}, nil
}

// SetPendingDirection buffers a heading change for the next step.
// A change that would reverse the snake into its own neck is ignored.
func (w *World) SetPendingDirection(d core.Direction) bool {
	if !d.Valid() || d.Opposite(w.heading) {
		return false
	}
	w.pending = d
	return true
}

// Step advances the snake by one cell and reports what happened.
func (w *World) Step() StepResult {
	w.heading = w.pending

	newHead := w.snake[0].Add(w.heading).Wrap(w.size)
	growing := w.hasFood && newHead == w.food

	// The tail retracts in the same step unless the snake grows, so it is
	// only an obstacle on a growing step.
	body := w.snake
	if !growing {
		body = body[:len(body)-1]
	}
	for _, seg := range body {
		if seg == newHead {
			return StepResult{Outcome: Collided, Head: newHead}
		}
	}

	w.snake = append(w.snake, core.Coord{})
	copy(w.snake[1:], w.snake)
	w.snake[0] = newHead

	if growing {
		w.hasFood = false
		return StepResult{Outcome: AteFood, Head: newHead}
	}

	tail := w.snake[len(w.snake)-1]
	w.snake = w.snake[:len(w.snake)-1]
	return StepResult{Outcome: Moved, Head: newHead, Vacated: tail, Freed: true}
}

// Size returns the board side length.
func (w *World) Size() int {
	return w.size
}

// Full reports whether the snake covers every cell of the board.
func (w *World) Full() bool {
	return len(w.snake) >= w.size*w.size
}

// Len returns the number of snake segments.
func (w *World) Len() int {
	return len(w.snake)
}

// Head returns the head segment.
func (w *World) Head() core.Coord {
	return w.snake[0]
}

// Heading returns the committed direction of travel.
func (w *World) Heading() core.Direction {
	return w.heading
}

// Pending returns the direction the next step will commit.
func (w *World) Pending() core.Direction {
	return w.pending
}

// Body returns a copy of the snake segments, head first.
func (w *World) Body() []core.Coord {
	return append([]core.Coord(nil), w.snake...)
}

// Food returns the food position, if any.
func (w *World) Food() (core.Coord, bool) {
	return w.food, w.hasFood
}

// Occupied reports whether a snake segment covers c.
func (w *World) Occupied(c core.Coord) bool {
	for _, seg := range w.snake {
		if seg == c {
			return true
		}
	}
	return false
}
