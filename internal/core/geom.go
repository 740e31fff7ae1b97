// Package core provides fundamental types and utilities for the snake game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "fmt"

// Coord is a cell position on the board.
type Coord struct {
	X, Y int
}

// C is shorthand for Coord{X: x, Y: y}.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Add returns the coordinate shifted one step in direction d.
func (c Coord) Add(d Direction) Coord {
	return Coord{X: c.X + d.DX, Y: c.Y + d.DY}
}

// Wrap normalizes the coordinate onto an n×n torus.
// Works for any integer input, including values far outside [0, n).
func (c Coord) Wrap(n int) Coord {
	return Coord{X: mod(c.X, n), Y: mod(c.Y, n)}
}

// In reports whether the coordinate lies inside an n×n board.
func (c Coord) In(n int) bool {
	return c.X >= 0 && c.X < n && c.Y >= 0 && c.Y < n
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func mod(v, n int) int {
	return ((v % n) + n) % n
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Direction is a unit step on the board. Exactly one of DX, DY is non-zero.
type Direction struct {
	DX, DY int
}

// The four movement directions. Y grows downward.
var (
	Up    = Direction{DX: 0, DY: -1}
	Down  = Direction{DX: 0, DY: 1}
	Left  = Direction{DX: -1, DY: 0}
	Right = Direction{DX: 1, DY: 0}
)

// Opposite reports whether d is the exact negation of other.
func (d Direction) Opposite(other Direction) bool {
	return d.DX+other.DX == 0 && d.DY+other.DY == 0
}

// Valid reports whether d is one of the four unit directions.
func (d Direction) Valid() bool {
	return (Abs(d.DX) == 1 && d.DY == 0) || (d.DX == 0 && Abs(d.DY) == 1)
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("dir(%d,%d)", d.DX, d.DY)
	}
}

// Rect represents an axis-aligned rectangle on the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}
