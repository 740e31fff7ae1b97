package tui

import (
	"unicode/utf8"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// cellWidth is the number of terminal columns per board cell. Two columns
// keep cells roughly square in most fonts.
const cellWidth = 2

type glyph struct {
	text  string
	color core.Color
}

// BoardView is the snake.Renderer for terminals. It keeps a framed screen
// buffer of the board and the last label drawn in every cell.
type BoardView struct {
	size   int
	screen *core.Screen
	labels []snake.CellLabel
	glyphs map[snake.CellLabel]glyph
	border core.Color
}

// NewBoardView creates a board of size x size cells drawn with theme.
func NewBoardView(size int, theme config.ThemeConfig) *BoardView {
	b := &BoardView{
		size:   size,
		screen: core.NewScreen(size*cellWidth+2, size+2),
		labels: make([]snake.CellLabel, size*size),
		glyphs: map[snake.CellLabel]glyph{
			snake.LabelEmpty: {padGlyph(theme.EmptyGlyph), core.ParseColor(theme.EmptyColor)},
			snake.LabelSnake: {padGlyph(theme.SnakeGlyph), core.ParseColor(theme.SnakeColor)},
			snake.LabelFood:  {padGlyph(theme.FoodGlyph), core.ParseColor(theme.FoodColor)},
		},
		border: core.ParseColor(theme.BorderColor),
	}
	b.screen.DrawBox(core.NewRect(0, 0, b.screen.Width(), b.screen.Height()), b.border)
	for i := range b.labels {
		b.Render(core.C(i%size, i/size), snake.LabelEmpty)
	}
	return b
}

// padGlyph fits g to exactly cellWidth runes.
func padGlyph(g string) string {
	for utf8.RuneCountInString(g) < cellWidth {
		g += " "
	}
	return string([]rune(g)[:cellWidth])
}

// Render implements snake.Renderer.
func (b *BoardView) Render(c core.Coord, label snake.CellLabel) {
	if !c.In(b.size) {
		return
	}
	g, ok := b.glyphs[label]
	if !ok {
		return
	}
	b.labels[c.Y*b.size+c.X] = label
	b.screen.DrawText(1+c.X*cellWidth, 1+c.Y, g.text, g.color)
}

// Label returns the last label drawn at c.
func (b *BoardView) Label(c core.Coord) snake.CellLabel {
	if !c.In(b.size) {
		return ""
	}
	return b.labels[c.Y*b.size+c.X]
}

// Count returns how many cells currently show label.
func (b *BoardView) Count(label snake.CellLabel) int {
	n := 0
	for _, l := range b.labels {
		if l == label {
			n++
		}
	}
	return n
}

// Screen returns the framed board buffer.
func (b *BoardView) Screen() *core.Screen {
	return b.screen
}

// Size returns the board side length in cells.
func (b *BoardView) Size() int {
	return b.size
}

// Ensure BoardView implements the renderer contract
var _ snake.Renderer = (*BoardView)(nil)
