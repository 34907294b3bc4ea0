package tui

import (
	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/dnd"
	"github.com/thenoetrevino/taskboard/internal/models"
)

// Board geometry in terminal cells. View and hitTest must agree on it.
const (
	headerRows     = 1 // app title line
	columnTopRow   = headerRows
	cardsTopOffset = 3 // column border, column title, separator
	cardHeight     = 3 // card border, title, card border
	minColumnWidth = 16
)

// layout maps between board positions and screen cells
type layout struct {
	width int
}

func (l layout) columnWidth() int {
	w := l.width / len(models.Statuses)
	if w < minColumnWidth {
		return minColumnWidth
	}
	return w
}

func (l layout) cardsTop() int {
	return columnTopRow + cardsTopOffset
}

// cardTop is the first row of the card at index i
func (l layout) cardTop(i int) int {
	return l.cardsTop() + i*cardHeight
}

// hitTest returns what is under (x, y) on b as drawn: a card, an empty part
// of a column, or nothing
func (l layout) hitTest(b *board.Board, x, y int) dnd.Target {
	if x < 0 || y < columnTopRow {
		return dnd.Target{}
	}
	col := x / l.columnWidth()
	if col >= len(models.Statuses) {
		return dnd.Target{}
	}
	status := models.Statuses[col]

	if y >= l.cardsTop() {
		i := (y - l.cardsTop()) / cardHeight
		if tasks := b.Column(status); i < len(tasks) {
			return dnd.ItemTarget(tasks[i].ID)
		}
	}
	return dnd.ColumnTarget(status)
}
