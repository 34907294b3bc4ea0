package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/thenoetrevino/taskboard/internal/board"
	"github.com/thenoetrevino/taskboard/internal/cli/styles"
	"github.com/thenoetrevino/taskboard/internal/models"
)

var (
	accent = lipgloss.Color("#7D56F4")
	subtle = lipgloss.Color("#767676")

	appTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).PaddingLeft(1)
	columnStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle)
	columnTitleStyle = lipgloss.NewStyle().Bold(true).PaddingLeft(1)
	cardStyle        = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(subtle).
				Padding(0, 1)
	selectedCardStyle = cardStyle.BorderForeground(accent).Border(lipgloss.ThickBorder())
	draggedCardStyle  = cardStyle.BorderForeground(accent).Border(lipgloss.DoubleBorder())
	footerStyle       = lipgloss.NewStyle().Foreground(subtle).PaddingLeft(1)
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#D75F5F")).Bold(true).PaddingLeft(1)
)

// View renders the board
func (m Model) View() string {
	b := m.visible()
	colWidth := m.layout.columnWidth()

	rows := 0
	for _, status := range models.Statuses {
		rows = max(rows, b.Len(status))
	}

	columns := make([]string, 0, len(models.Statuses))
	for i, status := range models.Statuses {
		columns = append(columns, m.renderColumn(b, status, i == m.selColumn, colWidth, rows))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		appTitleStyle.Render("Taskboard"),
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
		m.renderFooter(),
	)
}

// renderColumn draws one column with a fixed number of card slots so every
// column has the same height
func (m Model) renderColumn(b *board.Board, status models.Status, selected bool, width, slots int) string {
	inner := width - 2
	tasks := b.Column(status)

	title := fmt.Sprintf("%s (%d)", status.Label(), len(tasks))
	lines := []string{
		columnTitleStyle.Render(truncate(title, inner-1)),
		strings.Repeat("─", inner),
	}

	active, dragging := m.tracker.ActiveTask()
	for i, t := range tasks {
		style := cardStyle
		switch {
		case dragging && t.ID == active.ID:
			style = draggedCardStyle
		case selected && i == m.selTask:
			style = selectedCardStyle
		}
		lines = append(lines, style.Width(inner-2).Render(cardText(t, inner-4)))
	}

	height := len(lines) + (slots-len(tasks))*cardHeight
	style := columnStyle.Width(inner).Height(max(height, 1))
	if selected {
		style = style.BorderForeground(accent)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// cardText is the single line inside a card: a priority dot and the title
func cardText(t models.Task, width int) string {
	dot := lipgloss.NewStyle().Foreground(styles.PriorityColor(t.Priority)).Render("●")
	return dot + " " + truncate(t.Title, width-2)
}

func (m Model) renderFooter() string {
	switch {
	case m.mode == addMode:
		return footerStyle.Render("New task in "+m.selectedStatus().Label()+": ") + m.input.View()
	case m.errText != "":
		return errorStyle.Render(m.errText)
	case !m.loaded:
		return footerStyle.Render("Loading...")
	}

	if active, ok := m.tracker.ActiveTask(); ok {
		return footerStyle.Render(fmt.Sprintf("Dragging %q  %s cancel", active.Title, m.keys.CancelDrag))
	}
	k := m.keys
	return footerStyle.Render(fmt.Sprintf(
		"%s add  %s delete  %s/%s move  %s/%s reorder  %s refresh  %s quit",
		k.AddTask, k.DeleteTask, k.MoveTaskLeft, k.MoveTaskRight,
		k.MoveTaskUp, k.MoveTaskDown, k.Refresh, k.Quit,
	))
}

// truncate shortens s to width cells, marking the cut with an ellipsis
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
