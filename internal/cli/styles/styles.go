// Package styles holds the lipgloss styles for human-readable CLI output
package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/thenoetrevino/taskboard/internal/models"
)

const (
	accent = lipgloss.Color("#7D56F4")
	subtle = lipgloss.Color("#767676")
	normal = lipgloss.Color("#DDDDDD")
)

var (
	// Card styles
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)
	CardWidth = 80

	// Text styles
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA"))
	SubtitleStyle = lipgloss.NewStyle().Foreground(subtle)
	LabelStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent) // For field labels like "Priority:"
	ValueStyle    = lipgloss.NewStyle().Foreground(normal)
	SectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginTop(1) // Column headers
)

var priorityColors = map[models.Priority]lipgloss.Color{
	models.PriorityLow:    lipgloss.Color("#5FAF5F"),
	models.PriorityMedium: lipgloss.Color("#D7AF5F"),
	models.PriorityHigh:   lipgloss.Color("#D75F5F"),
}

// PriorityColor returns the color a priority is drawn in
func PriorityColor(p models.Priority) lipgloss.Color {
	if c, ok := priorityColors[p]; ok {
		return c
	}
	return subtle
}

// RenderPriority renders a priority as "[HIGH]" in its color
func RenderPriority(p models.Priority) string {
	return lipgloss.NewStyle().
		Foreground(PriorityColor(p)).
		Bold(true).
		Render("[" + string(p) + "]")
}

// RenderTaskLine renders one task as "  0. Title [HIGH] due 2025-01-01 (id)"
func RenderTaskLine(t models.Task) string {
	return fmt.Sprintf("  %d. %s %s %s %s",
		t.OrderInColumn,
		TitleStyle.Render(t.Title),
		RenderPriority(t.Priority),
		SubtitleStyle.Render("due "+t.Deadline),
		SubtitleStyle.Render("("+t.ID+")"))
}

// RenderTaskDetail renders every field of a task
func RenderTaskDetail(t models.Task) string {
	field := func(label, value string) string {
		return LabelStyle.Render(label+":") + " " + ValueStyle.Render(value) + "\n"
	}

	out := TitleStyle.Render(t.Title) + "\n"
	out += field("ID", t.ID)
	out += field("Status", t.Status.Label())
	out += field("Order", fmt.Sprint(t.OrderInColumn))
	out += field("Priority", string(t.Priority))
	out += field("Deadline", t.Deadline)
	if t.ExecutorID != "" {
		out += field("Executor", t.ExecutorID)
	}
	if t.File != "" {
		out += field("File", t.File)
	}
	out += "\n" + RenderDescription(t.Description, descriptionWidth()) + "\n"
	return out
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Width(CardWidth).Render(content)
}
