package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/thenoetrevino/taskboard/internal/models"
)

// ParsePriority maps a priority flag to its value
func ParsePriority(priority string) (models.Priority, error) {
	p, err := models.ParsePriority(priority)
	if err != nil {
		return "", fmt.Errorf("%w (must be: low, medium, high)", err)
	}
	return p, nil
}

// ParseStatus maps a status flag such as "todo", "in-progress" or "DONE" to a column
func ParseStatus(status string) (models.Status, error) {
	if strings.EqualFold(strings.TrimSpace(status), "todo") {
		return models.StatusToDo, nil
	}
	s, err := models.ParseStatus(status)
	if err != nil {
		return "", fmt.Errorf("%w (must be: todo, in-progress, done)", err)
	}
	return s, nil
}

// DefaultDeadline returns the date one week after now in the deadline layout
func DefaultDeadline(now time.Time) string {
	return now.AddDate(0, 0, 7).Format(models.DeadlineLayout)
}

// ReadText returns value, or all of stdin when value is "-"
func ReadText(value string, stdin io.Reader) (string, error) {
	if value != "-" {
		return value, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}
