package styles

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Renderers are expensive to build, so they are cached per wrap width
var rendererCache sync.Map // map[int]*glamour.TermRenderer

func renderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	actual, _ := rendererCache.LoadOrStore(width, r)
	return actual.(*glamour.TermRenderer), nil
}

// RenderDescription renders a task description as markdown wrapped to width.
// The raw text is returned if rendering fails.
func RenderDescription(description string, width int) string {
	if strings.TrimSpace(description) == "" {
		return SubtitleStyle.Italic(true).Render("No description")
	}

	r, err := renderer(width)
	if err != nil {
		return description
	}
	out, err := r.Render(description)
	if err != nil {
		return description
	}
	return strings.Trim(out, "\n")
}

// descriptionWidth is the wrap width inside a detail card, less the
// renderer's own two-column document margin
func descriptionWidth() int {
	return CardWidth - CardStyle.GetHorizontalFrameSize() - 2
}
