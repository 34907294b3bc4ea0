package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskboard/internal/models"
)

func TestRenderDescription(t *testing.T) {
	out := RenderDescription("Fix the *login* flow\n\n- check tokens\n- add tests", 60)

	assert.Contains(t, out, "login")
	assert.Contains(t, out, "check tokens")
	assert.Contains(t, out, "add tests")
}

func TestRenderDescription_Empty(t *testing.T) {
	assert.Contains(t, RenderDescription("", 60), "No description")
	assert.Contains(t, RenderDescription("  \n", 60), "No description")
}

func TestRendererIsCachedPerWidth(t *testing.T) {
	a, err := renderer(42)
	require.NoError(t, err)
	b, err := renderer(42)
	require.NoError(t, err)
	c, err := renderer(43)
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestRenderTaskDetailIncludesDescription(t *testing.T) {
	out := RenderTaskDetail(models.Task{
		ID:          "t1",
		Title:       "Ship",
		Status:      models.StatusToDo,
		Priority:    models.PriorityHigh,
		Deadline:    "2025-01-31",
		Description: "Release notes are in the wiki",
	})

	assert.Contains(t, out, "Ship")
	assert.Contains(t, out, "Release notes")
}
