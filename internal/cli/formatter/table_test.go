package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"TIME", "EVENT"},
		[][]string{
			{"09:00", "Standup"},
			{"10:30", "Planning session"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4, "header, separator, two rows")
	assert.Contains(t, lines[0], "TIME")
	assert.Contains(t, lines[1], "─")
	assert.Contains(t, lines[2], "Standup")
	assert.Contains(t, lines[3], "Planning session")
}

func TestRenderTable_ShortRowsPadded(t *testing.T) {
	out := RenderTable(
		[]string{"A", "B", "C"},
		[][]string{{"only one cell"}},
	)
	assert.Contains(t, out, "only one cell")
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}
