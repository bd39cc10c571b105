package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTree_ConnectorsAndMarkers(t *testing.T) {
	items := []TreeItem{
		{Name: "Work", Depth: 0},
		{Name: "Roadmap", Depth: 1, IsDoc: true, Pinned: true},
		{Name: "Archive", Depth: 1, IsLast: true},
		{Name: "Old notes", Depth: 2, IsLast: true, IsDoc: true, Detail: "stale"},
	}

	out := RenderTree(items)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)

	assert.Contains(t, out, "Work/")
	assert.Contains(t, out, "├─")
	assert.Contains(t, out, "└─")
	assert.Contains(t, out, "📌")
	assert.Contains(t, out, "[ stale ]")
}

func TestRenderTree_Empty(t *testing.T) {
	assert.Empty(t, RenderTree(nil))
}
