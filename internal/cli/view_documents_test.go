package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmerrell/atrium/internal/domain"
	"github.com/pmerrell/atrium/internal/service"
)

func TestFlattenRows_Order(t *testing.T) {
	work := &domain.Folder{ID: "f-work", Name: "Work"}
	archive := &domain.Folder{ID: "f-archive", Name: "Archive"}

	tree := &service.Tree{
		Roots: []*service.FolderNode{
			{
				Folder: work,
				Children: []*service.FolderNode{
					{
						Folder:    archive,
						Documents: []*domain.Document{{ID: "d-old", Title: "Old notes"}},
					},
				},
				Documents: []*domain.Document{{ID: "d-plan", Title: "Plan"}},
			},
		},
		RootDocuments: []*domain.Document{{ID: "d-scratch", Title: "Scratchpad"}},
	}

	rows := flattenRows(tree)
	require.Len(t, rows, 5)

	assert.Equal(t, work, rows[0].folder)
	assert.Equal(t, 0, rows[0].depth)

	assert.Equal(t, archive, rows[1].folder)
	assert.Equal(t, 1, rows[1].depth)

	assert.Equal(t, "Old notes", rows[2].doc.Title)
	assert.Equal(t, 2, rows[2].depth)

	assert.Equal(t, "Plan", rows[3].doc.Title)
	assert.Equal(t, 1, rows[3].depth)

	assert.Equal(t, "Scratchpad", rows[4].doc.Title)
	assert.Equal(t, 0, rows[4].depth)
}

func TestFlattenRows_Empty(t *testing.T) {
	assert.Empty(t, flattenRows(&service.Tree{}))
}
