package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one row of the knowledge-base tree display: a folder or a
// document at a given depth.
type TreeItem struct {
	Name   string
	Depth  int
	IsLast bool
	IsDoc  bool
	Pinned bool
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders tree items with box-drawing connectors. Folders are
// bold, documents plain, pinned documents get a yellow pin marker, and
// detail badges are right-aligned past the widest row.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	badges := make([]string, len(items))
	maxWidth := 0

	for i, item := range items {
		var prefix strings.Builder
		if item.Depth > 0 {
			for d := 1; d < item.Depth; d++ {
				prefix.WriteString(treePipe)
			}
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}

		name := item.Name
		if item.IsDoc {
			if item.Pinned {
				name = StyleYellow.Render("📌 ") + StyleFg.Render(name)
			} else {
				name = StyleFg.Render(name)
			}
		} else {
			name = Bold(name + "/")
		}

		contents[i] = Dim(prefix.String()) + name
		if item.Detail != "" {
			badges[i] = StyleBlue.Render("[ " + item.Detail + " ]")
		}
		if w := lipgloss.Width(contents[i]); w > maxWidth {
			maxWidth = w
		}
	}

	var b strings.Builder
	for i := range contents {
		b.WriteString(contents[i])
		if badges[i] != "" {
			pad := maxWidth - lipgloss.Width(contents[i])
			b.WriteString(strings.Repeat(" ", pad+2) + badges[i])
		}
		b.WriteString("\n")
	}
	return b.String()
}
