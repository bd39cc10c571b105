package formatter

import (
	"fmt"
	"strings"

	"github.com/pmerrell/atrium/internal/domain"
	"github.com/pmerrell/atrium/internal/service"
)

const docSnippetRunes = 60

// FormatTree renders the knowledge base as an indented folder tree with
// documents attached beneath their folders.
func FormatTree(tree *service.Tree) string {
	items := flattenTree(tree)
	if len(items) == 0 {
		return Dim("No documents yet.") + "\n"
	}
	return RenderTree(items)
}

func flattenTree(tree *service.Tree) []TreeItem {
	var items []TreeItem
	for _, node := range tree.Roots {
		items = appendNode(items, node, 0)
	}
	for i, d := range tree.RootDocuments {
		items = append(items, TreeItem{
			Name:   d.Title,
			Depth:  0,
			IsLast: i == len(tree.RootDocuments)-1,
			IsDoc:  true,
			Pinned: d.Pinned,
			Detail: d.Snippet(docSnippetRunes),
		})
	}
	return items
}

func appendNode(items []TreeItem, node *service.FolderNode, depth int) []TreeItem {
	items = append(items, TreeItem{Name: node.Folder.Name, Depth: depth})

	childCount := len(node.Children) + len(node.Documents)
	seen := 0
	for _, child := range node.Children {
		seen++
		sub := appendNode(nil, child, depth+1)
		sub[0].IsLast = seen == childCount
		items = append(items, sub...)
	}
	for _, d := range node.Documents {
		seen++
		items = append(items, TreeItem{
			Name:   d.Title,
			Depth:  depth + 1,
			IsLast: seen == childCount,
			IsDoc:  true,
			Pinned: d.Pinned,
		})
	}
	return items
}

// FormatDocument renders a full document with its metadata.
func FormatDocument(d *domain.Document, folderName string) string {
	var b strings.Builder

	if folderName != "" {
		b.WriteString(Dim(folderName+" /") + "\n")
	}
	if d.Pinned {
		b.WriteString(StyleYellow.Render("📌 pinned") + "\n")
	}
	b.WriteString(Dim("Updated "+HumanTimestamp(d.UpdatedAt)) + "\n\n")
	b.WriteString(StyleFg.Render(d.Body) + "\n")

	return RenderBox(d.Title, b.String())
}

// FormatSearchResults renders document search hits as a table.
func FormatSearchResults(query string, docs []*domain.Document) string {
	if len(docs) == 0 {
		return Dim(fmt.Sprintf("No documents match %q.", query)) + "\n"
	}

	headers := []string{"TITLE", "PREVIEW", "UPDATED"}
	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		title := Bold(d.Title)
		if d.Pinned {
			title = StyleYellow.Render("📌 ") + title
		}
		rows = append(rows, []string{
			title,
			Dim(d.Snippet(docSnippetRunes)),
			StyleFg.Render(HumanTimestamp(d.UpdatedAt)),
		})
	}
	return RenderTable(headers, rows)
}
