package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/pmerrell/atrium/internal/cli/formatter"
	"github.com/pmerrell/atrium/internal/domain"
	"github.com/pmerrell/atrium/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ── messages ─────────────────────────────────────────────────────────────────

// documentsLoadedMsg signals that the knowledge-base tree has been loaded.
type documentsLoadedMsg struct {
	tree *service.Tree
	err  error
}

// ── rows ─────────────────────────────────────────────────────────────────────

// docRow is one selectable line in the flattened tree: a folder or a
// document.
type docRow struct {
	depth  int
	folder *domain.Folder
	doc    *domain.Document
}

// flattenRows turns the knowledge-base tree into a flat, ordered list of
// selectable rows. Folders come before their documents, root documents
// come last.
func flattenRows(tree *service.Tree) []docRow {
	var rows []docRow
	var walk func(node *service.FolderNode, depth int)
	walk = func(node *service.FolderNode, depth int) {
		rows = append(rows, docRow{depth: depth, folder: node.Folder})
		for _, child := range node.Children {
			walk(child, depth+1)
		}
		for _, d := range node.Documents {
			rows = append(rows, docRow{depth: depth + 1, doc: d})
		}
	}
	for _, root := range tree.Roots {
		walk(root, 0)
	}
	for _, d := range tree.RootDocuments {
		rows = append(rows, docRow{depth: 0, doc: d})
	}
	return rows
}

// ── view ─────────────────────────────────────────────────────────────────────

// documentsView is the knowledge-base browser: folder tree on the left,
// preview of the selected document on the right.
type documentsView struct {
	state   *SharedState
	tree    *service.Tree
	rows    []docRow
	cursor  int
	loading bool
	err     error
}

func newDocumentsView(state *SharedState) *documentsView {
	return &documentsView{
		state:   state,
		loading: true,
	}
}

func (v *documentsView) ID() ViewID    { return ViewDocuments }
func (v *documentsView) Title() string { return "Documents" }

func (v *documentsView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "move")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new doc")),
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "new folder")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pin")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *documentsView) Init() tea.Cmd {
	return v.loadData()
}

func (v *documentsView) loadData() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		tree, err := app.Documents.Tree(context.Background())
		return documentsLoadedMsg{tree: tree, err: err}
	}
}

func (v *documentsView) selectedRow() *docRow {
	if v.cursor < 0 || v.cursor >= len(v.rows) {
		return nil
	}
	return &v.rows[v.cursor]
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *documentsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case documentsLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.tree = msg.tree
		v.rows = flattenRows(msg.tree)
		if v.cursor >= len(v.rows) {
			v.cursor = max(0, len(v.rows)-1)
		}
		return v, nil

	case refreshViewMsg:
		return v, v.loadData()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.rows)-1 {
				v.cursor++
			}
		case "n":
			return v, startDocumentWizard(v.state, v.selectedFolderID())
		case "f":
			return v, startFolderWizard(v.state, v.selectedFolderID())
		case "p":
			if row := v.selectedRow(); row != nil && row.doc != nil {
				return v, v.togglePin(row.doc)
			}
		case "x":
			if row := v.selectedRow(); row != nil && row.doc != nil {
				return v, v.deleteDoc(row.doc)
			}
		case "r":
			v.loading = true
			return v, v.loadData()
		}
	}

	return v, nil
}

// selectedFolderID returns the folder under the cursor, or the folder of
// the selected document, as the default parent for new items.
func (v *documentsView) selectedFolderID() *string {
	row := v.selectedRow()
	if row == nil {
		return nil
	}
	if row.folder != nil {
		return &row.folder.ID
	}
	return row.doc.FolderID
}

func (v *documentsView) togglePin(d *domain.Document) tea.Cmd {
	app := v.state.App
	id, pinned := d.ID, !d.Pinned
	return func() tea.Msg {
		if err := app.Documents.SetPinned(context.Background(), id, pinned); err != nil {
			return documentsLoadedMsg{err: err}
		}
		return refreshViewMsg{}
	}
}

func (v *documentsView) deleteDoc(d *domain.Document) tea.Cmd {
	app := v.state.App
	id := d.ID
	return func() tea.Msg {
		if err := app.Documents.Delete(context.Background(), id); err != nil {
			return documentsLoadedMsg{err: err}
		}
		return refreshViewMsg{}
	}
}

// ── view rendering ───────────────────────────────────────────────────────────

const docsLeftPaneWidth = 40

func (v *documentsView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	if len(v.rows) == 0 {
		return "\n  " + formatter.Dim("No documents yet. Press 'n' to create one.") + "\n"
	}

	leftPane := v.renderTreePane()
	rightPane := v.renderPreviewPane()

	if v.state.Width < 80 {
		return leftPane + "\n" + rightPane
	}

	rightWidth := v.state.Width - docsLeftPaneWidth - 3
	if rightWidth < 20 {
		rightWidth = 20
	}

	leftCol := lipgloss.NewStyle().Width(docsLeftPaneWidth).Render(leftPane)
	divider := lipgloss.NewStyle().
		Foreground(formatter.ColorDim).
		Render("│")
	rightCol := lipgloss.NewStyle().Width(rightWidth).Render(rightPane)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftCol, " "+divider+" ", rightCol)
}

func (v *documentsView) renderTreePane() string {
	var b strings.Builder
	b.WriteString("\n" + formatter.StyleHeader.Render("KNOWLEDGE BASE") + "\n\n")

	for i, row := range v.rows {
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		indent := strings.Repeat("  ", row.depth)

		if row.folder != nil {
			b.WriteString(cursor + indent + formatter.Bold(row.folder.Name+"/") + "\n")
			continue
		}

		name := row.doc.Title
		if row.doc.Pinned {
			name += " 📌"
		}
		style := formatter.StyleFg
		if i == v.cursor {
			style = formatter.StyleBold
		}
		b.WriteString(cursor + indent + style.Render(name) + "\n")
	}

	return b.String()
}

func (v *documentsView) renderPreviewPane() string {
	row := v.selectedRow()
	if row == nil {
		return "\n" + formatter.Dim("Select a document to preview it.")
	}

	var b strings.Builder
	b.WriteString("\n")

	if row.folder != nil {
		b.WriteString(formatter.StyleBold.Render(row.folder.Name+"/") + "\n\n")
		docs := 0
		for _, r := range v.rows {
			if r.doc != nil && r.doc.FolderID != nil && *r.doc.FolderID == row.folder.ID {
				docs++
			}
		}
		b.WriteString(formatter.Dim("Folder") + "\n")
		b.WriteString(formatter.Dim("Documents: ") + formatter.StyleFg.Render(strconv.Itoa(docs)) + "\n")
		return b.String()
	}

	d := row.doc
	b.WriteString(formatter.StyleBold.Render(d.Title))
	if d.Pinned {
		b.WriteString(" " + formatter.StyleYellow.Render("pinned"))
	}
	b.WriteString("\n")
	b.WriteString(formatter.Dim("Updated "+formatter.HumanTimestamp(d.UpdatedAt)) + "\n\n")

	body := d.Body
	if body == "" {
		body = formatter.Dim("(empty)")
	}
	b.WriteString(formatter.StyleFg.Render(body) + "\n")

	return b.String()
}
