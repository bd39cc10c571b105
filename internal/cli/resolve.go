package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pmerrell/atrium/internal/domain"
	"github.com/pmerrell/atrium/internal/service"
)

// resolveID matches input against a list of candidate IDs: exact match
// first, then unique prefix. Commands accept truncated IDs as printed by
// the list formatters.
func resolveID(kind, input string, ids []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}

	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

// resolveCalendar matches input against calendar names (case-insensitive)
// before falling back to ID resolution.
func resolveCalendar(ctx context.Context, app *App, input string) (*domain.Calendar, error) {
	calendars, err := app.Calendars.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, c := range calendars {
		if strings.EqualFold(c.Name, input) {
			return c, nil
		}
	}

	ids := make([]string, len(calendars))
	for i, c := range calendars {
		ids[i] = c.ID
	}
	id, err := resolveID("calendar", input, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range calendars {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("calendar not found: %q", input)
}

func resolveAlertID(ctx context.Context, app *App, input string) (string, error) {
	alerts, err := app.Alerts.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(alerts))
	for i, a := range alerts {
		ids[i] = a.ID
	}
	return resolveID("alert", input, ids)
}

// resolveDocument matches input against document titles (case-insensitive)
// across the whole knowledge base, then by ID prefix.
func resolveDocument(ctx context.Context, app *App, input string) (*domain.Document, error) {
	tree, err := app.Documents.Tree(ctx)
	if err != nil {
		return nil, err
	}

	var docs []*domain.Document
	docs = append(docs, tree.RootDocuments...)
	docs = append(docs, collectDocuments(tree.Roots)...)

	for _, d := range docs {
		if strings.EqualFold(d.Title, input) {
			return d, nil
		}
	}

	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	id, err := resolveID("document", input, ids)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, fmt.Errorf("document not found: %q", input)
}

// resolveFolder matches input against folder names (case-insensitive),
// then by ID prefix.
func resolveFolder(ctx context.Context, app *App, input string) (*domain.Folder, error) {
	tree, err := app.Documents.Tree(ctx)
	if err != nil {
		return nil, err
	}

	folders := collectFolders(tree.Roots)
	for _, f := range folders {
		if strings.EqualFold(f.Name, input) {
			return f, nil
		}
	}

	ids := make([]string, len(folders))
	for i, f := range folders {
		ids[i] = f.ID
	}
	id, err := resolveID("folder", input, ids)
	if err != nil {
		return nil, err
	}
	for _, f := range folders {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, fmt.Errorf("folder not found: %q", input)
}

// collectDocuments flattens all documents under the given folder nodes.
func collectDocuments(nodes []*service.FolderNode) []*domain.Document {
	var docs []*domain.Document
	for _, n := range nodes {
		docs = append(docs, n.Documents...)
		docs = append(docs, collectDocuments(n.Children)...)
	}
	return docs
}

// collectFolders flattens all folders under the given nodes.
func collectFolders(nodes []*service.FolderNode) []*domain.Folder {
	var folders []*domain.Folder
	for _, n := range nodes {
		folders = append(folders, n.Folder)
		folders = append(folders, collectFolders(n.Children)...)
	}
	return folders
}

// calendarsByID loads all calendars keyed by ID, for the agenda formatters.
func calendarsByID(ctx context.Context, app *App) (map[string]*domain.Calendar, error) {
	calendars, err := app.Calendars.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Calendar, len(calendars))
	for _, c := range calendars {
		byID[c.ID] = c
	}
	return byID, nil
}

// parseDay parses a YYYY-MM-DD date in the display timezone.
// Empty input means today.
func parseDay(input string, loc *time.Location) (time.Time, error) {
	if input == "" {
		now := time.Now().In(loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02", input, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", input)
	}
	return t, nil
}

// parseInstant parses a local timestamp in "YYYY-MM-DD HH:MM" or
// "YYYY-MM-DDTHH:MM" form.
func parseInstant(input string, loc *time.Location) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, input, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q, use YYYY-MM-DD HH:MM", input)
}
