package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Folder is a node in the knowledge-base tree. A nil ParentID marks a root.
type Folder struct {
	ID       string
	ParentID *string
	Name     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks structural invariants before persistence.
func (f *Folder) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("folder name is required")
	}
	if f.ParentID != nil && *f.ParentID == f.ID {
		return fmt.Errorf("folder cannot be its own parent")
	}
	return nil
}

// Document is a markdown note stored in a folder. A nil FolderID places
// the document at the root of the knowledge base.
type Document struct {
	ID       string
	FolderID *string
	Title    string
	Body     string
	Pinned   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks structural invariants before persistence.
func (d *Document) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("document title is required")
	}
	return nil
}

// Snippet returns the first line of the body truncated to maxRunes,
// for use in list previews.
func (d *Document) Snippet(maxRunes int) string {
	line := d.Body
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSpace(line)
	if maxRunes <= 0 || utf8.RuneCountInString(line) <= maxRunes {
		return line
	}
	runes := []rune(line)
	return string(runes[:maxRunes-1]) + "…"
}
