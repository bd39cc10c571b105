package service

import (
	"context"
	"time"

	"github.com/pmerrell/atrium/internal/domain"
	"github.com/pmerrell/atrium/internal/layout"
)

type CalendarService interface {
	Create(ctx context.Context, c *domain.Calendar) error
	GetByID(ctx context.Context, id string) (*domain.Calendar, error)
	GetByName(ctx context.Context, name string) (*domain.Calendar, error)
	List(ctx context.Context) ([]*domain.Calendar, error)
	Update(ctx context.Context, c *domain.Calendar) error
	Delete(ctx context.Context, id string) error
}

// GridItem is one timed event with its column placement on a day grid.
type GridItem struct {
	Event        *domain.Event
	Column       int
	TotalColumns int
}

// DayGrid is everything needed to render one day column: all-day banners,
// column-placed timed events, and the day's merged busy spans.
type DayGrid struct {
	Day    time.Time
	AllDay []*domain.Event
	Items  []GridItem
	Busy   []layout.Span
}

// WeekGrid is seven consecutive day grids starting on the configured
// week-start day.
type WeekGrid struct {
	Start time.Time
	Days  []DayGrid
}

type EventService interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id string) error

	// DayGrid lays out the given day's events into side-by-side columns.
	DayGrid(ctx context.Context, day time.Time) (*DayGrid, error)
	// WeekGrid lays out the week containing the given day, one grid per day.
	WeekGrid(ctx context.Context, day time.Time) (*WeekGrid, error)
}

// FolderNode is one folder with its resolved children, forming the
// knowledge-base tree.
type FolderNode struct {
	Folder    *domain.Folder
	Children  []*FolderNode
	Documents []*domain.Document
}

// Tree is the whole knowledge base: root folders plus documents that live
// outside any folder.
type Tree struct {
	Roots         []*FolderNode
	RootDocuments []*domain.Document
}

type DocumentService interface {
	CreateFolder(ctx context.Context, f *domain.Folder) error
	UpdateFolder(ctx context.Context, f *domain.Folder) error
	DeleteFolder(ctx context.Context, id string) error

	Create(ctx context.Context, d *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	Update(ctx context.Context, d *domain.Document) error
	Delete(ctx context.Context, id string) error

	// Move reparents a document; a nil folderID moves it to the root.
	Move(ctx context.Context, id string, folderID *string) error
	// SetPinned toggles the document's pinned flag.
	SetPinned(ctx context.Context, id string, pinned bool) error

	Search(ctx context.Context, query string) ([]*domain.Document, error)
	ListPinned(ctx context.Context) ([]*domain.Document, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Document, error)

	// Tree assembles the full folder hierarchy with documents attached.
	Tree(ctx context.Context) (*Tree, error)
}

// UpcomingAlert pairs an alert with its next fire time.
type UpcomingAlert struct {
	Alert *domain.Alert
	At    time.Time
}

type AlertService interface {
	Create(ctx context.Context, a *domain.Alert) error
	GetByID(ctx context.Context, id string) (*domain.Alert, error)
	List(ctx context.Context) ([]*domain.Alert, error)
	Update(ctx context.Context, a *domain.Alert) error
	Ack(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error

	// Due returns alerts that have fired and not been acknowledged since,
	// ordered most urgent first.
	Due(ctx context.Context, now time.Time) ([]*domain.Alert, error)
	// Upcoming returns alerts that will fire within the window, soonest
	// first.
	Upcoming(ctx context.Context, now time.Time, within time.Duration) ([]UpcomingAlert, error)
}

// Brief is the morning summary: today's schedule, what needs attention,
// and quick access to pinned notes.
type Brief struct {
	GeneratedAt time.Time
	Day         time.Time

	AllDay []*domain.Event
	Events []GridItem

	DueAlerts []*domain.Alert
	Upcoming  []UpcomingAlert

	Pinned []*domain.Document
	Recent []*domain.Document

	// Busy and Free partition the working hours of the day.
	Busy []layout.Span
	Free []layout.Span
}

type BriefService interface {
	Generate(ctx context.Context, now time.Time) (*Brief, error)
}
