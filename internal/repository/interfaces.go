package repository

import (
	"context"
	"errors"
	"time"

	"github.com/pmerrell/atrium/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type CalendarRepo interface {
	Create(ctx context.Context, c *domain.Calendar) error
	GetByID(ctx context.Context, id string) (*domain.Calendar, error)
	GetByName(ctx context.Context, name string) (*domain.Calendar, error)
	List(ctx context.Context) ([]*domain.Calendar, error)
	Update(ctx context.Context, c *domain.Calendar) error
	Delete(ctx context.Context, id string) error
}

type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	ListByCalendar(ctx context.Context, calendarID string) ([]*domain.Event, error)
	// ListBetween returns events intersecting the half-open window
	// [from, to), ordered by start time.
	ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id string) error
	// DeleteImported removes every feed-sourced occurrence of a calendar,
	// used by the importer before writing a fresh expansion.
	DeleteImported(ctx context.Context, calendarID string) error
}

type FolderRepo interface {
	Create(ctx context.Context, f *domain.Folder) error
	GetByID(ctx context.Context, id string) (*domain.Folder, error)
	ListAll(ctx context.Context) ([]*domain.Folder, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.Folder, error)
	ListRoots(ctx context.Context) ([]*domain.Folder, error)
	Update(ctx context.Context, f *domain.Folder) error
	Delete(ctx context.Context, id string) error
}

type DocumentRepo interface {
	Create(ctx context.Context, d *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	ListByFolder(ctx context.Context, folderID string) ([]*domain.Document, error)
	ListRootDocuments(ctx context.Context) ([]*domain.Document, error)
	ListPinned(ctx context.Context) ([]*domain.Document, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Document, error)
	Search(ctx context.Context, query string) ([]*domain.Document, error)
	Update(ctx context.Context, d *domain.Document) error
	Delete(ctx context.Context, id string) error
}

type AlertRepo interface {
	Create(ctx context.Context, a *domain.Alert) error
	GetByID(ctx context.Context, id string) (*domain.Alert, error)
	List(ctx context.Context) ([]*domain.Alert, error)
	Update(ctx context.Context, a *domain.Alert) error
	Ack(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}
