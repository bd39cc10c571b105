package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pmerrell/atrium/internal/domain"
	"github.com/pmerrell/atrium/internal/repository"
)

// FixtureClock is the stable reference instant used by fixtures.
var FixtureClock = time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

// MakeCalendar inserts a manual calendar and returns it.
func MakeCalendar(t *testing.T, database *sql.DB, name string) *domain.Calendar {
	t.Helper()
	c := &domain.Calendar{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     "blue",
		Source:    domain.SourceManual,
		CreatedAt: FixtureClock,
		UpdatedAt: FixtureClock,
	}
	repo := repository.NewSQLiteCalendarRepo(database)
	if err := repo.Create(context.Background(), c); err != nil {
		t.Fatalf("creating fixture calendar: %v", err)
	}
	return c
}

// MakeEvent inserts an event on the given calendar between start and end.
func MakeEvent(t *testing.T, database *sql.DB, calendarID, title string, start, end time.Time) *domain.Event {
	t.Helper()
	e := &domain.Event{
		ID:         uuid.NewString(),
		CalendarID: calendarID,
		Title:      title,
		Start:      start,
		End:        end,
		Status:     domain.EventConfirmed,
		CreatedAt:  FixtureClock,
		UpdatedAt:  FixtureClock,
	}
	repo := repository.NewSQLiteEventRepo(database)
	if err := repo.Create(context.Background(), e); err != nil {
		t.Fatalf("creating fixture event: %v", err)
	}
	return e
}

// MakeFolder inserts a folder; parentID may be nil for a root folder.
func MakeFolder(t *testing.T, database *sql.DB, name string, parentID *string) *domain.Folder {
	t.Helper()
	f := &domain.Folder{
		ID:        uuid.NewString(),
		ParentID:  parentID,
		Name:      name,
		CreatedAt: FixtureClock,
		UpdatedAt: FixtureClock,
	}
	repo := repository.NewSQLiteFolderRepo(database)
	if err := repo.Create(context.Background(), f); err != nil {
		t.Fatalf("creating fixture folder: %v", err)
	}
	return f
}

// MakeDocument inserts a document; folderID may be nil for a root document.
func MakeDocument(t *testing.T, database *sql.DB, title, body string, folderID *string) *domain.Document {
	t.Helper()
	d := &domain.Document{
		ID:        uuid.NewString(),
		FolderID:  folderID,
		Title:     title,
		Body:      body,
		CreatedAt: FixtureClock,
		UpdatedAt: FixtureClock,
	}
	repo := repository.NewSQLiteDocumentRepo(database)
	if err := repo.Create(context.Background(), d); err != nil {
		t.Fatalf("creating fixture document: %v", err)
	}
	return d
}

// MakeAlert inserts a one-shot alert due at the given instant.
func MakeAlert(t *testing.T, database *sql.DB, title string, dueAt time.Time) *domain.Alert {
	t.Helper()
	a := &domain.Alert{
		ID:        uuid.NewString(),
		Title:     title,
		Level:     domain.AlertInfo,
		DueAt:     &dueAt,
		CreatedAt: FixtureClock,
		UpdatedAt: FixtureClock,
	}
	repo := repository.NewSQLiteAlertRepo(database)
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("creating fixture alert: %v", err)
	}
	return a
}
