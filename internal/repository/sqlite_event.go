package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pmerrell/atrium/internal/db"
	"github.com/pmerrell/atrium/internal/domain"
)

// SQLiteEventRepo implements EventRepo using a SQLite database.
type SQLiteEventRepo struct {
	db db.DBTX
}

// NewSQLiteEventRepo creates a new SQLiteEventRepo.
func NewSQLiteEventRepo(dbtx db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{db: dbtx}
}

const eventColumns = `id, calendar_id, title, location, notes, start_at, end_at,
	all_day, status, feed_uid, instance_key, created_at, updated_at`

func (r *SQLiteEventRepo) Create(ctx context.Context, e *domain.Event) error {
	query := `INSERT INTO events (` + eventColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.CalendarID,
		e.Title,
		e.Location,
		e.Notes,
		e.Start.UTC().Format(time.RFC3339),
		e.End.UTC().Format(time.RFC3339),
		boolToInt(e.AllDay),
		string(e.Status),
		e.FeedUID,
		e.InstanceKey,
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	e, err := scanEvent(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("event: %w", ErrNotFound)
		}
		return nil, err
	}
	return e, nil
}

func (r *SQLiteEventRepo) ListByCalendar(ctx context.Context, calendarID string) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE calendar_id = ? ORDER BY start_at`
	rows, err := r.db.QueryContext(ctx, query, calendarID)
	if err != nil {
		return nil, fmt.Errorf("listing events by calendar: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *SQLiteEventRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Event, error) {
	// Intersection with the half-open window [from, to): an event
	// intersects when it starts before the window ends and ends after the
	// window starts. Zero-duration events are caught by the equality arm.
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE start_at < ? AND (end_at > ? OR (start_at = end_at AND start_at >= ?))
		ORDER BY start_at`
	rows, err := r.db.QueryContext(ctx, query,
		to.UTC().Format(time.RFC3339),
		from.UTC().Format(time.RFC3339),
		from.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("listing events between: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *SQLiteEventRepo) Update(ctx context.Context, e *domain.Event) error {
	query := `UPDATE events
		SET calendar_id = ?, title = ?, location = ?, notes = ?, start_at = ?, end_at = ?,
			all_day = ?, status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.CalendarID,
		e.Title,
		e.Location,
		e.Notes,
		e.Start.UTC().Format(time.RFC3339),
		e.End.UTC().Format(time.RFC3339),
		boolToInt(e.AllDay),
		string(e.Status),
		time.Now().UTC().Format(time.RFC3339),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking event update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("event %s: %w", e.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteEventRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepo) DeleteImported(ctx context.Context, calendarID string) error {
	query := `DELETE FROM events WHERE calendar_id = ? AND feed_uid <> ''`
	if _, err := r.db.ExecContext(ctx, query, calendarID); err != nil {
		return fmt.Errorf("deleting imported events: %w", err)
	}
	return nil
}

// scanEvent scans one event row via the given scan function, shared
// between *sql.Row and *sql.Rows.
func scanEvent(scan func(...any) error) (*domain.Event, error) {
	var e domain.Event
	var startStr, endStr, status, createdAt, updatedAt string
	var allDay int

	err := scan(
		&e.ID, &e.CalendarID, &e.Title, &e.Location, &e.Notes,
		&startStr, &endStr, &allDay, &status, &e.FeedUID, &e.InstanceKey,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.AllDay = intToBool(allDay)
	e.Status = domain.EventStatus(status)

	if e.Start, err = time.Parse(time.RFC3339, startStr); err != nil {
		return nil, fmt.Errorf("parsing start_at: %w", err)
	}
	if e.End, err = time.Parse(time.RFC3339, endStr); err != nil {
		return nil, fmt.Errorf("parsing end_at: %w", err)
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &e, nil
}

func collectEvents(rows *sql.Rows) ([]*domain.Event, error) {
	var events []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}
