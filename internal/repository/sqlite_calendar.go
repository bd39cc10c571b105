package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pmerrell/atrium/internal/db"
	"github.com/pmerrell/atrium/internal/domain"
)

// SQLiteCalendarRepo implements CalendarRepo using a SQLite database.
type SQLiteCalendarRepo struct {
	db db.DBTX
}

// NewSQLiteCalendarRepo creates a new SQLiteCalendarRepo.
func NewSQLiteCalendarRepo(dbtx db.DBTX) *SQLiteCalendarRepo {
	return &SQLiteCalendarRepo{db: dbtx}
}

const calendarColumns = `id, name, color, source, feed_url, last_synced_at, created_at, updated_at`

func (r *SQLiteCalendarRepo) Create(ctx context.Context, c *domain.Calendar) error {
	query := `INSERT INTO calendars (` + calendarColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Color,
		string(c.Source),
		c.FeedURL,
		nullableTimeToString(c.LastSyncedAt),
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting calendar: %w", err)
	}
	return nil
}

func (r *SQLiteCalendarRepo) GetByID(ctx context.Context, id string) (*domain.Calendar, error) {
	query := `SELECT ` + calendarColumns + ` FROM calendars WHERE id = ?`
	return r.scanCalendar(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteCalendarRepo) GetByName(ctx context.Context, name string) (*domain.Calendar, error) {
	query := `SELECT ` + calendarColumns + ` FROM calendars WHERE name = ?`
	return r.scanCalendar(r.db.QueryRowContext(ctx, query, name))
}

func (r *SQLiteCalendarRepo) List(ctx context.Context) ([]*domain.Calendar, error) {
	query := `SELECT ` + calendarColumns + ` FROM calendars ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing calendars: %w", err)
	}
	defer rows.Close()

	var calendars []*domain.Calendar
	for rows.Next() {
		c, err := r.scanCalendarRow(rows)
		if err != nil {
			return nil, err
		}
		calendars = append(calendars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating calendars: %w", err)
	}
	return calendars, nil
}

func (r *SQLiteCalendarRepo) Update(ctx context.Context, c *domain.Calendar) error {
	query := `UPDATE calendars
		SET name = ?, color = ?, source = ?, feed_url = ?, last_synced_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Name,
		c.Color,
		string(c.Source),
		c.FeedURL,
		nullableTimeToString(c.LastSyncedAt),
		time.Now().UTC().Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating calendar: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking calendar update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("calendar %s: %w", c.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteCalendarRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM calendars WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting calendar: %w", err)
	}
	return nil
}

func (r *SQLiteCalendarRepo) scanCalendar(row *sql.Row) (*domain.Calendar, error) {
	var c domain.Calendar
	var source, createdAt, updatedAt string
	var lastSynced sql.NullString

	err := row.Scan(&c.ID, &c.Name, &c.Color, &source, &c.FeedURL, &lastSynced, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("calendar: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning calendar: %w", err)
	}
	return r.populateCalendar(&c, source, lastSynced, createdAt, updatedAt)
}

func (r *SQLiteCalendarRepo) scanCalendarRow(rows *sql.Rows) (*domain.Calendar, error) {
	var c domain.Calendar
	var source, createdAt, updatedAt string
	var lastSynced sql.NullString

	if err := rows.Scan(&c.ID, &c.Name, &c.Color, &source, &c.FeedURL, &lastSynced, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("scanning calendar row: %w", err)
	}
	return r.populateCalendar(&c, source, lastSynced, createdAt, updatedAt)
}

func (r *SQLiteCalendarRepo) populateCalendar(c *domain.Calendar, source string, lastSynced sql.NullString, createdAt, updatedAt string) (*domain.Calendar, error) {
	c.Source = domain.CalendarSource(source)
	c.LastSyncedAt = parseNullableTime(lastSynced)

	var err error
	if c.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if c.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return c, nil
}
