package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pmerrell/atrium/internal/db"
	"github.com/pmerrell/atrium/internal/domain"
)

// SQLiteAlertRepo implements AlertRepo using a SQLite database.
type SQLiteAlertRepo struct {
	db db.DBTX
}

// NewSQLiteAlertRepo creates a new SQLiteAlertRepo.
func NewSQLiteAlertRepo(dbtx db.DBTX) *SQLiteAlertRepo {
	return &SQLiteAlertRepo{db: dbtx}
}

const alertColumns = `id, title, message, level, due_at, schedule, acked_at, created_at, updated_at`

func (r *SQLiteAlertRepo) Create(ctx context.Context, a *domain.Alert) error {
	query := `INSERT INTO alerts (` + alertColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.Title,
		a.Message,
		string(a.Level),
		nullableTimeToString(a.DueAt),
		a.Schedule,
		nullableTimeToString(a.AckedAt),
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting alert: %w", err)
	}
	return nil
}

func (r *SQLiteAlertRepo) GetByID(ctx context.Context, id string) (*domain.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	a, err := scanAlert(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("alert: %w", ErrNotFound)
		}
		return nil, err
	}
	return a, nil
}

func (r *SQLiteAlertRepo) List(ctx context.Context) ([]*domain.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts ORDER BY due_at IS NULL, due_at, title`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*domain.Alert
	for rows.Next() {
		a, err := scanAlert(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning alert row: %w", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating alerts: %w", err)
	}
	return alerts, nil
}

func (r *SQLiteAlertRepo) Update(ctx context.Context, a *domain.Alert) error {
	query := `UPDATE alerts
		SET title = ?, message = ?, level = ?, due_at = ?, schedule = ?, acked_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		a.Title,
		a.Message,
		string(a.Level),
		nullableTimeToString(a.DueAt),
		a.Schedule,
		nullableTimeToString(a.AckedAt),
		time.Now().UTC().Format(time.RFC3339),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating alert: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking alert update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("alert %s: %w", a.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteAlertRepo) Ack(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE alerts SET acked_at = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		at.UTC().Format(time.RFC3339),
		time.Now().UTC().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("acknowledging alert: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking alert ack: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("alert %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteAlertRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM alerts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting alert: %w", err)
	}
	return nil
}

func scanAlert(scan func(...any) error) (*domain.Alert, error) {
	var a domain.Alert
	var level, createdAt, updatedAt string
	var dueAt, ackedAt sql.NullString

	if err := scan(&a.ID, &a.Title, &a.Message, &level, &dueAt, &a.Schedule, &ackedAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	a.Level = domain.AlertLevel(level)
	a.DueAt = parseNullableTime(dueAt)
	a.AckedAt = parseNullableTime(ackedAt)

	var err error
	if a.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if a.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &a, nil
}
