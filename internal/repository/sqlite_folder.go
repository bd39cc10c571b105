package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pmerrell/atrium/internal/db"
	"github.com/pmerrell/atrium/internal/domain"
)

// SQLiteFolderRepo implements FolderRepo using a SQLite database.
type SQLiteFolderRepo struct {
	db db.DBTX
}

// NewSQLiteFolderRepo creates a new SQLiteFolderRepo.
func NewSQLiteFolderRepo(dbtx db.DBTX) *SQLiteFolderRepo {
	return &SQLiteFolderRepo{db: dbtx}
}

const folderColumns = `id, parent_id, name, created_at, updated_at`

func (r *SQLiteFolderRepo) Create(ctx context.Context, f *domain.Folder) error {
	query := `INSERT INTO folders (` + folderColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		f.ID,
		nullableString(f.ParentID),
		f.Name,
		f.CreatedAt.Format(time.RFC3339),
		f.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting folder: %w", err)
	}
	return nil
}

func (r *SQLiteFolderRepo) GetByID(ctx context.Context, id string) (*domain.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	f, err := scanFolder(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("folder: %w", ErrNotFound)
		}
		return nil, err
	}
	return f, nil
}

func (r *SQLiteFolderRepo) ListAll(ctx context.Context) ([]*domain.Folder, error) {
	return r.queryFolders(ctx, `SELECT `+folderColumns+` FROM folders ORDER BY name`)
}

func (r *SQLiteFolderRepo) ListChildren(ctx context.Context, parentID string) ([]*domain.Folder, error) {
	return r.queryFolders(ctx,
		`SELECT `+folderColumns+` FROM folders WHERE parent_id = ? ORDER BY name`, parentID)
}

func (r *SQLiteFolderRepo) ListRoots(ctx context.Context) ([]*domain.Folder, error) {
	return r.queryFolders(ctx,
		`SELECT `+folderColumns+` FROM folders WHERE parent_id IS NULL ORDER BY name`)
}

func (r *SQLiteFolderRepo) Update(ctx context.Context, f *domain.Folder) error {
	query := `UPDATE folders SET parent_id = ?, name = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableString(f.ParentID),
		f.Name,
		time.Now().UTC().Format(time.RFC3339),
		f.ID,
	)
	if err != nil {
		return fmt.Errorf("updating folder: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking folder update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("folder %s: %w", f.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteFolderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting folder: %w", err)
	}
	return nil
}

func (r *SQLiteFolderRepo) queryFolders(ctx context.Context, query string, args ...any) ([]*domain.Folder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing folders: %w", err)
	}
	defer rows.Close()

	var folders []*domain.Folder
	for rows.Next() {
		f, err := scanFolder(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning folder row: %w", err)
		}
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating folders: %w", err)
	}
	return folders, nil
}

func scanFolder(scan func(...any) error) (*domain.Folder, error) {
	var f domain.Folder
	var parentID sql.NullString
	var createdAt, updatedAt string

	if err := scan(&f.ID, &parentID, &f.Name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	f.ParentID = stringPtrFromNull(parentID)

	var err error
	if f.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if f.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &f, nil
}
