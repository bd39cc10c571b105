package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pmerrell/atrium/internal/db"
	"github.com/pmerrell/atrium/internal/domain"
)

// SQLiteDocumentRepo implements DocumentRepo using a SQLite database.
type SQLiteDocumentRepo struct {
	db db.DBTX
}

// NewSQLiteDocumentRepo creates a new SQLiteDocumentRepo.
func NewSQLiteDocumentRepo(dbtx db.DBTX) *SQLiteDocumentRepo {
	return &SQLiteDocumentRepo{db: dbtx}
}

const documentColumns = `id, folder_id, title, body, pinned, created_at, updated_at`

func (r *SQLiteDocumentRepo) Create(ctx context.Context, d *domain.Document) error {
	query := `INSERT INTO documents (` + documentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		nullableString(d.FolderID),
		d.Title,
		d.Body,
		boolToInt(d.Pinned),
		d.CreatedAt.Format(time.RFC3339),
		d.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

func (r *SQLiteDocumentRepo) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	d, err := scanDocument(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("document: %w", ErrNotFound)
		}
		return nil, err
	}
	return d, nil
}

func (r *SQLiteDocumentRepo) ListByFolder(ctx context.Context, folderID string) ([]*domain.Document, error) {
	return r.queryDocuments(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE folder_id = ?
			ORDER BY pinned DESC, title`, folderID)
}

func (r *SQLiteDocumentRepo) ListRootDocuments(ctx context.Context) ([]*domain.Document, error) {
	return r.queryDocuments(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE folder_id IS NULL
			ORDER BY pinned DESC, title`)
}

func (r *SQLiteDocumentRepo) ListPinned(ctx context.Context) ([]*domain.Document, error) {
	return r.queryDocuments(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE pinned = 1 ORDER BY title`)
}

func (r *SQLiteDocumentRepo) ListRecent(ctx context.Context, limit int) ([]*domain.Document, error) {
	return r.queryDocuments(ctx,
		`SELECT `+documentColumns+` FROM documents ORDER BY updated_at DESC LIMIT ?`, limit)
}

func (r *SQLiteDocumentRepo) Search(ctx context.Context, query string) ([]*domain.Document, error) {
	like := "%" + query + "%"
	return r.queryDocuments(ctx,
		`SELECT `+documentColumns+` FROM documents
			WHERE title LIKE ? OR body LIKE ?
			ORDER BY pinned DESC, updated_at DESC`, like, like)
}

func (r *SQLiteDocumentRepo) Update(ctx context.Context, d *domain.Document) error {
	query := `UPDATE documents
		SET folder_id = ?, title = ?, body = ?, pinned = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableString(d.FolderID),
		d.Title,
		d.Body,
		boolToInt(d.Pinned),
		time.Now().UTC().Format(time.RFC3339),
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking document update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("document %s: %w", d.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteDocumentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

func (r *SQLiteDocumentRepo) queryDocuments(ctx context.Context, query string, args ...any) ([]*domain.Document, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []*domain.Document
	for rows.Next() {
		d, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

func scanDocument(scan func(...any) error) (*domain.Document, error) {
	var d domain.Document
	var folderID sql.NullString
	var pinned int
	var createdAt, updatedAt string

	if err := scan(&d.ID, &folderID, &d.Title, &d.Body, &pinned, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	d.FolderID = stringPtrFromNull(folderID)
	d.Pinned = intToBool(pinned)

	var err error
	if d.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if d.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &d, nil
}
