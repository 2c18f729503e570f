package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new file record.
func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO files (
    id,
    file_name,
    summary,
    storage_key,
    size_bytes,
    mime_type,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	var storageKey sql.NullString
	if rec.StorageKey != "" {
		storageKey = sql.NullString{String: rec.StorageKey, Valid: true}
	}
	var mimeType sql.NullString
	if rec.MimeType != "" {
		mimeType = sql.NullString{String: rec.MimeType, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.FileName,
		rec.Summary,
		storageKey,
		rec.SizeBytes,
		mimeType,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: insert file: %v", ErrStorage, err)
	}
	return nil
}

// GetByID fetches a file record by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Record, error) {
	const query = `
SELECT id, file_name, summary, storage_key, size_bytes, mime_type, created_at
FROM files
WHERE id = $1
LIMIT 1`

	rec, err := scanRecord(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("%w: get file: %v", ErrStorage, err)
	}
	return rec, nil
}

// List returns all file records, newest first.
func (r *PGRepo) List(ctx context.Context) ([]Record, error) {
	const query = `
SELECT id, file_name, summary, storage_key, size_bytes, mime_type, created_at
FROM files
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: list files: %v", ErrStorage, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan file: %v", ErrStorage, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list files: %v", ErrStorage, err)
	}
	return out, nil
}

// Delete removes a file record and returns the previous row.
func (r *PGRepo) Delete(ctx context.Context, id string) (Record, error) {
	const query = `
DELETE FROM files
WHERE id = $1
RETURNING id, file_name, summary, storage_key, size_bytes, mime_type, created_at`

	rec, err := scanRecord(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("%w: delete file: %v", ErrStorage, err)
	}
	return rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var storageKey sql.NullString
	var mimeType sql.NullString
	if err := row.Scan(
		&rec.ID,
		&rec.FileName,
		&rec.Summary,
		&storageKey,
		&rec.SizeBytes,
		&mimeType,
		&rec.CreatedAt,
	); err != nil {
		return Record{}, err
	}
	if storageKey.Valid {
		rec.StorageKey = storageKey.String
	}
	if mimeType.Valid {
		rec.MimeType = mimeType.String
	}
	return rec, nil
}

var _ Repo = (*PGRepo)(nil)
