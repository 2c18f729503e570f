package files

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var recordColumns = []string{"id", "file_name", "summary", "storage_key", "size_bytes", "mime_type", "created_at"}

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreate(t *testing.T) {
	repo, mock := newMockRepo(t)

	rec := Record{
		ID:         "file-1",
		FileName:   "notes.pdf",
		Summary:    "a summary",
		StorageKey: "123-notes.pdf",
		SizeBytes:  42,
		MimeType:   "application/pdf",
		CreatedAt:  time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO files").
		WithArgs(
			rec.ID,
			rec.FileName,
			rec.Summary,
			sql.NullString{String: rec.StorageKey, Valid: true},
			rec.SizeBytes,
			sql.NullString{String: rec.MimeType, Valid: true},
			rec.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), rec); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, file_name, summary").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoDeleteReturnsRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Now().UTC()

	mock.ExpectQuery("DELETE FROM files").
		WithArgs("file-1").
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow("file-1", "notes.pdf", "a summary", "123-notes.pdf", int64(42), "application/pdf", created))

	rec, err := repo.Delete(context.Background(), "file-1")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rec.StorageKey != "123-notes.pdf" {
		t.Fatalf("expected storage key back, got %q", rec.StorageKey)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDeleteNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("DELETE FROM files").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListNullColumns(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Now().UTC()

	mock.ExpectQuery("SELECT id, file_name, summary").
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow("file-1", "notes.pdf", "a summary", nil, int64(0), nil, created))

	out, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out))
	}
	if out[0].StorageKey != "" || out[0].MimeType != "" {
		t.Fatalf("null columns must scan to empty strings: %+v", out[0])
	}
}

func TestPGRepoCreateWrapsStorageError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO files").
		WillReturnError(errors.New("connection reset"))

	err := repo.Create(context.Background(), Record{ID: "file-1", FileName: "notes.pdf", CreatedAt: time.Now().UTC()})
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}
