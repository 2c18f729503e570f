package files

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryRepoLifecycle(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	rec := Record{
		ID:         "file-1",
		FileName:   "notes.pdf",
		Summary:    "a summary",
		StorageKey: "123-notes.pdf",
		SizeBytes:  42,
		MimeType:   "application/pdf",
		CreatedAt:  time.Now().UTC(),
	}
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, "file-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Summary != "a summary" || got.StorageKey != "123-notes.pdf" {
		t.Fatalf("unexpected record: %+v", got)
	}

	deleted, err := repo.Delete(ctx, "file-1")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.StorageKey != rec.StorageKey {
		t.Fatalf("Delete must return the removed record, got %+v", deleted)
	}

	if _, err := repo.GetByID(ctx, "file-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if _, err := repo.Delete(ctx, "file-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeated delete, got %v", err)
	}
}

func TestMemoryRepoListNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		rec := Record{ID: id, FileName: id + ".pdf", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := repo.Create(ctx, rec); err != nil {
			t.Fatalf("Create %s: %v", id, err)
		}
	}

	out, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 records, got %d", len(out))
	}
	if out[0].ID != "new" || out[2].ID != "old" {
		t.Fatalf("expected newest first, got %s,%s,%s", out[0].ID, out[1].ID, out[2].ID)
	}
}
