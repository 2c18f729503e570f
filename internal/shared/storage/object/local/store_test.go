package local

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"
)

func TestStoreSaveOpenDelete(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	key, size, mimeType, err := store.Save(ctx, "notes.txt", strings.NewReader("hello world"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if size != int64(len("hello world")) {
		t.Fatalf("expected size %d, got %d", len("hello world"), size)
	}
	if !strings.HasSuffix(key, "-notes.txt") {
		t.Fatalf("expected timestamp-prefixed key, got %q", key)
	}
	if !strings.HasPrefix(mimeType, "text/plain") {
		t.Fatalf("unexpected mime type %q", mimeType)
	}

	rc, err := store.Open(ctx, key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(data, []byte("hello world")) {
		t.Fatalf("round trip mismatch: %q", data)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Open(ctx, key); !os.IsNotExist(err) {
		t.Fatalf("expected missing file after delete, got %v", err)
	}

	// Deleting an already-removed object is not an error.
	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("repeat Delete: %v", err)
	}
}

func TestStoreRejectsTraversalKeys(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	if _, err := store.Open(ctx, "../outside"); err == nil {
		t.Fatalf("expected error for traversal key")
	}
	if err := store.Delete(ctx, "/etc/passwd"); err == nil {
		t.Fatalf("expected error for absolute key")
	}
	if _, _, _, err := store.Save(ctx, "../escape.txt", strings.NewReader("x")); err == nil {
		t.Fatalf("expected error for traversal file name")
	}
}
