package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestTextDocx(t *testing.T) {
	doc := `<?xml version="1.0"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` +
		`<w:p><w:r><w:t>Hello there</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Second paragraph</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	text, err := Text(context.Background(), buildDocx(t, doc), "notes.docx")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	want := "Hello there\nSecond paragraph"
	if text != want {
		t.Fatalf("expected %q, got %q", want, text)
	}
}

func TestTextDocxWithoutExtension(t *testing.T) {
	doc := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body><w:p><w:r><w:t>content sniffing wins</w:t></w:r></w:p></w:body></w:document>`

	// Detection must not depend on the file name.
	text, err := Text(context.Background(), buildDocx(t, doc), "upload.bin")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if text != "content sniffing wins" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestTextUnreadable(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		file string
	}{
		{"empty payload", nil, "a.pdf"},
		{"plain text", []byte("just some plain text"), "a.txt"},
		{"corrupt pdf", []byte("%PDF-1.4 but not really a pdf body"), "a.pdf"},
		{"truncated document xml", buildDocx(t,
			`<w:document><w:body><w:p><w:r><w:t>leaked text`), "a.docx"},
		{"zip without document", func() []byte {
			var buf bytes.Buffer
			zw := zip.NewWriter(&buf)
			w, _ := zw.Create("unrelated.txt")
			w.Write([]byte("nope"))
			zw.Close()
			return buf.Bytes()
		}(), "a.zip"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Text(context.Background(), tc.data, tc.file); !errors.Is(err, ErrUnreadable) {
				t.Fatalf("expected ErrUnreadable, got %v", err)
			}
		})
	}
}

func TestTextCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Text(ctx, []byte("data"), "a.pdf"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
