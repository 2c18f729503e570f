package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ErrUnreadable marks a byte stream that is not a parseable instance of a
// supported document format. Extraction is all-or-nothing: no partial text is
// returned alongside it.
var ErrUnreadable = errors.New("unreadable document")

// Text extracts plain text from an in-memory document payload. Supported
// containers are PDF (github.com/ledongthuc/pdf) and DOCX. Layout and
// formatting are lost; reading order is preserved.
func Text(ctx context.Context, data []byte, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty payload", ErrUnreadable)
	}

	switch detectMimeType(data, fileName) {
	case mimePDF:
		return extractPDF(data)
	case mimeDOCX:
		return extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: unsupported format for %s", ErrUnreadable, fileName)
	}
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: pdf: %v", ErrUnreadable, err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: pdf text: %v", ErrUnreadable, err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("%w: pdf read: %v", ErrUnreadable, err)
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	readerAt := bytes.NewReader(data)
	zr, err := zip.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: docx: %v", ErrUnreadable, err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("%w: docx: document.xml not found", ErrUnreadable)
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("%w: docx: %v", ErrUnreadable, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("%w: docx: %v", ErrUnreadable, err)
	}

	text, err := stripDocxXML(string(raw))
	if err != nil {
		return "", fmt.Errorf("%w: docx xml: %v", ErrUnreadable, err)
	}
	return text, nil
}

// stripDocxXML flattens document.xml to plain text. A decode error fails the
// whole extraction; markup is never passed through as text.
func stripDocxXML(raw string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if last := buf.Len(); last > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String()), nil
}

// detectMimeType combines content sniffing with extension mapping: DOCX
// sniffs as application/zip, so the zip contents and extension break the tie.
func detectMimeType(data []byte, fileName string) string {
	sniffLen := len(data)
	if sniffLen > 512 {
		sniffLen = 512
	}
	sniffed := strings.ToLower(strings.TrimSpace(strings.Split(http.DetectContentType(data[:sniffLen]), ";")[0]))
	if sniffed != "application/zip" {
		return sniffed
	}

	readerAt := bytes.NewReader(data)
	if zr, err := zip.NewReader(readerAt, int64(len(data))); err == nil {
		for _, f := range zr.File {
			if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
				return mimeDOCX
			}
		}
	}

	if strings.ToLower(filepath.Ext(fileName)) == ".docx" {
		return mimeDOCX
	}
	return sniffed
}
