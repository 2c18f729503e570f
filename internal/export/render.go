package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"studykit-backend/internal/llm"
)

// ErrRender marks a failure of the document rendering backend.
var ErrRender = errors.New("render failure")

// ContentType is the MIME type of rendered exports.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const wmlNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Render produces a two-section DOCX: the summary, then the numbered quiz
// with options lettered A, B, C in sequence order. Output is deterministic
// for identical inputs; zip entries carry no timestamps. An empty quiz
// renders the summary section only.
func Render(summary string, items []llm.QuizItem) ([]byte, error) {
	doc, err := documentXML(summary, items)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", doc},
	}

	var out bytes.Buffer
	writer := zip.NewWriter(&out)
	for _, part := range parts {
		// Zero Modified keeps the archive byte-identical across calls.
		header := &zip.FileHeader{Name: part.name, Method: zip.Deflate}
		dst, err := writer.CreateHeader(header)
		if err != nil {
			return nil, fmt.Errorf("%w: create %s: %v", ErrRender, part.name, err)
		}
		if _, err := dst.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("%w: write %s: %v", ErrRender, part.name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%w: close archive: %v", ErrRender, err)
	}

	return out.Bytes(), nil
}

func documentXML(summary string, items []llm.QuizItem) (string, error) {
	var body strings.Builder

	writeHeading(&body, "Summary")
	for _, line := range strings.Split(summary, "\n") {
		if err := writeParagraph(&body, line, 0); err != nil {
			return "", err
		}
	}

	if len(items) > 0 {
		body.WriteString(`<w:p><w:r><w:br w:type="page"/></w:r></w:p>`)
		writeHeading(&body, "Questions")
		for i, item := range items {
			if err := writeParagraph(&body, fmt.Sprintf("%d. %s", i+1, item.Question), 0); err != nil {
				return "", err
			}
			for j, opt := range item.Options {
				label := string(rune('A' + j))
				if err := writeParagraph(&body, fmt.Sprintf("%s. %s", label, opt), 1); err != nil {
					return "", err
				}
			}
		}
	}

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+"\n"+
		`<w:document xmlns:w="%s"><w:body>%s<w:sectPr/></w:body></w:document>`,
		wmlNamespace, body.String()), nil
}

func writeHeading(b *strings.Builder, text string) {
	b.WriteString(`<w:p><w:pPr><w:rPr><w:b/><w:sz w:val="32"/><w:u w:val="single"/></w:rPr></w:pPr>`)
	b.WriteString(`<w:r><w:rPr><w:b/><w:sz w:val="32"/><w:u w:val="single"/></w:rPr>`)
	// Headings are fixed ASCII strings, no escaping needed.
	b.WriteString(`<w:t>` + text + `</w:t></w:r></w:p>`)
}

func writeParagraph(b *strings.Builder, text string, indentLevel int) error {
	b.WriteString(`<w:p>`)
	if indentLevel > 0 {
		b.WriteString(fmt.Sprintf(`<w:pPr><w:ind w:left="%d"/></w:pPr>`, indentLevel*360))
	}
	b.WriteString(`<w:r><w:t xml:space="preserve">`)
	escaped, err := escapeXML(text)
	if err != nil {
		return err
	}
	b.WriteString(escaped)
	b.WriteString(`</w:t></w:r></w:p>`)
	return nil
}

func escapeXML(text string) (string, error) {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(text)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`
