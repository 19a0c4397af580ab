package barwatch

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Document is a bar-list document reduced to per-page plain text by an
// external text-extraction collaborator. This package never decodes a
// binary document format itself.
type Document struct {
	// Pages holds the extracted text of each page, in order.
	Pages []string
}

// FirstPage returns the text of page one, the page carrying the provider
// signature and the declared totals.
func (d Document) FirstPage() string {
	if len(d.Pages) == 0 {
		return ""
	}
	return d.Pages[0]
}

// ReadDocument reads extracted text from r. Pages are separated by form
// feed characters, the convention text-extraction tools use when dumping
// paginated documents to plain text. A document with no form feed is a
// single page.
func ReadDocument(r io.Reader) (Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("reading document text: %w", err)
	}
	return Document{Pages: strings.Split(string(raw), "\f")}, nil
}

// LoadDocument reads a document's extracted text from a file.
func LoadDocument(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("opening document %q: %w", path, err)
	}
	defer f.Close()
	doc, err := ReadDocument(f)
	if err != nil {
		return Document{}, fmt.Errorf("reading document %q: %w", path, err)
	}
	return doc, nil
}
