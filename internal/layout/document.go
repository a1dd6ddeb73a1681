package layout

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// MIMEType of every document the builder produces.
const MIMEType = "application/pdf"

// Document is a finished, immutable PDF.
type Document struct {
	data  []byte
	pages int
}

// PageCount is always at least 1 and never more than the page cap.
func (d *Document) PageCount() int { return d.pages }

// Bytes returns the encoded PDF. Callers must not modify the slice.
func (d *Document) Bytes() []byte { return d.data }

// Size is the encoded length in bytes.
func (d *Document) Size() int { return len(d.data) }

// MIMEType returns "application/pdf".
func (d *Document) MIMEType() string { return MIMEType }

// WriteTo implements io.WriterTo.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return bytes.NewReader(d.data).WriteTo(w)
}

// Save writes the PDF to filename, replacing any existing file.
func (d *Document) Save(filename string) error {
	if err := os.WriteFile(filename, d.data, 0o644); err != nil {
		return fmt.Errorf("saving %s: %w", filename, err)
	}
	return nil
}
