// Package pdfinfo reads PDFs back for inspection: page count and plain text.
package pdfinfo

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Info summarizes a PDF.
type Info struct {
	Pages    int      `json:"pages"`
	Size     int64    `json:"sizeBytes"`
	PageText []string `json:"-"`
}

// Text joins the text of every page.
func (i Info) Text() string {
	return strings.Join(i.PageText, "\n")
}

// Read parses an in-memory PDF.
func Read(data []byte) (Info, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Info{}, fmt.Errorf("opening pdf: %w", err)
	}
	info, err := extract(r)
	if err != nil {
		return Info{}, err
	}
	info.Size = int64(len(data))
	return info, nil
}

// ReadFile parses the PDF at path.
func ReadFile(path string) (Info, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := extract(r)
	if err != nil {
		return Info{}, fmt.Errorf("%s: %w", path, err)
	}
	if st, err := f.Stat(); err == nil {
		info.Size = st.Size()
	}
	return info, nil
}

func extract(r *pdf.Reader) (Info, error) {
	n := r.NumPage()
	info := Info{Pages: n, PageText: make([]string, 0, n)}
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			info.PageText = append(info.PageText, "")
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				f := p.Font(name)
				fonts[name] = &f
			}
		}
		text, err := p.GetPlainText(fonts)
		if err != nil {
			return Info{}, fmt.Errorf("extracting text from page %d: %w", i, err)
		}
		info.PageText = append(info.PageText, text)
	}
	return info, nil
}
