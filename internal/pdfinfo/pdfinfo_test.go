package pdfinfo

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

func makePDF(t *testing.T, pages ...string) []byte {
	t.Helper()
	f := gofpdf.New("P", "mm", "A4", "")
	f.SetFont("Helvetica", "", 12)
	for _, text := range pages {
		f.AddPage()
		f.Text(20, 20, text)
	}
	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		t.Fatalf("Output: %v", err)
	}
	return buf.Bytes()
}

func TestRead(t *testing.T) {
	data := makePDF(t, "first page", "second page")

	info, err := Read(data)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if info.Pages != 2 {
		t.Errorf("pages = %d, want 2", info.Pages)
	}
	if info.Size != int64(len(data)) {
		t.Errorf("size = %d, want %d", info.Size, len(data))
	}
	if len(info.PageText) != 2 {
		t.Fatalf("page text entries = %d", len(info.PageText))
	}
	if !strings.Contains(info.PageText[0], "first page") {
		t.Errorf("page 1 text = %q", info.PageText[0])
	}
	if !strings.Contains(info.Text(), "second page") {
		t.Errorf("text = %q", info.Text())
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, makePDF(t, "hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	info, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if info.Pages != 1 {
		t.Errorf("pages = %d", info.Pages)
	}
	if info.Size == 0 {
		t.Error("expected non-zero size")
	}
}

func TestRead_Garbage(t *testing.T) {
	if _, err := Read([]byte("not a pdf")); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestReadFile_Missing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
}
