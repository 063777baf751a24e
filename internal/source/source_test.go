package source

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// buildPDF assembles a minimal PDF with one page per entry in pages, each
// showing its text in Helvetica.
func buildPDF(pages ...string) []byte {
	n := len(pages)
	// Objects: 1 catalog, 2 pages, 3 font, then (page, content) pairs.
	var objs []string
	kids := make([]string, n)
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objs = append(objs,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)
	for i, text := range pages {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

func TestPDFText(t *testing.T) {
	data := buildPDF("Photosynthesis", "Chlorophyll")
	got, err := PDFText(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Page 1:\nPhotosynthesis\n\nPage 2:\nChlorophyll\n\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLoad_PDFByExtensionAndHeader(t *testing.T) {
	dir := t.TempDir()
	data := buildPDF("Mitochondria")

	for _, name := range []string{"notes.pdf", "notes.bin"} {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, data, 0o600); err != nil {
			t.Fatal(err)
		}
		got, err := Load(p)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if got != "Page 1:\nMitochondria\n\n" {
			t.Errorf("%s: got %q", name, got)
		}
	}
}

func TestLoad_Text(t *testing.T) {
	p := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(p, []byte("The cell is the unit of life."), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := Load(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "The cell is the unit of life." {
		t.Errorf("got %q", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	binary := filepath.Join(dir, "blob.dat")
	if err := os.WriteFile(binary, []byte{0xff, 0xfe, 0x00, 0x81}, 0o600); err != nil {
		t.Fatal(err)
	}
	brokenPDF := filepath.Join(dir, "broken.pdf")
	if err := os.WriteFile(brokenPDF, []byte("%PDF-1.4\ngarbage"), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, p := range []string{filepath.Join(dir, "missing.txt"), dir, binary, brokenPDF} {
		if _, err := Load(p); err == nil {
			t.Errorf("Load(%s): expected error", filepath.Base(p))
		}
	}
}

func TestReadAll(t *testing.T) {
	got, err := ReadAll(strings.NewReader("plain text"))
	if err != nil || got != "plain text" {
		t.Fatalf("got %q, %v", got, err)
	}

	got, err = ReadAll(bytes.NewReader(buildPDF("Osmosis")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Page 1:\nOsmosis\n\n" {
		t.Errorf("got %q", got)
	}
}
