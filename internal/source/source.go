// Package source loads the text a quiz is generated from.
package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// MaxFileSize bounds what Load will read into memory.
const MaxFileSize = 32 << 20

var pdfMagic = []byte("%PDF-")

// Load reads the file at path and returns its text. PDF files, detected by
// extension or header, are converted to page-joined plain text.
func Load(path string) (string, error) {
	data, err := readLimited(path)
	if err != nil {
		return "", err
	}
	if strings.EqualFold(filepath.Ext(path), ".pdf") || bytes.HasPrefix(data, pdfMagic) {
		return PDFText(bytes.NewReader(data), int64(len(data)))
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s is not a text or PDF file", filepath.Base(path))
	}
	return string(data), nil
}

// ReadAll reads text from r, converting it when it holds a PDF document.
func ReadAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	if len(data) > MaxFileSize {
		return "", fmt.Errorf("input exceeds %d MB", MaxFileSize>>20)
	}
	if bytes.HasPrefix(data, pdfMagic) {
		return PDFText(bytes.NewReader(data), int64(len(data)))
	}
	return string(data), nil
}

// PDFText extracts plain text from a PDF, formatting every page as
// "Page N:\n<text>\n\n".
func PDFText(r io.ReaderAt, size int64) (text string, err error) {
	// The PDF reader reports some malformed input by panicking.
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("read pdf: %v", rec)
		}
	}()

	doc, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= doc.NumPage(); i++ {
		p := doc.Page(i)
		if p.V.IsNull() {
			continue
		}
		pageText, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		fmt.Fprintf(&b, "Page %d:\n%s\n\n", i, pageText)
	}
	return b.String(), nil
}

func readLimited(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat source: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%s exceeds %d MB", filepath.Base(path), MaxFileSize>>20)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return data, nil
}
