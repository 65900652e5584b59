// Package pdfx extracts per-page text from source PDF documents.
package pdfx

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/ledongthuc/pdf"
)

// ExtractError is the typed error raised for unreadable or corrupt
// source documents. Callers surface it as a PDF_EXTRACT_ERROR issue
// rather than a crash.
type ExtractError struct {
	Path string
	Err  error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract pdf text from %s: %v", e.Path, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }

// ExtractPages extracts the text of each page, 1-indexed. Pages whose
// text cannot be decoded are present with empty text so page numbering
// stays aligned with the document.
func ExtractPages(path string) (map[int]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, &ExtractError{Path: path, Err: err}
	}
	defer f.Close()

	pages := make(map[int]string, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages[i] = ""
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			pages[i] = ""
			continue
		}
		pages[i] = text
	}

	if len(pages) == 0 {
		return nil, &ExtractError{Path: path, Err: fmt.Errorf("document has no pages")}
	}
	return pages, nil
}

// ContentKey returns a cache key derived from the document bytes, so
// renamed copies of the same document share cached page text
func ContentKey(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &ExtractError{Path: path, Err: err}
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", &ExtractError{Path: path, Err: err}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
