package pdfx

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/regsight/regsight/internal/cache"
)

func TestExtractPages_MissingFile(t *testing.T) {
	_, err := ExtractPages("/nonexistent/document.pdf")
	if err == nil {
		t.Fatal("Expected error for missing file")
	}

	var extractErr *ExtractError
	if !errors.As(err, &extractErr) {
		t.Fatalf("Expected ExtractError, got %T", err)
	}
	if extractErr.Path != "/nonexistent/document.pdf" {
		t.Errorf("Error should carry the document path, got %s", extractErr.Path)
	}
	if extractErr.Unwrap() == nil {
		t.Error("ExtractError should wrap the underlying error")
	}
}

func TestExtractPages_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("not a pdf at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	var extractErr *ExtractError
	if _, err := ExtractPages(path); !errors.As(err, &extractErr) {
		t.Fatalf("Expected ExtractError for corrupt file, got %v", err)
	}
}

func TestContentKey(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "TC01.pdf")
	renamed := filepath.Join(dir, "UPD_TC01_final.pdf")
	other := filepath.Join(dir, "TC02.pdf")

	if err := os.WriteFile(original, []byte("same bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(renamed, []byte("same bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(other, []byte("different bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	k1, err := ContentKey(original)
	if err != nil {
		t.Fatalf("ContentKey failed: %v", err)
	}
	k2, err := ContentKey(renamed)
	if err != nil {
		t.Fatalf("ContentKey failed: %v", err)
	}
	k3, err := ContentKey(other)
	if err != nil {
		t.Fatalf("ContentKey failed: %v", err)
	}

	if k1 != k2 {
		t.Error("Renamed copies of the same document should share a key")
	}
	if k1 == k3 {
		t.Error("Different documents should have different keys")
	}

	if _, err := ContentKey(filepath.Join(dir, "missing.pdf")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestExtractor_CacheHit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, []byte("cached document bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Seed the cache under the document's content key. The file itself
	// is not a valid PDF, so a hit is the only way Pages can succeed.
	c := cache.NewMemory(0)
	hash, err := ContentKey(path)
	if err != nil {
		t.Fatalf("ContentKey failed: %v", err)
	}
	if err := c.Set(cache.Key(hash), []byte(`{"1": "Page one text."}`), 0); err != nil {
		t.Fatalf("Failed to seed cache: %v", err)
	}

	pages, err := NewExtractor(c).Pages(path)
	if err != nil {
		t.Fatalf("Pages failed: %v", err)
	}
	if pages[1] != "Page one text." {
		t.Errorf("Expected cached page text, got %q", pages[1])
	}
}

func TestExtractor_NilCache(t *testing.T) {
	if _, err := NewExtractor(nil).Pages("/nonexistent/document.pdf"); err == nil {
		t.Error("Expected extraction error with nil cache")
	}
}
