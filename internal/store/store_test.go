package store

import (
	"testing"
	"time"

	"github.com/regsight/regsight/internal/model"
)

func newTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGroundTruth_ActiveFilter(t *testing.T) {
	s := newTestStore(t)

	entries := []model.GroundTruthEntry{
		{EntryID: "e1", TestCaseID: "TC01", Sentence: "Fund is the best performer", IsActive: true},
		{EntryID: "e2", TestCaseID: "TC01", Sentence: "Guaranteed returns", IsActive: false},
		{EntryID: "e3", TestCaseID: "TC02", Sentence: "No risk involved", IsActive: true},
	}
	if err := s.PutGroundTruth(entries); err != nil {
		t.Fatalf("PutGroundTruth: %v", err)
	}

	active, err := s.ActiveGroundTruth("TC01")
	if err != nil {
		t.Fatalf("ActiveGroundTruth: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 active entry for TC01, got %d", len(active))
	}
	if active[0].EntryID != "e1" {
		t.Errorf("expected e1, got %s", active[0].EntryID)
	}

	// An unrelated test case stays isolated
	active, err = s.ActiveGroundTruth("TC03")
	if err != nil {
		t.Fatalf("ActiveGroundTruth: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("expected no entries for TC03, got %d", len(active))
	}
}

func TestGroundTruth_Upsert(t *testing.T) {
	s := newTestStore(t)

	entry := model.GroundTruthEntry{EntryID: "e1", TestCaseID: "TC01", Sentence: "v1", IsActive: true}
	if err := s.PutGroundTruth([]model.GroundTruthEntry{entry}); err != nil {
		t.Fatalf("PutGroundTruth: %v", err)
	}

	entry.Sentence = "v2"
	if err := s.PutGroundTruth([]model.GroundTruthEntry{entry}); err != nil {
		t.Fatalf("PutGroundTruth (update): %v", err)
	}

	active, err := s.ActiveGroundTruth("TC01")
	if err != nil {
		t.Fatalf("ActiveGroundTruth: %v", err)
	}
	if len(active) != 1 || active[0].Sentence != "v2" {
		t.Errorf("expected single updated entry, got %+v", active)
	}
}

func TestGroundTruth_RequiresKeys(t *testing.T) {
	s := newTestStore(t)

	err := s.PutGroundTruth([]model.GroundTruthEntry{{Sentence: "no ids"}})
	if err == nil {
		t.Error("expected error for entry without ids")
	}
}

func TestAllGroundTruth(t *testing.T) {
	s := newTestStore(t)

	entries := []model.GroundTruthEntry{
		{EntryID: "e1", TestCaseID: "TC01", IsActive: true},
		{EntryID: "e2", TestCaseID: "TC02", IsActive: false},
	}
	if err := s.PutGroundTruth(entries); err != nil {
		t.Fatalf("PutGroundTruth: %v", err)
	}

	all, err := s.AllGroundTruth()
	if err != nil {
		t.Fatalf("AllGroundTruth: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 entries, got %d", len(all))
	}
}

func TestRunsAndResults(t *testing.T) {
	s := newTestStore(t)

	summary := model.RunSummary{
		RunID:     "20250101_120000",
		Model:     "test-model",
		Threshold: 0.5,
		Documents: 2,
		StartedAt: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := s.PutRun(summary); err != nil {
		t.Fatalf("PutRun: %v", err)
	}

	for _, tc := range []string{"TC01", "TC02"} {
		result := model.BenchResult{
			RunID:      summary.RunID,
			TestCaseID: tc,
			Metrics:    model.DocumentMetrics{TestCaseID: tc},
		}
		if err := s.PutResult(result); err != nil {
			t.Fatalf("PutResult %s: %v", tc, err)
		}
	}

	runs, err := s.Runs()
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 1 || runs[0].Model != "test-model" {
		t.Errorf("unexpected runs: %+v", runs)
	}

	results, err := s.Results(summary.RunID)
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}

func TestNewRunID(t *testing.T) {
	now := time.Date(2025, 8, 29, 14, 30, 5, 0, time.UTC)

	first := NewRunID(now)
	if first != "20250829_143005" {
		t.Errorf("unexpected run id: %s", first)
	}

	// Same second gets a suffix
	second := NewRunID(now)
	if second == first {
		t.Errorf("expected distinct id for same-second call, got %s", second)
	}
	if second != "20250829_143005_1" {
		t.Errorf("unexpected suffixed id: %s", second)
	}

	// A later second resets to the plain format
	later := NewRunID(now.Add(time.Second))
	if later != "20250829_143006" {
		t.Errorf("unexpected run id: %s", later)
	}
}
