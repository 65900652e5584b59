// Package store persists ground-truth entries and benchmark run records
// in an embedded key-value database. The engine reads ground truth and
// writes run results; nothing here is consulted on the audit hot path.
package store

import "github.com/regsight/regsight/internal/model"

// Store is the ground-truth / bench-run document store. Implementations
// guarantee atomic single-record writes and nothing more.
type Store interface {
	// PutGroundTruth upserts entries keyed by (test_case_id, entry_id)
	PutGroundTruth(entries []model.GroundTruthEntry) error

	// ActiveGroundTruth returns the active entries for one test case
	ActiveGroundTruth(testCaseID string) ([]model.GroundTruthEntry, error)

	// AllGroundTruth returns every stored entry, active or not
	AllGroundTruth() ([]model.GroundTruthEntry, error)

	// PutRun persists a benchmark run summary
	PutRun(summary model.RunSummary) error

	// PutResult persists one per-document benchmark result
	PutResult(result model.BenchResult) error

	// Runs returns all stored run summaries
	Runs() ([]model.RunSummary, error)

	// Close releases the underlying database
	Close() error
}
