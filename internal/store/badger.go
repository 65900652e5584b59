package store

import (
	"encoding/json"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/regsight/regsight/internal/model"
)

const (
	groundTruthPrefix = "gt/"
	runPrefix         = "bench/run/"
	resultPrefix      = "bench/result/"
)

// BadgerStore implements Store on an embedded BadgerDB
type BadgerStore struct {
	db *badger.DB
}

var _ Store = (*BadgerStore)(nil)

// Open opens (or creates) a store at the given directory
func Open(path string) (*BadgerStore, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}

	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open store at %s: %w", path, err)
	}
	return &BadgerStore{db: db}, nil
}

// OpenInMemory opens a throwaway store for tests
func OpenInMemory() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Close releases the underlying database
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// PutGroundTruth upserts entries keyed by (test_case_id, entry_id).
// Each entry is one atomic write.
func (s *BadgerStore) PutGroundTruth(entries []model.GroundTruthEntry) error {
	for _, entry := range entries {
		if entry.TestCaseID == "" || entry.EntryID == "" {
			return fmt.Errorf("ground truth entry needs test_case_id and entry_id (got %q/%q)",
				entry.TestCaseID, entry.EntryID)
		}
		key := groundTruthPrefix + entry.TestCaseID + "/" + entry.EntryID
		if err := s.put(key, entry); err != nil {
			return fmt.Errorf("put ground truth %s: %w", key, err)
		}
	}
	return nil
}

// ActiveGroundTruth returns the active entries for one test case
func (s *BadgerStore) ActiveGroundTruth(testCaseID string) ([]model.GroundTruthEntry, error) {
	var entries []model.GroundTruthEntry
	prefix := groundTruthPrefix + testCaseID + "/"

	err := s.scan(prefix, func(val []byte) error {
		var entry model.GroundTruthEntry
		if err := json.Unmarshal(val, &entry); err != nil {
			return err
		}
		if entry.IsActive {
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan ground truth for %s: %w", testCaseID, err)
	}
	return entries, nil
}

// AllGroundTruth returns every stored entry, active or not
func (s *BadgerStore) AllGroundTruth() ([]model.GroundTruthEntry, error) {
	var entries []model.GroundTruthEntry

	err := s.scan(groundTruthPrefix, func(val []byte) error {
		var entry model.GroundTruthEntry
		if err := json.Unmarshal(val, &entry); err != nil {
			return err
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan ground truth: %w", err)
	}
	return entries, nil
}

// PutRun persists a benchmark run summary
func (s *BadgerStore) PutRun(summary model.RunSummary) error {
	if summary.RunID == "" {
		return fmt.Errorf("run summary needs a run_id")
	}
	if err := s.put(runPrefix+summary.RunID, summary); err != nil {
		return fmt.Errorf("put run %s: %w", summary.RunID, err)
	}
	return nil
}

// PutResult persists one per-document benchmark result
func (s *BadgerStore) PutResult(result model.BenchResult) error {
	if result.RunID == "" || result.TestCaseID == "" {
		return fmt.Errorf("bench result needs run_id and test_case_id (got %q/%q)",
			result.RunID, result.TestCaseID)
	}
	key := resultPrefix + result.RunID + "/" + result.TestCaseID
	if err := s.put(key, result); err != nil {
		return fmt.Errorf("put result %s: %w", key, err)
	}
	return nil
}

// Runs returns all stored run summaries
func (s *BadgerStore) Runs() ([]model.RunSummary, error) {
	var runs []model.RunSummary

	err := s.scan(runPrefix, func(val []byte) error {
		var summary model.RunSummary
		if err := json.Unmarshal(val, &summary); err != nil {
			return err
		}
		runs = append(runs, summary)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan runs: %w", err)
	}
	return runs, nil
}

// Results returns the per-document results of one run
func (s *BadgerStore) Results(runID string) ([]model.BenchResult, error) {
	var results []model.BenchResult
	prefix := resultPrefix + runID + "/"

	err := s.scan(prefix, func(val []byte) error {
		var result model.BenchResult
		if err := json.Unmarshal(val, &result); err != nil {
			return err
		}
		results = append(results, result)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan results for %s: %w", runID, err)
	}
	return results, nil
}

func (s *BadgerStore) put(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

func (s *BadgerStore) scan(prefix string, visit func(val []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				return visit(val)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}
