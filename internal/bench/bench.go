// Package bench evaluates the extraction pipeline against expert ground
// truth: it runs each test document through a Processor, matches the
// candidate and flagged stages against that document's ground truth, and
// persists per-document results plus a run summary.
package bench

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/regsight/regsight/internal/match"
	"github.com/regsight/regsight/internal/model"
	"github.com/regsight/regsight/internal/store"
	"github.com/regsight/regsight/internal/worker"
)

// Document is one benchmark input: a source file and the test case
// whose ground truth it is scored against
type Document struct {
	Path       string
	TestCaseID string
}

// StageOutput carries the pipeline outputs the benchmark scores
type StageOutput struct {
	// Claims are the registry claims (registry-coverage stage)
	Claims []model.Claim

	// Candidates are the detection-stage outputs
	Candidates []model.Candidate

	// Flagged are the final findings with a FLAG disposition
	Flagged []model.Finding
}

// Processor runs the extraction pipeline for one document. Implemented
// by the pipeline adapter; stubbed in tests.
type Processor interface {
	Process(ctx context.Context, path string) (StageOutput, error)
}

// Runner executes a benchmark run over a document set. Provider-call
// pacing is the provider's own concern (llm.Throttle); the runner only
// bounds document-level parallelism.
type Runner struct {
	store     store.Store
	processor Processor
	matcher   *match.Matcher
	claims    *match.Matcher
	modelName string
	threshold float64
	workers   int
	progress  io.Writer
}

// Options configures a benchmark run
type Options struct {
	// Threshold is the bench similarity floor
	Threshold float64

	// ClaimThreshold is the registry-coverage similarity floor
	ClaimThreshold float64

	// Workers bounds document-level parallelism
	Workers int

	// Model identifies the extraction backend in run records
	Model string
}

// NewRunner creates a benchmark runner
func NewRunner(st store.Store, processor Processor, opts Options) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	return &Runner{
		store:     st,
		processor: processor,
		matcher:   match.NewMatcher(opts.Threshold),
		claims:    match.NewMatcher(opts.ClaimThreshold),
		modelName: opts.Model,
		threshold: opts.Threshold,
		workers:   opts.Workers,
		progress:  os.Stderr,
	}
}

// Run evaluates every document and persists the results under a fresh
// run id. Documents with no active ground truth are skipped up front.
func (r *Runner) Run(ctx context.Context, docs []Document) (model.RunSummary, []model.DocumentMetrics, error) {
	started := time.Now().UTC()
	runID := store.NewRunID(started)

	pool := worker.NewPool[model.DocumentMetrics](ctx, r.workers)

	for _, doc := range docs {
		truth, err := r.store.ActiveGroundTruth(doc.TestCaseID)
		if err != nil {
			pool.Shutdown()
			return model.RunSummary{}, nil, fmt.Errorf("load ground truth for %s: %w", doc.TestCaseID, err)
		}
		if len(truth) == 0 {
			fmt.Fprintf(r.progress, "[bench] %s: no active ground truth, skipping\n", doc.TestCaseID)
			continue
		}
		pool.Submit(func(ctx context.Context) model.DocumentMetrics {
			return r.evaluate(ctx, doc, truth)
		})
	}

	perDoc := pool.Wait()
	failures := 0
	for _, m := range perDoc {
		if m.Error != "" {
			failures++
		}
	}

	// Deterministic record order regardless of worker scheduling
	sort.Slice(perDoc, func(i, j int) bool {
		return perDoc[i].TestCaseID < perDoc[j].TestCaseID
	})

	for _, m := range perDoc {
		result := model.BenchResult{
			RunID:      runID,
			TestCaseID: m.TestCaseID,
			Filename:   m.Filename,
			Metrics:    m,
			FinishedAt: time.Now().UTC(),
		}
		if err := r.store.PutResult(result); err != nil {
			return model.RunSummary{}, perDoc, fmt.Errorf("persist result %s: %w", m.TestCaseID, err)
		}
	}

	summary := model.RunSummary{
		RunID:     runID,
		Model:     r.modelName,
		Threshold: r.threshold,
		Documents: len(perDoc),
		Failures:  failures,
		Overall: match.Aggregate(perDoc, func(d model.DocumentMetrics) model.Metrics {
			return d.Flagged
		}),
		StartedAt: started,
		Duration:  time.Since(started).Round(time.Millisecond).String(),
	}
	if err := r.store.PutRun(summary); err != nil {
		return summary, perDoc, fmt.Errorf("persist run summary: %w", err)
	}

	return summary, perDoc, nil
}

// evaluate runs the pipeline for one document and scores both stages
// against its ground truth. Processing failures become a metrics record
// with the error recorded, never a panic or a lost document.
func (r *Runner) evaluate(ctx context.Context, doc Document, truth []model.GroundTruthEntry) model.DocumentMetrics {
	metrics := model.DocumentMetrics{
		TestCaseID:  doc.TestCaseID,
		Filename:    filepath.Base(doc.Path),
		GroundTruth: len(truth),
	}

	out, err := r.processor.Process(ctx, doc.Path)
	if err != nil {
		metrics.Error = err.Error()
		return metrics
	}

	candidateRes := r.matcher.MatchCandidates(out.Candidates, truth)
	metrics.Candidates = match.Metrics(candidateRes, len(out.Candidates), len(truth))

	flaggedRes := r.matcher.MatchFindings(out.Flagged, truth)
	metrics.Flagged = match.Metrics(flaggedRes, len(out.Flagged), len(truth))

	claimRes := r.claims.MatchClaims(out.Claims, truth)
	metrics.Coverage = claimRes.Coverage

	fmt.Fprintf(r.progress, "[bench] %s: %d gt, candidates F1=%.3f, flagged F1=%.3f, coverage=%.3f\n",
		doc.TestCaseID, len(truth), metrics.Candidates.F1, metrics.Flagged.F1, metrics.Coverage)

	return metrics
}

var testCasePattern = regexp.MustCompile(`(?i)TC\s*(\d+)`)

// ExtractTestCaseID pulls a normalized test-case id out of a filename.
// Handles UPD_TC04_2.pdf, TC 1.pdf, tc20_doc.pdf and the like; returns
// "" when no id is present.
func ExtractTestCaseID(filename string) string {
	m := testCasePattern.FindStringSubmatch(filename)
	if m == nil {
		return ""
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return ""
	}
	return fmt.Sprintf("TC%02d", n)
}

// DiscoverDocuments finds benchmark inputs: PDF files in dir whose
// names carry a test-case id
func DiscoverDocuments(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read document dir: %w", err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		tc := ExtractTestCaseID(entry.Name())
		if tc == "" {
			continue
		}
		docs = append(docs, Document{
			Path:       filepath.Join(dir, entry.Name()),
			TestCaseID: tc,
		})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].TestCaseID < docs[j].TestCaseID })
	return docs, nil
}
