package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/regsight/regsight/internal/bench"
	"github.com/regsight/regsight/internal/llm"
	"github.com/regsight/regsight/internal/model"
	"github.com/regsight/regsight/internal/pipeline"
	"github.com/regsight/regsight/internal/store"
	"github.com/regsight/regsight/internal/worker"
)

var (
	benchProvider    string
	benchModel       string
	benchStorePath   string
	benchOutputDir   string
	benchConcurrency int
	benchThreshold   float64
	benchTimeout     time.Duration
	benchNoCache     bool
	benchListRuns    bool
)

// benchCmd represents the bench command
var benchCmd = &cobra.Command{
	Use:   "bench <dir>",
	Short: "Evaluate the pipeline against stored ground truth",
	Long: `Bench runs the extraction pipeline over every test document in
a directory, matches the candidate and flagged stages against each
document's ground truth, and persists per-document metrics plus a run
summary. Documents are named with their test case (TC04_brochure.pdf).

Each document is independent, so runs are parallel up to --concurrency;
provider calls are paced by the configured rate limit.

Example:
  regsight bench ./testdocs --llm-provider anthropic --llm-model claude-sonnet-4-20250514
  regsight bench ./testdocs --concurrency 4 --threshold 0.5 --store ./gt-store
  regsight bench --list --store ./gt-store`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().StringVar(&benchProvider, "llm-provider", "anthropic", "LLM provider (openai, anthropic, ollama)")
	benchCmd.Flags().StringVar(&benchModel, "llm-model", "", "LLM model name")
	benchCmd.Flags().StringVar(&benchStorePath, "store", defaultStorePath(), "ground-truth / results store directory")
	benchCmd.Flags().StringVar(&benchOutputDir, "output-dir", "", "also write per-document artifacts here")
	benchCmd.Flags().IntVar(&benchConcurrency, "concurrency", 4, "number of documents processed in parallel")
	benchCmd.Flags().Float64Var(&benchThreshold, "threshold", 0.50, "sentence match threshold")
	benchCmd.Flags().DurationVar(&benchTimeout, "timeout", 2*time.Hour, "total run timeout")
	benchCmd.Flags().BoolVar(&benchNoCache, "no-cache", false, "disable the page-text cache")
	benchCmd.Flags().BoolVar(&benchListRuns, "list", false, "list previous runs instead of evaluating")
}

func runBench(cmd *cobra.Command, args []string) error {
	st, err := store.Open(benchStorePath)
	if err != nil {
		return err
	}
	defer st.Close()

	if benchListRuns {
		return listRuns(st)
	}

	if len(args) != 1 {
		return fmt.Errorf("a document directory is required (or use --list)")
	}
	if benchModel == "" {
		return fmt.Errorf("--llm-model is required for an evaluation run")
	}

	docs, err := bench.DiscoverDocuments(args[0])
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no test documents (TC-named PDFs) found in %s", args[0])
	}

	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !benchNoCache
	cfg.Match.BenchThreshold = benchThreshold
	cfg.Concurrency.Workers = benchConcurrency
	cfg.Output.Verbose = verbose
	if err := applyLLMFlags(cfg, benchProvider, benchModel); err != nil {
		return err
	}

	provider, err := newProvider(cfg)
	if err != nil {
		return fmt.Errorf("configure provider: %w", err)
	}

	// Pace every provider call, not just document starts; each document
	// costs several calls.
	limiter := worker.NewLimiter(cfg.Concurrency.RequestsPerSecond, cfg.Concurrency.BurstSize)
	provider = llm.Throttle(provider, limiter)

	pipe, err := pipeline.New(cfg, provider, newExtractor(cfg))
	if err != nil {
		return err
	}

	processor := bench.NewPipelineProcessor(pipe)
	processor.OutputDir = benchOutputDir

	runner := bench.NewRunner(st, processor, bench.Options{
		Threshold:      benchThreshold,
		ClaimThreshold: cfg.Match.ClaimThreshold,
		Workers:        benchConcurrency,
		Model:          benchModel,
	})

	ctx, cancel := context.WithTimeout(context.Background(), benchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "Evaluating %d documents with %s (%s), threshold %.2f\n\n",
		len(docs), benchProvider, benchModel, benchThreshold)

	summary, perDoc, err := runner.Run(ctx, docs)
	if err != nil {
		return err
	}

	printBenchSummary(summary, perDoc)
	return nil
}

func printBenchSummary(summary model.RunSummary, perDoc []model.DocumentMetrics) {
	fmt.Printf("\nRun %s (%s)\n", summary.RunID, summary.Model)
	fmt.Printf("Documents: %d (%d failed), threshold %.2f, took %s\n\n",
		summary.Documents, summary.Failures, summary.Threshold, summary.Duration)

	for _, d := range perDoc {
		if d.Error != "" {
			fmt.Printf("  %-6s %-30s ERROR: %s\n", d.TestCaseID, d.Filename, d.Error)
			continue
		}
		fmt.Printf("  %-6s %-30s gt=%d  candidates P=%.2f R=%.2f F1=%.2f  flagged P=%.2f R=%.2f F1=%.2f  coverage=%.2f\n",
			d.TestCaseID, d.Filename, d.GroundTruth,
			d.Candidates.Precision, d.Candidates.Recall, d.Candidates.F1,
			d.Flagged.Precision, d.Flagged.Recall, d.Flagged.F1,
			d.Coverage)
	}

	o := summary.Overall
	fmt.Printf("\nOverall (flagged stage): TP=%d FP=%d FN=%d  P=%.3f R=%.3f F1=%.3f\n",
		o.TruePositives, o.FalsePositives, o.FalseNegatives, o.Precision, o.Recall, o.F1)
}

func listRuns(st *store.BadgerStore) error {
	runs, err := st.Runs()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No previous runs found.")
		return nil
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].RunID > runs[j].RunID })

	for _, run := range runs {
		m := run.Overall
		fmt.Printf("%s  %s  %d docs  P=%.3f R=%.3f F1=%.3f\n",
			run.RunID, run.Model, run.Documents, m.Precision, m.Recall, m.F1)
	}
	return nil
}
