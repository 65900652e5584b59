package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/regsight/regsight/internal/model"
	"github.com/regsight/regsight/internal/pipeline"
)

var (
	runProvider  string
	runModel     string
	runOutputDir string
	runTimeout   time.Duration
	runNoCache   bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <pdf>",
	Short: "Run the full extraction pipeline on one document",
	Long: `Run executes all five phases for a document: preliminary
extraction, evidence registry, deterministic checker, detection and
validation. The five artifacts are written to the output directory.

A failed phase degrades to its empty-default artifact; the run always
completes and always leaves auditable output behind.

Example:
  regsight run brochure.pdf --llm-provider anthropic --llm-model claude-sonnet-4-20250514
  regsight run brochure.pdf --llm-provider ollama --llm-model llama3 --output-dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runProvider, "llm-provider", "anthropic", "LLM provider (openai, anthropic, ollama)")
	runCmd.Flags().StringVar(&runModel, "llm-model", "", "LLM model name (required)")
	runCmd.Flags().StringVar(&runOutputDir, "output-dir", "./regsight-output", "directory for the phase artifacts")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 15*time.Minute, "overall pipeline timeout")
	runCmd.Flags().BoolVar(&runNoCache, "no-cache", false, "disable the page-text cache")
	_ = runCmd.MarkFlagRequired("llm-model")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	pdfPath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !runNoCache
	cfg.Output.Dir = runOutputDir
	cfg.Output.Verbose = verbose
	if err := applyLLMFlags(cfg, runProvider, runModel); err != nil {
		return err
	}

	provider, err := newProvider(cfg)
	if err != nil {
		return fmt.Errorf("configure provider: %w", err)
	}

	pipe, err := pipeline.New(cfg, provider, newExtractor(cfg))
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Document: %s\n", pdfPath)
		fmt.Fprintf(os.Stderr, "Provider: %s (%s)\n", runProvider, runModel)
		fmt.Fprintln(os.Stderr)
	}

	state, err := pipe.Run(ctx, pdfPath)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	if err := pipe.WriteArtifacts(state, runOutputDir); err != nil {
		return fmt.Errorf("write artifacts: %w", err)
	}
	pipe.PrintSummary(state)
	fmt.Fprintf(os.Stderr, "Outputs saved to %s/\n", runOutputDir)

	return nil
}
