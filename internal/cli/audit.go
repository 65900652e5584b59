package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/regsight/regsight/internal/checker"
	"github.com/regsight/regsight/internal/model"
)

var (
	auditRegistry string
	auditOut      string
	auditNoCache  bool
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit <pdf>",
	Short: "Audit a claim registry against its source document",
	Long: `Audit runs the deterministic registry checker: five audits
(structural, numerical, disclaimer, negation-integrity, contradiction)
against the raw page text of the source PDF. No model calls are made.

The report is advisory: a failing report is printed, not a non-zero exit.

Example:
  regsight audit brochure.pdf --registry registry.json
  regsight audit brochure.pdf --registry registry.json --json report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().StringVar(&auditRegistry, "registry", "", "registry artifact JSON (required)")
	auditCmd.Flags().StringVar(&auditOut, "json", "", "write the report to this path instead of stdout")
	auditCmd.Flags().BoolVar(&auditNoCache, "no-cache", false, "disable the page-text cache")
	_ = auditCmd.MarkFlagRequired("registry")
}

func runAudit(cmd *cobra.Command, args []string) error {
	pdfPath := args[0]

	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !auditNoCache
	cfg.Output.Verbose = verbose

	chk, err := checker.New(cfg.Checker)
	if err != nil {
		return fmt.Errorf("build checker: %w", err)
	}

	registryJSON, err := os.ReadFile(auditRegistry)
	if err != nil {
		return fmt.Errorf("read registry: %w", err)
	}

	var report model.CheckerReport
	pages, err := newExtractor(cfg).Pages(pdfPath)
	if err != nil {
		// Still produce a well-formed report
		report = chk.FailureReport(model.IssuePDFExtractError, err.Error())
	} else {
		if verbose {
			fmt.Fprintf(os.Stderr, "Extracted %d pages from %s\n", len(pages), pdfPath)
		}
		report = chk.CheckRegistryJSON(pages, string(registryJSON))
	}

	status := "PASSED"
	if !report.Passed {
		status = "WARNINGS"
	}
	fmt.Fprintf(os.Stderr, "%s - coverage %.3f, %d issues\n",
		status, report.CoverageScore, len(report.Issues))

	encoded, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if auditOut != "" {
		if err := os.WriteFile(auditOut, encoded, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote report: %s\n", auditOut)
		}
		return nil
	}

	fmt.Println(string(encoded))
	return nil
}
