package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/regsight/regsight/internal/artifact"
	"github.com/regsight/regsight/internal/match"
	"github.com/regsight/regsight/internal/model"
)

var (
	matchClaims    string
	matchTruth     string
	matchThreshold float64
)

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match registry claims against ground truth (offline)",
	Long: `Match aligns registry claims with expert ground-truth sentences
using fuzzy similarity and prints the coverage result. Works entirely
from files; no store, no model calls.

Example:
  regsight match --claims registry.json --ground-truth tc04.json
  regsight match --claims registry.json --ground-truth tc04.json --threshold 0.6`,
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringVar(&matchClaims, "claims", "", "registry artifact JSON (required)")
	matchCmd.Flags().StringVar(&matchTruth, "ground-truth", "", "ground-truth JSON (required)")
	matchCmd.Flags().Float64Var(&matchThreshold, "threshold", 0.45, "similarity threshold for a match")
	_ = matchCmd.MarkFlagRequired("claims")
	_ = matchCmd.MarkFlagRequired("ground-truth")
}

func runMatch(cmd *cobra.Command, args []string) error {
	registryJSON, err := os.ReadFile(matchClaims)
	if err != nil {
		return fmt.Errorf("read claims: %w", err)
	}
	reg, err := artifact.ParseRegistry(string(registryJSON))
	if err != nil {
		return err
	}

	truth, err := loadGroundTruthFile(matchTruth)
	if err != nil {
		return err
	}

	matcher := match.NewMatcher(matchThreshold)
	result := matcher.MatchClaims(reg.Claims, truth)

	fmt.Fprintf(os.Stderr, "coverage %.3f: matched %d/%d ground truth, %d claims unmatched\n",
		result.Coverage, len(result.Pairs), len(truth), len(result.UnmatchedLeft))

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}

// loadGroundTruthFile reads entries from a JSON file, accepting either a
// bare array or a wrapped {"entries": [...]} object
func loadGroundTruthFile(path string) ([]model.GroundTruthEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ground truth: %w", err)
	}

	var entries []model.GroundTruthEntry
	if err := json.Unmarshal(data, &entries); err == nil {
		return entries, nil
	}

	var wrapped struct {
		Entries []model.GroundTruthEntry `json:"entries"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parse ground truth %s: %w", path, err)
	}
	return wrapped.Entries, nil
}
