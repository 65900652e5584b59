package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/regsight/regsight/internal/model"
	"github.com/regsight/regsight/internal/store"
)

var (
	gtStorePath string
	gtTestCase  string
	gtActivate  bool
)

// gtCmd represents the gt command group
var gtCmd = &cobra.Command{
	Use:   "gt",
	Short: "Manage the ground-truth store",
	Long: `Import and inspect expert-labeled ground truth. Entries are
keyed by (test_case_id, entry_id); benchmark runs read only the active
entries of each test case.`,
}

var gtImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import ground-truth entries from a JSON file",
	Long: `Import upserts entries into the store. The file holds either a
bare array of entries or a wrapped {"entries": [...]} object.

Example:
  regsight gt import tc04.json --store ./gt-store
  regsight gt import all_cases.json --store ./gt-store --activate`,
	Args: cobra.ExactArgs(1),
	RunE: runGTImport,
}

var gtListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored ground-truth entries",
	Long: `List the stored entries, optionally restricted to one test
case (active entries only in that case).

Example:
  regsight gt list --store ./gt-store
  regsight gt list --store ./gt-store --test-case TC04`,
	RunE: runGTList,
}

func init() {
	rootCmd.AddCommand(gtCmd)
	gtCmd.AddCommand(gtImportCmd)
	gtCmd.AddCommand(gtListCmd)

	gtCmd.PersistentFlags().StringVar(&gtStorePath, "store", defaultStorePath(), "store directory")
	gtImportCmd.Flags().BoolVar(&gtActivate, "activate", false, "mark imported entries active")
	gtListCmd.Flags().StringVar(&gtTestCase, "test-case", "", "restrict to one test case (active entries only)")
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./regsight-store"
	}
	return filepath.Join(home, ".regsight", "store")
}

func runGTImport(cmd *cobra.Command, args []string) error {
	entries, err := loadGroundTruthFile(args[0])
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no entries in %s", args[0])
	}

	if gtActivate {
		for i := range entries {
			entries[i].IsActive = true
		}
	}

	st, err := store.Open(gtStorePath)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.PutGroundTruth(entries); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ Imported %d entries into %s\n", len(entries), gtStorePath)
	return nil
}

func runGTList(cmd *cobra.Command, args []string) error {
	st, err := store.Open(gtStorePath)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := listEntries(st)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No ground-truth entries found.")
		return nil
	}

	for _, e := range entries {
		active := " "
		if e.IsActive {
			active = "*"
		}
		sentence := e.Sentence
		if len(sentence) > 80 {
			sentence = sentence[:77] + "..."
		}
		fmt.Printf("%s %-6s %-12s %s\n", active, e.TestCaseID, e.EntryID, sentence)
	}
	fmt.Fprintf(os.Stderr, "\n%d entries (* = active)\n", len(entries))
	return nil
}

func listEntries(st store.Store) ([]model.GroundTruthEntry, error) {
	if gtTestCase != "" {
		return st.ActiveGroundTruth(gtTestCase)
	}
	return st.AllGroundTruth()
}
