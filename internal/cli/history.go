// internal/cli/history.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/law-makers/courtdata/internal/output"
	"github.com/law-makers/courtdata/pkg/models"
)

var (
	historyLimit int
	historyJSON  bool
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past case queries, newest first",
	Example: `  courtdata history
  courtdata history --limit 5 --json`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of entries to show")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print entries as JSON")
}

func runHistory(cmd *cobra.Command, args []string) error {
	a := GetApp()

	records, err := a.Store.History(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("reading query log: %w", err)
	}

	if historyJSON {
		for _, rec := range records {
			data, err := output.RenderJSON(&rec)
			if err != nil {
				return err
			}
			fmt.Println(string(data))
		}
		return nil
	}

	if len(records) == 0 {
		fmt.Println("No queries recorded yet.")
		return nil
	}

	for _, rec := range records {
		fmt.Printf("%-5d %s  %s %s/%d  %s\n",
			rec.ID,
			rec.Timestamp.Format("2006-01-02 15:04"),
			rec.Identity.CaseType, rec.Identity.CaseNumber, rec.Identity.FilingYear,
			summarize(rec))
	}
	return nil
}

func summarize(rec models.CaseRecord) string {
	if !rec.Success {
		return "failed: " + rec.ErrorMessage
	}
	s := rec.CaseStatus
	if rec.Provenance == models.ProvenancePlaceholder {
		s += " (placeholder)"
	}
	return s
}
