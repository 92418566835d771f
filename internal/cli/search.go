// internal/cli/search.go
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/courtdata/internal/config"
	"github.com/law-makers/courtdata/internal/output"
	"github.com/law-makers/courtdata/pkg/models"
)

var (
	caseType     string
	caseNumber   string
	filingYear   int
	saveMarkdown string
	jsonOutput   bool
)

// errCaseLookupFailed signals a failed retrieval so Execute exits non-zero
// after the app has been closed. os.Exit here would skip shutdown.
var errCaseLookupFailed = errors.New("case lookup failed")

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Look up a case by type, number and filing year",
	Long: `Search runs the court's case-status form for one case identity and
prints the extracted record. A fresh result from an earlier run is served
from the local query log without contacting the site.`,
	SilenceUsage: true,
	Example: `  # Look up a writ petition
  courtdata search --case-type "W.P.(C)" --case-number 1234 --year 2019

  # Machine-readable output
  courtdata search --case-type "CRL.A." --case-number 77 --year 2021 --json

  # Keep a markdown transcript of the result page
  courtdata search --case-type "W.P.(C)" --case-number 1234 --year 2019 --save-markdown case.md`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&caseType, "case-type", "", "Case type code, e.g. W.P.(C) or CRL.A.")
	searchCmd.Flags().StringVar(&caseNumber, "case-number", "", "Case number as printed on filings")
	searchCmd.Flags().IntVar(&filingYear, "year", 0, "Filing year")
	searchCmd.Flags().StringVar(&saveMarkdown, "save-markdown", "", "Write a markdown transcript to this path")
	searchCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the record as JSON")
	searchCmd.MarkFlagRequired("case-type")
	searchCmd.MarkFlagRequired("case-number")
	searchCmd.MarkFlagRequired("year")
}

func runSearch(cmd *cobra.Command, args []string) error {
	caseType = strings.TrimSpace(caseType)
	caseNumber = strings.TrimSpace(caseNumber)
	if caseType == "" || caseNumber == "" {
		return fmt.Errorf("case type and case number must not be empty")
	}
	if err := config.ValidateFilingYear(filingYear); err != nil {
		return err
	}

	a := GetApp()
	identity := models.CaseIdentity{CaseType: caseType, CaseNumber: caseNumber, FilingYear: filingYear}

	log.Info().
		Str("case_type", identity.CaseType).
		Str("case_number", identity.CaseNumber).
		Int("filing_year", identity.FilingYear).
		Msg("Searching case")

	rec, err := a.Orchestrator.Retrieve(cmd.Context(), identity)
	if err != nil {
		return fmt.Errorf("retrieval aborted: %w", err)
	}

	if saveMarkdown != "" && rec.Success {
		if err := output.SaveMarkdown(rec, a.Config.BaseURL, saveMarkdown); err != nil {
			return fmt.Errorf("saving markdown transcript: %w", err)
		}
		log.Info().Str("file", saveMarkdown).Msg("Transcript saved")
	}

	if jsonOutput {
		data, err := output.RenderJSON(rec)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		if !rec.Success {
			return errCaseLookupFailed
		}
		return nil
	}

	printRecord(rec)
	if !rec.Success {
		return errCaseLookupFailed
	}
	return nil
}

func printRecord(rec *models.CaseRecord) {
	fmt.Printf("\n")
	fmt.Printf("Case:          %s %s/%d\n", rec.Identity.CaseType, rec.Identity.CaseNumber, rec.Identity.FilingYear)
	if !rec.Success {
		fmt.Printf("Result:        FAILED\n")
		fmt.Printf("Error:         %s\n", rec.ErrorMessage)
		return
	}
	if rec.Provenance == models.ProvenancePlaceholder {
		fmt.Printf("Result:        OK (placeholder data, live site unavailable)\n")
	} else {
		fmt.Printf("Result:        OK\n")
	}
	fmt.Printf("Parties:       %s\n", rec.PartiesSummary)
	fmt.Printf("Filing date:   %s\n", rec.FilingDate)
	fmt.Printf("Next hearing:  %s\n", rec.NextHearingDate)
	fmt.Printf("Status:        %s\n", rec.CaseStatus)

	if len(rec.DocumentLinks) > 0 {
		fmt.Printf("\nDocuments:\n")
		for _, link := range rec.DocumentLinks {
			fmt.Printf("  %-20s %s\n", link.Label, link.URL)
		}
	}
	if rec.ID != 0 {
		fmt.Printf("\nQuery log id:  %d\n", rec.ID)
	}
}
