// internal/cli/document.go
package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/courtdata/pkg/models"
)

var (
	downloadDir string
	caseQueryID int64
)

// documentCmd represents the document command
var documentCmd = &cobra.Command{
	Use:   "document <url>",
	Short: "Download a court document (order or judgment PDF)",
	Long: `Document fetches one linked court document over HTTP, verifies that the
answer actually is a document rather than an HTML error page, and stores
it under the download directory. Every attempt is recorded in the query
log, linked to the case record it came from when --case-id is given.`,
	Example: `  # Download an order PDF discovered by a search
  courtdata document https://delhihighcourt.nic.in/orders/order-17.pdf

  # Link the download to its query log entry
  courtdata document https://delhihighcourt.nic.in/orders/order-17.pdf --case-id 12`,
	Args: cobra.ExactArgs(1),
	RunE: runDocument,
}

func init() {
	rootCmd.AddCommand(documentCmd)

	documentCmd.Flags().StringVarP(&downloadDir, "out", "o", "", "Directory to write the document into")
	documentCmd.Flags().Int64Var(&caseQueryID, "case-id", 0, "Query log id of the case this document belongs to")
}

func runDocument(cmd *cobra.Command, args []string) error {
	url := args[0]
	a := GetApp()

	dir := downloadDir
	if dir == "" {
		dir = a.Config.DownloadDir
	}

	a.Downloader.ShowProgress = true
	res, fetchErr := a.Downloader.FetchDocument(cmd.Context(), url)

	// Record the attempt either way; failed downloads are part of history.
	dl := &models.DownloadRecord{
		CaseQueryID: caseQueryID,
		URL:         url,
		Success:     fetchErr == nil,
		Timestamp:   time.Now(),
	}
	if res != nil {
		dl.FileSize = res.Size
	}
	if _, err := a.Store.InsertDownload(cmd.Context(), dl); err != nil {
		log.Warn().Err(err).Msg("Failed to record download attempt")
	}

	if fetchErr != nil {
		return fmt.Errorf("download failed: %w", fetchErr)
	}

	dest, err := a.Downloader.Save(dir, res)
	if err != nil {
		return err
	}

	fmt.Printf("Saved %s (%d bytes)\n", dest, res.Size)
	return nil
}
