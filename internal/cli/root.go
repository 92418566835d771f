// internal/cli/root.go
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/law-makers/courtdata/internal/app"
	"github.com/law-makers/courtdata/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "courtdata",
	Short: "Fetch Delhi High Court case records from the command line",
	Long: `Courtdata retrieves case metadata and linked documents from the Delhi
High Court's public case-status search. Results are kept in a local
append-only query log, so repeated lookups within the freshness window
are answered without touching the court site.`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)

	// PersistentPostRun is skipped when a command returns an error, so the
	// app is closed here too before the process exits.
	closeApp()

	if err != nil {
		os.Exit(1)
	}
}

func closeApp() {
	a := GetApp()
	if a == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), a.Config.HTTPTimeout)
	defer cancel()
	_ = a.Close(ctx)
	SetApp(rootCmd, nil)
}

func init() {
	config.RegisterFlags(rootCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Lazily initialize the application before running commands (avoid starting app for -h/help)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetApp() != nil {
			return nil
		}

		cfg, err := config.Load(rootCmd)
		if err != nil {
			return err
		}

		a, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		SetApp(cmd, a)
		return nil
	}

	// Ensure app is closed after command runs
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		closeApp()
	}
}
