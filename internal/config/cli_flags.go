package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().Bool("json-log", false, "Emit logs as JSON instead of console output")
	cmd.PersistentFlags().String("search-url", "", "Court case-status search page URL")
	cmd.PersistentFlags().String("db", "", "Path to the SQLite query log")
	cmd.PersistentFlags().String("proxy", "", "Set HTTP/SOCKS5 proxy (e.g., http://localhost:8080)")
	cmd.PersistentFlags().String("timeout", "", "Hard timeout for one browser session (e.g., 60s)")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
	cmd.PersistentFlags().Bool("no-headless", false, "Run the browser with a visible window")
	cmd.PersistentFlags().Bool("no-placeholder", false, "Fail outright instead of serving placeholder data")
}
