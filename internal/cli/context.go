// Package cli provides the command-line interface for the courtdata application.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/law-makers/courtdata/internal/app"
)

// SetApp stores the Application for commands to retrieve
func SetApp(cmd *cobra.Command, a *app.Application) {
	globalApp = a
}

// GetApp retrieves the Application
func GetApp() *app.Application {
	return globalApp
}

var globalApp *app.Application
