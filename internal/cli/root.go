// Package cli wires the cobra command tree and the interactive browse
// view over the report services.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/jmertens/billsight/internal/importer"
	"github.com/jmertens/billsight/internal/service"
)

// App holds references to the services used by CLI commands.
type App struct {
	Reports  service.ReportService
	Importer *importer.Service

	// Report defaults, typically sourced from config.
	DefaultGroupBy string
	PageSize       int
}

// NewRootCmd creates the top-level "billsight" command and registers
// all subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "billsight",
		Short: "Billing analytics over raw time-entry exports",
	}

	root.AddCommand(
		newIngestCmd(app),
		newReportCmd(app),
		newKPICmd(app),
		newBrowseCmd(app),
	)

	return root
}
