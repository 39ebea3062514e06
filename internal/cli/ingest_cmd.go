package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmertens/billsight/internal/importer"
)

func newIngestCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest FILE",
		Short: "Load a JSON batch of billables, invoices, unbilled items and cases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var stats importer.Stats
			var err error
			if args[0] == "-" {
				stats, err = app.Importer.Ingest(ctx, os.Stdin)
			} else {
				stats, err = app.Importer.IngestFile(ctx, args[0])
			}
			if err != nil {
				return err
			}

			fmt.Printf("Ingested %d billables, %d invoices, %d unbilled items, %d cases\n",
				stats.Billables, stats.Invoices, stats.Unbilled, stats.Cases)
			return nil
		},
	}
}
