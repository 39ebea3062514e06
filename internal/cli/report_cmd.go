package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmertens/billsight/internal/cli/formatter"
)

func newReportCmd(app *App) *cobra.Command {
	var flags reportFlags
	var events bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show a grouped billing summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("group-by") && stdinIsTerminal() {
				if err := flags.promptForOptions(); err != nil {
					return err
				}
			}

			opts, err := flags.options()
			if err != nil {
				return err
			}
			ctx := context.Background()

			if events {
				rows, err := app.Reports.Events(ctx, opts)
				if err != nil {
					return err
				}
				if len(rows) == 0 {
					fmt.Println("No events match.")
					return nil
				}
				fmt.Print(formatter.RenderEvents(rows))
				fmt.Println(formatter.Dim(formatter.Count(len(rows), "event")))
				return nil
			}

			report, err := app.Reports.Report(ctx, opts)
			if err != nil {
				return err
			}
			if len(report.Buckets) == 0 {
				fmt.Println("No events match.")
				return nil
			}

			fmt.Print(formatter.RenderBuckets(report.GroupBy, report.Buckets))
			fmt.Println()
			fmt.Print(formatter.RenderKPIs(report.Summary))
			fmt.Println(formatter.RenderProfile(report.Profile))
			return nil
		},
	}

	flags.register(cmd, app)
	cmd.Flags().BoolVar(&events, "events", false, "List matching events instead of grouped buckets")

	return cmd
}
