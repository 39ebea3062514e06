package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmertens/billsight/internal/cli/formatter"
)

func newKPICmd(app *App) *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "kpi",
		Short: "Show the global KPI rollup",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}

			summary, err := app.Reports.KPIs(context.Background(), opts)
			if err != nil {
				return err
			}

			fmt.Print(formatter.RenderKPIs(summary))
			return nil
		},
	}

	flags.register(cmd, app)

	return cmd
}
