package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jmertens/billsight/internal/aggregate"
	"github.com/jmertens/billsight/internal/domain"
	"github.com/jmertens/billsight/internal/tablestate"
)

func newBrowseCmd(app *App) *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse events interactively with sorting, filtering and selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !stdinIsTerminal() {
				return fmt.Errorf("browse requires an interactive terminal")
			}

			opts, err := flags.options()
			if err != nil {
				return err
			}

			model := newBrowseModel(eventAccessor(app, opts), app.PageSize)
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}

	flags.register(cmd, app)

	return cmd
}

// eventAccessor loads the visible events through the report service and
// applies the table query locally. The engine drives it through
// Begin/Finish, so a slow load never blocks the UI and a superseded one
// is discarded.
func eventAccessor(app *App, opts aggregate.Options) tablestate.Accessor[domain.Event] {
	cols := eventColumns()
	return func(ctx context.Context, q tablestate.Query) (tablestate.Result[domain.Event], error) {
		events, err := app.Reports.Events(ctx, opts)
		if err != nil {
			return tablestate.Result[domain.Event]{}, err
		}
		return tablestate.ApplyQuery(events, q, cols, eventDate), nil
	}
}
