package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jmertens/billsight/internal/aggregate"
	"github.com/jmertens/billsight/internal/cli/formatter"
	"github.com/jmertens/billsight/internal/domain"
)

// reportFlags carries the raw flag values shared by report, kpi and
// browse.
type reportFlags struct {
	groupBy        string
	roles          []string
	excludeInterns bool
	from           string
	to             string
	caseStatus     string
}

func (f *reportFlags) register(cmd *cobra.Command, app *App) {
	cmd.Flags().StringVar(&f.groupBy, "group-by", app.DefaultGroupBy, "Grouping key (date|client|case|user|caseType)")
	cmd.Flags().StringSliceVar(&f.roles, "role", nil, "Role substrings to include (repeatable)")
	cmd.Flags().BoolVar(&f.excludeInterns, "exclude-interns", false, "Exclude intern rows")
	cmd.Flags().StringVar(&f.from, "from", "", "Start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&f.to, "to", "", "End date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&f.caseStatus, "case-status", aggregate.CaseStatusAll, "Exact case status to include")
}

// options converts the flags to report options, validating the dates.
func (f *reportFlags) options() (aggregate.Options, error) {
	opts := aggregate.Options{
		GroupBy:        domain.ParseGroupKey(f.groupBy),
		RoleFilter:     f.roles,
		ExcludeInterns: f.excludeInterns,
		CaseStatus:     f.caseStatus,
	}

	var err error
	if opts.From, err = parseOptionalDate(f.from); err != nil {
		return opts, fmt.Errorf("invalid --from date %q: %w", f.from, err)
	}
	if opts.To, err = parseOptionalDate(f.to); err != nil {
		return opts, fmt.Errorf("invalid --to date %q: %w", f.to, err)
	}
	return opts, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// stdinIsTerminal reports whether interactive prompts make sense.
func stdinIsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// promptForOptions runs the interactive report form, seeding it with
// the current flag values. Used when no grouping was chosen explicitly
// and stdin is a terminal.
func (f *reportFlags) promptForOptions() error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Group by").
				Options(
					huh.NewOption("Date", "date"),
					huh.NewOption("Client", "client"),
					huh.NewOption("Case", "case"),
					huh.NewOption("User", "user"),
					huh.NewOption("Case type", "caseType"),
				).
				Value(&f.groupBy),
			huh.NewInput().
				Title("From (YYYY-MM-DD, blank for none)").
				Placeholder("2026-01-01").
				Value(&f.from).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("To (YYYY-MM-DD, blank for none)").
				Placeholder("2026-12-31").
				Value(&f.to).
				Validate(validateOptionalDate),
			huh.NewConfirm().
				Title("Exclude interns?").
				Value(&f.excludeInterns),
		),
	).WithTheme(billsightHuhTheme()).WithShowHelp(false)

	return form.Run()
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

func billsightHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}
