package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmertens/billsight/internal/cli/formatter"
	"github.com/jmertens/billsight/internal/domain"
	"github.com/jmertens/billsight/internal/tablestate"
)

func eventDate(e domain.Event) *time.Time { return e.Date }

// eventColumns declares the browse table layout. Column IDs double as
// filter keys.
func eventColumns() []tablestate.Column[domain.Event] {
	return []tablestate.Column[domain.Event]{
		{ID: "date", Header: "Date", Value: func(e domain.Event) any { return e.Date }, Sortable: true},
		{ID: "client", Header: "Client", Value: func(e domain.Event) any { return e.Client }, Sortable: true},
		{ID: "case", Header: "Case", Value: func(e domain.Event) any { return e.Case }, Sortable: true},
		{ID: "user", Header: "User", Value: func(e domain.Event) any { return e.User }, Sortable: true},
		{ID: "hours", Header: "Hours", Value: func(e domain.Event) any { return e.Hours }, Sortable: true, Numeric: true, Align: tablestate.AlignRight},
		{ID: "rate", Header: "Rate", Value: func(e domain.Event) any { return e.Rate }, Sortable: true, Numeric: true, Align: tablestate.AlignRight},
		{ID: "revenue", Header: "Revenue", Value: func(e domain.Event) any { return e.Revenue }, Sortable: true, Numeric: true, Align: tablestate.AlignRight},
		{ID: "status", Header: "Status", Value: func(e domain.Event) any { return e.CaseStatus }, Sortable: true},
	}
}

// rowsLoadedMsg delivers one completed fetch back to the model.
type rowsLoadedMsg struct {
	token uint64
	res   tablestate.Result[domain.Event]
	err   error
}

type browseKeyMap struct {
	PrevPage   key.Binding
	NextPage   key.Binding
	PrevCol    key.Binding
	NextCol    key.Binding
	CursorUp   key.Binding
	CursorDown key.Binding
	Sort       key.Binding
	Filter     key.Binding
	Toggle     key.Binding
	SelectPage key.Binding
	ClearSel   key.Binding
	Quit       key.Binding
}

func defaultBrowseKeys() browseKeyMap {
	return browseKeyMap{
		PrevPage:   key.NewBinding(key.WithKeys("left", "h")),
		NextPage:   key.NewBinding(key.WithKeys("right", "l")),
		PrevCol:    key.NewBinding(key.WithKeys("shift+tab")),
		NextCol:    key.NewBinding(key.WithKeys("tab")),
		CursorUp:   key.NewBinding(key.WithKeys("up", "k")),
		CursorDown: key.NewBinding(key.WithKeys("down", "j")),
		Sort:       key.NewBinding(key.WithKeys("s")),
		Filter:     key.NewBinding(key.WithKeys("/")),
		Toggle:     key.NewBinding(key.WithKeys(" ")),
		SelectPage: key.NewBinding(key.WithKeys("a")),
		ClearSel:   key.NewBinding(key.WithKeys("c")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c")),
	}
}

// browseModel is the interactive event table. All table semantics live
// in the engine; the model only translates key presses and paints.
type browseModel struct {
	engine   *tablestate.Engine[domain.Event]
	accessor tablestate.Accessor[domain.Event]
	keys     browseKeyMap

	col    int // focused column index
	cursor int // focused row index within the current page

	filtering   bool
	filterInput textinput.Model
}

func newBrowseModel(accessor tablestate.Accessor[domain.Event], pageSize int) *browseModel {
	cols := eventColumns()
	engine := tablestate.New(cols, func(e domain.Event) string { return e.ID },
		tablestate.WithPageSize[domain.Event](pageSize),
		tablestate.WithDateColumn(eventDate),
	)
	engine.SetAccessor(accessor)

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.CharLimit = 64

	return &browseModel{
		engine:      engine,
		accessor:    accessor,
		keys:        defaultBrowseKeys(),
		filterInput: ti,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return m.fetch()
}

// fetch snapshots the current query under a fresh token and loads it in
// the background. Stale responses are dropped by Finish.
func (m *browseModel) fetch() tea.Cmd {
	q, token := m.engine.Begin()
	return func() tea.Msg {
		res, err := m.accessor(context.Background(), q)
		return rowsLoadedMsg{token: token, res: res, err: err}
	}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case rowsLoadedMsg:
		if m.engine.Finish(msg.token, msg.res, msg.err) {
			m.clampCursor()
		}
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *browseModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.engine.SetTextFilter(m.focusedColumn().ID, m.filterInput.Value())
		m.filterInput.Blur()
		return m, m.fetch()
	case "esc":
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m *browseModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.PrevPage):
		m.engine.SetPage(m.engine.Page() - 1)
		return m, m.fetch()

	case key.Matches(msg, m.keys.NextPage):
		m.engine.SetPage(m.engine.Page() + 1)
		return m, m.fetch()

	case key.Matches(msg, m.keys.PrevCol):
		m.col = (m.col + len(m.engine.Columns()) - 1) % len(m.engine.Columns())
		return m, nil

	case key.Matches(msg, m.keys.NextCol):
		m.col = (m.col + 1) % len(m.engine.Columns())
		return m, nil

	case key.Matches(msg, m.keys.CursorUp):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.CursorDown):
		if m.cursor < len(m.engine.Rows())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Sort):
		m.engine.CycleSort(m.focusedColumn().ID)
		return m, m.fetch()

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filterInput.SetValue(m.engine.Filters().Text[m.focusedColumn().ID])
		m.filterInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Toggle):
		if row, ok := m.cursorRow(); ok {
			m.engine.ToggleSelect(row.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.SelectPage):
		if m.engine.PageSelection() == tablestate.SelectAll {
			m.engine.DeselectPage()
		} else {
			m.engine.SelectPage()
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearSel):
		m.engine.ClearSelection()
		return m, nil
	}
	return m, nil
}

func (m *browseModel) focusedColumn() tablestate.Column[domain.Event] {
	return m.engine.Columns()[m.col]
}

func (m *browseModel) cursorRow() (domain.Event, bool) {
	rows := m.engine.Rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return domain.Event{}, false
	}
	return rows[m.cursor], true
}

func (m *browseModel) clampCursor() {
	if n := len(m.engine.Rows()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *browseModel) View() string {
	var b strings.Builder

	b.WriteString(formatter.Header("events"))
	b.WriteString("\n\n")

	b.WriteString(m.renderTable())
	b.WriteString("\n")

	if m.filtering {
		b.WriteString(m.filterInput.View())
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *browseModel) renderTable() string {
	cols := m.engine.Columns()

	headers := make([]string, 0, len(cols)+1)
	aligns := make([]formatter.Align, 0, len(cols)+1)
	headers = append(headers, " ")
	aligns = append(aligns, formatter.AlignLeft)
	for i, c := range cols {
		headers = append(headers, m.headerLabel(c, i))
		if c.Align == tablestate.AlignRight {
			aligns = append(aligns, formatter.AlignRight)
		} else {
			aligns = append(aligns, formatter.AlignLeft)
		}
	}

	rows := make([][]string, 0, len(m.engine.Rows()))
	for i, e := range m.engine.Rows() {
		marker := " "
		if m.engine.IsSelected(e.ID) {
			marker = formatter.StyleGreen.Render("✓")
		}
		if i == m.cursor {
			marker = formatter.StyleHeader.Render("›") + marker
		}
		rows = append(rows, []string{
			marker,
			formatter.Day(e.Date),
			e.Client,
			e.Case,
			e.User,
			formatter.Hours(e.Hours),
			formatter.Rate(e.Rate),
			formatter.Money(e.Revenue),
			formatter.CaseStatusPill(e.CaseStatus),
		})
	}

	return formatter.RenderAlignedTable(headers, rows, aligns)
}

// headerLabel marks the focused column and the active sort direction.
func (m *browseModel) headerLabel(c tablestate.Column[domain.Event], idx int) string {
	label := c.Header
	if spec := m.engine.Sort(); spec != nil && spec.ColumnID == c.ID {
		if spec.Descending {
			label += " ▼"
		} else {
			label += " ▲"
		}
	}
	if idx == m.col {
		return "[" + label + "]"
	}
	return label
}

func (m *browseModel) renderFooter() string {
	parts := []string{
		fmt.Sprintf("page %d/%d", m.engine.Page(), m.engine.TotalPages()),
		formatter.Count(m.engine.Total(), "event"),
	}
	if n := len(m.engine.SelectedKeys()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	if m.engine.Loading() {
		parts = append(parts, "loading…")
	}
	if msg := m.engine.Err(); msg != "" {
		parts = append(parts, formatter.StyleRed.Render(msg))
	}

	help := formatter.Dim("←/→ page · tab column · s sort · / filter · space select · a page-select · c clear · q quit")
	return formatter.Dim(strings.Join(parts, " · ")) + "\n" + help
}
