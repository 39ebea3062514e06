package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmertens/billsight/internal/domain"
	"github.com/jmertens/billsight/internal/tablestate"
	"github.com/jmertens/billsight/internal/testutil"
)

func browseFixture(t *testing.T, n int) *browseModel {
	t.Helper()
	events := make([]domain.Event, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, testutil.NewEvent(
			string(rune('a'+i)), "Client "+string(rune('A'+i)), float64(i+1), 100))
	}
	accessor := tablestate.SliceAccessor(events, eventColumns(), eventDate)
	return newBrowseModel(accessor, 10)
}

// run executes a command synchronously and feeds the message back.
func run(t *testing.T, m *browseModel, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	_, _ = m.Update(cmd())
}

func keyPress(m *browseModel, s string) tea.Cmd {
	var msg tea.KeyMsg
	switch s {
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func TestBrowseModel_InitialLoad(t *testing.T) {
	m := browseFixture(t, 25)
	run(t, m, m.Init())

	assert.False(t, m.engine.Loading())
	assert.Equal(t, 25, m.engine.Total())
	assert.Len(t, m.engine.Rows(), 10)
	assert.Contains(t, m.View(), "page 1/3")
}

func TestBrowseModel_Paging(t *testing.T) {
	m := browseFixture(t, 25)
	run(t, m, m.Init())

	run(t, m, keyPress(m, "right"))
	assert.Equal(t, 2, m.engine.Page())

	run(t, m, keyPress(m, "left"))
	assert.Equal(t, 1, m.engine.Page())

	// Clamped at the first page.
	run(t, m, keyPress(m, "left"))
	assert.Equal(t, 1, m.engine.Page())
}

func TestBrowseModel_SortCycle(t *testing.T) {
	m := browseFixture(t, 5)
	run(t, m, m.Init())

	run(t, m, keyPress(m, "s"))
	spec := m.engine.Sort()
	require.NotNil(t, spec)
	assert.Equal(t, "date", spec.ColumnID)
	assert.False(t, spec.Descending)

	run(t, m, keyPress(m, "s"))
	assert.True(t, m.engine.Sort().Descending)

	run(t, m, keyPress(m, "s"))
	assert.Nil(t, m.engine.Sort())
}

func TestBrowseModel_ColumnFocusWraps(t *testing.T) {
	m := browseFixture(t, 5)
	run(t, m, m.Init())

	for range eventColumns() {
		keyPress(m, "tab")
	}
	assert.Equal(t, 0, m.col, "tab wraps back to the first column")
}

func TestBrowseModel_Selection(t *testing.T) {
	m := browseFixture(t, 5)
	run(t, m, m.Init())

	keyPress(m, " ")
	assert.Len(t, m.engine.SelectedKeys(), 1)

	keyPress(m, " ")
	assert.Empty(t, m.engine.SelectedKeys(), "toggling again deselects")

	keyPress(m, "a")
	assert.Len(t, m.engine.SelectedKeys(), 5)
	assert.Equal(t, tablestate.SelectAll, m.engine.PageSelection())

	keyPress(m, "a")
	assert.Empty(t, m.engine.SelectedKeys(), "page-select on a full page deselects it")

	keyPress(m, " ")
	keyPress(m, "c")
	assert.Empty(t, m.engine.SelectedKeys())
}

func TestBrowseModel_FilterFlow(t *testing.T) {
	m := browseFixture(t, 5)
	run(t, m, m.Init())

	keyPress(m, "tab") // focus the client column
	keyPress(m, "/")
	assert.True(t, m.filtering)

	keyPress(m, "A")
	cmd := keyPress(m, "enter")
	assert.False(t, m.filtering)
	run(t, m, cmd)

	assert.Equal(t, 1, m.engine.Total(), "only Client A matches")
	assert.Equal(t, "A", m.engine.Filters().Text["client"])
}

func TestBrowseModel_FilterEscapeCancels(t *testing.T) {
	m := browseFixture(t, 5)
	run(t, m, m.Init())

	keyPress(m, "/")
	keyPress(m, "x")
	keyPress(m, "esc")

	assert.False(t, m.filtering)
	assert.Equal(t, 5, m.engine.Total(), "no filter was applied")
}

func TestBrowseModel_StaleLoadDiscarded(t *testing.T) {
	m := browseFixture(t, 5)

	first := m.Init()
	second := m.fetch() // supersedes the first

	_, _ = m.Update(first())
	assert.True(t, m.engine.Loading(), "stale response leaves the newer fetch pending")

	_, _ = m.Update(second())
	assert.False(t, m.engine.Loading())
	assert.Equal(t, 5, m.engine.Total())
}
