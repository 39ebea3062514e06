package tablestate

import (
	"context"
	"sort"
	"time"
)

const DefaultPageSize = 10

// Engine owns the presentation state for one table instance: page
// window, sort spec, filters and selection. State lives for one view
// mount and is discarded with it; nothing here is shared or persisted.
//
// The engine is synchronous. An async accessor is driven by the caller
// through Begin/Finish; a fetch in flight shows as loading with no
// partial results, and a stale fetch resolving after a newer one was
// issued is discarded entirely.
type Engine[T any] struct {
	columns []Column[T]
	rowKey  func(T) string
	dateOf  func(T) *time.Time

	accessor Accessor[T]
	fixed    []T
	hasFixed bool

	page     int
	pageSize int
	sortSpec *SortSpec
	filters  Filters
	selected map[string]struct{}

	rows    []T
	total   int
	loading bool
	errMsg  string
	token   uint64
}

type Option[T any] func(*Engine[T])

// WithPageSize overrides the default page size.
func WithPageSize[T any](n int) Option[T] {
	return func(e *Engine[T]) {
		if n > 0 {
			e.pageSize = n
		}
	}
}

// WithDateColumn supplies the row date used by the date-range filter.
func WithDateColumn[T any](fn func(T) *time.Time) Option[T] {
	return func(e *Engine[T]) { e.dateOf = fn }
}

// New builds an engine over the given columns. rowKey is the stable
// row identity used for selection tracking across sorts, filters and
// pagination.
func New[T any](columns []Column[T], rowKey func(T) string, opts ...Option[T]) *Engine[T] {
	e := &Engine[T]{
		columns:  columns,
		rowKey:   rowKey,
		page:     1,
		pageSize: DefaultPageSize,
		selected: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetRows points the engine at a fixed, fully-materialized row set.
// The page resets to 1; selections survive only for keys still present
// in the new set.
func (e *Engine[T]) SetRows(rows []T) {
	e.fixed = rows
	e.hasFixed = true
	e.accessor = nil
	e.page = 1
	e.errMsg = ""
	e.pruneSelection(rows)
	e.recompute()
}

// SetAccessor points the engine at a remote page accessor. The page
// resets to 1. No fetch happens here; drive one via Refresh or
// Begin/Finish.
func (e *Engine[T]) SetAccessor(fn Accessor[T]) {
	e.accessor = fn
	e.hasFixed = false
	e.fixed = nil
	e.page = 1
	e.rows = nil
	e.total = 0
}

// Columns returns the column descriptors for renderers.
func (e *Engine[T]) Columns() []Column[T] { return e.columns }

// Rows returns the current page window.
func (e *Engine[T]) Rows() []T { return e.rows }

// Total is the filtered, pre-pagination row count.
func (e *Engine[T]) Total() int { return e.total }

func (e *Engine[T]) Page() int     { return e.page }
func (e *Engine[T]) PageSize() int { return e.pageSize }

// TotalPages is at least 1 even for an empty set.
func (e *Engine[T]) TotalPages() int {
	if e.total == 0 {
		return 1
	}
	return (e.total + e.pageSize - 1) / e.pageSize
}

func (e *Engine[T]) Loading() bool { return e.loading }

// Err is the single propagated accessor error message, empty when the
// last load succeeded. Rows from the previous successful load stay
// visible alongside it.
func (e *Engine[T]) Err() string { return e.errMsg }

// Sort returns a copy of the active sort spec, or nil when unsorted.
func (e *Engine[T]) Sort() *SortSpec {
	if e.sortSpec == nil {
		return nil
	}
	s := *e.sortSpec
	return &s
}

// CycleSort advances the named column through the three-state cycle
// unsorted -> ascending -> descending -> unsorted. Cycling one column
// drops any sort on another. Non-sortable columns are ignored.
func (e *Engine[T]) CycleSort(columnID string) {
	col, ok := e.column(columnID)
	if !ok || !col.Sortable {
		return
	}
	switch {
	case e.sortSpec == nil || e.sortSpec.ColumnID != columnID:
		e.sortSpec = &SortSpec{ColumnID: columnID}
	case !e.sortSpec.Descending:
		e.sortSpec.Descending = true
	default:
		e.sortSpec = nil
	}
	e.recompute()
}

// SetPage clamps into [1, TotalPages] for the fixed source; remote
// sources are clamped optimistically against the last known total.
func (e *Engine[T]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	if max := e.TotalPages(); page > max {
		page = max
	}
	e.page = page
	e.recompute()
}

// SetPageSize resets the page to 1.
func (e *Engine[T]) SetPageSize(n int) {
	if n <= 0 {
		return
	}
	e.pageSize = n
	e.page = 1
	e.recompute()
}

// SetTextFilter sets or clears (empty query) one field filter and
// resets the page to 1.
func (e *Engine[T]) SetTextFilter(columnID, query string) {
	if e.filters.Text == nil {
		e.filters.Text = make(map[string]string)
	}
	if query == "" {
		delete(e.filters.Text, columnID)
	} else {
		e.filters.Text[columnID] = query
	}
	e.page = 1
	e.recompute()
}

// SetDateRange sets the inclusive date-range filter and resets the
// page to 1. Either bound may be nil.
func (e *Engine[T]) SetDateRange(from, to *time.Time) {
	e.filters.From = from
	e.filters.To = to
	e.page = 1
	e.recompute()
}

// Filters returns a copy of the active filters.
func (e *Engine[T]) Filters() Filters { return e.filters.clone() }

// Query snapshots the current window specification, e.g. to hand to an
// accessor.
func (e *Engine[T]) Query() Query {
	return Query{
		Page:     e.page,
		PageSize: e.pageSize,
		Sort:     e.Sort(),
		Filters:  e.filters.clone(),
	}
}

// Begin marks a remote fetch as started and returns the query plus the
// request token that Finish must present. Issuing a new Begin
// invalidates every earlier token: last request wins.
func (e *Engine[T]) Begin() (Query, uint64) {
	e.token++
	e.loading = true
	return e.Query(), e.token
}

// Finish applies a fetch result if its token is still current and
// reports whether it was applied. A failure keeps the previous rows
// visible and surfaces exactly one error message; the engine never
// retries on its own.
func (e *Engine[T]) Finish(token uint64, res Result[T], err error) bool {
	if token != e.token {
		return false // stale response, discard entirely
	}
	e.loading = false
	if err != nil {
		e.errMsg = err.Error()
		return true
	}
	e.errMsg = ""
	e.rows = res.Rows
	e.total = res.Total
	return true
}

// Refresh performs one synchronous load through the accessor. Fixed
// sources recompute locally and never fail.
func (e *Engine[T]) Refresh(ctx context.Context) {
	if e.hasFixed {
		e.recompute()
		return
	}
	if e.accessor == nil {
		return
	}
	q, token := e.Begin()
	res, err := e.accessor(ctx, q)
	e.Finish(token, res, err)
}

// --- selection ---

// IsSelected reports whether the row key is selected.
func (e *Engine[T]) IsSelected(key string) bool {
	_, ok := e.selected[key]
	return ok
}

// ToggleSelect flips one row's selection by key.
func (e *Engine[T]) ToggleSelect(key string) {
	if _, ok := e.selected[key]; ok {
		delete(e.selected, key)
	} else {
		e.selected[key] = struct{}{}
	}
}

// SelectPage selects every row on the current page. Select-all is
// page-scoped by design, never global.
func (e *Engine[T]) SelectPage() {
	for _, row := range e.rows {
		e.selected[e.rowKey(row)] = struct{}{}
	}
}

// DeselectPage clears selection for the current page's rows only.
func (e *Engine[T]) DeselectPage() {
	for _, row := range e.rows {
		delete(e.selected, e.rowKey(row))
	}
}

// ClearSelection drops every selected key.
func (e *Engine[T]) ClearSelection() {
	e.selected = make(map[string]struct{})
}

// SelectedKeys returns the selected row keys in sorted order.
func (e *Engine[T]) SelectedKeys() []string {
	keys := make([]string, 0, len(e.selected))
	for k := range e.selected {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type TriState int

const (
	SelectNone TriState = iota
	SelectSome
	SelectAll
)

// PageSelection derives the select-all checkbox state for the current
// page: All only when every visible row is selected.
func (e *Engine[T]) PageSelection() TriState {
	if len(e.rows) == 0 {
		return SelectNone
	}
	n := 0
	for _, row := range e.rows {
		if e.IsSelected(e.rowKey(row)) {
			n++
		}
	}
	switch n {
	case 0:
		return SelectNone
	case len(e.rows):
		return SelectAll
	default:
		return SelectSome
	}
}

func (e *Engine[T]) pruneSelection(rows []T) {
	present := make(map[string]bool, len(rows))
	for _, row := range rows {
		present[e.rowKey(row)] = true
	}
	for k := range e.selected {
		if !present[k] {
			delete(e.selected, k)
		}
	}
}

// --- local pipeline for the fixed source: filter, then sort, then page ---

func (e *Engine[T]) recompute() {
	if !e.hasFixed {
		return
	}
	filtered := filterRows(e.fixed, e.filters, e.columns, e.dateOf)
	e.total = len(filtered)

	if max := e.TotalPages(); e.page > max {
		e.page = max
	}

	sorted := sortRows(filtered, e.sortSpec, e.columns)
	e.rows = pageWindow(sorted, e.page, e.pageSize)
}

func (e *Engine[T]) column(id string) (Column[T], bool) {
	return findColumn(e.columns, id)
}
