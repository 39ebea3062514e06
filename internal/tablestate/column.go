// Package tablestate manages sort order, filters, pagination windows
// and multi-row selection over an arbitrary, already-materialized row
// set. It is deliberately ignorant of what produced the rows: a fixed
// slice and a remote page accessor plug into the same engine.
package tablestate

import (
	"context"
	"fmt"
	"time"
)

type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Column is a declarative, stateless presentation descriptor. Columns
// never own data; Value extracts the display cell from a row.
type Column[T any] struct {
	ID       string
	Header   string
	Value    func(T) any
	Sortable bool
	Numeric  bool // compare numerically instead of as strings
	Align    Align
	Width    int // 0 = auto
}

// SortSpec is the single active sort. Multi-column sort is not
// supported; a click cycles one column through asc, desc, off.
type SortSpec struct {
	ColumnID   string
	Descending bool
}

// Filters are conjunctive across fields. Text entries match by
// case-insensitive substring against the column's display value; the
// date range is inclusive on both optional ends.
type Filters struct {
	Text map[string]string
	From *time.Time
	To   *time.Time
}

// Empty reports whether no filter is active.
func (f Filters) Empty() bool {
	return len(f.Text) == 0 && f.From == nil && f.To == nil
}

func (f Filters) clone() Filters {
	out := Filters{From: f.From, To: f.To}
	if len(f.Text) > 0 {
		out.Text = make(map[string]string, len(f.Text))
		for k, v := range f.Text {
			out.Text[k] = v
		}
	}
	return out
}

// Query is the window specification handed to an accessor.
type Query struct {
	Page     int // 1-indexed
	PageSize int
	Sort     *SortSpec
	Filters  Filters
}

// Result is one fully-materialized page. Total counts the filtered,
// pre-pagination row set, never the unfiltered source.
type Result[T any] struct {
	Rows  []T
	Total int
}

// Accessor fetches one page of rows. Any transport can back it; the
// engine only sees the contract.
type Accessor[T any] func(ctx context.Context, q Query) (Result[T], error)

// cellString renders a cell value for filtering and string comparison.
func cellString(v any) string {
	if isNilValue(v) {
		return ""
	}
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02")
	}
	if t, ok := v.(*time.Time); ok {
		return t.Format("2006-01-02")
	}
	return fmt.Sprintf("%v", v)
}
