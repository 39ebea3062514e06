package tablestate

import (
	"context"
	"sort"
	"strings"
	"time"
)

// ApplyQuery runs the full local pipeline over a materialized slice:
// filter, then sort, then page window. Total counts the filtered set.
// A window past the end yields zero rows, not an error.
func ApplyQuery[T any](rows []T, q Query, cols []Column[T], dateOf func(T) *time.Time) Result[T] {
	filtered := filterRows(rows, q.Filters, cols, dateOf)
	sorted := sortRows(filtered, q.Sort, cols)
	return Result[T]{
		Rows:  pageWindow(sorted, q.Page, q.PageSize),
		Total: len(filtered),
	}
}

// SliceAccessor adapts a fixed slice to the Accessor contract. Useful
// for wiring the engine's remote path against in-memory data, e.g. in
// tests or when the full row set is cheap to materialize.
func SliceAccessor[T any](rows []T, cols []Column[T], dateOf func(T) *time.Time) Accessor[T] {
	return func(_ context.Context, q Query) (Result[T], error) {
		return ApplyQuery(rows, q, cols, dateOf), nil
	}
}

func filterRows[T any](rows []T, f Filters, cols []Column[T], dateOf func(T) *time.Time) []T {
	if f.Empty() {
		return rows
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if rowMatches(row, f, cols, dateOf) {
			out = append(out, row)
		}
	}
	return out
}

func rowMatches[T any](row T, f Filters, cols []Column[T], dateOf func(T) *time.Time) bool {
	for colID, query := range f.Text {
		col, ok := findColumn(cols, colID)
		if !ok {
			continue
		}
		cell := strings.ToLower(cellString(col.Value(row)))
		if !strings.Contains(cell, strings.ToLower(query)) {
			return false
		}
	}
	if (f.From != nil || f.To != nil) && dateOf != nil {
		d := dateOf(row)
		if d == nil {
			return false
		}
		if f.From != nil && d.Before(*f.From) {
			return false
		}
		if f.To != nil && d.After(*f.To) {
			return false
		}
	}
	return true
}

// sortRows returns a stably sorted copy; equal keys keep their
// original relative order. Absent cell values sort last in both
// directions.
func sortRows[T any](rows []T, spec *SortSpec, cols []Column[T]) []T {
	if spec == nil {
		return rows
	}
	col, ok := findColumn(cols, spec.ColumnID)
	if !ok {
		return rows
	}
	desc := spec.Descending

	sorted := make([]T, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, vj := col.Value(sorted[i]), col.Value(sorted[j])
		ni, nj := isNilValue(vi), isNilValue(vj)
		if ni || nj {
			return !ni && nj
		}
		cmp := compareValues(vi, vj, col.Numeric)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return sorted
}

func pageWindow[T any](rows []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(rows) {
		return nil
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

func findColumn[T any](cols []Column[T], id string) (Column[T], bool) {
	for _, c := range cols {
		if c.ID == id {
			return c, true
		}
	}
	var zero Column[T]
	return zero, false
}
