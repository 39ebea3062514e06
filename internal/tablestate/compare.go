package tablestate

import (
	"reflect"
	"strings"
	"time"
)

// isNilValue treats nil interfaces and nil pointers inside interfaces
// as absent cell values. Absent values sort to the end regardless of
// sort direction.
func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

// compareValues orders two non-nil cell values: numerically when the
// column says so, otherwise as case-insensitive strings. Times compare
// chronologically either way.
func compareValues(a, b any, numeric bool) int {
	if ta, ok := timeOf(a); ok {
		if tb, ok := timeOf(b); ok {
			switch {
			case ta.Before(tb):
				return -1
			case ta.After(tb):
				return 1
			default:
				return 0
			}
		}
	}
	if numeric {
		fa, fb := floatOf(a), floatOf(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(strings.ToLower(cellString(a)), strings.ToLower(cellString(b)))
}

func timeOf(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	}
	return time.Time{}, false
}

func floatOf(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint64:
		return float64(n)
	}
	return 0
}
