package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Num coerces an arbitrary raw value to a finite float64. Nil, NaN,
// infinities and non-numeric strings all coerce to 0: upstream record
// shapes are not contractually guaranteed, so malformed numbers are a
// leniency case, never an error.
func Num(v any) float64 {
	var f float64
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int32:
		f = float64(val)
	case int64:
		f = float64(val)
	case uint:
		f = float64(val)
	case uint64:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0
		}
		f = parsed
	case bool:
		if val {
			return 1
		}
		return 0
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Str coerces an arbitrary raw value to a display string. Numbers are
// formatted compactly; maps and other composites yield "".
func Str(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		return ""
	}
}

// Round2 rounds to 2 decimal places. Applied only when emitting
// display values; accumulation keeps full precision.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// FirstPresent returns the value of the first key present and non-nil
// in the record, or nil when none match.
func FirstPresent(r RawRecord, keys ...string) any {
	return first(r, keys...)
}

// HasAny reports whether any of the keys is present and non-nil.
func HasAny(r RawRecord, keys ...string) bool {
	return first(r, keys...) != nil
}
