package formatter

import (
	"fmt"
	"strings"
	"time"
)

// Money formats a currency amount with thousands separators, e.g.
// "$12,345.67".
func Money(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := fmt.Sprintf("%.2f", amount)
	dot := strings.IndexByte(s, '.')
	whole, frac := s[:dot], s[dot:]

	var b strings.Builder
	lead := len(whole) % 3
	if lead > 0 {
		b.WriteString(whole[:lead])
	}
	for i := lead; i < len(whole); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(whole[i : i+3])
	}
	out := "$" + b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}

// Hours formats decimal hours, e.g. "12.5h".
func Hours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

// Rate formats an hourly rate, e.g. "$250.00/h". A zero rate reads as
// absent.
func Rate(r float64) string {
	if r == 0 {
		return Dim("--")
	}
	return Money(r) + "/h"
}

// Pct formats a 0..1 fraction as a percentage, e.g. "87.5%". A nil
// value reads as absent.
func Pct(p *float64) string {
	if p == nil {
		return Dim("--")
	}
	return PctVal(*p)
}

// PctVal formats a 0..1 fraction as a percentage.
func PctVal(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}

// Day formats an event date as yyyy-mm-dd, or a dimmed placeholder when
// the date never parsed.
func Day(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return t.Format("2006-01-02")
}

// Count renders a row-count footer line, e.g. "4 events".
func Count(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
