package aggregate

import "github.com/jmertens/billsight/internal/domain"

// KPIs computes the global rollup over an already-filtered event set.
// The blended average rate is total revenue over total hours, guarded
// against zero hours; the logged percentage is the mean of only the
// events that supplied one.
func KPIs(events []domain.Event) domain.KPISummary {
	var hours, revenue, pctSum float64
	var pctN int
	for _, e := range events {
		hours += e.Hours
		revenue += e.Revenue
		if e.LoggedPct != nil {
			pctSum += *e.LoggedPct
			pctN++
		}
	}

	k := domain.KPISummary{
		Hours:   domain.Round2(hours),
		Revenue: domain.Round2(revenue),
	}
	if hours > 0 {
		k.AvgRate = domain.Round2(revenue / hours)
	}
	if pctN > 0 {
		k.LoggedPct = domain.Round2(pctSum / float64(pctN))
	}
	return k
}
