package aggregate

import (
	"github.com/jmertens/billsight/internal/domain"
)

// MissingKeyLabel is the bucket label for events whose grouping key
// value is absent.
const MissingKeyLabel = "—"

// Strategy produces the bucket list for one grouping mode. Local
// grouping and the server-prepared case-type passthrough implement the
// same contract so callers and tests see one uniform shape.
type Strategy interface {
	Aggregate(events []domain.Event) []domain.GroupBucket
}

// ForKey selects the strategy for a grouping key. Case-type buckets
// are pre-aggregated upstream and passed through verbatim; every other
// key groups locally. Unknown keys have already been folded to date by
// ParseGroupKey.
func ForKey(key domain.GroupKey, preAggregated []domain.GroupBucket) Strategy {
	if key == domain.GroupByCaseType {
		return PassthroughStrategy{Buckets: preAggregated}
	}
	return LocalStrategy{Key: key}
}

// PassthroughStrategy returns an externally computed bucket list as-is,
// ignoring the local event set.
type PassthroughStrategy struct {
	Buckets []domain.GroupBucket
}

func (s PassthroughStrategy) Aggregate([]domain.Event) []domain.GroupBucket {
	return s.Buckets
}

// LocalStrategy groups events by Key and accumulates per-bucket sums
// and averages. Buckets appear in first-seen event order; no bucket is
// created for a key value with zero contributing events.
type LocalStrategy struct {
	Key domain.GroupKey
}

type accumulator struct {
	label   string
	hours   float64
	revenue float64
	rateSum float64
	rateN   int
	pctSum  float64
	pctN    int
}

func (s LocalStrategy) Aggregate(events []domain.Event) []domain.GroupBucket {
	byLabel := make(map[string]*accumulator)
	var order []string

	for _, e := range events {
		label := keyOf(e, s.Key)
		acc, ok := byLabel[label]
		if !ok {
			acc = &accumulator{label: label}
			byLabel[label] = acc
			order = append(order, label)
		}
		acc.hours += e.Hours
		acc.revenue += e.Revenue
		// Zero rates are treated as absent: the mean covers only
		// events that actually carried a billing rate.
		if e.Rate > 0 {
			acc.rateSum += e.Rate
			acc.rateN++
		}
		if e.LoggedPct != nil {
			acc.pctSum += *e.LoggedPct
			acc.pctN++
		}
	}

	buckets := make([]domain.GroupBucket, 0, len(order))
	for _, label := range order {
		acc := byLabel[label]
		b := domain.GroupBucket{
			ID:      label,
			Bucket:  label,
			Hours:   domain.Round2(acc.hours),
			Revenue: domain.Round2(acc.revenue),
		}
		if acc.rateN > 0 {
			b.AvgRate = domain.Round2(acc.rateSum / float64(acc.rateN))
		}
		if acc.pctN > 0 {
			b.LoggedPct = domain.Round2(acc.pctSum / float64(acc.pctN))
		}
		buckets = append(buckets, b)
	}
	return buckets
}

// keyOf extracts the grouping label for an event; any missing value
// maps to MissingKeyLabel. Dates truncate to day precision.
func keyOf(e domain.Event, key domain.GroupKey) string {
	var v string
	switch key {
	case domain.GroupByUser:
		v = e.User
	case domain.GroupByClient:
		v = e.Client
	case domain.GroupByCase:
		v = e.Case
	default: // date, and anything unrecognized falls back to date
		if e.Date != nil {
			v = e.Date.Format("2006-01-02")
		}
	}
	if v == "" {
		return MissingKeyLabel
	}
	return v
}
