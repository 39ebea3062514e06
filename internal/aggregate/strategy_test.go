package aggregate

import (
	"math"
	"testing"
	"time"

	"github.com/jmertens/billsight/internal/domain"
	"github.com/jmertens/billsight/internal/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func pct(v float64) *float64 { return &v }

func TestLocalStrategy_ClientScenario(t *testing.T) {
	// Two billables for the same client, one with explicit hours and
	// one with minutes, must collapse into a single Acme bucket.
	events := normalize.NormalizeSource(domain.SourceBillable, []domain.RawRecord{
		{"hours": 1.5, "rate": 200.0, "clientName": "Acme"},
		{"durationMinutes": 30, "rate": 100.0, "clientName": "Acme"},
	}, nil)

	buckets := LocalStrategy{Key: domain.GroupByClient}.Aggregate(events)

	require.Len(t, buckets, 1)
	b := buckets[0]
	assert.Equal(t, "Acme", b.Bucket)
	assert.Equal(t, 2.0, b.Hours)
	assert.Equal(t, 350.0, b.Revenue)
	assert.Equal(t, 150.0, b.AvgRate, "avgRate is the unweighted mean of per-event rates")
}

func TestLocalStrategy_MissingKeyBucket(t *testing.T) {
	events := []domain.Event{
		{ID: "a", User: "Dana", Hours: 1},
		{ID: "b", Hours: 2},
		{ID: "c", Hours: 3},
	}

	buckets := LocalStrategy{Key: domain.GroupByUser}.Aggregate(events)

	require.Len(t, buckets, 2)
	assert.Equal(t, "Dana", buckets[0].Bucket)
	assert.Equal(t, MissingKeyLabel, buckets[1].Bucket)
	assert.Equal(t, 5.0, buckets[1].Hours)
}

func TestLocalStrategy_DateTruncatesToDay(t *testing.T) {
	morning := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 15, 21, 30, 0, 0, time.UTC)
	events := []domain.Event{
		{ID: "a", Date: &morning, Hours: 1},
		{ID: "b", Date: &evening, Hours: 2},
		{ID: "c", Date: nil, Hours: 4},
	}

	buckets := LocalStrategy{Key: domain.GroupByDate}.Aggregate(events)

	require.Len(t, buckets, 2)
	assert.Equal(t, "2026-03-15", buckets[0].Bucket)
	assert.Equal(t, 3.0, buckets[0].Hours)
	assert.Equal(t, MissingKeyLabel, buckets[1].Bucket)
}

func TestLocalStrategy_HoursConservation(t *testing.T) {
	events := []domain.Event{
		{ID: "1", Client: "A", Hours: 1.111},
		{ID: "2", Client: "B", Hours: 2.222},
		{ID: "3", Client: "A", Hours: 3.333},
		{ID: "4", Hours: 0.004},
	}
	var want float64
	for _, e := range events {
		want += e.Hours
	}

	buckets := LocalStrategy{Key: domain.GroupByClient}.Aggregate(events)

	var got float64
	for _, b := range buckets {
		got += b.Hours
	}
	assert.InDelta(t, want, got, 0.01, "bucket hours must sum to event hours within rounding tolerance")
}

func TestLocalStrategy_ZeroRateExcludedFromMean(t *testing.T) {
	events := []domain.Event{
		{ID: "1", Client: "A", Rate: 200},
		{ID: "2", Client: "A", Rate: 0}, // no usable rate
		{ID: "3", Client: "A", Rate: 100},
	}

	buckets := LocalStrategy{Key: domain.GroupByClient}.Aggregate(events)

	require.Len(t, buckets, 1)
	assert.Equal(t, 150.0, buckets[0].AvgRate, "denominator counts only events with a usable rate")
}

func TestLocalStrategy_LoggedPctMeanSkipsAbsent(t *testing.T) {
	events := []domain.Event{
		{ID: "1", Client: "A", LoggedPct: pct(0.5)},
		{ID: "2", Client: "A"},
		{ID: "3", Client: "A", LoggedPct: pct(1.0)},
	}

	buckets := LocalStrategy{Key: domain.GroupByClient}.Aggregate(events)

	require.Len(t, buckets, 1)
	assert.Equal(t, 0.75, buckets[0].LoggedPct, "absent loggedPct is excluded, not zero")
}

func TestLocalStrategy_RoundingOnEmitOnly(t *testing.T) {
	// Many small contributions that would drift if rounded per event.
	var events []domain.Event
	for i := 0; i < 300; i++ {
		events = append(events, domain.Event{ID: string(rune(i)), Client: "A", Hours: 0.005})
	}

	buckets := LocalStrategy{Key: domain.GroupByClient}.Aggregate(events)

	require.Len(t, buckets, 1)
	assert.InDelta(t, 1.5, buckets[0].Hours, 0.001, "accumulation keeps full precision")
}

func TestLocalStrategy_NoBucketsForEmptyInput(t *testing.T) {
	buckets := LocalStrategy{Key: domain.GroupByClient}.Aggregate(nil)
	assert.Empty(t, buckets)
}

func TestPassthroughStrategy_ReturnsBucketsVerbatim(t *testing.T) {
	pre := []domain.GroupBucket{
		{ID: "family", Bucket: "Family Law", Hours: 12, Revenue: 2400, AvgRate: 200},
		{ID: "ip", Bucket: "IP", Hours: 3, Revenue: 900, AvgRate: 300},
	}

	s := ForKey(domain.GroupByCaseType, pre)
	_, isPassthrough := s.(PassthroughStrategy)
	assert.True(t, isPassthrough)

	got := s.Aggregate([]domain.Event{{ID: "ignored", Hours: 99}})
	assert.Equal(t, pre, got, "passthrough ignores the local event set")
}

func TestForKey_LocalForEverythingElse(t *testing.T) {
	for _, key := range []domain.GroupKey{domain.GroupByUser, domain.GroupByClient, domain.GroupByCase, domain.GroupByDate} {
		s := ForKey(key, nil)
		_, isLocal := s.(LocalStrategy)
		assert.True(t, isLocal, "key %q should group locally", key)
	}
}

func TestParseGroupKey_UnknownFallsBackToDate(t *testing.T) {
	assert.Equal(t, domain.GroupByDate, domain.ParseGroupKey("banana"))
	assert.Equal(t, domain.GroupByCaseType, domain.ParseGroupKey("caseType"))
}

func TestKPIs(t *testing.T) {
	events := []domain.Event{
		{ID: "1", Hours: 2, Revenue: 400, LoggedPct: pct(0.5)},
		{ID: "2", Hours: 2, Revenue: 200},
	}

	k := KPIs(events)

	assert.Equal(t, 4.0, k.Hours)
	assert.Equal(t, 600.0, k.Revenue)
	assert.Equal(t, 150.0, k.AvgRate)
	assert.Equal(t, 0.5, k.LoggedPct)
}

func TestKPIs_GuardedDivision(t *testing.T) {
	k := KPIs([]domain.Event{{ID: "1", Revenue: 500}})
	assert.Equal(t, 0.0, k.AvgRate, "zero hours must not divide")
	assert.False(t, math.IsNaN(k.AvgRate))

	empty := KPIs(nil)
	assert.Equal(t, domain.KPISummary{}, empty)
}
