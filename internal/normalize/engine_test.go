package normalize

import (
	"math"
	"testing"

	"github.com/jmertens/billsight/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_IDPrefixedBySource(t *testing.T) {
	batch := Batch{
		Billables: []domain.RawRecord{{"id": "7"}},
		Invoices:  []domain.RawRecord{{"id": "7"}},
		Unbilled:  []domain.RawRecord{{"id": "7"}},
	}

	events := Normalize(batch, nil)

	require.Len(t, events, 3)
	assert.Equal(t, "billable-7", events[0].ID)
	assert.Equal(t, "invoice-7", events[1].ID)
	assert.Equal(t, "unbilled-7", events[2].ID)

	seen := map[string]bool{}
	for _, e := range events {
		assert.False(t, seen[e.ID], "ids must be unique within a batch")
		seen[e.ID] = true
	}
}

func TestNormalize_HoursFromMinutes(t *testing.T) {
	events := NormalizeSource(domain.SourceBillable, []domain.RawRecord{
		{"hours": 1.5},
		{"durationMinutes": 30},
		{"durationMinutes": 30, "hours": 2.0}, // explicit hours wins
		{},
	}, nil)

	require.Len(t, events, 4)
	assert.Equal(t, 1.5, events[0].Hours)
	assert.Equal(t, 0.5, events[1].Hours)
	assert.Equal(t, 2.0, events[2].Hours)
	assert.Equal(t, 0.0, events[3].Hours, "missing duration defaults to 0, never errors")
}

func TestNormalize_MalformedNumbersCoerceToZero(t *testing.T) {
	events := NormalizeSource(domain.SourceBillable, []domain.RawRecord{
		{"hours": "garbage", "rate": "NaN-ish", "revenue": map[string]any{}},
		{"hours": -3.0, "rate": math.NaN()},
	}, nil)

	for _, e := range events {
		assert.False(t, math.IsNaN(e.Hours) || math.IsNaN(e.Rate) || math.IsNaN(e.Revenue))
		assert.GreaterOrEqual(t, e.Hours, 0.0)
		assert.GreaterOrEqual(t, e.Rate, 0.0)
	}
}

func TestNormalize_RevenueComputedFromHoursAndRate(t *testing.T) {
	events := NormalizeSource(domain.SourceBillable, []domain.RawRecord{
		{"hours": 2.0, "rate": 150.0},
		{"hours": 2.0, "rate": 150.0, "revenue": 99.0},
	}, nil)

	assert.Equal(t, 300.0, events[0].Revenue, "revenue derives from hours*rate when absent")
	assert.Equal(t, 99.0, events[1].Revenue, "explicit revenue wins")
}

func TestNormalize_ClientResolution(t *testing.T) {
	events := NormalizeSource(domain.SourceBillable, []domain.RawRecord{
		{"client": map[string]any{"id": "c-1", "name": "Acme Corp"}},
		{"client": map[string]any{"id": "c-2"}},
		{"clientName": "Globex"},
		{"client": "c-3"},
		{},
	}, nil)

	assert.Equal(t, "Acme Corp", events[0].Client)
	assert.Equal(t, "c-2", events[1].Client)
	assert.Equal(t, "Globex", events[2].Client)
	assert.Equal(t, "c-3", events[3].Client)
	assert.Equal(t, "", events[4].Client)
}

func TestNormalize_CaseStatusTwoPassLookup(t *testing.T) {
	statuses := StatusLookup{
		"case-9":       "Open",
		"Estate of Vo": "Closed",
	}
	events := NormalizeSource(domain.SourceBillable, []domain.RawRecord{
		{"case": map[string]any{"id": "case-9", "name": "Smith v. Jones"}},
		{"case": map[string]any{"id": "case-x", "name": "Estate of Vo"}},
		{"case": map[string]any{"id": "case-x", "name": "No Match"}},
		{},
	}, statuses)

	assert.Equal(t, "Open", events[0].CaseStatus, "id lookup runs first")
	assert.Equal(t, "Closed", events[1].CaseStatus, "title lookup is the second pass")
	assert.Equal(t, "Unknown", events[2].CaseStatus)
	assert.Equal(t, "Unknown", events[3].CaseStatus)
}

func TestNormalize_LoggedPctOptionalAndClamped(t *testing.T) {
	events := NormalizeSource(domain.SourceBillable, []domain.RawRecord{
		{"loggedPct": 0.8},
		{"loggedPct": 1.7},
		{"loggedPct": -0.2},
		{},
	}, nil)

	require.NotNil(t, events[0].LoggedPct)
	assert.Equal(t, 0.8, *events[0].LoggedPct)
	assert.Equal(t, 1.0, *events[1].LoggedPct)
	assert.Equal(t, 0.0, *events[2].LoggedPct)
	assert.Nil(t, events[3].LoggedPct, "absent loggedPct stays nil, not zero")
}

func TestNormalize_UserRoleLowercased(t *testing.T) {
	events := NormalizeSource(domain.SourceBillable, []domain.RawRecord{
		{"userRole": "Intern"},
		{"role": "PARTNER"},
	}, nil)
	assert.Equal(t, "intern", events[0].UserRole)
	assert.Equal(t, "partner", events[1].UserRole)
}

func TestNormalize_DateParsing(t *testing.T) {
	events := NormalizeSource(domain.SourceBillable, []domain.RawRecord{
		{"date": "2026-03-15"},
		{"workDate": "2026-03-15T10:30:00Z"},
		{"date": "not a date"},
		{},
	}, nil)

	require.NotNil(t, events[0].Date)
	assert.Equal(t, "2026-03-15", events[0].Date.Format("2006-01-02"))
	require.NotNil(t, events[1].Date)
	assert.Nil(t, events[2].Date, "unparseable dates are unknown, not an error")
	assert.Nil(t, events[3].Date)
}

func TestNormalize_Idempotent(t *testing.T) {
	batch := Batch{
		Billables: []domain.RawRecord{
			{"hours": 1.5, "rate": 200.0, "clientName": "Acme"},
			{"durationMinutes": 30, "rate": 100.0, "clientName": "Acme"},
		},
	}
	statuses := StatusLookup{"c1": "Open"}

	first := Normalize(batch, statuses)
	second := Normalize(batch, statuses)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i], second[i], "rerun must be field-for-field identical")
	}
}

func TestNormalize_OwnerFallsBackToUserRef(t *testing.T) {
	events := NormalizeSource(domain.SourceBillable, []domain.RawRecord{
		{"ownerId": "u-1", "user": map[string]any{"id": "u-2"}},
		{"user": map[string]any{"id": "u-2", "name": "Dana"}},
	}, nil)
	assert.Equal(t, "u-1", events[0].OwnerID, "explicit owner field wins")
	assert.Equal(t, "u-2", events[1].OwnerID)
}
