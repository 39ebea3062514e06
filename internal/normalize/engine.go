package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmertens/billsight/internal/domain"
)

// StatusLookup maps a case id or case title to a status string. Both
// key spaces live in one map; the normalizer probes id first, then
// title.
type StatusLookup map[string]string

// Batch groups the three raw record streams that feed one
// normalization run.
type Batch struct {
	Billables []domain.RawRecord
	Invoices  []domain.RawRecord
	Unbilled  []domain.RawRecord
}

// Normalize converts a batch of raw records into canonical events.
// Pure and idempotent: the same batch in the same order yields
// field-for-field identical events, ids included.
func Normalize(batch Batch, statuses StatusLookup) []domain.Event {
	events := make([]domain.Event, 0, len(batch.Billables)+len(batch.Invoices)+len(batch.Unbilled))
	events = append(events, NormalizeSource(domain.SourceBillable, batch.Billables, statuses)...)
	events = append(events, NormalizeSource(domain.SourceInvoice, batch.Invoices, statuses)...)
	events = append(events, NormalizeSource(domain.SourceUnbilled, batch.Unbilled, statuses)...)
	return events
}

// NormalizeSource converts records from a single stream. Event ids are
// prefixed with the source kind so ids from different streams cannot
// collide; records without any id field get a positional one.
func NormalizeSource(src domain.Source, records []domain.RawRecord, statuses StatusLookup) []domain.Event {
	events := make([]domain.Event, 0, len(records))
	for i, r := range records {
		events = append(events, normalizeOne(src, i, r, statuses))
	}
	return events
}

func normalizeOne(src domain.Source, idx int, r domain.RawRecord, statuses StatusLookup) domain.Event {
	clientRef := domain.RefFrom(domain.FirstPresent(r, "client", "clientName", "customer", "account"))
	caseRef := domain.RefFrom(domain.FirstPresent(r, "case", "matter", "caseTitle", "caseName"))
	userRef := domain.RefFrom(domain.FirstPresent(r, "user", "attorney", "userName", "resource"))

	hours := resolveHours(r)
	rate := domain.Num(domain.FirstPresent(r, "rate", "hourlyRate", "billingRate"))

	revenue := hours * rate
	if domain.HasAny(r, revenueKeys...) {
		revenue = domain.Num(domain.FirstPresent(r, revenueKeys...))
	}

	e := domain.Event{
		ID:         fmt.Sprintf("%s-%s", src, resolveID(r, idx)),
		Source:     src,
		Date:       resolveDate(r),
		Client:     clientRef.Display(),
		Case:       caseRef.Display(),
		User:       userRef.Display(),
		UserRole:   strings.ToLower(domain.Str(domain.FirstPresent(r, "userRole", "role"))),
		CaseStatus: resolveCaseStatus(caseRef, statuses),
		OwnerID:    resolveOwner(r, userRef),
		Hours:      hours,
		Rate:       rate,
		Revenue:    revenue,
		LoggedPct:  resolveLoggedPct(r),
	}
	return e
}

func resolveID(r domain.RawRecord, idx int) string {
	if s := domain.Str(domain.FirstPresent(r, "id", "entryId", "uuid")); s != "" {
		return s
	}
	// Positional fallback keeps ids stable across reruns of the same batch.
	return fmt.Sprintf("%d", idx)
}

// resolveHours prefers an explicit decimal-hours field and otherwise
// derives from minutes. Missing or malformed duration data defaults to
// 0; negative values are treated as malformed.
func resolveHours(r domain.RawRecord) float64 {
	var h float64
	if v := domain.FirstPresent(r, "hours", "hoursWorked", "decimalHours"); v != nil {
		h = domain.Num(v)
	} else {
		h = domain.Num(domain.FirstPresent(r, "durationMinutes", "minutes", "durationMin")) / 60
	}
	if h < 0 {
		return 0
	}
	return h
}

var revenueKeys = []string{"revenue", "amount", "total", "billedAmount"}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func resolveDate(r domain.RawRecord) *time.Time {
	s := domain.Str(domain.FirstPresent(r, "date", "workDate", "issuedAt", "invoiceDate", "createdAt"))
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// resolveCaseStatus runs the two-pass lookup: case id first, then the
// display title, defaulting to "Unknown".
func resolveCaseStatus(caseRef domain.Ref, statuses StatusLookup) string {
	if caseRef.ID != "" {
		if s, ok := statuses[caseRef.ID]; ok {
			return s
		}
	}
	if title := caseRef.Display(); title != "" {
		if s, ok := statuses[title]; ok {
			return s
		}
	}
	return "Unknown"
}

func resolveOwner(r domain.RawRecord, userRef domain.Ref) string {
	if s := domain.Str(domain.FirstPresent(r, "ownerId", "userId", "assigneeId")); s != "" {
		return s
	}
	return userRef.ID
}

func resolveLoggedPct(r domain.RawRecord) *float64 {
	v := domain.FirstPresent(r, "loggedPct", "utilization", "loggedPercentage")
	if v == nil {
		return nil
	}
	p := domain.Num(v)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return &p
}
