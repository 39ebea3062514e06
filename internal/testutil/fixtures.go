package testutil

import (
	"github.com/jmertens/billsight/internal/domain"
)

// RecordOption mutates a raw record fixture.
type RecordOption func(domain.RawRecord)

func WithField(key string, value any) RecordOption {
	return func(r domain.RawRecord) {
		r[key] = value
	}
}

func WithClient(name string) RecordOption {
	return WithField("clientName", name)
}

func WithCase(id, title string) RecordOption {
	return WithField("case", map[string]any{"id": id, "name": title})
}

func WithUser(id, name string) RecordOption {
	return WithField("user", map[string]any{"id": id, "name": name})
}

func WithRole(role string) RecordOption {
	return WithField("userRole", role)
}

func WithDate(yyyymmdd string) RecordOption {
	return WithField("date", yyyymmdd)
}

// NewBillable builds a billable raw record with sane defaults.
func NewBillable(id string, hours, rate float64, opts ...RecordOption) domain.RawRecord {
	r := domain.RawRecord{
		"id":    id,
		"hours": hours,
		"rate":  rate,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewInvoice builds an invoice raw record carrying an explicit amount.
func NewInvoice(id string, amount float64, opts ...RecordOption) domain.RawRecord {
	r := domain.RawRecord{
		"id":     id,
		"amount": amount,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// EventOption mutates an event fixture.
type EventOption func(*domain.Event)

func WithEventDate(yyyymmdd string) EventOption {
	return func(e *domain.Event) {
		d := mustDay(yyyymmdd)
		e.Date = &d
	}
}

func WithOwner(id string) EventOption {
	return func(e *domain.Event) { e.OwnerID = id }
}

func WithEventRole(role string) EventOption {
	return func(e *domain.Event) { e.UserRole = role }
}

// NewEvent builds a normalized event fixture.
func NewEvent(id, client string, hours, rate float64, opts ...EventOption) domain.Event {
	e := domain.Event{
		ID:         id,
		Source:     domain.SourceBillable,
		Client:     client,
		CaseStatus: "Unknown",
		Hours:      hours,
		Rate:       rate,
		Revenue:    hours * rate,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}
