// Package aggregate buckets normalized events by a selectable key and
// computes per-bucket sums and averages plus global KPI rollups.
package aggregate

import (
	"strings"
	"time"

	"github.com/jmertens/billsight/internal/domain"
)

// CaseStatusAll disables case-status filtering.
const CaseStatusAll = "ALL"

// Options is the recognized report configuration.
type Options struct {
	GroupBy        domain.GroupKey
	RoleFilter     []string // role substrings to include; empty = all
	ExcludeInterns bool
	From           *time.Time // inclusive
	To             *time.Time // inclusive
	CaseStatus     string     // exact status, "" or "ALL" = all
}

// Filter applies the option predicates conjunctively and returns the
// surviving events in their original order.
func Filter(events []domain.Event, opts Options) []domain.Event {
	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if !matchesRole(e, opts) {
			continue
		}
		if opts.ExcludeInterns && e.UserRole == domain.RoleIntern {
			continue
		}
		if !matchesDateRange(e.Date, opts.From, opts.To) {
			continue
		}
		if !matchesCaseStatus(e.CaseStatus, opts.CaseStatus) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matchesRole(e domain.Event, opts Options) bool {
	if len(opts.RoleFilter) == 0 {
		return true
	}
	for _, sub := range opts.RoleFilter {
		if sub == "" {
			continue
		}
		if strings.Contains(e.UserRole, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

// matchesDateRange is inclusive on both ends. An event without a date
// passes only when no bound is set.
func matchesDateRange(date, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if date == nil {
		return false
	}
	if from != nil && date.Before(*from) {
		return false
	}
	if to != nil && date.After(*to) {
		return false
	}
	return true
}

func matchesCaseStatus(status, want string) bool {
	if want == "" || want == CaseStatusAll {
		return true
	}
	return status == want
}
