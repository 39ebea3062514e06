package domain

import "time"

// RawRecord is a source-shaped record as it arrives from upstream.
// Field names and types vary by source system; values may be embedded
// objects, ids, or missing entirely. Nothing downstream of the
// normalizer touches one of these.
type RawRecord map[string]any

// Event is the canonical normalized unit the aggregator consumes.
// Hours, Rate and Revenue are always finite; malformed numeric input
// coerces to 0 during normalization.
type Event struct {
	ID         string
	Source     Source
	Date       *time.Time // nil = unknown, sorts last
	Client     string     // display string, empty = unknown
	Case       string
	User       string
	UserRole   string // lowercase, used for row filtering only
	CaseStatus string // "Unknown" when no lookup match
	OwnerID    string // matched against scope by the caller's predicate
	Hours      float64
	Rate       float64
	Revenue    float64
	LoggedPct  *float64 // in [0,1]; nil = not supplied, excluded from averages
}

// GroupBucket is one aggregated group keyed by a single dimension.
type GroupBucket struct {
	ID        string
	Bucket    string // display label; "—" for a missing key value
	Hours     float64
	AvgRate   float64
	Revenue   float64
	LoggedPct float64
}

// KPISummary is the global rollup computed over the filtered event set
// before bucketing.
type KPISummary struct {
	Hours     float64
	Revenue   float64
	AvgRate   float64 // blended: total revenue / total hours, 0 when no hours
	LoggedPct float64 // mean of supplied per-event values, 0 when none
}

// PermissionProfile is the capability set derived from a role. It is an
// immutable value: derive a fresh one whenever role or override change.
type PermissionProfile struct {
	CanEdit          bool
	CanApprove       bool
	CanInvoice       bool
	CanDelete        bool
	CanViewAnalytics bool
	ReadOnly         bool
	Scope            Scope
}
