package service

import (
	"context"

	"github.com/jmertens/billsight/internal/aggregate"
	"github.com/jmertens/billsight/internal/domain"
)

// Identity is the reporting user's context. The role drives the
// permission profile; the ids drive scope enforcement.
type Identity struct {
	UserID   string
	Role     string
	ReadOnly bool
	TeamIDs  []string
}

// Report is one completed summary view: buckets for the effective
// grouping key plus the KPI rollup over the same filtered event set.
type Report struct {
	GroupBy    domain.GroupKey
	Buckets    []domain.GroupBucket
	Summary    domain.KPISummary
	Profile    domain.PermissionProfile
	EventCount int
}

// ReportService runs the read-side pipeline: load raw records,
// normalize, scope-filter, then aggregate.
type ReportService interface {
	// Report aggregates the visible events under the given options.
	Report(ctx context.Context, opts aggregate.Options) (*Report, error)
	// Events returns the scope-filtered, option-filtered normalized
	// events without bucketing, for row-level views.
	Events(ctx context.Context, opts aggregate.Options) ([]domain.Event, error)
	// KPIs returns only the global rollup.
	KPIs(ctx context.Context, opts aggregate.Options) (domain.KPISummary, error)
}
