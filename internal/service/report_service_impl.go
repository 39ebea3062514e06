package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jmertens/billsight/internal/aggregate"
	"github.com/jmertens/billsight/internal/domain"
	"github.com/jmertens/billsight/internal/normalize"
	"github.com/jmertens/billsight/internal/permission"
	"github.com/jmertens/billsight/internal/repository"
)

type reportService struct {
	records  repository.RecordRepo
	cases    repository.CaseRepo
	identity Identity
	observer UseCaseObserver
}

// NewReportService wires the report pipeline over the given store and
// identity.
func NewReportService(records repository.RecordRepo, cases repository.CaseRepo, identity Identity, observer UseCaseObserver) ReportService {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &reportService{
		records:  records,
		cases:    cases,
		identity: identity,
		observer: observer,
	}
}

func (s *reportService) Report(ctx context.Context, opts aggregate.Options) (report *Report, err error) {
	defer s.observe(ctx, "report", time.Now(), map[string]any{"group_by": string(opts.GroupBy)}, &err)

	events, profile, err := s.visibleEvents(ctx)
	if err != nil {
		return nil, err
	}
	filtered := aggregate.Filter(events, opts)

	var pre []domain.GroupBucket
	if opts.GroupBy == domain.GroupByCaseType {
		pre, err = s.cases.CaseTypeAggregate(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading case-type aggregate: %w", err)
		}
	}
	buckets := aggregate.ForKey(opts.GroupBy, pre).Aggregate(filtered)

	return &Report{
		GroupBy:    opts.GroupBy,
		Buckets:    buckets,
		Summary:    aggregate.KPIs(filtered),
		Profile:    profile,
		EventCount: len(filtered),
	}, nil
}

func (s *reportService) Events(ctx context.Context, opts aggregate.Options) (events []domain.Event, err error) {
	defer s.observe(ctx, "events", time.Now(), nil, &err)

	visible, _, err := s.visibleEvents(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.Filter(visible, opts), nil
}

func (s *reportService) KPIs(ctx context.Context, opts aggregate.Options) (summary domain.KPISummary, err error) {
	defer s.observe(ctx, "kpis", time.Now(), nil, &err)

	visible, _, err := s.visibleEvents(ctx)
	if err != nil {
		return domain.KPISummary{}, err
	}
	return aggregate.KPIs(aggregate.Filter(visible, opts)), nil
}

// visibleEvents loads and normalizes all three streams, then applies
// the role-derived visibility scope.
func (s *reportService) visibleEvents(ctx context.Context) ([]domain.Event, domain.PermissionProfile, error) {
	profile := permission.Derive(s.identity.Role, s.identity.ReadOnly)

	batch := normalize.Batch{}
	var err error
	if batch.Billables, err = s.records.ListBySource(ctx, domain.SourceBillable); err != nil {
		return nil, profile, fmt.Errorf("loading billables: %w", err)
	}
	if batch.Invoices, err = s.records.ListBySource(ctx, domain.SourceInvoice); err != nil {
		return nil, profile, fmt.Errorf("loading invoices: %w", err)
	}
	if batch.Unbilled, err = s.records.ListBySource(ctx, domain.SourceUnbilled); err != nil {
		return nil, profile, fmt.Errorf("loading unbilled items: %w", err)
	}

	statuses, err := s.cases.StatusLookup(ctx)
	if err != nil {
		return nil, profile, fmt.Errorf("loading case statuses: %w", err)
	}

	events := normalize.Normalize(batch, statuses)

	allowed := permission.ScopePredicate(profile.Scope, s.identity.UserID, s.identity.TeamIDs)
	visible := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if allowed(e.OwnerID) {
			visible = append(visible, e)
		}
	}
	return visible, profile, nil
}

func (s *reportService) observe(ctx context.Context, name string, started time.Time, fields map[string]any, err *error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  time.Since(started),
		Success:   *err == nil,
		Err:       *err,
		Fields:    fields,
		StartedAt: started,
	})
}
