package repository

import (
	"context"

	"github.com/jmertens/billsight/internal/domain"
	"github.com/jmertens/billsight/internal/normalize"
)

// Case is the stored case descriptor the status lookup and the
// case-type aggregate are built from.
type Case struct {
	ID     string `db:"id"`
	Title  string `db:"title"`
	Type   string `db:"case_type"`
	Status string `db:"status"`
}

// RecordRepo stores raw upstream records verbatim, one JSON document
// per row. Normalization happens on read; the store never interprets
// payloads beyond their source stream.
type RecordRepo interface {
	// ReplaceSource atomically swaps the full record set for one
	// source stream, preserving batch order.
	ReplaceSource(ctx context.Context, src domain.Source, records []domain.RawRecord) error
	ListBySource(ctx context.Context, src domain.Source) ([]domain.RawRecord, error)
	CountBySource(ctx context.Context) (map[domain.Source]int, error)
}

// CaseRepo stores cases and serves the two derived read models: the
// id/title status lookup and the pre-aggregated case-type buckets that
// back the passthrough grouping strategy.
type CaseRepo interface {
	ReplaceCases(ctx context.Context, cases []Case) error
	StatusLookup(ctx context.Context) (normalize.StatusLookup, error)
	CaseTypeAggregate(ctx context.Context) ([]domain.GroupBucket, error)
}
