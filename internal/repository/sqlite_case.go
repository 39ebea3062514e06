package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jmertens/billsight/internal/domain"
	"github.com/jmertens/billsight/internal/normalize"
)

// SQLiteCaseRepo implements CaseRepo over the cases table.
type SQLiteCaseRepo struct {
	db *sqlx.DB
}

// NewSQLiteCaseRepo creates a new SQLiteCaseRepo.
func NewSQLiteCaseRepo(db *sqlx.DB) *SQLiteCaseRepo {
	return &SQLiteCaseRepo{db: db}
}

func (r *SQLiteCaseRepo) ReplaceCases(ctx context.Context, cases []Case) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cases`); err != nil {
		return fmt.Errorf("clearing cases: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	const insert = `INSERT INTO cases (id, title, case_type, status, created_at) VALUES (?, ?, ?, ?, ?)`
	for i, c := range cases {
		status := c.Status
		if status == "" {
			status = "Unknown"
		}
		if _, err := tx.ExecContext(ctx, insert, c.ID, c.Title, c.Type, status, now); err != nil {
			return fmt.Errorf("inserting case %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing cases: %w", err)
	}
	committed = true
	return nil
}

// StatusLookup returns one map keyed by both case id and case title,
// matching the normalizer's two-pass probe order.
func (r *SQLiteCaseRepo) StatusLookup(ctx context.Context) (normalize.StatusLookup, error) {
	var cases []Case
	if err := r.db.SelectContext(ctx, &cases, `SELECT id, title, case_type, status FROM cases`); err != nil {
		return nil, fmt.Errorf("loading cases: %w", err)
	}

	lookup := make(normalize.StatusLookup, len(cases)*2)
	for _, c := range cases {
		if c.ID != "" {
			lookup[c.ID] = c.Status
		}
		if c.Title != "" {
			lookup[c.Title] = c.Status
		}
	}
	return lookup, nil
}

// CaseTypeAggregate computes the pre-aggregated case-type bucket list
// in SQL: billable records are joined to their case by id or title and
// rolled up per case type. This is the external aggregate the
// passthrough grouping strategy serves verbatim.
func (r *SQLiteCaseRepo) CaseTypeAggregate(ctx context.Context) ([]domain.GroupBucket, error) {
	const query = `
		SELECT
			c.case_type,
			COALESCE(SUM(COALESCE(
				json_extract(rr.payload, '$.hours'),
				json_extract(rr.payload, '$.durationMinutes') / 60.0,
				0)), 0) AS hours,
			COALESCE(SUM(COALESCE(
				json_extract(rr.payload, '$.revenue'),
				COALESCE(json_extract(rr.payload, '$.hours'),
					json_extract(rr.payload, '$.durationMinutes') / 60.0, 0)
					* COALESCE(json_extract(rr.payload, '$.rate'), 0))), 0) AS revenue,
			COALESCE(AVG(CASE
				WHEN COALESCE(json_extract(rr.payload, '$.rate'), 0) > 0
				THEN json_extract(rr.payload, '$.rate')
			END), 0) AS avg_rate
		FROM cases c
		JOIN raw_records rr ON COALESCE(
			json_extract(rr.payload, '$.case.id'),
			json_extract(rr.payload, '$.case'),
			json_extract(rr.payload, '$.caseTitle')) IN (c.id, c.title)
		WHERE c.case_type != ''
		GROUP BY c.case_type
		ORDER BY c.case_type`

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("aggregating by case type: %w", err)
	}
	defer rows.Close()

	var buckets []domain.GroupBucket
	for rows.Next() {
		var caseType string
		var hours, revenue, avgRate float64
		if err := rows.Scan(&caseType, &hours, &revenue, &avgRate); err != nil {
			return nil, fmt.Errorf("scanning case-type bucket: %w", err)
		}
		buckets = append(buckets, domain.GroupBucket{
			ID:      caseType,
			Bucket:  caseType,
			Hours:   domain.Round2(hours),
			Revenue: domain.Round2(revenue),
			AvgRate: domain.Round2(avgRate),
		})
	}
	return buckets, rows.Err()
}
