package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jmertens/billsight/internal/domain"
)

// SQLiteRecordRepo implements RecordRepo over the raw_records table.
type SQLiteRecordRepo struct {
	db *sqlx.DB
}

// NewSQLiteRecordRepo creates a new SQLiteRecordRepo.
func NewSQLiteRecordRepo(db *sqlx.DB) *SQLiteRecordRepo {
	return &SQLiteRecordRepo{db: db}
}

func (r *SQLiteRecordRepo) ReplaceSource(ctx context.Context, src domain.Source, records []domain.RawRecord) error {
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

	if _, err := tx.ExecContext(ctx, `DELETE FROM raw_records WHERE source = ?`, string(src)); err != nil {
		return fmt.Errorf("clearing %s records: %w", src, err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	const insert = `INSERT INTO raw_records (id, source, payload, position, created_at) VALUES (?, ?, ?, ?, ?)`
	for i, rec := range records {
		payload, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding %s record %d: %w", src, i, err)
		}
		if _, err := tx.ExecContext(ctx, insert, uuid.New().String(), string(src), string(payload), i, now); err != nil {
			return fmt.Errorf("inserting %s record %d: %w", src, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s records: %w", src, err)
	}
	committed = true
	return nil
}

func (r *SQLiteRecordRepo) ListBySource(ctx context.Context, src domain.Source) ([]domain.RawRecord, error) {
	var payloads []string
	err := r.db.SelectContext(ctx, &payloads,
		`SELECT payload FROM raw_records WHERE source = ? ORDER BY position`, string(src))
	if err != nil {
		return nil, fmt.Errorf("listing %s records: %w", src, err)
	}

	records := make([]domain.RawRecord, 0, len(payloads))
	for i, p := range payloads {
		var rec domain.RawRecord
		if err := json.Unmarshal([]byte(p), &rec); err != nil {
			return nil, fmt.Errorf("decoding %s record %d: %w", src, i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *SQLiteRecordRepo) CountBySource(ctx context.Context) (map[domain.Source]int, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT source, COUNT(*) FROM raw_records GROUP BY source`)
	if err != nil {
		return nil, fmt.Errorf("counting records: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Source]int)
	for rows.Next() {
		var src string
		var n int
		if err := rows.Scan(&src, &n); err != nil {
			return nil, fmt.Errorf("scanning record count: %w", err)
		}
		counts[domain.Source(src)] = n
	}
	return counts, rows.Err()
}
