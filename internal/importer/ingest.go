// Package importer loads raw billing batches into the record store.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jmertens/billsight/internal/domain"
	"github.com/jmertens/billsight/internal/repository"
)

// Service ingests batch documents into the raw record store.
type Service struct {
	records repository.RecordRepo
	cases   repository.CaseRepo
}

// New creates a new ingest service.
func New(records repository.RecordRepo, cases repository.CaseRepo) *Service {
	return &Service{records: records, cases: cases}
}

// IngestFile reads a JSON batch file and replaces the stored streams
// it carries. Streams absent from the file are left untouched.
func (s *Service) IngestFile(ctx context.Context, path string) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("opening batch file: %w", err)
	}
	defer f.Close()
	return s.Ingest(ctx, f)
}

// Ingest decodes a batch document from r and writes it to the store.
func (s *Service) Ingest(ctx context.Context, r io.Reader) (Stats, error) {
	started := time.Now()

	var batch Batch
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&batch); err != nil {
		return Stats{}, fmt.Errorf("decoding batch: %w", err)
	}

	streams := []struct {
		src     domain.Source
		records []domain.RawRecord
	}{
		{domain.SourceBillable, batch.Billables},
		{domain.SourceInvoice, batch.Invoices},
		{domain.SourceUnbilled, batch.Unbilled},
	}
	for _, stream := range streams {
		if stream.records == nil {
			continue
		}
		if err := s.records.ReplaceSource(ctx, stream.src, stream.records); err != nil {
			return Stats{}, fmt.Errorf("storing %s records: %w", stream.src, err)
		}
		log.Info().
			Str("source", string(stream.src)).
			Int("count", len(stream.records)).
			Msg("Stored record stream")
	}

	if batch.Cases != nil {
		if err := s.cases.ReplaceCases(ctx, batch.cases()); err != nil {
			return Stats{}, fmt.Errorf("storing cases: %w", err)
		}
		log.Info().Int("count", len(batch.Cases)).Msg("Stored case list")
	}

	stats := batch.stats()
	log.Info().
		Int("billables", stats.Billables).
		Int("invoices", stats.Invoices).
		Int("unbilled", stats.Unbilled).
		Int("cases", stats.Cases).
		Dur("elapsed", time.Since(started)).
		Msg("Ingest complete")
	return stats, nil
}
