package importer

import (
	"github.com/jmertens/billsight/internal/domain"
	"github.com/jmertens/billsight/internal/repository"
)

// Batch is the on-disk ingest document: three raw record streams plus
// the case list the status lookup is built from. Record shapes are
// deliberately left open; normalization copes with whatever fields the
// source system emitted.
type Batch struct {
	Billables []domain.RawRecord `json:"billables"`
	Invoices  []domain.RawRecord `json:"invoices"`
	Unbilled  []domain.RawRecord `json:"unbilled"`
	Cases     []CaseDoc          `json:"cases"`
}

// CaseDoc is a case entry as it appears in ingest files.
type CaseDoc struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

// Stats summarizes one completed ingest.
type Stats struct {
	Billables int
	Invoices  int
	Unbilled  int
	Cases     int
}

func (b *Batch) stats() Stats {
	return Stats{
		Billables: len(b.Billables),
		Invoices:  len(b.Invoices),
		Unbilled:  len(b.Unbilled),
		Cases:     len(b.Cases),
	}
}

func (b *Batch) cases() []repository.Case {
	out := make([]repository.Case, 0, len(b.Cases))
	for _, c := range b.Cases {
		out = append(out, repository.Case{
			ID:     c.ID,
			Title:  c.Title,
			Type:   c.Type,
			Status: c.Status,
		})
	}
	return out
}
