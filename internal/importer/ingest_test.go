package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/jmertens/billsight/internal/domain"
	"github.com/jmertens/billsight/internal/repository"
	"github.com/jmertens/billsight/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*Service, repository.RecordRepo, repository.CaseRepo) {
	t.Helper()
	conn := testutil.NewTestDB(t)
	records := repository.NewSQLiteRecordRepo(conn)
	cases := repository.NewSQLiteCaseRepo(conn)
	return New(records, cases), records, cases
}

func TestIngest_FullBatch(t *testing.T) {
	svc, records, cases := newService(t)
	ctx := context.Background()

	doc := `{
		"billables": [{"id": "b1", "hours": 1.5, "rate": 200}],
		"invoices": [{"id": "i1", "amount": 500}],
		"unbilled": [],
		"cases": [{"id": "c1", "title": "Smith v. Jones", "type": "Family Law", "status": "Open"}]
	}`

	stats, err := svc.Ingest(ctx, strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, Stats{Billables: 1, Invoices: 1, Unbilled: 0, Cases: 1}, stats)

	billables, err := records.ListBySource(ctx, domain.SourceBillable)
	require.NoError(t, err)
	require.Len(t, billables, 1)
	assert.Equal(t, "b1", billables[0]["id"])

	lookup, err := cases.StatusLookup(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Open", lookup["c1"])
}

func TestIngest_AbsentStreamsUntouched(t *testing.T) {
	svc, records, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Ingest(ctx, strings.NewReader(`{"billables": [{"id": "keep"}]}`))
	require.NoError(t, err)

	// A later batch with only invoices must not clear billables.
	_, err = svc.Ingest(ctx, strings.NewReader(`{"invoices": [{"id": "i1"}]}`))
	require.NoError(t, err)

	billables, err := records.ListBySource(ctx, domain.SourceBillable)
	require.NoError(t, err)
	require.Len(t, billables, 1)
	assert.Equal(t, "keep", billables[0]["id"])
}

func TestIngest_MalformedJSON(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Ingest(context.Background(), strings.NewReader(`{"billables": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding batch")
}

func TestIngest_NumbersSurviveAsJSONNumbers(t *testing.T) {
	svc, records, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Ingest(ctx, strings.NewReader(`{"billables": [{"id": "b1", "rate": 200.5}]}`))
	require.NoError(t, err)

	billables, err := records.ListBySource(ctx, domain.SourceBillable)
	require.NoError(t, err)
	assert.Equal(t, 200.5, domain.Num(billables[0]["rate"]),
		"rates round-trip through ingest without losing precision")
}
