package formatter

import (
	"strings"

	"github.com/jmertens/billsight/internal/domain"
)

var groupHeaders = map[domain.GroupKey]string{
	domain.GroupByDate:     "Date",
	domain.GroupByClient:   "Client",
	domain.GroupByCase:     "Case",
	domain.GroupByUser:     "User",
	domain.GroupByCaseType: "Case Type",
}

// RenderBuckets renders grouped summary rows as an aligned table with
// the numeric columns right-aligned.
func RenderBuckets(groupBy domain.GroupKey, buckets []domain.GroupBucket) string {
	header, ok := groupHeaders[groupBy]
	if !ok {
		header = "Group"
	}

	headers := []string{header, "Hours", "Avg Rate", "Revenue", "Logged"}
	aligns := []Align{AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight}

	rows := make([][]string, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, []string{
			b.Bucket,
			Hours(b.Hours),
			Rate(b.AvgRate),
			Money(b.Revenue),
			PctVal(b.LoggedPct),
		})
	}
	return RenderAlignedTable(headers, rows, aligns)
}

// RenderKPIs renders the global rollup as labeled lines.
func RenderKPIs(summary domain.KPISummary) string {
	var b strings.Builder
	b.WriteString(Header("totals"))
	b.WriteString("\n")
	b.WriteString(Dim("Hours     ") + Bold(Hours(summary.Hours)) + "\n")
	b.WriteString(Dim("Revenue   ") + Bold(Money(summary.Revenue)) + "\n")
	b.WriteString(Dim("Avg rate  ") + Bold(Rate(summary.AvgRate)) + "\n")
	b.WriteString(Dim("Logged    ") + Bold(PctVal(summary.LoggedPct)) + "\n")
	return b.String()
}

// RenderEvents renders normalized event rows for row-level inspection.
func RenderEvents(events []domain.Event) string {
	headers := []string{"Date", "Src", "Client", "Case", "User", "Role", "Hours", "Rate", "Revenue", "Status"}
	aligns := []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight, AlignLeft}

	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			Day(e.Date),
			SourceBadge(string(e.Source)),
			e.Client,
			e.Case,
			e.User,
			RoleBadge(e.UserRole),
			Hours(e.Hours),
			Rate(e.Rate),
			Money(e.Revenue),
			CaseStatusPill(e.CaseStatus),
		})
	}
	return RenderAlignedTable(headers, rows, aligns)
}

// RenderProfile renders the effective permission profile footer so a
// reader knows which scope the numbers cover.
func RenderProfile(p domain.PermissionProfile) string {
	var caps []string
	if p.CanEdit {
		caps = append(caps, "edit")
	}
	if p.CanApprove {
		caps = append(caps, "approve")
	}
	if p.CanInvoice {
		caps = append(caps, "invoice")
	}
	if p.CanDelete {
		caps = append(caps, "delete")
	}
	if p.ReadOnly {
		caps = []string{"read-only"}
	}
	if len(caps) == 0 {
		caps = append(caps, "view")
	}
	return Dim("scope: " + string(p.Scope) + " · " + strings.Join(caps, ", "))
}
