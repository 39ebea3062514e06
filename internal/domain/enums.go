package domain

// Source identifies which upstream record stream an event came from.
// Event IDs are prefixed with the source so ids from different streams
// cannot collide within a batch.
type Source string

const (
	SourceBillable Source = "billable"
	SourceInvoice  Source = "invoice"
	SourceUnbilled Source = "unbilled"
)

type GroupKey string

const (
	GroupByUser     GroupKey = "user"
	GroupByClient   GroupKey = "client"
	GroupByCase     GroupKey = "case"
	GroupByDate     GroupKey = "date"
	GroupByCaseType GroupKey = "caseType"
)

// ValidGroupKeys is the canonical set of accepted grouping keys.
var ValidGroupKeys = map[string]bool{
	"user": true, "client": true, "case": true,
	"date": true, "caseType": true,
}

// ParseGroupKey maps a raw string to a GroupKey. Unrecognized values
// fall back to GroupByDate rather than erroring.
func ParseGroupKey(s string) GroupKey {
	if ValidGroupKeys[s] {
		return GroupKey(s)
	}
	return GroupByDate
}

// Scope is the visibility breadth a role grants: which rows the holder
// may see, independent of how the constraint is enforced.
type Scope string

const (
	ScopeAll  Scope = "all"
	ScopeTeam Scope = "team"
	ScopeSelf Scope = "self"
)

const (
	RoleAdmin     = "admin"
	RolePartner   = "partner"
	RoleAssociate = "associate"
	RoleParalegal = "paralegal"
	RoleIntern    = "intern"
)
