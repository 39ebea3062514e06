// Package permission derives capability and visibility profiles from
// roles. One pure function replaces per-page permission flags: callers
// pass (role, readOnlyOverride) and get an immutable value back. It is
// cheap enough to call on every render without memoization.
package permission

import (
	"strings"

	"github.com/jmertens/billsight/internal/domain"
)

// Derive maps a role string to its PermissionProfile. Matching is
// case-insensitive. Unrecognized roles get the most restrictive
// profile (intern-equivalent). The explicit override can only add
// restriction: readOnly is explicitReadOnly OR role-implied, never
// cleared by the override being false.
func Derive(role string, explicitReadOnly bool) domain.PermissionProfile {
	r := strings.ToLower(strings.TrimSpace(role))
	if !knownRoles[r] {
		r = domain.RoleIntern
	}

	readOnly := explicitReadOnly || r == domain.RoleIntern || r == domain.RoleAssociate
	p := domain.PermissionProfile{
		ReadOnly: readOnly,
		Scope:    scopeFor(r),
	}

	switch r {
	case domain.RoleAdmin:
		p.CanEdit = true
		p.CanApprove = true
		p.CanInvoice = true
		p.CanDelete = true
		p.CanViewAnalytics = true
	case domain.RolePartner:
		p.CanEdit = true
		p.CanApprove = true
		p.CanInvoice = true
		p.CanViewAnalytics = true
	case domain.RoleParalegal:
		p.CanEdit = true
	}

	// Read-only wins over any role-granted mutation capability.
	if p.ReadOnly {
		p.CanEdit = false
		p.CanApprove = false
		p.CanInvoice = false
		p.CanDelete = false
	}
	return p
}

var knownRoles = map[string]bool{
	domain.RoleAdmin:     true,
	domain.RolePartner:   true,
	domain.RoleAssociate: true,
	domain.RoleParalegal: true,
	domain.RoleIntern:    true,
}

// scopeFor is total: every role string maps to exactly one scope.
func scopeFor(role string) domain.Scope {
	switch role {
	case domain.RoleAdmin:
		return domain.ScopeAll
	case domain.RolePartner:
		return domain.ScopeTeam
	default:
		return domain.ScopeSelf
	}
}

// ScopePredicate builds the row-visibility predicate for a scope. The
// resolver only classifies; enforcement stays with the caller, which
// supplies the identity context here and applies the returned func to
// each row's owner id.
func ScopePredicate(scope domain.Scope, currentUserID string, teamMemberIDs []string) func(ownerID string) bool {
	switch scope {
	case domain.ScopeAll:
		return func(string) bool { return true }
	case domain.ScopeTeam:
		team := make(map[string]bool, len(teamMemberIDs)+1)
		team[currentUserID] = true
		for _, id := range teamMemberIDs {
			team[id] = true
		}
		return func(ownerID string) bool { return team[ownerID] }
	default:
		return func(ownerID string) bool { return ownerID == currentUserID }
	}
}
