package domain

// RefKind distinguishes the two shapes upstream systems use for entity
// references: a bare id string, or an embedded object with id and name.
type RefKind string

const (
	RefID       RefKind = "id"
	RefEmbedded RefKind = "embedded"
)

// Ref is a tagged union over the reference shapes found in raw records.
// It replaces scattered type switches with one resolver.
type Ref struct {
	Kind RefKind
	ID   string
	Name string
}

// RefFrom builds a Ref from whatever a raw field holds. Strings and
// numbers become id refs; maps become embedded refs with whichever of
// id/name they carry. Anything else yields a zero Ref.
func RefFrom(v any) Ref {
	switch val := v.(type) {
	case nil:
		return Ref{}
	case map[string]any:
		return Ref{
			Kind: RefEmbedded,
			ID:   Str(first(val, "id", "_id", "uuid")),
			Name: Str(first(val, "name", "title", "displayName")),
		}
	default:
		s := Str(val)
		if s == "" {
			return Ref{}
		}
		return Ref{Kind: RefID, ID: s}
	}
}

// Display resolves the string shown for this reference: name, then id.
func (r Ref) Display() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// IsZero reports whether the ref carries no information at all.
func (r Ref) IsZero() bool {
	return r.ID == "" && r.Name == ""
}

func first(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}
