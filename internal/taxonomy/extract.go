package taxonomy

import (
	"fmt"
	"slices"
)

// ValueSet is a set of distinct raw values. Members are looked up by
// equality; iteration order carries no meaning.
type ValueSet map[string]struct{}

// NewValueSet builds a set from the given values.
func NewValueSet(values ...string) ValueSet {
	set := make(ValueSet, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Has reports whether v is a member.
func (s ValueSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members in lexical order.
func (s ValueSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// DistinctValues collects the distinct non-null values of field across
// records, flattening list values one level. Records where the field is
// absent or null contribute nothing.
func DistinctValues(records []Record, field string) (ValueSet, error) {
	set := make(ValueSet)

	for i, rec := range records {
		val, err := rec.Lookup(field)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		switch val.Kind {
		case KindScalar:
			set[val.Text] = struct{}{}
		case KindList:
			for _, elem := range val.List {
				if elem.Valid {
					set[elem.Text] = struct{}{}
				}
			}
		}
	}

	return set, nil
}
