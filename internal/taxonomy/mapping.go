package taxonomy

import (
	"slices"
	"strings"
)

// Mapping assigns a category label to each raw value.
type Mapping map[string]string

// Identity maps every value to itself.
func Identity(values ValueSet) Mapping {
	m := make(Mapping, len(values))
	for v := range values {
		m[v] = v
	}
	return m
}

// Label returns the label for v, or v itself when the mapping has no entry.
func (m Mapping) Label(v string) string {
	if label, ok := m[v]; ok {
		return label
	}
	return v
}

// Labels returns the distinct labels in lexical order.
func (m Mapping) Labels() []string {
	seen := make(map[string]struct{}, len(m))
	out := make([]string, 0, len(m))
	for _, label := range m {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	slices.Sort(out)
	return out
}

// Outcome is a mapping resolved against the value set it was requested for.
// Fallback is set when the oracle result was discarded in favor of the
// identity mapping; Err then holds the cause.
type Outcome struct {
	Mapping  Mapping
	Fallback bool
	Err      error
	// Filled counts values the oracle omitted or left unlabeled.
	Filled int
	// Dropped counts keys the oracle returned that were never requested.
	Dropped int
}

// Reason describes why the outcome fell back, or "" when it did not.
func (o Outcome) Reason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Recover turns the result of an oracle request into a mapping whose domain
// is exactly values. A non-nil err yields the identity mapping. Otherwise
// keys outside values are dropped and values without a usable label map to
// themselves.
func Recover(values ValueSet, mapping Mapping, err error) Outcome {
	if err != nil {
		return Outcome{
			Mapping:  Identity(values),
			Fallback: true,
			Err:      err,
		}
	}

	out := Outcome{Mapping: make(Mapping, len(values))}

	for v := range values {
		label, ok := mapping[v]
		if !ok || strings.TrimSpace(label) == "" {
			out.Mapping[v] = v
			out.Filled++
			continue
		}
		out.Mapping[v] = label
	}

	for k := range mapping {
		if !values.Has(k) {
			out.Dropped++
		}
	}

	return out
}
