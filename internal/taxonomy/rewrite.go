package taxonomy

import "fmt"

// Apply writes the label of each record's field value to newField.
// Absent and null values become nil, scalars become their label, and lists
// become a []any of labels with order, length, and null elements preserved.
// Values without a mapping entry keep their raw text. field itself is never
// modified. Every record is read before any is written, so a shape error
// leaves the records untouched.
func Apply(records []Record, field, newField string, m Mapping) ([]Record, Mapping, error) {
	values := make([]Value, len(records))
	for i, rec := range records {
		val, err := rec.Lookup(field)
		if err != nil {
			return records, m, fmt.Errorf("record %d: %w", i, err)
		}
		values[i] = val
	}

	for i, rec := range records {
		rec[newField] = relabel(values[i], m)
	}

	return records, m, nil
}

func relabel(val Value, m Mapping) any {
	switch val.Kind {
	case KindScalar:
		return m.Label(val.Text)
	case KindList:
		out := make([]any, len(val.List))
		for i, elem := range val.List {
			if elem.Valid {
				out[i] = m.Label(elem.Text)
			}
		}
		return out
	default:
		return nil
	}
}
