// Package taxonomy clusters free-text categorical fields of a corpus into a
// bounded label set. Distinct values are extracted from the records, sent to a
// classification oracle for a value to label mapping, and written back onto
// every record under a derived field.
package taxonomy

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is one corpus entry as an open field to value mapping.
type Record map[string]any

// Kind tags the shape of a field value read through Record.Lookup.
type Kind int

const (
	KindAbsent Kind = iota
	KindNull
	KindScalar
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Scalar is a list element. Valid is false for a null element.
type Scalar struct {
	Text  string
	Valid bool
}

// Value is the schema-on-read view of a field.
// Text is set for KindScalar, List for KindList.
type Value struct {
	Kind Kind
	Text string
	List []Scalar
}

// Lookup reads field from the record. Non-string scalars are coerced to their
// canonical text form. Nested lists and objects return ErrShapeViolation.
func (r Record) Lookup(field string) (Value, error) {
	raw, ok := r[field]
	if !ok {
		return Value{Kind: KindAbsent}, nil
	}

	switch v := raw.(type) {
	case nil:
		return Value{Kind: KindNull}, nil
	case []any:
		list := make([]Scalar, len(v))
		for i, elem := range v {
			if elem == nil {
				continue
			}
			text, err := scalarText(elem)
			if err != nil {
				return Value{}, fmt.Errorf("field %q element %d: %w", field, i, err)
			}
			list[i] = Scalar{Text: text, Valid: true}
		}
		return Value{Kind: KindList, List: list}, nil
	case []string:
		list := make([]Scalar, len(v))
		for i, s := range v {
			list[i] = Scalar{Text: s, Valid: true}
		}
		return Value{Kind: KindList, List: list}, nil
	}

	text, err := scalarText(raw)
	if err != nil {
		return Value{}, fmt.Errorf("field %q: %w", field, err)
	}
	return Value{Kind: KindScalar, Text: text}, nil
}

func scalarText(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case json.Number:
		return s.String(), nil
	case bool:
		return strconv.FormatBool(s), nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32), nil
	case int:
		return strconv.Itoa(s), nil
	case int64:
		return strconv.FormatInt(s, 10), nil
	case int32:
		return strconv.FormatInt(int64(s), 10), nil
	case uint:
		return strconv.FormatUint(uint64(s), 10), nil
	case uint64:
		return strconv.FormatUint(s, 10), nil
	case uint32:
		return strconv.FormatUint(uint64(s), 10), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrShapeViolation, v)
	}
}

// DerivedField names the field that holds the clustered labels of field.
func DerivedField(field string) string {
	return field + "_clean"
}
