package taxonomy_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/survey/internal/taxonomy"
)

func TestApply(t *testing.T) {
	m := taxonomy.Mapping{"a": "X", "b": "Y"}

	tests := []struct {
		name   string
		record taxonomy.Record
		want   any
	}{
		{"absent", taxonomy.Record{"other": "keep"}, nil},
		{"null", taxonomy.Record{"f": nil}, nil},
		{"scalar", taxonomy.Record{"f": "a"}, "X"},
		{"unmapped scalar", taxonomy.Record{"f": "z"}, "z"},
		{"list", taxonomy.Record{"f": []any{"a", "b", "a"}}, []any{"X", "Y", "X"}},
		{"list with null", taxonomy.Record{"f": []any{"a", nil, "q"}}, []any{"X", nil, "q"}},
		{"empty list", taxonomy.Record{"f": []any{}}, []any{}},
		{"number becomes text", taxonomy.Record{"f": json.Number("2021")}, "2021"},
		{"bool element becomes text", taxonomy.Record{"f": []any{true, "a"}}, []any{"true", "X"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := cloneRecord(tt.record)

			records, used, err := taxonomy.Apply([]taxonomy.Record{tt.record}, "f", "f_clean", m)
			if err != nil {
				t.Fatalf("Apply error: %v", err)
			}

			got, ok := records[0]["f_clean"]
			if !ok {
				t.Fatal("f_clean not set")
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("f_clean mismatch (-want +got):\n%s", diff)
			}

			delete(records[0], "f_clean")
			if diff := cmp.Diff(before, records[0]); diff != "" {
				t.Errorf("other fields changed (-want +got):\n%s", diff)
			}

			if diff := cmp.Diff(m, used); diff != "" {
				t.Errorf("returned mapping mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyPreservesShape(t *testing.T) {
	records := []taxonomy.Record{
		{"f": "a"},
		{"f": []any{"a", "b", "b", "c"}},
		{"f": []string{"b"}},
		{},
	}

	if _, _, err := taxonomy.Apply(records, "f", "g", taxonomy.Mapping{"a": "X"}); err != nil {
		t.Fatalf("Apply error: %v", err)
	}

	for i, rec := range records {
		orig, _ := rec.Lookup("f")
		derived, _ := rec.Lookup("g")

		if orig.Kind == taxonomy.KindAbsent {
			if derived.Kind != taxonomy.KindNull {
				t.Errorf("record %d: kind = %v, want null", i, derived.Kind)
			}
			continue
		}
		if orig.Kind != derived.Kind {
			t.Errorf("record %d: kind = %v, want %v", i, derived.Kind, orig.Kind)
		}
		if len(orig.List) != len(derived.List) {
			t.Errorf("record %d: length = %d, want %d", i, len(derived.List), len(orig.List))
		}
	}
}

func TestApplyOverwritesDerived(t *testing.T) {
	records := []taxonomy.Record{{"f": "a", "f_clean": "stale"}}

	if _, _, err := taxonomy.Apply(records, "f", "f_clean", taxonomy.Mapping{"a": "X"}); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if records[0]["f_clean"] != "X" {
		t.Errorf("f_clean = %v, want X", records[0]["f_clean"])
	}
}

func TestApplyShapeViolationLeavesRecords(t *testing.T) {
	records := []taxonomy.Record{
		{"f": "a"},
		{"f": []any{[]any{"nested"}}},
	}

	_, _, err := taxonomy.Apply(records, "f", "f_clean", taxonomy.Mapping{"a": "X"})
	if !errors.Is(err, taxonomy.ErrShapeViolation) {
		t.Fatalf("error = %v, want ErrShapeViolation", err)
	}

	for i, rec := range records {
		if _, ok := rec["f_clean"]; ok {
			t.Errorf("record %d was mutated", i)
		}
	}
}

func cloneRecord(r taxonomy.Record) taxonomy.Record {
	out := make(taxonomy.Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
