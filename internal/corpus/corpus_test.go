package corpus_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/survey/internal/corpus"
	"github.com/JaimeStill/survey/internal/taxonomy"
)

func TestDecode(t *testing.T) {
	want := []taxonomy.Record{
		{"title": "a", "year": json.Number("2021"), "tags": []any{"x", nil}},
		{"title": "b", "year": nil},
	}

	tests := []struct {
		name  string
		input string
	}{
		{"array", `[{"title":"a","year":2021,"tags":["x",null]},{"title":"b","year":null}]`},
		{"indented array", "\n  [\n {\"title\":\"a\",\"year\":2021,\"tags\":[\"x\",null]},\n {\"title\":\"b\",\"year\":null}\n]\n"},
		{"lines", "{\"title\":\"a\",\"year\":2021,\"tags\":[\"x\",null]}\n{\"title\":\"b\",\"year\":null}\n"},
		{"lines with blank line", "{\"title\":\"a\",\"year\":2021,\"tags\":[\"x\",null]}\n\n{\"title\":\"b\",\"year\":null}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := corpus.Decode(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("records mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	for _, input := range []string{"", "  \n", "[]"} {
		got, err := corpus.Decode(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Decode(%q) error: %v", input, err)
		}
		if len(got) != 0 {
			t.Errorf("Decode(%q) = %v, want empty", input, got)
		}
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"scalar", `"hello"`},
		{"array of strings", `["a","b"]`},
		{"null record", `[{"a":1},null]`},
		{"broken line", "{\"a\":1}\n{\"a\":"},
		{"trailing data", `[{"a":1}] [{"b":2}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := corpus.Decode(strings.NewReader(tt.input))
			if !errors.Is(err, corpus.ErrInvalidCorpus) {
				t.Errorf("error = %v, want ErrInvalidCorpus", err)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	records := []taxonomy.Record{
		{"f": "a", "f_clean": "A"},
		{"f": []any{"b"}, "f_clean": []any{"B"}},
	}

	t.Run("jsonl writes one object per line", func(t *testing.T) {
		var buf bytes.Buffer
		if err := corpus.Encode(&buf, records, corpus.FormatJSONL); err != nil {
			t.Fatalf("Encode error: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 2 {
			t.Fatalf("lines = %d, want 2", len(lines))
		}
		if lines[0] != `{"f":"a","f_clean":"A"}` {
			t.Errorf("line 0 = %s", lines[0])
		}
	})

	t.Run("json decodes back to the same records", func(t *testing.T) {
		var buf bytes.Buffer
		if err := corpus.Encode(&buf, records, corpus.FormatJSON); err != nil {
			t.Fatalf("Encode error: %v", err)
		}

		got, err := corpus.Decode(&buf)
		if err != nil {
			t.Fatalf("Decode error: %v", err)
		}
		if diff := cmp.Diff(records, got); diff != "" {
			t.Errorf("records mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("nil records encode as empty array", func(t *testing.T) {
		var buf bytes.Buffer
		if err := corpus.Encode(&buf, nil, corpus.FormatJSON); err != nil {
			t.Fatalf("Encode error: %v", err)
		}
		if strings.TrimSpace(buf.String()) != "[]" {
			t.Errorf("output = %q, want []", buf.String())
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		err := corpus.Encode(&bytes.Buffer{}, records, corpus.Format("csv"))
		if !errors.Is(err, corpus.ErrUnknownFormat) {
			t.Errorf("error = %v, want ErrUnknownFormat", err)
		}
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    corpus.Format
		wantErr bool
	}{
		{"", corpus.FormatJSON, false},
		{"JSON", corpus.FormatJSON, false},
		{"jsonl", corpus.FormatJSONL, false},
		{"yaml", "", true},
	}

	for _, tt := range tests {
		got, err := corpus.ParseFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseFormat(%q) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
