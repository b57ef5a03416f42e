// Package corpus reads and writes record collections as a JSON array or as
// JSON lines.
package corpus

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/JaimeStill/survey/internal/taxonomy"
)

var (
	ErrInvalidCorpus = errors.New("invalid corpus")
	ErrUnknownFormat = errors.New("unknown corpus format")
)

// Format selects the corpus encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
)

// ParseFormat validates a format name. An empty name selects FormatJSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatJSONL:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType returns the media type used when the format is stored or served.
func (f Format) ContentType() string {
	if f == FormatJSONL {
		return "application/x-ndjson"
	}
	return "application/json"
}

// Decode reads records from r, detecting a top-level JSON array or a stream
// of JSON objects. Numbers decode as json.Number so their text survives
// categorization. Empty input yields an empty corpus.
func Decode(r io.Reader) ([]taxonomy.Record, error) {
	br := bufio.NewReader(r)

	first, err := peekNonSpace(br)
	if err == io.EOF {
		return []taxonomy.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCorpus, err)
	}

	dec := json.NewDecoder(br)
	dec.UseNumber()

	switch first {
	case '[':
		return decodeArray(dec)
	case '{':
		return decodeStream(dec)
	default:
		return nil, fmt.Errorf("%w: unexpected %q at start of input", ErrInvalidCorpus, first)
	}
}

// Encode writes records to w in the given format.
func Encode(w io.Writer, records []taxonomy.Record, format Format) error {
	switch format {
	case FormatJSON, "":
		if records == nil {
			records = []taxonomy.Record{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case FormatJSONL:
		enc := json.NewEncoder(w)
		for i, rec := range records {
			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func decodeArray(dec *json.Decoder) ([]taxonomy.Record, error) {
	var records []taxonomy.Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCorpus, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after array", ErrInvalidCorpus)
	}
	if records == nil {
		records = []taxonomy.Record{}
	}
	return records, validate(records)
}

func decodeStream(dec *json.Decoder) ([]taxonomy.Record, error) {
	records := make([]taxonomy.Record, 0)
	for line := 1; ; line++ {
		var rec taxonomy.Record
		err := dec.Decode(&rec)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrInvalidCorpus, line, err)
		}
		records = append(records, rec)
	}
	return records, validate(records)
}

func validate(records []taxonomy.Record) error {
	for i, rec := range records {
		if rec == nil {
			return fmt.Errorf("%w: record %d is null", ErrInvalidCorpus, i)
		}
	}
	return nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		if b == 0xEF {
			// UTF-8 byte order mark
			if _, err := br.Discard(2); err != nil {
				return 0, err
			}
			continue
		}
		if !unicode.IsSpace(rune(b)) {
			return b, br.UnreadByte()
		}
	}
}
