// Package distribution counts how often each value of a field occurs across
// a corpus. Date fields are bucketed by year and list fields count each
// element.
package distribution

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/JaimeStill/survey/internal/taxonomy"
)

var (
	ErrUndetermined    = errors.New("cannot determine counting strategy")
	ErrUnknownStrategy = errors.New("unknown counting strategy")
)

// Strategy selects how field values are turned into counted keys.
type Strategy string

const (
	StrategyAuto   Strategy = "auto"
	StrategyYear   Strategy = "year"
	StrategyString Strategy = "string"
	StrategyList   Strategy = "list"
)

// ParseStrategy validates a strategy name. An empty name selects auto.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(s); st {
	case "":
		return StrategyAuto, nil
	case StrategyAuto, StrategyYear, StrategyString, StrategyList:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Count tallies the non-null values of field across records.
//
// With StrategyAuto the strategy is inferred: year when every value is a
// date, list when any value is a list, string when every value is a string.
// Anything else returns ErrUndetermined.
func Count(records []taxonomy.Record, field string, strategy Strategy) (map[string]int, error) {
	raw := make([]any, 0, len(records))
	for _, rec := range records {
		if v, ok := rec[field]; ok && v != nil {
			raw = append(raw, v)
		}
	}

	if strategy == "" || strategy == StrategyAuto {
		inferred, err := infer(raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		strategy = inferred
	}

	counts := make(map[string]int)

	switch strategy {
	case StrategyYear:
		for _, v := range raw {
			if t, ok := asTime(v); ok {
				counts[strconv.Itoa(t.Year())]++
			}
		}
	case StrategyString:
		for _, v := range raw {
			if s, ok := v.(string); ok {
				counts[s]++
			}
		}
	case StrategyList:
		for i, rec := range records {
			val, err := rec.Lookup(field)
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
			switch val.Kind {
			case taxonomy.KindScalar:
				counts[val.Text]++
			case taxonomy.KindList:
				for _, elem := range val.List {
					if elem.Valid {
						counts[elem.Text]++
					}
				}
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}

	return counts, nil
}

// Entry is one counted key.
type Entry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Sorted orders counts by descending count, then ascending key.
func Sorted(counts map[string]int) []Entry {
	entries := make([]Entry, 0, len(counts))
	for k, n := range counts {
		entries = append(entries, Entry{Key: k, Count: n})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return entries
}

func infer(raw []any) (Strategy, error) {
	allDates, anyList, allStrings := true, false, true

	for _, v := range raw {
		if _, ok := asTime(v); !ok {
			allDates = false
		}
		switch v.(type) {
		case []any, []string:
			anyList = true
		}
		if _, ok := v.(string); !ok {
			allStrings = false
		}
	}

	switch {
	case allDates:
		return StrategyYear, nil
	case anyList:
		return StrategyList, nil
	case allStrings:
		return StrategyString, nil
	default:
		return "", ErrUndetermined
	}
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}
