// Package formatting provides parsing helpers for model responses and
// human-readable size values used by configuration and request logging.
package formatting

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var units = []string{"B", "KB", "MB", "GB", "TB", "PB"}

var sizePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([A-Za-z]*)$`)

// ParseBytes converts a size such as "50MB" or "512 kb" into a byte count
// using base-1024 units. A bare number is a byte count.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size string")
	}

	m := sizePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size number: %w", err)
	}

	unit := strings.ToUpper(m[2])
	if unit == "" {
		return int64(n), nil
	}

	exp := slices.Index(units, unit)
	if exp < 0 {
		return 0, fmt.Errorf("unknown byte size unit: %q", unit)
	}

	return int64(n * math.Pow(1024, float64(exp))), nil
}

// FormatBytes renders n with the largest unit that keeps the value >= 1.
func FormatBytes(n int64, precision int) string {
	if n <= 0 {
		return "0 B"
	}

	exp := 0
	v := float64(n)
	for v >= 1024 && exp < len(units)-1 {
		v /= 1024
		exp++
	}

	return strconv.FormatFloat(v, 'f', max(precision, 0), 64) + " " + units[exp]
}
