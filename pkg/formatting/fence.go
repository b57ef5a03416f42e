package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrParseFailed is returned when content cannot be parsed as JSON,
// either directly or after removing a markdown code fence.
var ErrParseFailed = errors.New("failed to parse response")

const fence = "```"

// StripFence trims surrounding whitespace and, when the content opens with a
// markdown code fence (with or without a language tag), drops the opening
// line and the closing fence line. Unfenced content is returned trimmed.
func StripFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, fence) {
		return content
	}

	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return ""
	}

	body := lines[1:]
	if last := strings.TrimSpace(body[len(body)-1]); strings.HasPrefix(last, fence) {
		body = body[:len(body)-1]
	}

	return strings.TrimSpace(strings.Join(body, "\n"))
}

// Parse unmarshals content into T after StripFence.
// Returns ErrParseFailed, wrapping the decoder error, when that fails.
func Parse[T any](content string) (T, error) {
	var result T
	cleaned := StripFence(content)

	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return result, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}

	return result, nil
}
