package taxonomy

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OverflowLabel collects rare or unclear values.
const OverflowLabel = "Other"

const promptTemplate = `Cluster the values of the field %q into at most %d short, mutually exclusive, human-readable category labels.
Assign rare or unclear values to the label %q.
Respond with a single JSON object that maps every value, exactly as given, to its category label. Do not include any prose.

Values:
%s`

// Prompt renders the clustering instruction for the given values.
// Values appear as a JSON array in lexical order.
func Prompt(field string, values ValueSet, maxCategories int) (string, error) {
	rendered, err := json.MarshalIndent(values.Sorted(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("render values: %w", err)
	}

	prompt := fmt.Sprintf(promptTemplate, field, maxCategories, OverflowLabel, rendered)
	return strings.TrimSpace(prompt), nil
}
