// Package report renders categorization results and value distributions as
// terminal or Markdown tables.
package report

import (
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/JaimeStill/survey/internal/distribution"
	"github.com/JaimeStill/survey/internal/taxonomy"
)

// Mode controls the output format.
type Mode int

const (
	ASCII Mode = iota
	Markdown
)

// ParseMode maps "markdown" or "md" to Markdown; anything else is ASCII.
func ParseMode(s string) Mode {
	switch strings.ToLower(s) {
	case "markdown", "md":
		return Markdown
	default:
		return ASCII
	}
}

// DistributionTable renders counts sorted by descending count.
func DistributionTable(title string, counts map[string]int, mode Mode) string {
	w := newWriter(title, mode)
	w.AppendHeader(table.Row{"Value", "Count"})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})

	total := 0
	for _, e := range distribution.Sorted(counts) {
		w.AppendRow(table.Row{e.Key, e.Count})
		total += e.Count
	}
	w.AppendFooter(table.Row{"Total", total})

	return render(w, mode)
}

// MappingTable renders the label assigned to each raw value, grouped by label.
func MappingTable(field string, m taxonomy.Mapping, mode Mode) string {
	w := newWriter(taxonomy.DerivedField(field), mode)
	w.AppendHeader(table.Row{"Label", "Raw value"})

	raws := make([]string, 0, len(m))
	for raw := range m {
		raws = append(raws, raw)
	}
	slices.SortFunc(raws, func(a, b string) int {
		if c := strings.Compare(m[a], m[b]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	for _, raw := range raws {
		w.AppendRow(table.Row{m[raw], raw})
	}
	w.AppendFooter(table.Row{len(m.Labels()), len(m)})

	return render(w, mode)
}

// FieldsTable summarizes a categorization run, one row per field.
func FieldsTable(results []taxonomy.FieldResult, mode Mode) string {
	w := newWriter("", mode)
	w.AppendHeader(table.Row{"Field", "Derived field", "Values", "Labels", "Fallback"})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	for _, r := range results {
		fallback := "no"
		if r.Fallback {
			fallback = "yes: " + r.Reason
		}
		w.AppendRow(table.Row{r.Field, r.DerivedField, r.ValueCount, r.LabelCount, fallback})
	}

	return render(w, mode)
}

func newWriter(title string, mode Mode) table.Writer {
	w := table.NewWriter()
	if mode == ASCII {
		w.SetStyle(table.StyleLight)
	}
	if title != "" {
		w.SetTitle(title)
	}
	return w
}

func render(w table.Writer, mode Mode) string {
	if mode == Markdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}
