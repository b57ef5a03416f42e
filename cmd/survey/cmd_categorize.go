package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/survey/internal/config"
	"github.com/JaimeStill/survey/internal/corpus"
	"github.com/JaimeStill/survey/internal/oracle"
	"github.com/JaimeStill/survey/internal/report"
	"github.com/JaimeStill/survey/internal/taxonomy"
)

var categorizeFlags struct {
	in            string
	out           string
	fields        []string
	maxCategories int
	concurrency   int
	format        string
	mappings      string
	report        string
	oracle        config.OracleConfig
}

var categorizeCmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize fields of a corpus and write the clean corpus",
	Long: "categorize asks the configured oracle for a value-to-label mapping per\n" +
		"field and adds <field>_clean to every record. Fields are processed in\n" +
		"order, so a later field may name an earlier field's derived name.\n\n" +
		"Oracle settings come from SURVEY_ORACLE_* variables; flags override them.",
	RunE: runCategorize,
}

func init() {
	f := categorizeCmd.Flags()
	f.StringVarP(&categorizeFlags.in, "in", "i", "", "Corpus file, JSON array or JSON lines; - for stdin (required)")
	f.StringVarP(&categorizeFlags.out, "out", "o", "-", "Clean corpus destination; - for stdout")
	f.StringArrayVarP(&categorizeFlags.fields, "field", "f", nil, "Field to categorize (repeatable; default SURVEY_TAXONOMY_FIELDS)")
	f.IntVar(&categorizeFlags.maxCategories, "max-categories", 0, "Category bound per field (default SURVEY_TAXONOMY_MAX_CATEGORIES or 20)")
	f.IntVar(&categorizeFlags.concurrency, "concurrency", 0, "Concurrent oracle calls across independent fields")
	f.StringVar(&categorizeFlags.format, "format", "json", "Output format: json or jsonl")
	f.StringVar(&categorizeFlags.mappings, "mappings", "", "Write per-field mappings as YAML to this file")
	f.StringVar(&categorizeFlags.report, "report", "", "Write a Markdown mapping report to this file")

	f.StringVar(&categorizeFlags.oracle.Provider, "provider", "", "Oracle provider: ollama, azure, or anthropic")
	f.StringVar(&categorizeFlags.oracle.Model, "model", "", "Oracle model")
	f.StringVar(&categorizeFlags.oracle.BaseURL, "base-url", "", "Oracle base URL")
	f.StringVar(&categorizeFlags.oracle.Timeout, "timeout", "", "Per-call oracle timeout, e.g. 2m")

	_ = categorizeCmd.MarkFlagRequired("in")
}

type fieldMappings struct {
	Field        string            `yaml:"field"`
	DerivedField string            `yaml:"derived_field"`
	Fallback     bool              `yaml:"fallback"`
	Reason       string            `yaml:"reason,omitempty"`
	Mapping      map[string]string `yaml:"mapping"`
}

// taxonomyOverrides collects the taxonomy flags given on the command line.
func taxonomyOverrides(changed func(name string) bool) *config.TaxonomyConfig {
	var o config.TaxonomyConfig
	if changed("field") {
		o.Fields = categorizeFlags.fields
	}
	if changed("max-categories") {
		o.MaxCategories = categorizeFlags.maxCategories
	}
	if changed("concurrency") {
		o.Concurrency = categorizeFlags.concurrency
	}
	return &o
}

func runCategorize(cmd *cobra.Command, _ []string) error {
	format, err := corpus.ParseFormat(categorizeFlags.format)
	if err != nil {
		return err
	}

	var tax config.TaxonomyConfig
	if err := tax.FinalizeWith(taxonomyOverrides(cmd.Flags().Changed)); err != nil {
		return fmt.Errorf("taxonomy: %w", err)
	}

	var ocfg config.OracleConfig
	if err := ocfg.FinalizeWith(&categorizeFlags.oracle); err != nil {
		return fmt.Errorf("oracle: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr())

	o, err := oracle.New(&ocfg, logger)
	if err != nil {
		return err
	}

	records, err := readCorpus(cmd, categorizeFlags.in)
	if err != nil {
		return err
	}

	logger.Info(
		"categorizing corpus",
		"records", len(records),
		"fields", strings.Join(tax.Fields, ","),
		"max_categories", tax.MaxCategories,
		"provider", ocfg.Provider,
		"model", ocfg.Model,
	)

	session := taxonomy.NewSession(
		records,
		taxonomy.NewMapper(o, logger),
		logger,
		taxonomy.Options{Concurrency: tax.Concurrency},
	)

	results, err := session.CategorizeFields(cmd.Context(), tax.Fields, tax.MaxCategories)
	if err != nil {
		return err
	}

	if err := writeOutput(cmd, categorizeFlags.out, func(w io.Writer) error {
		return corpus.Encode(w, session.Records(), format)
	}); err != nil {
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(), report.FieldsTable(results, report.ASCII))

	if categorizeFlags.mappings != "" {
		if err := writeMappings(categorizeFlags.mappings, results); err != nil {
			return err
		}
	}
	if categorizeFlags.report != "" {
		if err := writeReport(categorizeFlags.report, results); err != nil {
			return err
		}
	}
	return nil
}

func writeMappings(path string, results []taxonomy.FieldResult) error {
	docs := make([]fieldMappings, 0, len(results))
	for _, r := range results {
		docs = append(docs, fieldMappings{
			Field:        r.Field,
			DerivedField: r.DerivedField,
			Fallback:     r.Fallback,
			Reason:       r.Reason,
			Mapping:      r.Mapping,
		})
	}

	return writeFile(path, func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(docs); err != nil {
			return err
		}
		return enc.Close()
	})
}

func writeReport(path string, results []taxonomy.FieldResult) error {
	return writeFile(path, func(w io.Writer) error {
		var b strings.Builder
		b.WriteString("# Category mappings\n\n")
		b.WriteString(report.FieldsTable(results, report.Markdown))
		b.WriteString("\n")
		for _, r := range results {
			b.WriteString("\n## " + r.Field + "\n\n")
			b.WriteString(report.MappingTable(r.Field, r.Mapping, report.Markdown))
			b.WriteString("\n")
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}
