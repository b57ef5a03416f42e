package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/survey/internal/distribution"
	"github.com/JaimeStill/survey/internal/report"
)

var countFlags struct {
	in       string
	field    string
	strategy string
	markdown bool
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count the values of one field across a corpus",
	Long: "count tallies a field by year, by string value, or by list element.\n" +
		"The auto strategy picks year when every value is a date, list when any\n" +
		"value is a list, and string when every value is a string.",
	RunE: runCount,
}

func init() {
	f := countCmd.Flags()
	f.StringVarP(&countFlags.in, "in", "i", "", "Corpus file, JSON array or JSON lines; - for stdin (required)")
	f.StringVarP(&countFlags.field, "field", "f", "", "Field to count (required)")
	f.StringVar(&countFlags.strategy, "strategy", "auto", "Counting strategy: auto, year, string, or list")
	f.BoolVar(&countFlags.markdown, "markdown", false, "Render the table as Markdown")

	_ = countCmd.MarkFlagRequired("in")
	_ = countCmd.MarkFlagRequired("field")
}

func runCount(cmd *cobra.Command, _ []string) error {
	strategy, err := distribution.ParseStrategy(countFlags.strategy)
	if err != nil {
		return err
	}

	records, err := readCorpus(cmd, countFlags.in)
	if err != nil {
		return err
	}

	counts, err := distribution.Count(records, countFlags.field, strategy)
	if err != nil {
		return err
	}

	mode := report.ASCII
	if countFlags.markdown {
		mode = report.Markdown
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.DistributionTable(countFlags.field, counts, mode))
	return nil
}
