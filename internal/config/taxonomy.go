package config

import (
	"fmt"

	"github.com/JaimeStill/survey/pkg/envvar"
)

const (
	EnvTaxonomyMaxCategories = "SURVEY_TAXONOMY_MAX_CATEGORIES"
	EnvTaxonomyConcurrency   = "SURVEY_TAXONOMY_CONCURRENCY"
	EnvTaxonomyFields        = "SURVEY_TAXONOMY_FIELDS"
)

// TaxonomyConfig holds categorization defaults. Fields is the default field
// list when a run names none.
type TaxonomyConfig struct {
	MaxCategories int      `toml:"max_categories"`
	Concurrency   int      `toml:"concurrency"`
	Fields        []string `toml:"fields"`
}

// Finalize applies defaults, environment overrides, and validation.
func (c *TaxonomyConfig) Finalize() error {
	return c.FinalizeWith(nil)
}

// FinalizeWith is Finalize with overrides that take precedence over the
// environment, such as command-line flags.
func (c *TaxonomyConfig) FinalizeWith(overrides *TaxonomyConfig) error {
	if c.MaxCategories == 0 {
		c.MaxCategories = 20
	}
	if c.Concurrency == 0 {
		c.Concurrency = 1
	}
	if len(c.Fields) == 0 {
		c.Fields = []string{"data_source_type", "fraud_type", "technical_approach_category"}
	}

	envvar.Int(&c.MaxCategories, EnvTaxonomyMaxCategories)
	envvar.Int(&c.Concurrency, EnvTaxonomyConcurrency)
	envvar.List(&c.Fields, EnvTaxonomyFields)

	if overrides != nil {
		c.Merge(overrides)
	}

	if c.MaxCategories < 1 {
		return fmt.Errorf("max_categories must be positive: %d", c.MaxCategories)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be positive: %d", c.Concurrency)
	}
	return nil
}

// Merge overwrites fields that are set in overlay.
func (c *TaxonomyConfig) Merge(overlay *TaxonomyConfig) {
	if overlay.MaxCategories != 0 {
		c.MaxCategories = overlay.MaxCategories
	}
	if overlay.Concurrency != 0 {
		c.Concurrency = overlay.Concurrency
	}
	if overlay.Fields != nil {
		c.Fields = overlay.Fields
	}
}
