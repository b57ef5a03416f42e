package config

import (
	"fmt"
	"maps"
	"time"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/JaimeStill/survey/pkg/envvar"
)

// Oracle provider names. Ollama and Azure are served through go-agents.
const (
	ProviderOllama    = "ollama"
	ProviderAzure     = "azure"
	ProviderAnthropic = "anthropic"
)

const (
	EnvOracleProvider   = "SURVEY_ORACLE_PROVIDER"
	EnvOracleModel      = "SURVEY_ORACLE_MODEL"
	EnvOracleBaseURL    = "SURVEY_ORACLE_BASE_URL"
	EnvOracleToken      = "SURVEY_ORACLE_TOKEN"
	EnvOracleDeployment = "SURVEY_ORACLE_DEPLOYMENT"
	EnvOracleAPIVersion = "SURVEY_ORACLE_API_VERSION"
	EnvOracleAuthType   = "SURVEY_ORACLE_AUTH_TYPE"
	EnvOracleMaxTokens  = "SURVEY_ORACLE_MAX_TOKENS"
	EnvOracleTimeout    = "SURVEY_ORACLE_TIMEOUT"
)

// OracleConfig selects and configures the language model that labels
// category values.
type OracleConfig struct {
	Provider   string `toml:"provider"`
	Model      string `toml:"model"`
	BaseURL    string `toml:"base_url"`
	Token      string `toml:"token"`
	Deployment string `toml:"deployment"`
	APIVersion string `toml:"api_version"`
	AuthType   string `toml:"auth_type"`
	MaxTokens  int    `toml:"max_tokens"`
	// Timeout bounds a single oracle call. Empty means no bound.
	Timeout string `toml:"timeout"`
}

// TimeoutDuration returns Timeout as a time.Duration, or zero when unset.
func (c *OracleConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// AgentConfig translates the section into a go-agents configuration,
// starting from the go-agents defaults.
func (c *OracleConfig) AgentConfig() gaconfig.AgentConfig {
	cfg := gaconfig.DefaultAgentConfig()
	cfg.Name = "survey-oracle"

	if cfg.Provider == nil {
		cfg.Provider = &gaconfig.ProviderConfig{}
	}
	cfg.Provider.Options = make(map[string]any)
	if cfg.Model == nil {
		cfg.Model = &gaconfig.ModelConfig{}
	}

	cfg.Provider.Name = c.Provider
	if c.BaseURL != "" {
		cfg.Provider.BaseURL = c.BaseURL
	}
	if c.Model != "" {
		cfg.Model.Name = c.Model
	}

	setOption := func(key, v string) {
		if v != "" {
			cfg.Provider.Options[key] = v
		}
	}
	setOption("token", c.Token)
	setOption("deployment", c.Deployment)
	setOption("api_version", c.APIVersion)
	setOption("auth_type", c.AuthType)

	if c.MaxTokens > 0 {
		if cfg.Model.Capabilities == nil {
			cfg.Model.Capabilities = make(map[string]map[string]any)
		}
		chat := make(map[string]any, len(cfg.Model.Capabilities["chat"])+1)
		maps.Copy(chat, cfg.Model.Capabilities["chat"])
		chat["max_tokens"] = c.MaxTokens
		cfg.Model.Capabilities["chat"] = chat
	}

	return cfg
}

// Finalize applies defaults, environment overrides, and validation.
func (c *OracleConfig) Finalize() error {
	return c.FinalizeWith(nil)
}

// FinalizeWith is Finalize with overrides that take precedence over the
// environment, such as command-line flags.
func (c *OracleConfig) FinalizeWith(overrides *OracleConfig) error {
	c.loadEnv()
	if overrides != nil {
		c.Merge(overrides)
	}
	c.loadDefaults()
	return c.validate()
}

// Merge overwrites fields that are set in overlay.
func (c *OracleConfig) Merge(overlay *OracleConfig) {
	mergeString(&c.Provider, overlay.Provider)
	mergeString(&c.Model, overlay.Model)
	mergeString(&c.BaseURL, overlay.BaseURL)
	mergeString(&c.Token, overlay.Token)
	mergeString(&c.Deployment, overlay.Deployment)
	mergeString(&c.APIVersion, overlay.APIVersion)
	mergeString(&c.AuthType, overlay.AuthType)
	mergeString(&c.Timeout, overlay.Timeout)
	if overlay.MaxTokens != 0 {
		c.MaxTokens = overlay.MaxTokens
	}
}

func (c *OracleConfig) loadEnv() {
	envvar.String(&c.Provider, EnvOracleProvider)
	envvar.String(&c.Model, EnvOracleModel)
	envvar.String(&c.BaseURL, EnvOracleBaseURL)
	envvar.String(&c.Token, EnvOracleToken)
	envvar.String(&c.Deployment, EnvOracleDeployment)
	envvar.String(&c.APIVersion, EnvOracleAPIVersion)
	envvar.String(&c.AuthType, EnvOracleAuthType)
	envvar.Int(&c.MaxTokens, EnvOracleMaxTokens)
	envvar.String(&c.Timeout, EnvOracleTimeout)
}

// Defaults depend on the provider, so they apply after env overrides.
func (c *OracleConfig) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderOllama
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 4096
	}

	switch c.Provider {
	case ProviderOllama:
		if c.BaseURL == "" {
			c.BaseURL = "http://localhost:11434"
		}
		if c.Model == "" {
			c.Model = "llama3.2:3b"
		}
	case ProviderAnthropic:
		if c.Model == "" {
			c.Model = "claude-sonnet-4-5"
		}
	}
}

func (c *OracleConfig) validate() error {
	switch c.Provider {
	case ProviderOllama, ProviderAnthropic:
	case ProviderAzure:
		if c.BaseURL == "" {
			return fmt.Errorf("base_url required for azure")
		}
		if c.Deployment == "" {
			return fmt.Errorf("deployment required for azure")
		}
	default:
		return fmt.Errorf("unknown provider: %s", c.Provider)
	}

	if c.Model == "" {
		return fmt.Errorf("model required")
	}
	if c.Timeout != "" {
		if _, err := time.ParseDuration(c.Timeout); err != nil {
			return fmt.Errorf("invalid timeout: %w", err)
		}
	}
	return nil
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
