// Package oracle connects the category mapper to a language model provider.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/survey/internal/config"
	"github.com/JaimeStill/survey/internal/taxonomy"
)

var (
	// ErrUnknownProvider indicates the configured provider is not supported.
	ErrUnknownProvider = errors.New("unknown oracle provider")
	// ErrEmptyResponse indicates the model returned no text.
	ErrEmptyResponse = errors.New("empty oracle response")
)

// New returns the oracle for cfg.Provider. A non-zero cfg.Timeout bounds
// each call.
func New(cfg *config.OracleConfig, logger *slog.Logger) (taxonomy.Oracle, error) {
	logger = logger.With("system", "oracle", "provider", cfg.Provider, "model", cfg.Model)

	var o taxonomy.Oracle
	switch cfg.Provider {
	case config.ProviderOllama, config.ProviderAzure:
		a, err := newAgentOracle(cfg, logger)
		if err != nil {
			return nil, err
		}
		o = a
	case config.ProviderAnthropic:
		o = newAnthropicOracle(cfg, logger)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}

	if d := cfg.TimeoutDuration(); d > 0 {
		o = withTimeout(o, d)
	}
	return o, nil
}

func withTimeout(o taxonomy.Oracle, d time.Duration) taxonomy.Oracle {
	return taxonomy.OracleFunc(func(ctx context.Context, prompt string) (string, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return o.Complete(ctx, prompt)
	})
}
