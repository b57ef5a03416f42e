package oracle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/JaimeStill/survey/internal/config"
)

type agentOracle struct {
	cfg    gaconfig.AgentConfig
	logger *slog.Logger
}

func newAgentOracle(cfg *config.OracleConfig, logger *slog.Logger) (*agentOracle, error) {
	ac := cfg.AgentConfig()
	if _, err := agent.New(&ac); err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}
	return &agentOracle{cfg: ac, logger: logger}, nil
}

// Complete creates an agent per call so concurrent field requests share no
// client state.
func (o *agentOracle) Complete(ctx context.Context, prompt string) (string, error) {
	a, err := agent.New(&o.cfg)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	start := time.Now()
	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}

	content := resp.Content()
	o.logger.DebugContext(ctx, "oracle responded",
		"duration", time.Since(start),
		"response_size", len(content),
	)

	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}
