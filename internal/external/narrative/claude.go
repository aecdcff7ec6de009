package narrative

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/edgewatch/backend/internal/contracts"
	"github.com/edgewatch/backend/pkg/config"
	"github.com/edgewatch/backend/pkg/logger"
)

// ClaudeGenerator generates reason strings with the Anthropic API.
type ClaudeGenerator struct {
	client  anthropic.Client
	model   string
	logger  *logger.Logger
	timeout time.Duration
}

// NewClaude creates a Claude-backed generator. Returns an error when
// no API key is configured so the caller can fall back immediately.
func NewClaude(cfg config.AnthropicConfig, log *logger.Logger) (*ClaudeGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key not configured")
	}

	client := anthropic.NewClient(
		option.WithAPIKey(cfg.APIKey),
	)

	return &ClaudeGenerator{
		client:  client,
		model:   cfg.Model,
		logger:  log,
		timeout: 15 * time.Second,
	}, nil
}

const systemPrompt = "You summarize small-cap dilution risk metrics into one short plain sentence for a trading alert. No advice, no hedging, no emoji. At most 20 words."

// Reason asks the model for a one-line summary of the metrics.
func (g *ClaudeGenerator) Reason(ctx context.Context, ticker string, m contracts.EntryMetrics) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := buildPrompt(ticker, m)

	resp, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: 100,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude request failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("claude returned empty response")
	}

	return Truncate(text), nil
}

// buildPrompt renders the metric snapshot as plain key/value lines.
func buildPrompt(ticker string, m contracts.EntryMetrics) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Ticker: %s\n", ticker)
	if m.HasRunway {
		fmt.Fprintf(&sb, "Cash runway: %.1f months\n", m.RunwayMonths)
	}
	if m.HasDebtToCash {
		fmt.Fprintf(&sb, "Debt/cash ratio: %.1f\n", m.DebtToCash)
	}
	if m.HasMarketCap {
		fmt.Fprintf(&sb, "Market cap: $%.0f\n", m.MarketCap)
	}
	fmt.Fprintf(&sb, "Days since filing: %d\n", m.DaysSinceFiling)
	if m.PeakGainPct != 0 {
		fmt.Fprintf(&sb, "Peak gain: %.0f%%, pullback: %.0f points\n", m.PeakGainPct, m.PullbackPct)
	}
	return sb.String()
}
