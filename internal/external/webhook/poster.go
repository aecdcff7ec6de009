package webhook

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/edgewatch/backend/internal/contracts"
	"github.com/edgewatch/backend/pkg/config"
	"github.com/edgewatch/backend/pkg/httputil"
	"github.com/edgewatch/backend/pkg/logger"
)

// Poster pushes leaderboard alerts to a webhook. Posting is opt-in
// via the --post flag; without it runs are preview-only.
type Poster struct {
	http   *httputil.Client
	url    string
	logger *logger.Logger
}

// NewPoster creates a webhook poster. Returns an error when no
// webhook URL is configured.
func NewPoster(cfg config.WebhookConfig, http *httputil.Client, log *logger.Logger) (*Poster, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("webhook URL not configured")
	}
	return &Poster{
		http:   http,
		url:    cfg.URL,
		logger: log,
	}, nil
}

type payload struct {
	Content string `json:"content"`
}

// PostReport formats and sends the leaderboard summary. Returns an
// identifier-ish confirmation (HTTP status text) for logging only.
func (p *Poster) PostReport(ctx context.Context, report *contracts.Report) error {
	text := FormatReport(report)

	resp, err := p.http.PostJSON(ctx, p.url, payload{Content: text})
	if err != nil {
		return fmt.Errorf("webhook post failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	p.logger.WithFields(map[string]interface{}{
		"entries": len(report.Leaderboard),
		"status":  resp.StatusCode,
	}).Info("Alert posted")

	return nil
}

// FormatReport renders a report as the plain-text alert body.
func FormatReport(report *contracts.Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s scan %s — %d qualified\n",
		strings.ToUpper(report.Variant), report.DateRange, report.Qualified)

	for _, e := range report.Leaderboard {
		fmt.Fprintf(&sb, "%d. $%s [%s] score %d — %s\n",
			e.Rank, e.Ticker, e.FormType, e.Score, e.Reason)
	}

	return strings.TrimRight(sb.String(), "\n")
}
