package narrative

import (
	"context"

	"github.com/edgewatch/backend/internal/contracts"
)

// maxReasonLen bounds generated reason strings so the leaderboard and
// webhook payloads stay one-line.
const maxReasonLen = 160

// Generator produces a short human-readable reason for an alert
// candidate. Implementations may fail; the ranker falls back to a
// deterministic template and the pipeline never blocks on this.
type Generator interface {
	Reason(ctx context.Context, ticker string, metrics contracts.EntryMetrics) (string, error)
}

// Truncate bounds a reason string to the contract length.
func Truncate(s string) string {
	if len(s) <= maxReasonLen {
		return s
	}
	return s[:maxReasonLen-3] + "..."
}
