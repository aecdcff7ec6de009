package leaderboard

import (
	"context"
	"sort"

	"github.com/edgewatch/backend/internal/contracts"
	"github.com/edgewatch/backend/internal/external/narrative"
	"github.com/edgewatch/backend/internal/phase"
	"github.com/edgewatch/backend/internal/scoring"
	"github.com/edgewatch/backend/pkg/logger"
)

// Scored is a candidate with its composite risk score and, when a
// price window was available, its phase metrics.
type Scored struct {
	Candidate *contracts.Candidate
	Score     scoring.Result
	Phase     *phase.Metrics
}

// Ranker filters, orders, and annotates scored candidates into the
// final leaderboard.
type Ranker struct {
	generator narrative.Generator // nil means fallback-only
	logger    *logger.Logger
}

// NewRanker creates a ranker. Pass a nil generator to always use the
// deterministic fallback reason.
func NewRanker(gen narrative.Generator, log *logger.Logger) *Ranker {
	return &Ranker{generator: gen, logger: log}
}

// Rank applies the min-score and cooldown filters, sorts descending
// by score (stable with respect to input order), truncates to
// maxCount, and attaches a reason string per entry.
func (r *Ranker) Rank(
	ctx context.Context,
	scored []Scored,
	minScore int,
	maxCount int,
	suppressed map[string]bool,
) []contracts.LeaderboardEntry {
	qualified := make([]Scored, 0, len(scored))
	droppedScore, droppedCooldown := 0, 0

	for _, s := range scored {
		if s.Score.Total < minScore {
			droppedScore++
			continue
		}
		if suppressed[s.Candidate.Filing.Ticker] {
			droppedCooldown++
			continue
		}
		qualified = append(qualified, s)
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].Score.Total > qualified[j].Score.Total
	})

	if len(qualified) > maxCount {
		qualified = qualified[:maxCount]
	}

	entries := make([]contracts.LeaderboardEntry, 0, len(qualified))
	for i, s := range qualified {
		metrics := buildMetrics(s)
		entries = append(entries, contracts.LeaderboardEntry{
			Rank:        i + 1,
			Ticker:      s.Candidate.Filing.Ticker,
			CompanyName: s.Candidate.DisplayName(),
			Score:       s.Score.Total,
			FormType:    s.Candidate.Filing.FormType,
			Reason:      r.reason(ctx, s.Candidate.Filing.Ticker, metrics),
			Metrics:     metrics,
		})
	}

	r.logger.WithFields(map[string]interface{}{
		"input":            len(scored),
		"qualified":        len(entries),
		"dropped_score":    droppedScore,
		"dropped_cooldown": droppedCooldown,
	}).Info("Leaderboard ranked")

	return entries
}

// reason prefers the narrative generator and falls back to the
// deterministic template on any failure.
func (r *Ranker) reason(ctx context.Context, ticker string, m contracts.EntryMetrics) string {
	if r.generator != nil {
		text, err := r.generator.Reason(ctx, ticker, m)
		if err == nil && text != "" {
			return narrative.Truncate(text)
		}
		if err != nil {
			r.logger.WithError(err).WithField("ticker", ticker).
				Warn("Narrative generator failed, using fallback reason")
		}
	}
	return FallbackReason(m)
}

// buildMetrics snapshots the candidate's metrics for the entry.
func buildMetrics(s Scored) contracts.EntryMetrics {
	in := scoring.FromCandidate(s.Candidate)

	m := contracts.EntryMetrics{
		DaysSinceFiling: s.Candidate.Filing.DaysSinceFiling,
		Breakdown:       s.Score.Breakdown,
	}
	if in.RunwayMonths != nil {
		m.RunwayMonths = *in.RunwayMonths
		m.HasRunway = true
	}
	if in.DebtToCash != nil {
		m.DebtToCash = *in.DebtToCash
		m.HasDebtToCash = true
	}
	if in.MarketCap != nil {
		m.MarketCap = *in.MarketCap
		m.HasMarketCap = true
	}
	if s.Phase != nil {
		m.PeakGainPct = s.Phase.PeakGainPct
		m.PullbackPct = s.Phase.PullbackPct
		m.IsRollingOver = s.Phase.IsRollingOver
	}
	return m
}
