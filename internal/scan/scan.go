package scan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edgewatch/backend/internal/contracts"
	"github.com/edgewatch/backend/internal/cooldown"
	"github.com/edgewatch/backend/internal/dedup"
	"github.com/edgewatch/backend/internal/enrich"
	"github.com/edgewatch/backend/internal/leaderboard"
	"github.com/edgewatch/backend/internal/phase"
	"github.com/edgewatch/backend/pkg/config"
	"github.com/edgewatch/backend/pkg/logger"
)

// ErrNothingNew signals a clean run that produced no new alerts.
// The CLI maps it to its own exit code so cron wrappers can tell
// "quiet day" from "broken run".
var ErrNothingNew = errors.New("no new qualifying filings")

// FilingSearcher is the slice of the EDGAR client the scanner needs.
type FilingSearcher interface {
	SearchForm(ctx context.Context, form string, from, to time.Time) ([]contracts.RawFilingHit, error)
}

// Enricher turns deduplicated filings into market-data candidates.
type Enricher interface {
	Enrich(ctx context.Context, filings []contracts.Filing, counter *enrich.Counter) []*contracts.Candidate
}

// AlertPoster delivers the final report to the alert channel.
type AlertPoster interface {
	PostReport(ctx context.Context, report *contracts.Report) error
}

// HistorySink archives completed runs. Optional.
type HistorySink interface {
	SaveReport(ctx context.Context, report *contracts.Report) error
}

// Params are the effective parameters of one run, after merging env
// defaults, an optional scan profile, and CLI flags.
type Params struct {
	Forms        []string
	LookbackDays int
	CooldownDays int
	MinScore     int
	MaxEntries   int
	// MinTier gates the momentum variant; 0 accepts everything.
	MinTier int
	// Post sends the webhook alert and records cooldowns. Without it
	// the run is preview-only: the artifact is written, nothing else
	// changes state.
	Post bool
	// ConfigHash of the scan profile, when one was loaded.
	ConfigHash string

	BankruptcyWeight float64
	ViralityWeight   float64
}

// DefaultParams builds run parameters from environment defaults.
func DefaultParams(cfg *config.Config) Params {
	return Params{
		LookbackDays:     cfg.Scan.LookbackDays,
		CooldownDays:     cfg.Scan.CooldownDays,
		MinScore:         cfg.Scan.MinScore,
		MaxEntries:       cfg.Scan.MaxEntries,
		BankruptcyWeight: 0.6,
		ViralityWeight:   0.4,
	}
}

// Scanner runs one scan variant end to end: search, dedupe, enrich,
// score, rank, persist, alert.
type Scanner struct {
	variant  Variant
	searcher FilingSearcher
	enricher Enricher
	dedup    *dedup.Deduplicator
	cooldown *cooldown.Store
	ranker   *leaderboard.Ranker
	poster   AlertPoster // nil disables posting
	history  HistorySink // nil disables archiving
	cfg      *config.Config
	logger   *logger.Logger
}

// New creates a scanner for a variant. poster and history may be nil.
func New(
	variant Variant,
	searcher FilingSearcher,
	enricher Enricher,
	cooldownStore *cooldown.Store,
	ranker *leaderboard.Ranker,
	poster AlertPoster,
	history HistorySink,
	cfg *config.Config,
	log *logger.Logger,
) *Scanner {
	return &Scanner{
		variant:  variant,
		searcher: searcher,
		enricher: enricher,
		dedup:    dedup.New(log),
		cooldown: cooldownStore,
		ranker:   ranker,
		poster:   poster,
		history:  history,
		cfg:      cfg,
		logger:   log,
	}
}

// Run executes one scan as of now. Returns the report and
// ErrNothingNew when the leaderboard came out empty.
func (s *Scanner) Run(ctx context.Context, params Params) (*contracts.Report, error) {
	asOf := time.Now().UTC()
	from := asOf.AddDate(0, 0, -params.LookbackDays)

	forms := params.Forms
	if len(forms) == 0 {
		forms = s.variant.Forms()
	}

	s.logger.WithFields(map[string]interface{}{
		"variant":  s.variant.Name(),
		"forms":    forms,
		"lookback": params.LookbackDays,
	}).Info("Scan started")

	counter := enrich.NewCounter()

	passes, err := s.search(ctx, forms, from, asOf, counter)
	if err != nil {
		return nil, err
	}

	filings := dedup.SortedByDate(s.dedup.DedupeMultiForm(passes, asOf))
	candidates := s.enricher.Enrich(ctx, filings, counter)
	scored := s.score(candidates, params)

	suppressed := s.cooldown.SuppressedSet(asOf)
	entries := s.ranker.Rank(ctx, scored, params.MinScore, params.MaxEntries, suppressed)

	report := &contracts.Report{
		GeneratedAt:  asOf,
		Variant:      s.variant.Name(),
		Period:       fmt.Sprintf("%dd", params.LookbackDays),
		DateRange:    fmt.Sprintf("%s..%s", from.Format("2006-01-02"), asOf.Format("2006-01-02")),
		TotalFilings: len(filings),
		Enriched:     len(candidates),
		Qualified:    len(entries),
		APICalls:     counter.Total(),
		ConfigHash:   params.ConfigHash,
		Leaderboard:  entries,
	}

	if err := leaderboard.WriteReport(s.cfg.LeaderboardPath(s.variant.Name()), report); err != nil {
		return nil, fmt.Errorf("failed to write leaderboard artifact: %w", err)
	}

	if s.history != nil {
		if err := s.history.SaveReport(ctx, report); err != nil {
			s.logger.WithError(err).Warn("Run archive failed")
		}
	}

	if params.Post && len(entries) > 0 {
		if err := s.post(ctx, report, asOf); err != nil {
			return report, err
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"variant":   s.variant.Name(),
		"filings":   report.TotalFilings,
		"enriched":  report.Enriched,
		"qualified": report.Qualified,
		"api_calls": report.APICalls,
	}).Info("Scan completed")

	if len(entries) == 0 {
		return report, ErrNothingNew
	}
	return report, nil
}

// search runs one full-text search pass per form, preserving form
// order. Pass order decides which form wins for a ticker that filed
// several, so forms must stay in priority order.
func (s *Scanner) search(ctx context.Context, forms []string, from, to time.Time, counter *enrich.Counter) ([]dedup.FormPass, error) {
	passes := make([]dedup.FormPass, 0, len(forms))
	for _, form := range forms {
		counter.Add(1)
		hits, err := s.searcher.SearchForm(ctx, form, from, to)
		if err != nil {
			return nil, fmt.Errorf("filing search failed for form %s: %w", form, err)
		}
		passes = append(passes, dedup.FormPass{Form: form, Hits: hits})
	}
	return passes, nil
}

// score analyzes price phase where a usable window exists, then asks
// the variant to score each candidate. Variants may drop candidates.
func (s *Scanner) score(candidates []*contracts.Candidate, params Params) []leaderboard.Scored {
	scored := make([]leaderboard.Scored, 0, len(candidates))

	for _, c := range candidates {
		var metrics *phase.Metrics
		if len(c.Candles) >= 2 && c.Candles[0].Open > 0 {
			if m, err := phase.Analyze(c.Candles); err == nil {
				metrics = &m
			}
		}

		result, ok := s.variant.Score(c, metrics, params)
		if !ok {
			continue
		}
		scored = append(scored, leaderboard.Scored{
			Candidate: c,
			Score:     result,
			Phase:     metrics,
		})
	}

	return scored
}

// post sends the alert and, only on success, burns the cooldown for
// the alerted tickers. A failed post leaves the store untouched so
// the next run can retry.
func (s *Scanner) post(ctx context.Context, report *contracts.Report, asOf time.Time) error {
	if s.poster == nil {
		return fmt.Errorf("posting requested but no webhook configured")
	}

	if err := s.poster.PostReport(ctx, report); err != nil {
		return err
	}

	tickers := make([]string, 0, len(report.Leaderboard))
	for _, e := range report.Leaderboard {
		tickers = append(tickers, e.Ticker)
	}
	return s.cooldown.RecordAlert(tickers, asOf)
}
