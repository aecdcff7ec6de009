package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edgewatch/backend/internal/contracts"
	"github.com/edgewatch/backend/internal/cooldown"
	"github.com/edgewatch/backend/internal/enrich"
	"github.com/edgewatch/backend/internal/external/edgar"
	"github.com/edgewatch/backend/internal/external/finviz"
	"github.com/edgewatch/backend/internal/external/fmp"
	"github.com/edgewatch/backend/internal/external/narrative"
	"github.com/edgewatch/backend/internal/external/webhook"
	"github.com/edgewatch/backend/internal/history"
	"github.com/edgewatch/backend/internal/leaderboard"
	"github.com/edgewatch/backend/internal/scan"
	"github.com/edgewatch/backend/internal/strategyconfig"
	"github.com/edgewatch/backend/pkg/config"
	"github.com/edgewatch/backend/pkg/database"
	"github.com/edgewatch/backend/pkg/httputil"
	"github.com/edgewatch/backend/pkg/logger"
	"github.com/edgewatch/backend/pkg/redis"
)

// scanFlags are shared by the variant commands. A zero or negative
// value means "use the environment default".
type scanFlags struct {
	days     int
	minScore int
	limit    int
	tier     int
	post     bool
	analyze  bool
	full     bool
	profile  string
}

func addScanFlags(cmd *cobra.Command, f *scanFlags) {
	cmd.Flags().IntVar(&f.days, "days", 0, "lookback window in days")
	cmd.Flags().IntVar(&f.minScore, "min-score", -1, "minimum score to qualify")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "maximum leaderboard entries")
	cmd.Flags().BoolVar(&f.post, "post", false, "post the alert and record cooldowns")
	cmd.Flags().BoolVar(&f.analyze, "analyze", false, "print price-phase detail per entry")
	cmd.Flags().BoolVar(&f.full, "full", false, "print the full report as JSON")
	cmd.Flags().StringVar(&f.profile, "profile", "", "YAML scan profile path")
}

// newScanner wires a scanner for one variant. The returned cleanup
// closes the redis and database connections.
func newScanner(ctx context.Context, variant scan.Variant, params scan.Params, cfg *config.Config, log *logger.Logger) (*scan.Scanner, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, cleanup, fmt.Errorf("connect to redis: %w", err)
	}
	closers = append(closers, func() { redisClient.Close() })

	limiter := redis.NewRateLimiter(redisClient, "edgewatch")

	edgarHTTP := httputil.New(log).
		WithRateLimiter(limiter, redis.EDGARRateLimit)
	marketHTTP := httputil.New(log).
		WithRateLimiter(limiter, redis.FMPRateLimit)

	edgarClient := edgar.NewClient(cfg.EDGAR, edgarHTTP, log)
	fmpClient := fmp.NewClient(cfg.FMP, marketHTTP, redis.NewCache(redisClient, "edgewatch"), log)
	finvizClient := finviz.NewClient(marketHTTP, log)

	enricher := enrich.New(fmpClient, finvizClient, cfg.Scan.EnrichDelay, log)
	store := cooldown.NewStore(cfg.CooldownPath(), params.CooldownDays, log)

	var generator narrative.Generator
	if cfg.Anthropic.APIKey != "" {
		claude, err := narrative.NewClaude(cfg.Anthropic, log)
		if err != nil {
			return nil, cleanup, fmt.Errorf("narrative generator: %w", err)
		}
		generator = claude
		log.Info("Narrative generator enabled")
	}
	ranker := leaderboard.NewRanker(generator, log)

	var poster scan.AlertPoster
	if cfg.Webhook.URL != "" {
		p, err := webhook.NewPoster(cfg.Webhook, httputil.New(log), log)
		if err != nil {
			return nil, cleanup, fmt.Errorf("webhook poster: %w", err)
		}
		poster = p
	}

	var sink scan.HistorySink
	if cfg.Database.URL != "" {
		db, err := database.New(cfg)
		if err != nil {
			return nil, cleanup, fmt.Errorf("connect to database: %w", err)
		}
		closers = append(closers, db.Close)

		repo := history.NewRepository(db.Pool)
		if err := repo.Migrate(ctx); err != nil {
			return nil, cleanup, fmt.Errorf("migrate history: %w", err)
		}
		sink = repo
	}

	scanner := scan.New(variant, edgarClient, enricher, store, ranker, poster, sink, cfg, log)
	return scanner, cleanup, nil
}

// runScan wires a scanner for one variant and executes it once.
func runScan(variant scan.Variant, flags *scanFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	params, err := buildParams(cfg, flags)
	if err != nil {
		return err
	}

	ctx := context.Background()

	scanner, cleanup, err := newScanner(ctx, variant, params, cfg, log)
	defer cleanup()
	if err != nil {
		return err
	}

	report, err := scanner.Run(ctx, params)
	if report != nil {
		printReport(report, flags)
	}
	return err
}

// buildParams merges environment defaults, an optional profile, and
// CLI flags, in that order of precedence.
func buildParams(cfg *config.Config, flags *scanFlags) (scan.Params, error) {
	params := scan.DefaultParams(cfg)

	if flags.profile != "" {
		profile, _, err := strategyconfig.Load(flags.profile)
		if err != nil {
			return params, fmt.Errorf("load scan profile: %w", err)
		}
		hash, err := strategyconfig.Hash(profile)
		if err != nil {
			return params, fmt.Errorf("hash scan profile: %w", err)
		}

		params.Forms = profile.Forms
		params.LookbackDays = profile.Scan.LookbackDays
		params.CooldownDays = profile.Scan.CooldownDays
		params.MinScore = profile.Scan.MinScore
		params.MaxEntries = profile.Scan.MaxEntries
		params.MinTier = profile.Scan.MinTier
		params.BankruptcyWeight = profile.Scoring.BankruptcyWeight
		params.ViralityWeight = profile.Scoring.ViralityWeight
		params.ConfigHash = hash
	}

	if flags.days > 0 {
		params.LookbackDays = flags.days
	}
	if flags.minScore >= 0 {
		params.MinScore = flags.minScore
	}
	if flags.limit > 0 {
		params.MaxEntries = flags.limit
	}
	if flags.tier > 0 {
		params.MinTier = flags.tier
	}
	params.Post = flags.post

	return params, nil
}

// printReport writes the human-readable summary to stdout. Logs go to
// stderr, so stdout stays pipeable.
func printReport(report *contracts.Report, flags *scanFlags) {
	if flags.full {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
		return
	}

	fmt.Fprintln(os.Stdout, webhook.FormatReport(report))

	if flags.analyze {
		for _, e := range report.Leaderboard {
			m := e.Metrics
			fmt.Fprintf(os.Stdout, "   %s: peak %+.1f%% pullback %.1f%% rolling_over=%t filed %dd ago\n",
				e.Ticker, m.PeakGainPct, m.PullbackPct, m.IsRollingOver, m.DaysSinceFiling)
		}
	}

	fmt.Fprintf(os.Stdout, "\nfilings=%d enriched=%d qualified=%d api_calls=%d\n",
		report.TotalFilings, report.Enriched, report.Qualified, report.APICalls)
}
