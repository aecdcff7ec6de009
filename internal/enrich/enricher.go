package enrich

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/edgewatch/backend/internal/contracts"
	"github.com/edgewatch/backend/internal/external/finviz"
	"github.com/edgewatch/backend/internal/external/fmp"
	"github.com/edgewatch/backend/pkg/logger"
)

// MarketData is the slice of the market-data client the enricher needs.
type MarketData interface {
	Quote(ctx context.Context, symbol string) (*contracts.Quote, error)
	Profile(ctx context.Context, symbol string) (*contracts.Profile, error)
	Fundamentals(ctx context.Context, symbol string) (*contracts.Fundamentals, error)
	DailyCandles(ctx context.Context, symbol string, days int) ([]contracts.Candle, error)
}

// NewsSource supplies virality mention counts.
type NewsSource interface {
	NewsMentions(ctx context.Context, ticker string, days int) (int, error)
}

var (
	_ MarketData = (*fmp.Client)(nil)
	_ NewsSource = (*finviz.Client)(nil)
)

// Enricher fetches market data for deduplicated filings. Tickers are
// processed sequentially with a fixed inter-ticker delay; the several
// field fetches for one ticker fan out concurrently and fan back in.
// A failed ticker is logged and skipped, never fails the run.
type Enricher struct {
	market MarketData
	news   NewsSource
	pacer  *rate.Limiter
	// Candle window length for phase analysis
	windowDays int
	// Lookback for news mentions
	newsDays int
	logger   *logger.Logger
}

// New creates an enricher. delay is the fixed pause between tickers.
func New(market MarketData, news NewsSource, delay time.Duration, log *logger.Logger) *Enricher {
	if delay <= 0 {
		delay = time.Millisecond
	}
	return &Enricher{
		market: market,
		news:   news,
		// Burst 1 makes the limiter a fixed-interval pacer, not a
		// catch-up token bucket.
		pacer:      rate.NewLimiter(rate.Every(delay), 1),
		windowDays: 10,
		newsDays:   7,
		logger:     log,
	}
}

// Enrich builds candidates for each filing, in the order given.
// Counter records every outbound call for the run summary.
func (e *Enricher) Enrich(ctx context.Context, filings []contracts.Filing, counter *Counter) []*contracts.Candidate {
	candidates := make([]*contracts.Candidate, 0, len(filings))

	for _, filing := range filings {
		if err := e.pacer.Wait(ctx); err != nil {
			e.logger.WithError(err).Warn("Enrichment aborted")
			break
		}

		candidate, err := e.enrichOne(ctx, filing, counter)
		if err != nil {
			e.logger.WithError(err).WithField("ticker", filing.Ticker).
				Warn("Enrichment failed, skipping ticker")
			continue
		}
		candidates = append(candidates, candidate)
	}

	e.logger.WithFields(map[string]interface{}{
		"filings":   len(filings),
		"enriched":  len(candidates),
		"api_calls": counter.Total(),
	}).Info("Enrichment completed")

	return candidates
}

// enrichOne fans out the per-ticker fetches and fans back in. The
// quote is mandatory; everything else degrades to absent data.
func (e *Enricher) enrichOne(ctx context.Context, filing contracts.Filing, counter *Counter) (*contracts.Candidate, error) {
	candidate := &contracts.Candidate{Filing: filing}
	symbol := filing.Ticker

	var (
		wg       sync.WaitGroup
		quoteErr error
	)

	wg.Add(5)

	go func() {
		defer wg.Done()
		counter.Add(1)
		quote, err := e.market.Quote(ctx, symbol)
		if err != nil {
			quoteErr = err
			return
		}
		candidate.Quote = quote
	}()

	go func() {
		defer wg.Done()
		counter.Add(1)
		profile, err := e.market.Profile(ctx, symbol)
		if err != nil {
			e.logger.WithError(err).WithField("ticker", symbol).Debug("Profile unavailable")
			return
		}
		candidate.Profile = profile
	}()

	go func() {
		defer wg.Done()
		counter.Add(1)
		fundamentals, err := e.market.Fundamentals(ctx, symbol)
		if err != nil {
			e.logger.WithError(err).WithField("ticker", symbol).Debug("Fundamentals unavailable")
			return
		}
		candidate.Fundamentals = fundamentals
	}()

	go func() {
		defer wg.Done()
		counter.Add(1)
		candles, err := e.market.DailyCandles(ctx, symbol, e.windowDays)
		if err != nil {
			e.logger.WithError(err).WithField("ticker", symbol).Debug("Price history unavailable")
			return
		}
		candidate.Candles = candles
	}()

	go func() {
		defer wg.Done()
		counter.Add(1)
		mentions, err := e.news.NewsMentions(ctx, symbol, e.newsDays)
		if err != nil {
			e.logger.WithError(err).WithField("ticker", symbol).Debug("News mentions unavailable")
			return
		}
		candidate.NewsMentions = mentions
	}()

	wg.Wait()

	if quoteErr != nil {
		return nil, quoteErr
	}

	return candidate, nil
}
