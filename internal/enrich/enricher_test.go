package enrich

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgewatch/backend/internal/contracts"
	"github.com/edgewatch/backend/pkg/logger"
)

type fakeMarket struct {
	failQuote map[string]bool
	failRest  bool
}

func (f *fakeMarket) Quote(_ context.Context, symbol string) (*contracts.Quote, error) {
	if f.failQuote[symbol] {
		return nil, fmt.Errorf("quote unavailable for %s", symbol)
	}
	return &contracts.Quote{Symbol: symbol, Price: 2.50, Volume: 1000, AvgVolume: 500}, nil
}

func (f *fakeMarket) Profile(_ context.Context, symbol string) (*contracts.Profile, error) {
	if f.failRest {
		return nil, fmt.Errorf("profile unavailable")
	}
	return &contracts.Profile{Symbol: symbol, CompanyName: symbol + " Corp"}, nil
}

func (f *fakeMarket) Fundamentals(_ context.Context, _ string) (*contracts.Fundamentals, error) {
	if f.failRest {
		return nil, fmt.Errorf("fundamentals unavailable")
	}
	return &contracts.Fundamentals{Cash: 1_000_000, PeriodMonths: 3}, nil
}

func (f *fakeMarket) DailyCandles(_ context.Context, _ string, days int) ([]contracts.Candle, error) {
	if f.failRest {
		return nil, fmt.Errorf("candles unavailable")
	}
	candles := make([]contracts.Candle, days)
	for i := range candles {
		candles[i] = contracts.Candle{Open: 1, High: 1, Low: 1, Close: 1}
	}
	return candles, nil
}

type fakeNews struct {
	mentions int
	err      error
}

func (f *fakeNews) NewsMentions(_ context.Context, _ string, _ int) (int, error) {
	return f.mentions, f.err
}

func filings(tickers ...string) []contracts.Filing {
	out := make([]contracts.Filing, 0, len(tickers))
	for _, t := range tickers {
		out = append(out, contracts.Filing{Ticker: t, FileDate: "2026-08-25"})
	}
	return out
}

func TestEnrich_AllFieldsPopulated(t *testing.T) {
	e := New(&fakeMarket{}, &fakeNews{mentions: 4}, time.Millisecond, logger.Nop())
	counter := NewCounter()

	candidates := e.Enrich(context.Background(), filings("AAA", "BBB"), counter)
	require.Len(t, candidates, 2)

	// Input order survives enrichment
	assert.Equal(t, "AAA", candidates[0].Filing.Ticker)
	assert.Equal(t, "BBB", candidates[1].Filing.Ticker)

	c := candidates[0]
	require.NotNil(t, c.Quote)
	require.NotNil(t, c.Profile)
	require.NotNil(t, c.Fundamentals)
	assert.Len(t, c.Candles, 10)
	assert.Equal(t, 4, c.NewsMentions)

	// Five calls per ticker
	assert.Equal(t, 10, counter.Total())
}

func TestEnrich_QuoteFailureSkipsTicker(t *testing.T) {
	market := &fakeMarket{failQuote: map[string]bool{"BAD": true}}
	e := New(market, &fakeNews{}, time.Millisecond, logger.Nop())
	counter := NewCounter()

	candidates := e.Enrich(context.Background(), filings("AAA", "BAD", "CCC"), counter)
	require.Len(t, candidates, 2)
	assert.Equal(t, "AAA", candidates[0].Filing.Ticker)
	assert.Equal(t, "CCC", candidates[1].Filing.Ticker)

	// The failed ticker's calls still count; they were made
	assert.Equal(t, 15, counter.Total())
}

func TestEnrich_OptionalFieldsDegradeToAbsent(t *testing.T) {
	market := &fakeMarket{failRest: true}
	e := New(market, &fakeNews{err: fmt.Errorf("scrape failed")}, time.Millisecond, logger.Nop())

	candidates := e.Enrich(context.Background(), filings("AAA"), NewCounter())
	require.Len(t, candidates, 1)

	c := candidates[0]
	require.NotNil(t, c.Quote)
	assert.Nil(t, c.Profile)
	assert.Nil(t, c.Fundamentals)
	assert.Empty(t, c.Candles)
	assert.Zero(t, c.NewsMentions)
}

func TestEnrich_CancelledContextStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(&fakeMarket{}, &fakeNews{}, time.Second, logger.Nop())
	candidates := e.Enrich(ctx, filings("AAA", "BBB"), NewCounter())
	assert.Empty(t, candidates)
}
