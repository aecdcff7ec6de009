package fmp

import (
	"context"
	"fmt"
	"net/url"

	"github.com/edgewatch/backend/internal/contracts"
	"github.com/edgewatch/backend/pkg/config"
	"github.com/edgewatch/backend/pkg/httputil"
	"github.com/edgewatch/backend/pkg/logger"
	"github.com/edgewatch/backend/pkg/redis"
)

// Client fetches quotes, profiles, fundamentals, and price history
// from the market-data provider. Responses are cached in Redis when
// available; every lookup degrades to a direct call otherwise.
type Client struct {
	http    *httputil.Client
	cache   *redis.Cache
	apiKey  string
	baseURL string
	logger  *logger.Logger
}

// NewClient creates a market-data client.
func NewClient(cfg config.FMPConfig, http *httputil.Client, cache *redis.Cache, log *logger.Logger) *Client {
	return &Client{
		http:    http,
		cache:   cache,
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		logger:  log,
	}
}

func (c *Client) endpoint(path, symbol string, extra url.Values) string {
	params := url.Values{}
	for k, vs := range extra {
		for _, v := range vs {
			params.Add(k, v)
		}
	}
	params.Set("apikey", c.apiKey)
	return fmt.Sprintf("%s/%s/%s?%s", c.baseURL, path, url.PathEscape(symbol), params.Encode())
}

// quoteRecord mirrors the provider's quote JSON.
type quoteRecord struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	MarketCap float64 `json:"marketCap"`
	Volume    int64   `json:"volume"`
	AvgVolume int64   `json:"avgVolume"`
}

// Quote returns the current market snapshot for a symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (*contracts.Quote, error) {
	var records []quoteRecord

	err := c.cache.GetOrSet(ctx, redis.QuoteKey(symbol), &records, redis.TTLQuote, func() (interface{}, error) {
		var fresh []quoteRecord
		if err := c.http.GetJSON(ctx, c.endpoint("quote", symbol, nil), &fresh); err != nil {
			return nil, err
		}
		return fresh, nil
	})
	if err != nil {
		return nil, fmt.Errorf("quote fetch failed for %s: %w", symbol, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no quote returned for %s", symbol)
	}

	q := records[0]
	return &contracts.Quote{
		Symbol:    q.Symbol,
		Price:     q.Price,
		MarketCap: q.MarketCap,
		Volume:    q.Volume,
		AvgVolume: q.AvgVolume,
	}, nil
}

// profileRecord mirrors the provider's profile JSON.
type profileRecord struct {
	Symbol      string  `json:"symbol"`
	CompanyName string  `json:"companyName"`
	Exchange    string  `json:"exchangeShortName"`
	Sector      string  `json:"sector"`
	FloatShares float64 `json:"floatShares"`
	SharesOut   float64 `json:"sharesOutstanding"`
}

// Profile returns static company information for a symbol.
func (c *Client) Profile(ctx context.Context, symbol string) (*contracts.Profile, error) {
	var records []profileRecord

	err := c.cache.GetOrSet(ctx, redis.ProfileKey(symbol), &records, redis.TTLProfile, func() (interface{}, error) {
		var fresh []profileRecord
		if err := c.http.GetJSON(ctx, c.endpoint("profile", symbol, nil), &fresh); err != nil {
			return nil, err
		}
		return fresh, nil
	})
	if err != nil {
		return nil, fmt.Errorf("profile fetch failed for %s: %w", symbol, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no profile returned for %s", symbol)
	}

	p := records[0]
	return &contracts.Profile{
		Symbol:      p.Symbol,
		CompanyName: p.CompanyName,
		Exchange:    p.Exchange,
		Sector:      p.Sector,
		FloatShares: p.FloatShares,
		SharesOut:   p.SharesOut,
	}, nil
}
