package fmp

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/edgewatch/backend/internal/contracts"
	"github.com/edgewatch/backend/pkg/redis"
)

// historyResponse mirrors the provider's historical price JSON.
// The provider returns candles newest-first.
type historyResponse struct {
	Symbol     string `json:"symbol"`
	Historical []struct {
		Date   string  `json:"date"`
		Open   float64 `json:"open"`
		High   float64 `json:"high"`
		Low    float64 `json:"low"`
		Close  float64 `json:"close"`
		Volume int64   `json:"volume"`
	} `json:"historical"`
}

// DailyCandles returns up to days daily candles for a symbol,
// normalized to oldest-first. Every downstream phase computation is
// index-positional, so the normalization happens here and nowhere else.
func (c *Client) DailyCandles(ctx context.Context, symbol string, days int) ([]contracts.Candle, error) {
	var resp historyResponse

	params := url.Values{"timeseries": {strconv.Itoa(days)}}
	err := c.cache.GetOrSet(ctx, redis.CandleKey(symbol, days), &resp, redis.TTLCandles, func() (interface{}, error) {
		var fresh historyResponse
		if err := c.http.GetJSON(ctx, c.endpoint("historical-price-full", symbol, params), &fresh); err != nil {
			return nil, err
		}
		return fresh, nil
	})
	if err != nil {
		return nil, fmt.Errorf("price history fetch failed for %s: %w", symbol, err)
	}

	// Reverse newest-first into oldest-first
	candles := make([]contracts.Candle, 0, len(resp.Historical))
	for i := len(resp.Historical) - 1; i >= 0; i-- {
		h := resp.Historical[i]
		candles = append(candles, contracts.Candle{
			Date:   h.Date,
			Open:   h.Open,
			High:   h.High,
			Low:    h.Low,
			Close:  h.Close,
			Volume: h.Volume,
		})
	}

	return candles, nil
}
