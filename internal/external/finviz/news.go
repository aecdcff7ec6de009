package finviz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/edgewatch/backend/pkg/httputil"
	"github.com/edgewatch/backend/pkg/logger"
)

// Client scrapes recent news-headline counts from finviz quote pages
// as the virality mention signal. Scraping is best-effort: any
// failure reports zero mentions, which lands in the quietest bucket.
type Client struct {
	http    *httputil.Client
	baseURL string
	logger  *logger.Logger
}

// NewClient creates a finviz scraper.
func NewClient(http *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		http:    http,
		baseURL: "https://finviz.com",
		logger:  log,
	}
}

// NewsMentions counts headlines dated within the last `days` days on
// the ticker's quote page.
func (c *Client) NewsMentions(ctx context.Context, ticker string, days int) (int, error) {
	url := fmt.Sprintf("%s/quote.ashx?t=%s", c.baseURL, ticker)

	resp, err := c.http.Get(ctx, url)
	if err != nil {
		return 0, fmt.Errorf("finviz request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return 0, fmt.Errorf("finviz returned status %d for %s", resp.StatusCode, ticker)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("finviz parse failed: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	count := 0

	// News table rows carry the date in the first cell; rows from the
	// same day repeat the date cell empty.
	var lastDate time.Time
	doc.Find("table#news-table tr").Each(func(_ int, row *goquery.Selection) {
		dateText := strings.TrimSpace(row.Find("td").First().Text())
		if d, ok := parseNewsDate(dateText); ok {
			lastDate = d
		}
		if lastDate.IsZero() || lastDate.Before(cutoff) {
			return
		}
		if strings.TrimSpace(row.Find("a").First().Text()) != "" {
			count++
		}
	})

	c.logger.WithFields(map[string]interface{}{
		"ticker":   ticker,
		"days":     days,
		"mentions": count,
	}).Debug("Scraped news mentions")

	return count, nil
}

// parseNewsDate handles finviz's "Mon-02-25 08:30AM" and bare
// "08:30AM" (same-day continuation) cell formats.
func parseNewsDate(text string) (time.Time, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return time.Time{}, false
	}

	first := fields[0]
	if d, err := time.Parse("Jan-02-06", first); err == nil {
		return d, true
	}
	if strings.EqualFold(first, "Today") {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}
