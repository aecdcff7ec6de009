package edgar

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/edgewatch/backend/internal/contracts"
	"github.com/edgewatch/backend/pkg/config"
	"github.com/edgewatch/backend/pkg/httputil"
	"github.com/edgewatch/backend/pkg/logger"
)

// Client queries the SEC EDGAR full-text search API. All EDGAR calls
// go through this client so the fair-access User-Agent and rate limit
// are applied consistently.
type Client struct {
	http    *httputil.Client
	baseURL string
	logger  *logger.Logger
}

// NewClient creates an EDGAR full-text search client.
func NewClient(cfg config.EDGARConfig, http *httputil.Client, log *logger.Logger) *Client {
	http.WithHeader("User-Agent", cfg.UserAgent)
	return &Client{
		http:    http,
		baseURL: cfg.BaseURL,
		logger:  log,
	}
}

// searchResponse mirrors the EDGAR full-text search JSON envelope.
type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source contracts.RawFilingHit `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

const pageSize = 100

// SearchForm returns all full-text search hits for one form type
// filed in [from, to], paging until exhausted.
func (c *Client) SearchForm(ctx context.Context, form string, from, to time.Time) ([]contracts.RawFilingHit, error) {
	var all []contracts.RawFilingHit

	for offset := 0; ; offset += pageSize {
		page, total, err := c.searchPage(ctx, form, from, to, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)

		if offset+pageSize >= total || len(page) == 0 {
			break
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"form": form,
		"from": from.Format("2006-01-02"),
		"to":   to.Format("2006-01-02"),
		"hits": len(all),
	}).Info("EDGAR search completed")

	return all, nil
}

func (c *Client) searchPage(ctx context.Context, form string, from, to time.Time, offset int) ([]contracts.RawFilingHit, int, error) {
	params := url.Values{}
	params.Set("q", fmt.Sprintf("%q", form))
	params.Set("forms", form)
	params.Set("dateRange", "custom")
	params.Set("startdt", from.Format("2006-01-02"))
	params.Set("enddt", to.Format("2006-01-02"))
	params.Set("from", fmt.Sprintf("%d", offset))

	endpoint := fmt.Sprintf("%s/search-index?%s", c.baseURL, params.Encode())

	var resp searchResponse
	if err := c.http.GetJSON(ctx, endpoint, &resp); err != nil {
		return nil, 0, fmt.Errorf("edgar search failed for form %s: %w", form, err)
	}

	hits := make([]contracts.RawFilingHit, 0, len(resp.Hits.Hits))
	for _, h := range resp.Hits.Hits {
		hit := h.Source
		if hit.Form == "" {
			hit.Form = form
		}
		hits = append(hits, hit)
	}

	return hits, resp.Hits.Total.Value, nil
}
