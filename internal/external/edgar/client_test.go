package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgewatch/backend/pkg/config"
	"github.com/edgewatch/backend/pkg/httputil"
	"github.com/edgewatch/backend/pkg/logger"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.EDGARConfig{
		BaseURL:   server.URL,
		UserAgent: "edgewatch/1.0 (ops@edgewatch.dev)",
	}
	client := NewClient(cfg, httputil.New(logger.Nop()).DisableRetry(), logger.Nop())
	return client, server
}

func searchJSON(total int, hits ...map[string]interface{}) []byte {
	wrapped := make([]map[string]interface{}, 0, len(hits))
	for _, h := range hits {
		wrapped = append(wrapped, map[string]interface{}{"_source": h})
	}
	body, _ := json.Marshal(map[string]interface{}{
		"hits": map[string]interface{}{
			"total": map[string]interface{}{"value": total},
			"hits":  wrapped,
		},
	})
	return body
}

func TestSearchForm(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write(searchJSON(2,
			map[string]interface{}{
				"display_names": []string{"Acme Corp (ACME) (CIK 0000012345)"},
				"file_date":     "2026-08-25",
				"form":          "424B5",
				"ciks":          []string{"0000012345"},
			},
			map[string]interface{}{
				"display_names": []string{"Beta Inc (BETA) (CIK 0000067890)"},
				"file_date":     "2026-08-24",
				"ciks":          []string{"0000067890"},
			},
		))
	}))

	from := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)

	hits, err := client.SearchForm(context.Background(), "424B5", from, to)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "2026-08-25", hits[0].FileDate)
	assert.Equal(t, "424B5", hits[0].Form)
	// Hits missing the form field inherit the searched form
	assert.Equal(t, "424B5", hits[1].Form)

	assert.Contains(t, gotQuery, "forms=424B5")
	assert.Contains(t, gotQuery, "startdt=2026-08-20")
	assert.Contains(t, gotQuery, "enddt=2026-08-27")
}

func TestSearchForm_Pagination(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		offset := r.URL.Query().Get("from")

		hits := make([]map[string]interface{}, 0, pageSize)
		n := pageSize
		if offset != "0" {
			n = 20 // second page is partial
		}
		for i := 0; i < n; i++ {
			hits = append(hits, map[string]interface{}{
				"display_names": []string{fmt.Sprintf("Co %s-%d (TK%d)", offset, i, i)},
				"file_date":     "2026-08-25",
				"form":          "S-3",
			})
		}
		w.Write(searchJSON(pageSize+20, hits...))
	}))

	from := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)

	hits, err := client.SearchForm(context.Background(), "S-3", from, to)
	require.NoError(t, err)
	assert.Len(t, hits, pageSize+20)
	assert.Equal(t, 2, requests)
}

func TestSearchForm_ServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	from := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)

	_, err := client.SearchForm(context.Background(), "S-1", from, to)
	assert.Error(t, err)
}

func TestSearchForm_SetsUserAgent(t *testing.T) {
	var gotUA string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write(searchJSON(0))
	}))

	from := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)

	_, err := client.SearchForm(context.Background(), "424B5", from, to)
	require.NoError(t, err)
	assert.Equal(t, "edgewatch/1.0 (ops@edgewatch.dev)", gotUA)
}
