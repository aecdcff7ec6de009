package dedup

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/edgewatch/backend/internal/contracts"
	"github.com/edgewatch/backend/pkg/logger"
)

// Deduplicator collapses raw full-text search hits down to one filing
// per ticker: the one with the greatest file date.
type Deduplicator struct {
	logger *logger.Logger
}

// New creates a new deduplicator.
func New(log *logger.Logger) *Deduplicator {
	return &Deduplicator{logger: log}
}

// tickerPattern matches the first parenthesized group that starts with
// 1-5 uppercase letters immediately followed by a comma or closing
// paren. Display names look like:
//
//	"Acme Biosciences, Inc.  (ACME, ACMEW)  (CIK 0001234567)"
//
// The CIK group never matches because "CIK" is followed by a space.
var tickerPattern = regexp.MustCompile(`\(([A-Z]{1,5})[,)]`)

// ExtractTicker pulls a ticker symbol out of an EDGAR display name.
// Returns "" when no ticker is present; extraction is best-effort and
// malformed names are dropped silently by Dedupe.
func ExtractTicker(displayName string) string {
	m := tickerPattern.FindStringSubmatch(displayName)
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractCompanyName returns the portion of the display name before
// the first parenthesized group.
func ExtractCompanyName(displayName string) string {
	if idx := strings.Index(displayName, "("); idx > 0 {
		return strings.TrimSpace(displayName[:idx])
	}
	return strings.TrimSpace(displayName)
}

// Dedupe keeps the most recent filing per ticker. Hits with no
// extractable ticker are skipped. ISO dates compare correctly as
// strings; equal dates keep whichever hit came later in input order,
// a tie-break callers must not depend on.
func (d *Deduplicator) Dedupe(hits []contracts.RawFilingHit, asOf time.Time) map[string]contracts.Filing {
	filings := make(map[string]contracts.Filing)
	skipped := 0

	for _, hit := range hits {
		if len(hit.DisplayNames) == 0 {
			skipped++
			continue
		}
		display := hit.DisplayNames[0]

		ticker := ExtractTicker(display)
		if ticker == "" {
			skipped++
			continue
		}

		existing, seen := filings[ticker]
		if seen && existing.FileDate > hit.FileDate {
			continue
		}

		filing := contracts.Filing{
			Ticker:      ticker,
			CompanyName: ExtractCompanyName(display),
			FileDate:    hit.FileDate,
			FormType:    hit.Form,
		}
		filing.DaysSinceFiling = filing.AgeDays(asOf)
		filings[ticker] = filing
	}

	d.logger.WithFields(map[string]interface{}{
		"hits":    len(hits),
		"tickers": len(filings),
		"skipped": skipped,
	}).Debug("Deduplicated filings")

	return filings
}

// FormPass is one form category's worth of search hits, in priority order.
type FormPass struct {
	Form string
	Hits []contracts.RawFilingHit
}

// DedupeMultiForm merges several form passes. Within a pass the date
// rule applies as usual; across passes a ticker already chosen by an
// earlier (higher-priority) pass is never replaced by a later one.
//
// Note the pass ordering makes results position-dependent: a
// higher-priority form found in a later pass for an already-chosen
// ticker does not demote the earlier entry. Kept as-is pending product
// clarification.
func (d *Deduplicator) DedupeMultiForm(passes []FormPass, asOf time.Time) map[string]contracts.Filing {
	merged := make(map[string]contracts.Filing)

	for _, pass := range passes {
		passFilings := d.Dedupe(pass.Hits, asOf)
		for ticker, filing := range passFilings {
			if _, exists := merged[ticker]; exists {
				continue
			}
			if filing.FormType == "" {
				filing.FormType = pass.Form
			}
			merged[ticker] = filing
		}
	}

	return merged
}

// SortedByDate returns filings ordered by file date descending, for
// display. The map itself has no defined iteration order.
func SortedByDate(filings map[string]contracts.Filing) []contracts.Filing {
	out := make([]contracts.Filing, 0, len(filings))
	for _, f := range filings {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FileDate != out[j].FileDate {
			return out[i].FileDate > out[j].FileDate
		}
		return out[i].Ticker < out[j].Ticker
	})
	return out
}
