package dedup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgewatch/backend/internal/contracts"
	"github.com/edgewatch/backend/pkg/logger"
)

var asOf = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

func hit(display, date, form string) contracts.RawFilingHit {
	return contracts.RawFilingHit{
		DisplayNames: []string{display},
		FileDate:     date,
		Form:         form,
	}
}

func TestExtractTicker(t *testing.T) {
	tests := []struct {
		name    string
		display string
		want    string
	}{
		{"single ticker", "Acme Biosciences, Inc.  (ACME)  (CIK 0001234567)", "ACME"},
		{"multiple tickers takes first", "Acme Bio  (ACME, ACMEW)  (CIK 0001234567)", "ACME"},
		{"one letter", "Agilent Technologies  (A)  (CIK 0001090872)", "A"},
		{"no ticker group", "Acme Biosciences, Inc.  (CIK 0001234567)", ""},
		{"no parens at all", "Acme Biosciences, Inc.", ""},
		{"lowercase not a ticker", "Acme  (acme)  (CIK 0001)", ""},
		{"too long not a ticker", "Acme  (ACMEXX)  (CIK 0001)", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTicker(tt.display))
		})
	}
}

func TestExtractCompanyName(t *testing.T) {
	assert.Equal(t, "Acme Biosciences, Inc.",
		ExtractCompanyName("Acme Biosciences, Inc.  (ACME)  (CIK 0001234567)"))
	assert.Equal(t, "Plain Name", ExtractCompanyName("Plain Name"))
}

func TestDedupe_KeepsMostRecent(t *testing.T) {
	d := New(logger.Nop())

	older := hit("Xylo Corp  (XYLO)  (CIK 0001)", "2025-01-01", "424B5")
	newer := hit("Xylo Corp  (XYLO)  (CIK 0001)", "2025-01-10", "424B5")

	// Most recent survives regardless of input order
	forward := d.Dedupe([]contracts.RawFilingHit{older, newer}, asOf)
	reverse := d.Dedupe([]contracts.RawFilingHit{newer, older}, asOf)

	require.Len(t, forward, 1)
	assert.Equal(t, "2025-01-10", forward["XYLO"].FileDate)
	require.Len(t, reverse, 1)
	assert.Equal(t, "2025-01-10", reverse["XYLO"].FileDate)
}

func TestDedupe_DropsUnparseableHits(t *testing.T) {
	d := New(logger.Nop())

	hits := []contracts.RawFilingHit{
		hit("Good Corp  (GOOD)  (CIK 0001)", "2025-01-05", "S-3"),
		hit("No Ticker Holdings  (CIK 0002)", "2025-01-06", "S-3"),
		{FileDate: "2025-01-07", Form: "S-3"}, // no display names
	}

	filings := d.Dedupe(hits, asOf)
	require.Len(t, filings, 1)
	assert.Equal(t, "GOOD", filings["GOOD"].Ticker)
}

func TestDedupe_ComputesFilingAge(t *testing.T) {
	d := New(logger.Nop())

	filings := d.Dedupe([]contracts.RawFilingHit{
		hit("Aged Corp  (AGED)  (CIK 0001)", "2025-01-25", "424B5"),
	}, asOf)

	require.Len(t, filings, 1)
	assert.Equal(t, 7, filings["AGED"].DaysSinceFiling)
}

func TestDedupeMultiForm_EarlierPassWins(t *testing.T) {
	d := New(logger.Nop())

	passes := []FormPass{
		{Form: "S-3", Hits: []contracts.RawFilingHit{
			hit("Dual Filer  (DUAL)  (CIK 0001)", "2025-01-02", "S-3"),
		}},
		{Form: "S-1", Hits: []contracts.RawFilingHit{
			// Newer date, but lower priority pass: must not replace
			hit("Dual Filer  (DUAL)  (CIK 0001)", "2025-01-20", "S-1"),
			hit("Solo Filer  (SOLO)  (CIK 0002)", "2025-01-15", "S-1"),
		}},
	}

	merged := d.DedupeMultiForm(passes, asOf)
	require.Len(t, merged, 2)
	assert.Equal(t, "S-3", merged["DUAL"].FormType)
	assert.Equal(t, "2025-01-02", merged["DUAL"].FileDate)
	assert.Equal(t, "S-1", merged["SOLO"].FormType)
}

func TestSortedByDate(t *testing.T) {
	filings := map[string]contracts.Filing{
		"AAA": {Ticker: "AAA", FileDate: "2025-01-05"},
		"BBB": {Ticker: "BBB", FileDate: "2025-01-20"},
		"CCC": {Ticker: "CCC", FileDate: "2025-01-10"},
	}

	sorted := SortedByDate(filings)
	require.Len(t, sorted, 3)
	assert.Equal(t, "BBB", sorted[0].Ticker)
	assert.Equal(t, "CCC", sorted[1].Ticker)
	assert.Equal(t, "AAA", sorted[2].Ticker)
}
