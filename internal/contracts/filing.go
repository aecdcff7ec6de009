package contracts

import "time"

// RawFilingHit is a single hit from the EDGAR full-text search.
// Field names follow the upstream JSON.
type RawFilingHit struct {
	DisplayNames []string `json:"display_names"`
	FileDate     string   `json:"file_date"` // YYYY-MM-DD
	Form         string   `json:"form"`
	CIKs         []string `json:"ciks"`
}

// Filing is a deduplicated filing: exactly one survives per ticker per
// run, the one with the greatest FileDate.
type Filing struct {
	Ticker          string `json:"ticker"`
	CompanyName     string `json:"companyName"`
	FileDate        string `json:"fileDate"` // YYYY-MM-DD, sorts lexicographically
	FormType        string `json:"formType"`
	DaysSinceFiling int    `json:"daysSinceFiling"`
}

// AgeDays returns whole days elapsed between the filing date and asOf.
// Unparseable dates report 0, which lands in the most-recent (most
// urgent) scoring bucket and gets corrected on display.
func (f *Filing) AgeDays(asOf time.Time) int {
	filed, err := time.Parse("2006-01-02", f.FileDate)
	if err != nil {
		return 0
	}
	days := int(asOf.Sub(filed).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
