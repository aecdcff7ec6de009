package contracts

import "time"

// EntryMetrics is the metric snapshot attached to a leaderboard entry.
// It feeds both the narrative generator and the deterministic fallback
// reason, so it must be stable for identical inputs.
type EntryMetrics struct {
	RunwayMonths    float64        `json:"runwayMonths"`
	HasRunway       bool           `json:"hasRunway"`
	DebtToCash      float64        `json:"debtToCash"`
	HasDebtToCash   bool           `json:"hasDebtToCash"`
	MarketCap       float64        `json:"marketCap"`
	HasMarketCap    bool           `json:"hasMarketCap"`
	DaysSinceFiling int            `json:"daysSinceFiling"`
	PeakGainPct     float64        `json:"peakGainPct"`
	PullbackPct     float64        `json:"pullbackPct"`
	IsRollingOver   bool           `json:"isRollingOver"`
	Breakdown       map[string]int `json:"breakdown"`
}

// LeaderboardEntry is one ranked alert candidate, created fresh each run.
type LeaderboardEntry struct {
	Rank        int          `json:"rank"`
	Ticker      string       `json:"ticker"`
	CompanyName string       `json:"companyName"`
	Score       int          `json:"score"`
	FormType    string       `json:"formType"`
	Reason      string       `json:"reason"`
	Metrics     EntryMetrics `json:"metrics"`
}

// Report is the leaderboard artifact written at the end of a run.
type Report struct {
	GeneratedAt  time.Time          `json:"generatedAt"`
	Variant      string             `json:"variant"`
	Period       string             `json:"period"`
	DateRange    string             `json:"dateRange"`
	TotalFilings int                `json:"totalFilings"`
	Enriched     int                `json:"enriched"`
	Qualified    int                `json:"qualified"`
	APICalls     int                `json:"apiCalls"`
	ConfigHash   string             `json:"configHash,omitempty"`
	Leaderboard  []LeaderboardEntry `json:"leaderboard"`
}
