package contracts

// Candle is a single daily OHLCV bar.
type Candle struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// Quote is the current market snapshot for a symbol.
type Quote struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	MarketCap float64 `json:"marketCap"`
	Volume    int64   `json:"volume"`
	AvgVolume int64   `json:"avgVolume"`
}

// Profile is static company information.
type Profile struct {
	Symbol      string  `json:"symbol"`
	CompanyName string  `json:"companyName"`
	Exchange    string  `json:"exchange"`
	Sector      string  `json:"sector"`
	FloatShares float64 `json:"floatShares"`
	SharesOut   float64 `json:"sharesOutstanding"`
}

// Fundamentals carries the balance-sheet and cash-flow figures the
// risk scorers consume. Zero values mean "not reported"; the scorers
// treat missing data as healthy rather than erroring.
type Fundamentals struct {
	Symbol            string  `json:"symbol"`
	Cash              float64 `json:"cash"`      // cash and short-term investments
	TotalDebt         float64 `json:"totalDebt"`
	OperatingCashFlow float64 `json:"operatingCashFlow"` // trailing period, negative = burning
	PeriodMonths      int     `json:"periodMonths"`      // months covered by the cash-flow period
}

// MonthlyBurn returns the monthly cash burn in dollars, or 0 when the
// company is cash-flow positive or the data is missing.
func (f *Fundamentals) MonthlyBurn() float64 {
	if f.OperatingCashFlow >= 0 || f.PeriodMonths <= 0 {
		return 0
	}
	return -f.OperatingCashFlow / float64(f.PeriodMonths)
}

// RunwayMonths returns months of cash left at the current burn rate.
// Returns ok=false when burn is zero or cash is unreported.
func (f *Fundamentals) RunwayMonths() (float64, bool) {
	burn := f.MonthlyBurn()
	if burn <= 0 || f.Cash <= 0 {
		return 0, false
	}
	return f.Cash / burn, true
}

// DebtToCash returns the debt/cash pressure ratio.
// Returns ok=false when either side is unreported.
func (f *Fundamentals) DebtToCash() (float64, bool) {
	if f.Cash <= 0 || f.TotalDebt <= 0 {
		return 0, false
	}
	return f.TotalDebt / f.Cash, true
}
