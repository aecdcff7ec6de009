package scoring

// Bankruptcy scores balance-sheet distress (0-100). Compared with the
// shelf variant it weighs cash exhaustion harder and drops the form
// bonus entirely:
//
//	runway          <= 30
//	debt_pressure   <= 25
//	burn_rate       <= 20
//	market_cap      <= 15
//	filing_recency  <= 10
func Bankruptcy(in Inputs) Result {
	r := newResult()

	r.add("runway", runwayPoints(in.RunwayMonths, 30))
	r.add("debt_pressure", debtPressurePoints(in.DebtToCash, 25))
	r.add("burn_rate", burnPoints(in.MonthlyBurn, 20))
	r.add("market_cap", marketCapPoints(in.MarketCap, 15))
	r.add("filing_recency", recencyPoints(in.DaysSinceFiling, 10))

	r.clip()
	return r
}
