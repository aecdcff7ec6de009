package scoring

import "strings"

// ShelfDilution scores how likely a shelf filer is to dilute soon
// (SDR, 0-100). Factor allocations:
//
//	runway          <= 25
//	debt_pressure   <= 20
//	filing_recency  <= 20
//	market_cap      <= 15
//	form_type       <= 10
//	burn_rate       <= 10
//
// Each factor is a monotone step function; bucket boundaries belong
// to the more distressed side.
func ShelfDilution(in Inputs) Result {
	r := newResult()

	r.add("runway", runwayPoints(in.RunwayMonths, 25))
	r.add("debt_pressure", debtPressurePoints(in.DebtToCash, 20))
	r.add("filing_recency", recencyPoints(in.DaysSinceFiling, 20))
	r.add("market_cap", marketCapPoints(in.MarketCap, 15))
	r.add("form_type", formTypePoints(in.FormType))
	r.add("burn_rate", burnPoints(in.MonthlyBurn, 10))

	r.clip()
	return r
}

// runwayPoints maps months of cash to points, scaled so a runway
// under one month earns the full allocation.
func runwayPoints(runway *float64, max int) int {
	if runway == nil {
		return 0
	}
	switch {
	case *runway < 1:
		return max
	case *runway < 3:
		return max * 4 / 5
	case *runway < 6:
		return max * 3 / 5
	case *runway < 12:
		return max * 2 / 5
	case *runway < 24:
		return max / 5
	default:
		return 0
	}
}

// debtPressurePoints maps the debt/cash ratio to points.
func debtPressurePoints(ratio *float64, max int) int {
	if ratio == nil {
		return 0
	}
	switch {
	case *ratio > 20:
		return max
	case *ratio > 10:
		return max * 4 / 5
	case *ratio > 5:
		return max * 3 / 5
	case *ratio > 2:
		return max * 2 / 5
	case *ratio > 1:
		return max / 5
	default:
		return 0
	}
}

// recencyPoints rewards fresh filings: the ink still wet means the
// program is most likely to be used.
func recencyPoints(days *int, max int) int {
	if days == nil {
		return 0
	}
	switch {
	case *days < 3:
		return max
	case *days < 7:
		return max * 3 / 4
	case *days < 14:
		return max / 2
	case *days < 30:
		return max / 4
	default:
		return 0
	}
}

// marketCapPoints: the smaller the company, the more dilutive any
// raise is.
func marketCapPoints(mcap *float64, max int) int {
	if mcap == nil {
		return 0
	}
	switch {
	case *mcap < 1_000_000:
		return max
	case *mcap < 50_000_000:
		return max * 4 / 5
	case *mcap < 200_000_000:
		return max * 8 / 15
	case *mcap < 500_000_000:
		return max * 4 / 15
	default:
		return 0
	}
}

// formTypePoints gives a fixed bonus by form category (max 10).
// 424B5 means the sale program is already live; S-3/F-3 is a ready
// shelf; S-1/F-1 still needs effectiveness.
func formTypePoints(form string) int {
	switch strings.ToUpper(strings.TrimSpace(form)) {
	case "424B5":
		return 10
	case "S-3", "F-3":
		return 8
	case "S-1", "F-1":
		return 5
	default:
		return 0
	}
}

// burnPoints maps absolute monthly burn to points.
func burnPoints(burn *float64, max int) int {
	if burn == nil {
		return 0
	}
	switch {
	case *burn > 10_000_000:
		return max
	case *burn > 5_000_000:
		return max * 4 / 5
	case *burn > 2_000_000:
		return max * 3 / 5
	case *burn > 1_000_000:
		return max * 2 / 5
	case *burn > 0:
		return max / 5
	default:
		return 0
	}
}
