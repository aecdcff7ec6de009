package leaderboard

import (
	"fmt"
	"strings"

	"github.com/edgewatch/backend/internal/contracts"
)

// FallbackReason builds a deterministic reason string when the
// narrative generator is unavailable. Same metrics in, same string
// out, so runs stay reproducible without the external service.
//
// Up to two metrics are selected in fixed priority order, then joined
// with a meaning chosen by a fixed decision list:
//
//	"2.1mo runway · 12.0x debt/cash → emergency capital needed"
func FallbackReason(m contracts.EntryMetrics) string {
	var picked []string

	if m.HasRunway && m.RunwayMonths < 24 {
		picked = append(picked, fmt.Sprintf("%.1fmo runway", m.RunwayMonths))
	}
	if m.HasDebtToCash && m.DebtToCash > 1 && len(picked) < 2 {
		picked = append(picked, fmt.Sprintf("%.1fx debt/cash", m.DebtToCash))
	}
	if m.HasMarketCap && m.MarketCap < 500_000_000 && len(picked) < 2 {
		picked = append(picked, formatMarketCap(m.MarketCap))
	}
	if len(picked) == 0 {
		picked = append(picked, fmt.Sprintf("filed %dd ago", m.DaysSinceFiling))
	}

	return strings.Join(picked, " · ") + " → " + meaning(m)
}

// meaning is a fixed decision list keyed on runway, debt ratio, and
// market cap. First match wins.
func meaning(m contracts.EntryMetrics) string {
	switch {
	case m.HasRunway && m.RunwayMonths < 1:
		return "dilution imminent"
	case m.HasRunway && m.HasDebtToCash && m.DebtToCash > 10 && m.RunwayMonths < 3:
		return "emergency capital needed"
	case m.HasMarketCap && m.MarketCap < 1_000_000:
		return "ultra-microcap funding likely"
	case m.HasRunway && m.RunwayMonths > 6:
		return "early shelf positioning"
	case m.HasDebtToCash && m.DebtToCash > 20:
		return "high re-pricing risk"
	default:
		return "dilution setup forming"
	}
}

// formatMarketCap renders a dollar figure at display precision.
func formatMarketCap(v float64) string {
	switch {
	case v >= 1_000_000_000:
		return fmt.Sprintf("$%.1fB mcap", v/1_000_000_000)
	case v >= 1_000_000:
		return fmt.Sprintf("$%.0fM mcap", v/1_000_000)
	default:
		return fmt.Sprintf("$%.0fK mcap", v/1_000)
	}
}
