package phase

// Tier buckets a window's peak gain into a coarse momentum tier for
// the momentum-first scan variant. Higher tiers mean a bigger run.
//
//	tier 3: peak gain >= 100%
//	tier 2: peak gain >= 50%
//	tier 1: peak gain >= 25%
//	tier 0: everything else
func Tier(m Metrics) int {
	switch {
	case m.PeakGainPct >= 100:
		return 3
	case m.PeakGainPct >= 50:
		return 2
	case m.PeakGainPct >= 25:
		return 1
	default:
		return 0
	}
}
