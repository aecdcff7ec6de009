package scoring

import "math"

// visBankruptcyWeight and visViralityWeight define the VIS blend.
// Distress dominates; attention amplifies.
const (
	visBankruptcyWeight = 0.6
	visViralityWeight   = 0.4
)

// VIS combines the bankruptcy and virality scores into one headline
// number:
//
//	VIS = round(0.6*bankruptcy + 0.4*virality)
//
// The breakdown carries the two component totals, not the underlying
// factor buckets; callers wanting those run the components directly.
func VIS(in Inputs) Result {
	return WeightedVIS(in, visBankruptcyWeight, visViralityWeight)
}

// WeightedVIS is VIS with caller-supplied blend weights, for scan
// profiles that tune the blend. Weights are expected to sum to 1.
func WeightedVIS(in Inputs, bankruptcyWeight, viralityWeight float64) Result {
	bankruptcy := Bankruptcy(in)
	virality := Virality(in)

	r := newResult()
	r.Breakdown["bankruptcy"] = bankruptcy.Total
	r.Breakdown["virality"] = virality.Total
	r.Total = int(math.Round(
		bankruptcyWeight*float64(bankruptcy.Total) +
			viralityWeight*float64(virality.Total)))
	r.clip()

	return r
}
