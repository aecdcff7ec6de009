package scoring

// Result is a composite risk score with its per-factor breakdown.
// Total is the unweighted sum of sub-scores, clipped to [0, 100].
type Result struct {
	Total     int            `json:"total"`
	Breakdown map[string]int `json:"breakdown"`
}

func newResult() Result {
	return Result{Breakdown: make(map[string]int)}
}

// add records a factor sub-score and grows the total.
func (r *Result) add(factor string, points int) {
	r.Breakdown[factor] = points
	r.Total += points
}

// clip bounds the total to [0, 100].
func (r *Result) clip() {
	if r.Total > 100 {
		r.Total = 100
	}
	if r.Total < 0 {
		r.Total = 0
	}
}
