package scoring

import "github.com/edgewatch/backend/internal/contracts"

// Inputs is the record every scorer consumes. All numeric fields are
// optional: nil means the collaborator didn't report the figure, and
// every scorer maps nil to its least-distressed bucket. The bias is
// deliberate: missing data must never produce an alert on its own.
type Inputs struct {
	RunwayMonths    *float64 // months of cash at current burn
	DebtToCash      *float64 // total debt / cash
	MarketCap       *float64 // dollars
	MonthlyBurn     *float64 // dollars per month, positive = burning
	DaysSinceFiling *int
	FormType        string

	// Virality
	RelVolume    *float64 // today's volume / trailing average
	NewsMentions *int     // recent headline count
}

// Float returns a pointer to v, for building Inputs literals.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for building Inputs literals.
func Int(v int) *int { return &v }

// FromCandidate assembles scorer inputs from an enriched candidate,
// leaving fields nil wherever enrichment came back empty.
func FromCandidate(c *contracts.Candidate) Inputs {
	in := Inputs{
		DaysSinceFiling: Int(c.Filing.DaysSinceFiling),
		FormType:        c.Filing.FormType,
	}

	if c.Quote != nil && c.Quote.MarketCap > 0 {
		in.MarketCap = Float(c.Quote.MarketCap)
	}
	if rv := c.RelVolume(); rv > 0 {
		in.RelVolume = Float(rv)
	}
	if c.NewsMentions > 0 {
		in.NewsMentions = Int(c.NewsMentions)
	}

	if f := c.Fundamentals; f != nil {
		if runway, ok := f.RunwayMonths(); ok {
			in.RunwayMonths = Float(runway)
		}
		if ratio, ok := f.DebtToCash(); ok {
			in.DebtToCash = Float(ratio)
		}
		if burn := f.MonthlyBurn(); burn > 0 {
			in.MonthlyBurn = Float(burn)
		}
	}

	return in
}
