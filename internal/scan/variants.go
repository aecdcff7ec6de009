package scan

import (
	"github.com/edgewatch/backend/internal/contracts"
	"github.com/edgewatch/backend/internal/phase"
	"github.com/edgewatch/backend/internal/scoring"
)

// Variant is one scanner flavor: which forms it watches and how it
// scores a candidate. Score may drop a candidate by returning false.
type Variant interface {
	Name() string
	Forms() []string
	Score(c *contracts.Candidate, m *phase.Metrics, params Params) (scoring.Result, bool)
}

// ATM watches fresh at-the-market prospectus supplements. A 424B5 is
// the loudest dilution signal there is: the shelf is live and the
// company is actively selling into the market.
type ATM struct{}

func (ATM) Name() string    { return "atm" }
func (ATM) Forms() []string { return []string{"424B5"} }

func (ATM) Score(c *contracts.Candidate, _ *phase.Metrics, params Params) (scoring.Result, bool) {
	in := scoring.FromCandidate(c)
	return scoring.WeightedVIS(in, params.BankruptcyWeight, params.ViralityWeight), true
}

// Shelf watches shelf and primary registrations before money moves.
// Form order is priority order: an S-3 hit wins over a later-pass hit
// for the same ticker.
type Shelf struct{}

func (Shelf) Name() string    { return "shelf" }
func (Shelf) Forms() []string { return []string{"S-3", "S-1", "S-8"} }

func (Shelf) Score(c *contracts.Candidate, _ *phase.Metrics, _ Params) (scoring.Result, bool) {
	return scoring.ShelfDilution(scoring.FromCandidate(c)), true
}

// Momentum watches filers that already ran. Candidates without a
// usable price window are dropped, and the tier gate keeps only moves
// at or above the requested size.
type Momentum struct{}

func (Momentum) Name() string    { return "momentum" }
func (Momentum) Forms() []string { return []string{"424B5", "S-3", "S-1"} }

func (Momentum) Score(c *contracts.Candidate, m *phase.Metrics, params Params) (scoring.Result, bool) {
	if m == nil {
		return scoring.Result{}, false
	}
	if phase.Tier(*m) < params.MinTier {
		return scoring.Result{}, false
	}

	in := scoring.FromCandidate(c)
	return scoring.WeightedVIS(in, params.BankruptcyWeight, params.ViralityWeight), true
}
