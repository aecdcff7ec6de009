package contracts

// Candidate is one enriched ticker flowing through a scan run: the
// surviving filing plus everything the market-data provider returned
// for it. Missing collaborator data leaves the pointer fields nil;
// downstream scoring treats nil as the healthiest bucket.
type Candidate struct {
	Filing Filing

	Quote        *Quote
	Profile      *Profile
	Fundamentals *Fundamentals

	// Daily candles, oldest first. May be empty when history was
	// unavailable; phase analysis is skipped in that case.
	Candles []Candle

	// Virality inputs
	NewsMentions int
}

// RelVolume returns today's volume relative to the trailing average,
// or 0 when either figure is missing.
func (c *Candidate) RelVolume() float64 {
	if c.Quote == nil || c.Quote.AvgVolume <= 0 {
		return 0
	}
	return float64(c.Quote.Volume) / float64(c.Quote.AvgVolume)
}

// DisplayName returns the best available company name.
func (c *Candidate) DisplayName() string {
	if c.Profile != nil && c.Profile.CompanyName != "" {
		return c.Profile.CompanyName
	}
	return c.Filing.CompanyName
}
