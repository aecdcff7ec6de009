package enrich

import "sync/atomic"

// Counter tracks external API calls for one run. It is created fresh
// per run and threaded through enrichment, so call accounting never
// leaks across runs.
type Counter struct {
	calls atomic.Int64
}

// NewCounter creates a zeroed counter.
func NewCounter() *Counter {
	return &Counter{}
}

// Add records n calls. Safe under the per-ticker fan-out.
func (c *Counter) Add(n int) {
	c.calls.Add(int64(n))
}

// Total returns the calls recorded so far.
func (c *Counter) Total() int {
	return int(c.calls.Load())
}
