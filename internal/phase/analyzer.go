package phase

import (
	"errors"
	"fmt"

	"github.com/edgewatch/backend/internal/contracts"
)

// ErrInsufficientData is returned when the price window is too short
// to analyze. Callers skip the ticker rather than fail the run.
var ErrInsufficientData = errors.New("price window needs at least 2 candles")

// Metrics describes where a ticker is in its price cycle over a short
// trailing window of daily candles. Recomputed each run, never persisted.
type Metrics struct {
	PeakHigh       float64 `json:"peakHigh"`
	PeakIndex      int     `json:"peakIndex"`
	PeakDayOrdinal int     `json:"peakDayOrdinal"` // 1-based
	TroughLow      float64 `json:"troughLow"`
	TroughIndex    int     `json:"troughIndex"`
	StartPrice     float64 `json:"startPrice"`
	CurrentPrice   float64 `json:"currentPrice"`
	PeakGainPct    float64 `json:"peakGainPct"`
	CurrentGainPct float64 `json:"currentGainPct"`
	PullbackPct    float64 `json:"pullbackPct"`
	RampDays       int     `json:"rampDays"`

	IsRollingOver       bool `json:"isRollingOver"`
	IsSameDaySpikeCrash bool `json:"isSameDaySpikeCrash"`
}

const (
	// A pullback beyond this many percentage points of peak gain,
	// with the peak strictly before the last candle, reads as a
	// rollover.
	rolloverPullbackPct = 5.0

	// Same-day spike-crash: the peak candle ran up at least this much
	// intraday from its open...
	spikeIntradayPct = 50.0
	// ...but closed back below this fraction of the intraday gain.
	spikeBodyRetention = 0.3
)

// Analyze computes phase metrics for an oldest-first window of daily
// candles. The window order is a strict invariant: every peak/ramp
// computation is index-positional.
//
// Precondition: window[0].Open must be positive. Zero or negative
// opens make the gain percentages meaningless and must be excluded
// upstream.
func Analyze(window []contracts.Candle) (Metrics, error) {
	n := len(window)
	if n < 2 {
		return Metrics{}, fmt.Errorf("%w: got %d", ErrInsufficientData, n)
	}

	m := Metrics{
		PeakHigh:  window[0].High,
		TroughLow: window[0].Low,
	}

	for i, c := range window {
		if c.High > m.PeakHigh {
			m.PeakHigh = c.High
			m.PeakIndex = i
		}
		if c.Low < m.TroughLow {
			m.TroughLow = c.Low
			m.TroughIndex = i
		}
	}
	m.PeakDayOrdinal = m.PeakIndex + 1

	m.StartPrice = window[0].Open
	m.CurrentPrice = window[n-1].Close

	m.PeakGainPct = (m.PeakHigh - m.StartPrice) / m.StartPrice * 100
	m.CurrentGainPct = (m.CurrentPrice - m.StartPrice) / m.StartPrice * 100
	m.PullbackPct = m.PeakGainPct - m.CurrentGainPct

	// Rolled over: peaked strictly before the last candle and has
	// since given back more than the threshold.
	m.IsRollingOver = m.PullbackPct > rolloverPullbackPct && m.PeakDayOrdinal < n

	// Spike-crash uses only the peak candle.
	peak := window[m.PeakIndex]
	if peak.Open > 0 {
		intradayPct := (peak.High - peak.Open) / peak.Open * 100
		bodyPct := (peak.Close - peak.Open) / peak.Open * 100
		m.IsSameDaySpikeCrash = intradayPct > spikeIntradayPct &&
			bodyPct < intradayPct*spikeBodyRetention
	}

	// Ramp: consecutive green candles immediately preceding the peak.
	for i := m.PeakIndex - 1; i >= 0; i-- {
		if window[i].Close <= window[i].Open {
			break
		}
		m.RampDays++
	}

	return m, nil
}
