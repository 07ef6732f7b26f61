package formulas

import (
	"math"
	"sort"
)

// DefaultVaRConfidence is the tail probability used for historical VaR.
const DefaultVaRConfidence = 0.05

// Percentile returns the p-quantile (0 <= p <= 1) of data using linear
// interpolation between the two nearest order statistics at rank (n-1)*p.
// The input slice is not modified.
func Percentile(data []float64, p float64) (float64, bool) {
	if len(data) == 0 || p < 0 || p > 1 || math.IsNaN(p) {
		return 0, false
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	rank := float64(len(sorted)-1) * p
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower], true
	}

	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower]), true
}

// HistoricalVaR is the historical-simulation Value at Risk at the given tail
// probability (0.05 = 5th percentile), reported as a positive loss magnitude:
// VaR = -percentile(returns, confidence).
func HistoricalVaR(returns []float64, confidence float64) Metric {
	if confidence <= 0 || confidence >= 1 {
		return Unavailable(ReasonDegenerateInput)
	}

	q, ok := Percentile(returns, confidence)
	if !ok {
		return Unavailable(ReasonInsufficientData)
	}

	// a zero percentile would otherwise report -0
	v := -q
	if v == 0 {
		v = 0
	}
	return Available(v)
}
