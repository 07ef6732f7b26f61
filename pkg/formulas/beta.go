package formulas

// Beta is cov(asset, benchmark) / var(benchmark) over two aligned return series.
//
// Both moments use the N-1 divisor, so an asset identical to its benchmark has
// a beta of exactly 1. A flat benchmark is degenerate.
func Beta(asset, benchmark []float64) Metric {
	if len(asset) != len(benchmark) || len(benchmark) < 2 {
		return Unavailable(ReasonInsufficientData)
	}

	variance := Variance(benchmark)
	if variance < zeroTolerance*zeroTolerance {
		return Unavailable(ReasonDegenerateInput)
	}

	return Available(Covariance(asset, benchmark) / variance)
}
