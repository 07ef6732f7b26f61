package formulas

// MaxDrawdown walks the wealth curve obtained by compounding returns from 1
// and returns the largest (peak - trough) / peak as a positive fraction.
// A non-decreasing curve has a drawdown of 0.
func MaxDrawdown(returns []float64) Metric {
	if len(returns) == 0 {
		return Unavailable(ReasonInsufficientData)
	}

	peak := 1.0
	maxDrawdown := 0.0

	for _, wealth := range WealthCurve(returns) {
		if wealth > peak {
			peak = wealth
			continue
		}

		if drawdown := (peak - wealth) / peak; drawdown > maxDrawdown {
			maxDrawdown = drawdown
		}
	}

	return Available(maxDrawdown)
}
