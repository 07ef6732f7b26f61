package formulas

// CalculateReturns converts prices to simple period returns.
// Returns[i] = Price[i+1]/Price[i] - 1, so len(returns) == len(prices)-1.
// Prices must be positive; fewer than two prices yield an empty slice.
func CalculateReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return []float64{}
	}

	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns[i-1] = prices[i]/prices[i-1] - 1
	}

	return returns
}

// WealthCurve compounds returns from an initial value of 1.
func WealthCurve(returns []float64) []float64 {
	curve := make([]float64, len(returns))
	wealth := 1.0
	for i, r := range returns {
		wealth *= 1 + r
		curve[i] = wealth
	}
	return curve
}
