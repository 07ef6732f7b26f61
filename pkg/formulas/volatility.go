package formulas

import "math"

// TradingDaysPerYear is the conventional annualisation factor for daily data.
const TradingDaysPerYear = 252

// AnnualizedVolatility is the sample standard deviation of returns scaled by
// sqrt(periodsPerYear). Needs at least two returns.
func AnnualizedVolatility(returns []float64, periodsPerYear int) Metric {
	if len(returns) < 2 || periodsPerYear <= 0 {
		return Unavailable(ReasonInsufficientData)
	}
	return Available(StdDev(returns) * math.Sqrt(float64(periodsPerYear)))
}

// AnnualizedMeanReturn is the arithmetic mean of returns times periodsPerYear.
func AnnualizedMeanReturn(returns []float64, periodsPerYear int) Metric {
	if len(returns) == 0 || periodsPerYear <= 0 {
		return Unavailable(ReasonInsufficientData)
	}
	return Available(Mean(returns) * float64(periodsPerYear))
}
