package formulas

// DefaultRiskFreeRate is the annual risk-free rate used when none is configured.
const DefaultRiskFreeRate = 0.02

// SharpeRatio calculates the annualised Sharpe ratio of daily returns.
//
//	Sharpe = (mean(returns) * periodsPerYear - riskFreeRate) / AnnualizedVolatility
//
// Unavailable when volatility is unavailable or (numerically) zero.
func SharpeRatio(returns []float64, riskFreeRate float64, periodsPerYear int) Metric {
	volatility := AnnualizedVolatility(returns, periodsPerYear)
	return SharpeFromMoments(AnnualizedMeanReturn(returns, periodsPerYear), volatility, riskFreeRate)
}

// SharpeFromMoments combines an annualised mean return and volatility.
func SharpeFromMoments(annualReturn, volatility Metric, riskFreeRate float64) Metric {
	vol, ok := volatility.Value()
	if !ok {
		return Unavailable(volatility.Reason())
	}
	if vol < zeroTolerance {
		return Unavailable(ReasonDegenerateInput)
	}

	mean, ok := annualReturn.Value()
	if !ok {
		return Unavailable(annualReturn.Reason())
	}

	return Available((mean - riskFreeRate) / vol)
}
