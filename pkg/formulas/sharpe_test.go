package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSharpeRatio(t *testing.T) {
	v, ok := SharpeRatio([]float64{0.01, 0.02, 0.015, -0.005}, DefaultRiskFreeRate, TradingDaysPerYear).Value()

	assert.True(t, ok)
	assert.InDelta(t, 14.580296087995107, v, 1e-9)
}

func TestSharpeRatio_Sign(t *testing.T) {
	gains := []float64{0.002, 0.001, 0.003, 0.0005, 0.0015}
	losses := []float64{-0.002, 0.001, -0.003, 0.0005, -0.0015}

	positive, ok := SharpeRatio(gains, DefaultRiskFreeRate, TradingDaysPerYear).Value()
	assert.True(t, ok)
	assert.Greater(t, positive, 0.0)

	negative, ok := SharpeRatio(losses, DefaultRiskFreeRate, TradingDaysPerYear).Value()
	assert.True(t, ok)
	assert.Less(t, negative, 0.0)
}

func TestSharpeRatio_BelowRiskFreeIsNegative(t *testing.T) {
	// 0.5bp a day annualises to ~1.26%, under a 2% risk-free rate
	returns := []float64{0.00005, 0.00004, 0.00006, 0.00005, 0.00005}

	v, ok := SharpeRatio(returns, DefaultRiskFreeRate, TradingDaysPerYear).Value()

	assert.True(t, ok)
	assert.Less(t, v, 0.0)
}

func TestSharpeRatio_ZeroVolatilityIsDegenerate(t *testing.T) {
	m := SharpeRatio(makeReturns(0.001, 30), DefaultRiskFreeRate, TradingDaysPerYear)

	assert.False(t, m.IsAvailable())
	assert.Equal(t, ReasonDegenerateInput, m.Reason())
}

func TestSharpeRatio_InsufficientData(t *testing.T) {
	m := SharpeRatio([]float64{0.01}, DefaultRiskFreeRate, TradingDaysPerYear)

	assert.Equal(t, ReasonInsufficientData, m.Reason())
}

func TestSharpeFromMoments_PropagatesReason(t *testing.T) {
	m := SharpeFromMoments(Available(0.1), Unavailable(ReasonMissingSymbol), 0.02)

	assert.Equal(t, ReasonMissingSymbol, m.Reason())
}
