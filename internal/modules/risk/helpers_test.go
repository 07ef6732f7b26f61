package risk

import (
	"math"
	"testing"

	"github.com/aristath/riskdesk/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// series compounds n-1 returns produced by step from an initial price of 100.
func series(t *testing.T, symbol string, n int, step func(i int) float64) domain.PriceSeries {
	t.Helper()
	start := domain.MustParseDate("2023-01-02").Time()
	points := make([]domain.PricePoint, n)
	price := 100.0
	for i := 0; i < n; i++ {
		if i > 0 {
			price *= 1 + step(i)
		}
		points[i] = domain.PricePoint{Date: domain.DateOf(start.AddDate(0, 0, i)), Close: price}
	}
	s, err := domain.NewPriceSeries(symbol, points)
	require.NoError(t, err)
	return s
}

func stepA(i int) float64   { return 0.001 + 0.01*math.Sin(float64(i)*0.7) }
func stepB(i int) float64   { return 0.0005 + 0.02*math.Cos(float64(i)*1.3) }
func stepSPY(i int) float64 { return 0.0008 + 0.012*math.Sin(float64(i)*0.7+0.3) }

func table(t *testing.T, s ...domain.PriceSeries) domain.HistoricalTable {
	t.Helper()
	tbl, err := domain.NewHistoricalTable(s...)
	require.NoError(t, err)
	return tbl
}

func holding(symbol string, qty, value int64) domain.Holding {
	return domain.Holding{
		Symbol:       symbol,
		Quantity:     decimal.NewFromInt(qty),
		CurrentValue: decimal.NewFromInt(value),
	}
}

func standardTable(t *testing.T) domain.HistoricalTable {
	return table(t,
		series(t, "A", 252, stepA),
		series(t, "B", 252, stepB),
		series(t, "SPY", 252, stepSPY),
	)
}

func newTestAssessor(t *testing.T, cfg Config) *Assessor {
	t.Helper()
	a, err := NewAssessor(cfg)
	require.NoError(t, err)
	return a
}
