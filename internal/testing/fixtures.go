package testing

import (
	"math"

	"github.com/aristath/riskdesk/internal/domain"
	"github.com/shopspring/decimal"
)

// FixtureStart is the first date of generated price fixtures.
const FixtureStart = domain.Date("2023-01-02")

// NewPricePoints compounds n-1 returns from step starting at price 100,
// one calendar day apart from FixtureStart.
func NewPricePoints(n int, step func(i int) float64) []domain.PricePoint {
	start := FixtureStart.Time()
	points := make([]domain.PricePoint, n)
	price := 100.0
	for i := 0; i < n; i++ {
		if i > 0 {
			price *= 1 + step(i)
		}
		points[i] = domain.PricePoint{Date: domain.DateOf(start.AddDate(0, 0, i)), Close: price}
	}
	return points
}

// WaveStep returns a deterministic non-constant daily return generator.
func WaveStep(drift, amplitude, frequency float64) func(int) float64 {
	return func(i int) float64 {
		return drift + amplitude*math.Sin(float64(i)*frequency)
	}
}

// NewPriceFixtures returns 252-point histories for A, B and SPY.
func NewPriceFixtures() map[string][]domain.PricePoint {
	return map[string][]domain.PricePoint{
		"A":   NewPricePoints(252, WaveStep(0.001, 0.01, 0.7)),
		"B":   NewPricePoints(252, WaveStep(0.0005, 0.02, 1.3)),
		"SPY": NewPricePoints(252, WaveStep(0.0008, 0.012, 0.5)),
	}
}

// NewHistoricalTableFixture builds a table from NewPriceFixtures.
func NewHistoricalTableFixture() (domain.HistoricalTable, error) {
	var series []domain.PriceSeries
	for sym, pts := range NewPriceFixtures() {
		s, err := domain.NewPriceSeries(sym, pts)
		if err != nil {
			return domain.HistoricalTable{}, err
		}
		series = append(series, s)
	}
	return domain.NewHistoricalTable(series...)
}

// NewHoldingFixtures returns holdings A (10 shares) and B (5 shares).
func NewHoldingFixtures() []domain.Holding {
	return []domain.Holding{
		{Symbol: "A", Quantity: decimal.NewFromInt(10), CurrentValue: decimal.RequireFromString("1520.50")},
		{Symbol: "B", Quantity: decimal.NewFromInt(5), CurrentValue: decimal.RequireFromString("610.25")},
	}
}
