package domain

import (
	"github.com/shopspring/decimal"
)

// Holding is a current position. Only the symbol selects what is analysed;
// the current value weights portfolio aggregation.
type Holding struct {
	Symbol       string          `json:"symbol"`
	Quantity     decimal.Decimal `json:"quantity"`
	CurrentValue decimal.Decimal `json:"current_value"`
}

// MergeHoldings normalises symbols and sums holdings that share one,
// keeping first-seen order.
func MergeHoldings(holdings []Holding) ([]Holding, error) {
	index := make(map[string]int, len(holdings))
	merged := make([]Holding, 0, len(holdings))

	for _, h := range holdings {
		sym := NormalizeSymbol(h.Symbol)
		if sym == "" {
			return nil, ErrEmptySymbol
		}
		if i, ok := index[sym]; ok {
			merged[i].Quantity = merged[i].Quantity.Add(h.Quantity)
			merged[i].CurrentValue = merged[i].CurrentValue.Add(h.CurrentValue)
			continue
		}
		index[sym] = len(merged)
		merged = append(merged, Holding{Symbol: sym, Quantity: h.Quantity, CurrentValue: h.CurrentValue})
	}

	return merged, nil
}

// TotalValue sums current values.
func TotalValue(holdings []Holding) decimal.Decimal {
	total := decimal.Zero
	for _, h := range holdings {
		total = total.Add(h.CurrentValue)
	}
	return total
}
