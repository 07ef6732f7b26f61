package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aristath/riskdesk/pkg/formulas"
)

// PricePoint is one daily closing price.
type PricePoint struct {
	Date  Date    `json:"date"`
	Close float64 `json:"close"`
}

// PriceSeries is a validated, chronologically ordered price history for one symbol.
// It is never mutated after construction.
type PriceSeries struct {
	symbol string
	points []PricePoint
}

// NewPriceSeries validates points and builds a series. Dates must be strictly
// increasing and every price finite and positive.
func NewPriceSeries(symbol string, points []PricePoint) (PriceSeries, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return PriceSeries{}, ErrEmptySymbol
	}

	owned := make([]PricePoint, len(points))
	for i, p := range points {
		if _, err := ParseDate(string(p.Date)); err != nil {
			return PriceSeries{}, fmt.Errorf("%s: %w", symbol, err)
		}
		if p.Close <= 0 || math.IsNaN(p.Close) || math.IsInf(p.Close, 0) {
			return PriceSeries{}, fmt.Errorf("%s on %s: %w", symbol, p.Date, ErrNonPositivePrice)
		}
		if i > 0 {
			prev := points[i-1].Date
			if p.Date == prev {
				return PriceSeries{}, fmt.Errorf("%s on %s: %w", symbol, p.Date, ErrDuplicateDate)
			}
			if p.Date.Before(prev) {
				return PriceSeries{}, fmt.Errorf("%s: %s after %s: %w", symbol, p.Date, prev, ErrUnorderedDates)
			}
		}
		owned[i] = p
	}

	return PriceSeries{symbol: symbol, points: owned}, nil
}

// Symbol returns the normalised symbol.
func (s PriceSeries) Symbol() string {
	return s.symbol
}

// Len returns the number of price points.
func (s PriceSeries) Len() int {
	return len(s.points)
}

// Points returns a copy of the price points.
func (s PriceSeries) Points() []PricePoint {
	out := make([]PricePoint, len(s.points))
	copy(out, s.points)
	return out
}

// Prices returns the closing prices in date order.
func (s PriceSeries) Prices() []float64 {
	out := make([]float64, len(s.points))
	for i, p := range s.points {
		out[i] = p.Close
	}
	return out
}

// Returns derives the simple return series. Each return is dated at the
// close that ends its period.
func (s PriceSeries) Returns() ReturnSeries {
	values := formulas.CalculateReturns(s.Prices())
	dates := make([]Date, len(values))
	for i := range values {
		dates[i] = s.points[i+1].Date
	}
	return ReturnSeries{dates: dates, values: values}
}

// HistoricalTable maps symbols to their price series. It is read-only.
type HistoricalTable struct {
	series map[string]PriceSeries
}

// NewHistoricalTable builds a table keyed by normalised symbol.
func NewHistoricalTable(series ...PriceSeries) (HistoricalTable, error) {
	table := HistoricalTable{series: make(map[string]PriceSeries, len(series))}
	for _, s := range series {
		if s.symbol == "" {
			return HistoricalTable{}, ErrEmptySymbol
		}
		if _, ok := table.series[s.symbol]; ok {
			return HistoricalTable{}, fmt.Errorf("%s: %w", s.symbol, ErrDuplicateSymbol)
		}
		table.series[s.symbol] = s
	}
	return table, nil
}

// Get returns the series for symbol.
func (t HistoricalTable) Get(symbol string) (PriceSeries, bool) {
	s, ok := t.series[NormalizeSymbol(symbol)]
	return s, ok
}

// Has reports whether symbol is present.
func (t HistoricalTable) Has(symbol string) bool {
	_, ok := t.Get(symbol)
	return ok
}

// Len returns the number of symbols.
func (t HistoricalTable) Len() int {
	return len(t.series)
}

// Symbols returns all symbols sorted ascending.
func (t HistoricalTable) Symbols() []string {
	out := make([]string, 0, len(t.series))
	for sym := range t.series {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
