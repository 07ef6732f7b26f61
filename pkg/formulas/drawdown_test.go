package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		name     string
		prices   []float64
		expected float64
	}{
		{name: "single dip then recovery", prices: []float64{100, 80, 120}, expected: 0.20},
		{name: "strictly increasing", prices: []float64{100, 101, 105, 110}, expected: 0},
		{name: "flat", prices: []float64{100, 100, 100}, expected: 0},
		{name: "later deeper trough", prices: []float64{100, 90, 120, 60, 130}, expected: 0.5},
		{name: "first move down", prices: []float64{100, 75}, expected: 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := MaxDrawdown(CalculateReturns(tt.prices)).Value()
			assert.True(t, ok)
			assert.InDelta(t, tt.expected, v, 1e-9)
		})
	}
}

func TestMaxDrawdown_Empty(t *testing.T) {
	m := MaxDrawdown(nil)

	assert.False(t, m.IsAvailable())
	assert.Equal(t, ReasonInsufficientData, m.Reason())
}
