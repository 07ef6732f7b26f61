package formulas

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentile_LinearInterpolation(t *testing.T) {
	data := []float64{0.10, -0.05, 0.00, -0.10, 0.05}

	tests := []struct {
		p    float64
		want float64
	}{
		{0.0, -0.10},
		{0.05, -0.09},
		{0.25, -0.05},
		{0.5, 0.0},
		{0.9, 0.08},
		{1.0, 0.10},
	}

	for _, tt := range tests {
		got, ok := Percentile(data, tt.p)
		assert.True(t, ok)
		assert.InDelta(t, tt.want, got, 1e-12, "p=%v", tt.p)
	}

	// input untouched
	assert.Equal(t, []float64{0.10, -0.05, 0.00, -0.10, 0.05}, data)
}

func TestPercentile_InvalidInput(t *testing.T) {
	_, ok := Percentile(nil, 0.05)
	assert.False(t, ok)

	_, ok = Percentile([]float64{1}, 1.5)
	assert.False(t, ok)
}

func TestPercentile_SingleValue(t *testing.T) {
	got, ok := Percentile([]float64{-0.03}, 0.05)
	assert.True(t, ok)
	assert.Equal(t, -0.03, got)
}

func TestHistoricalVaR(t *testing.T) {
	returns := []float64{-0.10, -0.05, 0.00, 0.05, 0.10}

	v, ok := HistoricalVaR(returns, DefaultVaRConfidence).Value()

	assert.True(t, ok)
	assert.InDelta(t, 0.09, v, 1e-12)
}

func TestHistoricalVaR_AllGainsIsNegativeLoss(t *testing.T) {
	v, ok := HistoricalVaR([]float64{0.01, 0.02, 0.03}, DefaultVaRConfidence).Value()

	assert.True(t, ok)
	assert.InDelta(t, -0.011, v, 1e-12)
}

func TestHistoricalVaR_Unavailable(t *testing.T) {
	assert.Equal(t, ReasonInsufficientData, HistoricalVaR(nil, DefaultVaRConfidence).Reason())
	assert.Equal(t, ReasonDegenerateInput, HistoricalVaR([]float64{0.01}, 0).Reason())
	assert.Equal(t, ReasonDegenerateInput, HistoricalVaR([]float64{0.01}, 1).Reason())
}

func TestHistoricalVaR_FlatSeriesIsPositiveZero(t *testing.T) {
	m := HistoricalVaR([]float64{0, 0, 0, 0}, DefaultVaRConfidence)

	v, ok := m.Value()
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)
	assert.False(t, math.Signbit(v))
	assert.Equal(t, "0.0000", m.String())

	data, err := json.Marshal(m.Ptr())
	assert.NoError(t, err)
	assert.Equal(t, "0", string(data))
}
