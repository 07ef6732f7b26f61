package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetric_Available(t *testing.T) {
	m := Available(0.25)

	v, ok := m.Value()
	assert.True(t, ok)
	assert.Equal(t, 0.25, v)
	assert.Equal(t, Reason(""), m.Reason())
	assert.Equal(t, "0.2500", m.String())
	if assert.NotNil(t, m.Ptr()) {
		assert.Equal(t, 0.25, *m.Ptr())
	}
}

func TestMetric_ZeroIsNotAvailable(t *testing.T) {
	var m Metric

	assert.False(t, m.IsAvailable())
	assert.Equal(t, ReasonInsufficientData, m.Reason())
	assert.Nil(t, m.Ptr())
	assert.Equal(t, NotAvailable, m.String())
}

func TestMetric_AvailableZeroDiffersFromUnavailable(t *testing.T) {
	zero := Available(0)
	missing := Unavailable(ReasonInsufficientData)

	assert.True(t, zero.IsAvailable())
	assert.False(t, missing.IsAvailable())
	assert.NotEqual(t, zero, missing)
}

func TestMetric_NonFiniteBecomesDegenerate(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		m := Available(v)
		assert.False(t, m.IsAvailable())
		assert.Equal(t, ReasonDegenerateInput, m.Reason())
	}
}

func TestUnavailable_EmptyReasonDefaults(t *testing.T) {
	assert.Equal(t, ReasonInsufficientData, Unavailable("").Reason())
	assert.Equal(t, ReasonMissingSymbol, Unavailable(ReasonMissingSymbol).Reason())
}
