package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlignReturns(t *testing.T) {
	a := NewReturnSeries(
		[]Date{"2024-01-02", "2024-01-03", "2024-01-05", "2024-01-08"},
		[]float64{0.01, 0.02, 0.03, 0.04},
	)
	b := NewReturnSeries(
		[]Date{"2024-01-03", "2024-01-04", "2024-01-05", "2024-01-09"},
		[]float64{0.1, 0.2, 0.3, 0.4},
	)

	gotA, gotB := AlignReturns(a, b)

	assert.Equal(t, []Date{"2024-01-03", "2024-01-05"}, gotA.Dates())
	assert.Equal(t, gotA.Dates(), gotB.Dates())
	assert.Equal(t, []float64{0.02, 0.03}, gotA.Values())
	assert.Equal(t, []float64{0.1, 0.3}, gotB.Values())
}

func TestAlignReturns_Disjoint(t *testing.T) {
	a := NewReturnSeries([]Date{"2024-01-02"}, []float64{0.01})
	b := NewReturnSeries([]Date{"2024-01-03"}, []float64{0.02})

	gotA, gotB := AlignReturns(a, b)
	assert.Equal(t, 0, gotA.Len())
	assert.Equal(t, 0, gotB.Len())
}

func TestAlignAll(t *testing.T) {
	a := NewReturnSeries([]Date{"2024-01-02", "2024-01-03", "2024-01-04"}, []float64{1, 2, 3})
	b := NewReturnSeries([]Date{"2024-01-03", "2024-01-04"}, []float64{20, 30})
	c := NewReturnSeries([]Date{"2024-01-02", "2024-01-04"}, []float64{100, 300})

	out := AlignAll(a, b, c)
	assert.Len(t, out, 3)
	for _, s := range out {
		assert.Equal(t, []Date{"2024-01-04"}, s.Dates())
	}
	assert.Equal(t, []float64{3}, out[0].Values())
	assert.Equal(t, []float64{30}, out[1].Values())
	assert.Equal(t, []float64{300}, out[2].Values())

	assert.Nil(t, AlignAll())
}

func TestNewReturnSeries_TruncatesToShorter(t *testing.T) {
	r := NewReturnSeries([]Date{"2024-01-02", "2024-01-03"}, []float64{0.5})
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, []Date{"2024-01-02"}, r.Dates())
}
