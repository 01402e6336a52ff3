package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe_Constant(t *testing.T) {
	xs := make([]float64, 10)
	for i := range xs {
		xs[i] = 100.0
	}
	s := Describe(xs).Rounded()
	assert.Equal(t, 10, s.Count)
	assert.Equal(t, 100.00, s.Mean)
	assert.Equal(t, 0.00, s.Std)
	assert.Equal(t, 100.00, s.Min)
	assert.Equal(t, 100.00, s.Q25)
	assert.Equal(t, 100.00, s.Q50)
	assert.Equal(t, 100.00, s.Q75)
	assert.Equal(t, 100.00, s.Max)
}

func TestDescribe_Known(t *testing.T) {
	// Order must not matter
	s := Describe([]float64{4, 1, 3, 2})
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 2.5, s.Mean, 1e-12)
	assert.InDelta(t, 1.2909944, s.Std, 1e-6)
	assert.Equal(t, 1.0, s.Min)
	assert.InDelta(t, 1.75, s.Q25, 1e-12)
	assert.InDelta(t, 2.5, s.Q50, 1e-12)
	assert.InDelta(t, 3.25, s.Q75, 1e-12)
	assert.Equal(t, 4.0, s.Max)
}

func TestDescribe_Degenerate(t *testing.T) {
	empty := Describe(nil)
	assert.Equal(t, 0, empty.Count)
	for _, v := range []float64{empty.Mean, empty.Std, empty.Min, empty.Q25, empty.Q50, empty.Q75, empty.Max} {
		assert.True(t, math.IsNaN(v))
	}

	one := Describe([]float64{7})
	assert.Equal(t, 1, one.Count)
	assert.True(t, math.IsNaN(one.Std))
	assert.Equal(t, 7.0, one.Mean)
	assert.Equal(t, 7.0, one.Q25)
	assert.Equal(t, 7.0, one.Max)
}

func TestDescribe_DoesNotReorderInput(t *testing.T) {
	xs := []float64{3, 1, 2}
	Describe(xs)
	assert.Equal(t, []float64{3, 1, 2}, xs)
}

func TestQuantile(t *testing.T) {
	sorted := []float64{10, 20, 30, 40, 50}
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 10},
		{0.25, 20},
		{0.5, 30},
		{0.6, 34},
		{1, 50},
		{1.5, 50},
		{-1, 10},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Quantile(sorted, tt.p), 1e-12, "p=%v", tt.p)
	}
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.234, 1.23},
		{1.235000001, 1.24},
		{-1.235000001, -1.24},
		{2.5, 2.5},
		{0.125, 0.13},
		{-0.125, -0.13},
		{100, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round2(tt.in), "Round2(%v)", tt.in)
	}
	assert.True(t, math.IsNaN(Round2(math.NaN())))
	assert.True(t, math.IsInf(Round2(math.Inf(-1)), -1))
}
