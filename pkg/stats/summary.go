// Package stats computes the descriptive statistics shown under the charts.
package stats

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary is the eight-number description of one series.
type Summary struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Q25   float64 `json:"q25"`
	Q50   float64 `json:"q50"`
	Q75   float64 `json:"q75"`
	Max   float64 `json:"max"`
}

// Describe summarizes xs. Std is the sample standard deviation (n-1).
// An empty input yields Count 0 and NaN in every other field; a single
// value yields a NaN Std.
func Describe(xs []float64) Summary {
	nan := math.NaN()
	s := Summary{Count: len(xs), Mean: nan, Std: nan, Min: nan, Q25: nan, Q50: nan, Q75: nan, Max: nan}
	if len(xs) == 0 {
		return s
	}

	sorted := slices.Clone(xs)
	slices.Sort(sorted)

	s.Mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	s.Min = floats.Min(sorted)
	s.Max = floats.Max(sorted)
	s.Q25 = Quantile(sorted, 0.25)
	s.Q50 = Quantile(sorted, 0.50)
	s.Q75 = Quantile(sorted, 0.75)
	return s
}

// Quantile returns the p-quantile of sorted by linear interpolation between
// the closest ranks at position (n-1)p.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 || math.IsNaN(p) {
		return math.NaN()
	}
	p = min(max(p, 0), 1)
	pos := float64(n-1) * p
	lo := int(math.Floor(pos))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Round2 rounds x to two decimals, half away from zero. NaN and Inf pass through.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return math.Round(x*100) / 100
}

// Rounded returns s with every float field passed through Round2.
func (s Summary) Rounded() Summary {
	return Summary{
		Count: s.Count,
		Mean:  Round2(s.Mean),
		Std:   Round2(s.Std),
		Min:   Round2(s.Min),
		Q25:   Round2(s.Q25),
		Q50:   Round2(s.Q50),
		Q75:   Round2(s.Q75),
		Max:   Round2(s.Max),
	}
}
