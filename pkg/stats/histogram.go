package stats

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultBins is the bin count of the dashboard histograms.
const DefaultBins = 20

// Bin is one histogram bucket covering [Lo, Hi). The last bin also holds Hi.
type Bin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// Histogram sorts the finite values of xs into equal-width bins spanning
// [min, max]. A single distinct value gets a unit-wide range centred on it.
// It returns nil when xs has no finite values.
func Histogram(xs []float64, bins int) []Bin {
	if bins <= 0 {
		bins = DefaultBins
	}
	vals := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			vals = append(vals, x)
		}
	}
	if len(vals) == 0 {
		return nil
	}
	slices.Sort(vals)

	lo, hi := vals[0], vals[len(vals)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	edges := floats.Span(make([]float64, bins+1), lo, hi)
	// stat.Histogram treats the last divider as exclusive.
	dividers := slices.Clone(edges)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, vals, nil)

	out := make([]Bin, bins)
	for i := range out {
		out[i] = Bin{Lo: edges[i], Hi: edges[i+1], Count: int(counts[i])}
	}
	return out
}
