// Package aero derives lift and drag coefficients from cruise telemetry.
package aero

import (
	"fmt"
	"math"
)

const (
	// SeaLevelDensity is the ISA air density at sea level in kg/m³.
	SeaLevelDensity = 1.225
	// DensityScaleHeight is the altitude at which the linear density model reaches zero.
	DensityScaleHeight = 44330.0

	DefaultWeight   = 50000.0 // N
	DefaultWingArea = 30.0    // m²
)

// Params are the physical parameters as entered by the user. A nil field is missing.
type Params struct {
	Weight   *float64 `json:"weight"`
	WingArea *float64 `json:"wing_area"`
}

// Resolved holds the parameters actually used for computation.
type Resolved struct {
	Weight   float64 `json:"weight"`
	WingArea float64 `json:"wing_area"`
	FellBack bool    `json:"fell_back"`
	Reason   string  `json:"reason,omitempty"`
}

// Defaults returns the built-in fallback parameters.
func Defaults() Resolved {
	return Resolved{Weight: DefaultWeight, WingArea: DefaultWingArea}
}

// Resolve validates p. If either value is missing, non-finite or not positive,
// both fall back to def.
func Resolve(p Params, def Resolved) Resolved {
	reason := invalid("weight", p.Weight)
	if reason == "" {
		reason = invalid("wing_area", p.WingArea)
	}
	if reason != "" {
		return Resolved{Weight: def.Weight, WingArea: def.WingArea, FellBack: true, Reason: reason}
	}
	return Resolved{Weight: *p.Weight, WingArea: *p.WingArea}
}

func invalid(name string, v *float64) string {
	switch {
	case v == nil:
		return name + " missing"
	case math.IsNaN(*v) || math.IsInf(*v, 0):
		return name + " not finite"
	case *v <= 0:
		return fmt.Sprintf("%s %g not positive", name, *v)
	}
	return ""
}

// Density returns the air density at alt metres.
func Density(alt float64) float64 {
	return SeaLevelDensity * (1 - alt/DensityScaleHeight)
}

// Coefficients returns the lift and drag coefficients for one sample.
// ok is false, with both coefficients NaN, when the dynamic pressure term is
// not positive or an input is not finite.
func Coefficients(alt, v, t, weight, area float64) (cl, cd float64, ok bool) {
	for _, x := range [...]float64{alt, v, t, weight, area} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return math.NaN(), math.NaN(), false
		}
	}
	rho := Density(alt)
	if rho <= 0 || v <= 0 || area <= 0 {
		return math.NaN(), math.NaN(), false
	}
	q := rho * v * v * area
	cl = 2 * weight / q
	cd = 2 * t / q
	if math.IsInf(cl, 0) || math.IsInf(cd, 0) {
		return math.NaN(), math.NaN(), false
	}
	return cl, cd, true
}

// Result holds index-aligned coefficient sequences.
type Result struct {
	CL         []float64 `json:"cl"`
	CD         []float64 `json:"cd"`
	Degenerate []int     `json:"degenerate,omitempty"`
}

// Len returns the number of computed points.
func (r Result) Len() int { return len(r.CL) }

// Compute evaluates Coefficients element-wise. The input slices must have
// equal length; extra elements of longer slices are ignored.
func Compute(alts, speeds, thrusts []float64, weight, area float64) Result {
	n := min(len(alts), len(speeds), len(thrusts))
	r := Result{
		CL: make([]float64, n),
		CD: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		cl, cd, ok := Coefficients(alts[i], speeds[i], thrusts[i], weight, area)
		r.CL[i], r.CD[i] = cl, cd
		if !ok {
			r.Degenerate = append(r.Degenerate, i)
		}
	}
	return r
}
