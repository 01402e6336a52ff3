package telemetry

// Window is a contiguous half-open slice [Start, End) of the sample series.
type Window struct {
	Start     int       `json:"start"`
	End       int       `json:"end"`
	Times     []int     `json:"times"`
	Speeds    []float64 `json:"speeds"`
	Altitudes []float64 `json:"altitudes"`
	Thrusts   []float64 `json:"thrusts"`
}

// Len returns the number of samples in the window.
func (w Window) Len() int { return len(w.Times) }

// Empty reports whether the window holds no samples.
func (w Window) Empty() bool { return len(w.Times) == 0 }

// Clamp maps requested bounds onto a series of length n with slice semantics.
// Negative bounds become 0, bounds past n become n, and start is never past end.
func Clamp(start, end, n int) (int, int) {
	start = min(max(start, 0), n)
	end = min(max(end, 0), n)
	if start > end {
		start = end
	}
	return start, end
}

// Select returns the sub-sequences samples[start:end] of all four series.
// The result does not alias samples.
func Select(samples []Sample, start, end int) Window {
	s, e := Clamp(start, end, len(samples))
	w := Window{
		Start:     s,
		End:       e,
		Times:     make([]int, 0, e-s),
		Speeds:    make([]float64, 0, e-s),
		Altitudes: make([]float64, 0, e-s),
		Thrusts:   make([]float64, 0, e-s),
	}
	for _, smp := range samples[s:e] {
		w.Times = append(w.Times, smp.Time)
		w.Speeds = append(w.Speeds, smp.Speed)
		w.Altitudes = append(w.Altitudes, smp.Altitude)
		w.Thrusts = append(w.Thrusts, smp.Thrust)
	}
	return w
}
