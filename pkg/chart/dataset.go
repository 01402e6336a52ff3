// Package chart builds the six dashboard chart datasets and renders them as SVG.
package chart

import (
	"math"

	"cruisemon/pkg/aero"
	"cruisemon/pkg/stats"
	"cruisemon/pkg/telemetry"
)

// Kind selects how a dataset is drawn.
type Kind string

const (
	KindLine      Kind = "line"
	KindHistogram Kind = "histogram"
)

// Chart names, also used in the /api/charts/{name} route.
const (
	Speed             = "speed"
	Altitude          = "altitude"
	Thrust            = "thrust"
	Polar             = "polar"
	SpeedHistogram    = "speed-histogram"
	AltitudeHistogram = "altitude-histogram"
)

// Names lists the charts in page order.
var Names = []string{Speed, Altitude, Thrust, Polar, SpeedHistogram, AltitudeHistogram}

// Palette of the dashboard.
const (
	ColorNavy       = "#003366"
	ColorSky        = "#6699cc"
	ColorSilver     = "#cccccc"
	ColorGray       = "#999999"
	ColorBackground = "#f0f0f0"
)

// Dataset is a chart-ready series. Line datasets use X/Y; histograms use Bins.
type Dataset struct {
	Name   string      `json:"name"`
	Kind   Kind        `json:"kind"`
	Title  string      `json:"title"`
	XLabel string      `json:"x_label"`
	YLabel string      `json:"y_label"`
	Color  string      `json:"color"`
	X      []float64   `json:"x,omitempty"`
	Y      []float64   `json:"y,omitempty"`
	Bins   []stats.Bin `json:"bins,omitempty"`
}

// Empty reports whether there is nothing to plot.
func (d Dataset) Empty() bool {
	if d.Kind == KindHistogram {
		return len(d.Bins) == 0
	}
	return len(d.X) == 0
}

// Set is the collection of datasets for one frame, in page order.
type Set []Dataset

// Get returns the dataset with the given name.
func (s Set) Get(name string) (Dataset, bool) {
	for _, d := range s {
		if d.Name == name {
			return d, true
		}
	}
	return Dataset{}, false
}

// Build assembles the datasets for a window and its coefficients.
func Build(w telemetry.Window, coeff aero.Result, bins int) Set {
	times := make([]float64, len(w.Times))
	for i, t := range w.Times {
		times[i] = float64(t)
	}

	return Set{
		line(Speed, "Speed over Time", "Time", "Speed", ColorNavy, times, w.Speeds),
		line(Altitude, "Altitude over Time", "Time", "Altitude", ColorSky, times, w.Altitudes),
		line(Thrust, "Thrust over Time", "Time", "Thrust", ColorSilver, times, w.Thrusts),
		line(Polar, "Cruise Drag Polar", "C_L", "C_D", ColorGray, coeff.CL, coeff.CD),
		histogram(SpeedHistogram, "Speed Histogram", "Speed", ColorNavy, w.Speeds, bins),
		histogram(AltitudeHistogram, "Altitude Histogram", "Altitude", ColorSky, w.Altitudes, bins),
	}
}

// line pairs xs and ys, dropping points where either coordinate is not finite.
func line(name, title, xl, yl, color string, xs, ys []float64) Dataset {
	n := min(len(xs), len(ys))
	d := Dataset{
		Name: name, Kind: KindLine, Title: title, XLabel: xl, YLabel: yl, Color: color,
		X: make([]float64, 0, n),
		Y: make([]float64, 0, n),
	}
	for i := 0; i < n; i++ {
		if !finite(xs[i]) || !finite(ys[i]) {
			continue
		}
		d.X = append(d.X, xs[i])
		d.Y = append(d.Y, ys[i])
	}
	return d
}

func histogram(name, title, xl, color string, xs []float64, bins int) Dataset {
	return Dataset{
		Name: name, Kind: KindHistogram, Title: title, XLabel: xl, YLabel: "Count", Color: color,
		Bins: stats.Histogram(xs, bins),
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
