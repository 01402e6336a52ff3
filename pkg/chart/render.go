package chart

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	Width  = 800
	Height = 400
)

func hex(c string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(c, "#"))
}

func background() gochart.Style {
	return gochart.Style{
		FillColor: hex(ColorBackground),
		Padding:   gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
	}
}

func titleStyle() gochart.Style {
	return gochart.Style{FontColor: hex(ColorNavy), FontSize: 14}
}

// Render writes ds as SVG. Datasets without plottable data, and datasets go-chart
// rejects, produce a placeholder chart instead of an error.
func Render(w io.Writer, ds Dataset) error {
	if ds.Empty() {
		return renderPlaceholder(w, ds)
	}

	var r interface {
		Render(gochart.RendererProvider, io.Writer) error
	}
	if ds.Kind == KindHistogram {
		r = barChart(ds)
	} else {
		r = lineChart(ds)
	}

	// go-chart writes directly to w, so render into memory first
	var buf strings.Builder
	if err := r.Render(gochart.SVG, &buf); err != nil {
		slog.Debug("Chart render failed, using placeholder", "chart", ds.Name, "error", err)
		return renderPlaceholder(w, ds)
	}
	_, err := io.WriteString(w, buf.String())
	return err
}

// span returns [lo, hi] of xs, widened to a unit range around a single value.
func span(xs []float64) *gochart.ContinuousRange {
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = min(lo, x)
		hi = max(hi, x)
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	return &gochart.ContinuousRange{Min: lo, Max: hi}
}

func lineChart(ds Dataset) gochart.Chart {
	xs, ys := ds.X, ds.Y
	// go-chart needs two points to draw a line
	if len(xs) == 1 {
		xs = []float64{xs[0], xs[0]}
		ys = []float64{ys[0], ys[0]}
	}
	return gochart.Chart{
		Title:      ds.Title,
		TitleStyle: titleStyle(),
		Width:      Width,
		Height:     Height,
		Background: background(),
		Canvas:     gochart.Style{FillColor: hex(ColorBackground)},
		XAxis:      gochart.XAxis{Name: ds.XLabel, Range: span(xs)},
		YAxis:      gochart.YAxis{Name: ds.YLabel, Range: span(ys)},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    ds.Title,
				XValues: xs,
				YValues: ys,
				Style:   gochart.Style{StrokeColor: hex(ds.Color), StrokeWidth: 2},
			},
		},
	}
}

func barChart(ds Dataset) gochart.BarChart {
	bars := make([]gochart.Value, len(ds.Bins))
	peak := 1.0
	for i, b := range ds.Bins {
		bars[i] = gochart.Value{
			Value: float64(b.Count),
			Label: fmt.Sprintf("%.0f", b.Lo),
			Style: gochart.Style{FillColor: hex(ds.Color), StrokeColor: hex(ds.Color)},
		}
		peak = max(peak, float64(b.Count))
	}
	return gochart.BarChart{
		Title:      ds.Title,
		TitleStyle: titleStyle(),
		Width:      Width,
		Height:     Height,
		Background: background(),
		Canvas:     gochart.Style{FillColor: hex(ColorBackground)},
		BarWidth:   (Width - 120) / max(len(bars), 1) * 3 / 4,
		XAxis:      gochart.Style{FontSize: 7},
		YAxis:      gochart.YAxis{Name: ds.YLabel, Range: &gochart.ContinuousRange{Min: 0, Max: peak}},
		Bars:       bars,
	}
}

// renderPlaceholder draws empty axes titled with the dataset title.
func renderPlaceholder(w io.Writer, ds Dataset) error {
	c := gochart.Chart{
		Title:      ds.Title + " (no data)",
		TitleStyle: titleStyle(),
		Width:      Width,
		Height:     Height,
		Background: background(),
		Canvas:     gochart.Style{FillColor: hex(ColorBackground)},
		XAxis:      gochart.XAxis{Name: ds.XLabel, Range: &gochart.ContinuousRange{Min: 0, Max: 1}},
		YAxis:      gochart.YAxis{Name: ds.YLabel, Range: &gochart.ContinuousRange{Min: 0, Max: 1}},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 0},
				Style:   gochart.Style{StrokeColor: drawing.ColorTransparent, StrokeWidth: 0},
			},
		},
	}
	if err := c.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("failed to render placeholder for %s: %w", ds.Name, err)
	}
	return nil
}
