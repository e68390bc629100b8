package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/daryltucker/ei-reports/internal/stats"
)

// Bar is one labelled value of a bar chart.
type Bar struct {
	Label string
	Value float64
	Color color.RGBA
}

// Point is one scatter observation.
type Point struct {
	X, Y float64
}

type renderable interface {
	Render(rp gochart.RendererProvider, w io.Writer) error
}

// rasterize renders c as PNG and decodes it back into an image.
func rasterize(c renderable) (image.Image, error) {
	var buf bytes.Buffer
	if err := c.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render error: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("chart decode error: %w", err)
	}
	return img, nil
}

// barLayout sizes bars to fill about half of the plot width.
func barLayout(s Style, n int) (width, spacing int) {
	slot := (s.Width - 2*s.Padding - 60) / max(n, 1)
	return max(slot/2, 1), max(slot-slot/2, 1)
}

// Bars draws one vertical bar per value on a 0-100 scale, in order.
// Values outside the scale are clipped; the label keeps the real value.
func Bars(s Style, title, yLabel string, bars []Bar) (image.Image, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: no values to plot", title)
	}
	width, spacing := barLayout(s, len(bars))
	values := make([]gochart.Value, 0, len(bars))
	for _, b := range bars {
		col := drawingColor(b.Color)
		values = append(values, gochart.Value{
			Label: fmt.Sprintf("%s %.1f", b.Label, b.Value),
			Value: clamp(b.Value, 0, 100),
			Style: gochart.Style{FillColor: col, StrokeColor: col, StrokeWidth: 1},
		})
	}
	return rasterize(gochart.BarChart{
		Title:      title,
		TitleStyle: s.title(),
		Width:      s.Width,
		Height:     s.Height,
		Background: s.background(),
		BarWidth:   width,
		BarSpacing: spacing,
		XAxis:      s.axis(),
		YAxis: gochart.YAxis{
			Name:  yLabel,
			Style: s.axis(),
			Range: &gochart.ContinuousRange{Min: 0, Max: 100},
		},
		Bars: values,
	})
}

// Scatter plots pts in the primary colour and highlight (if non-nil) on top.
func Scatter(s Style, title, xLabel, yLabel string, pts []Point, highlight *Point) (image.Image, error) {
	var series []gochart.Series
	if len(pts) > 0 {
		xs, ys := split(pts)
		series = append(series, gochart.ContinuousSeries{
			Name: "Cohort", XValues: xs, YValues: ys, Style: points(s.Primary, s.DotSize),
		})
	}
	if highlight != nil {
		series = append(series, gochart.ContinuousSeries{
			Name:    fmt.Sprintf("(%.1f, %.1f)", highlight.X, highlight.Y),
			XValues: []float64{highlight.X},
			YValues: []float64{highlight.Y},
			Style:   points(s.Highlight, s.DotSize*2),
		})
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("%s: no points to plot", title)
	}

	xmin, xmax := axisRange(pts, highlight, func(p Point) float64 { return p.X })
	ymin, ymax := axisRange(pts, highlight, func(p Point) float64 { return p.Y })
	ch := gochart.Chart{
		Title:      title,
		TitleStyle: s.title(),
		Width:      s.Width,
		Height:     s.Height,
		Background: s.background(),
		XAxis: gochart.XAxis{
			Name:  xLabel,
			Style: s.axis(),
			Range: &gochart.ContinuousRange{Min: xmin, Max: xmax},
		},
		YAxis: gochart.YAxis{
			Name:  yLabel,
			Style: s.axis(),
			Range: &gochart.ContinuousRange{Min: ymin, Max: ymax},
		},
		Series: series,
	}
	if highlight != nil {
		ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	}
	return rasterize(ch)
}

// Histogram draws bins as adjoining bars labelled with their bounds.
func Histogram(s Style, title, xLabel string, bins []stats.Bin) (image.Image, error) {
	if len(bins) == 0 {
		return nil, fmt.Errorf("%s: no values to plot", title)
	}
	maxCount := 1
	values := make([]gochart.Value, 0, len(bins))
	for _, b := range bins {
		maxCount = max(maxCount, b.Count)
		values = append(values, gochart.Value{
			Label: fmt.Sprintf("%.0f-%.0f", b.Lo, b.Hi),
			Value: float64(b.Count),
			Style: gochart.Style{
				FillColor:   drawingColor(s.Primary),
				StrokeColor: drawingColor(s.Axis),
				StrokeWidth: 1,
			},
		})
	}
	return rasterize(gochart.BarChart{
		Title:      title,
		TitleStyle: s.title(),
		Width:      s.Width,
		Height:     s.Height,
		Background: s.background(),
		BarSpacing: 2,
		BarWidth:   max((s.Width-2*s.Padding-60)/len(bins)-2, 1),
		XAxis:      s.axis(),
		YAxis: gochart.YAxis{
			Name:  "Count (" + xLabel + ")",
			Style: s.axis(),
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(maxCount)},
		},
		Bars: values,
	})
}

func split(pts []Point) (xs, ys []float64) {
	xs = make([]float64, len(pts))
	ys = make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}

// axisRange pads the data range by 5% and never returns an empty interval.
func axisRange(pts []Point, extra *Point, get func(Point) float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	all := pts
	if extra != nil {
		all = append(append([]Point(nil), pts...), *extra)
	}
	for _, p := range all {
		lo = math.Min(lo, get(p))
		hi = math.Max(hi, get(p))
	}
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, 100
	}
	if hi-lo < 1 {
		lo, hi = lo-5, hi+5
	}
	pad := (hi - lo) * 0.05
	return math.Floor(lo - pad), math.Ceil(hi + pad)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
