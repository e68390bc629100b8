package chart

import (
	"image/color"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/daryltucker/ei-reports/internal/model"
)

// Style holds rendering parameters shared by all charts.
type Style struct {
	Width   int
	Height  int
	Padding int

	TitleSize float64
	DotSize   float64

	Background color.RGBA
	Axis       color.RGBA
	Text       color.RGBA
	Muted      color.RGBA
	Primary    color.RGBA
	Highlight  color.RGBA

	Good color.RGBA
	Fair color.RGBA
	Low  color.RGBA
}

// DefaultStyle returns the report palette at a size that embeds at full
// page width in an A4 document.
func DefaultStyle() Style {
	return Style{
		Width:     800,
		Height:    480,
		Padding:   20,
		TitleSize: 14,
		DotSize:   4,

		Background: color.RGBA{255, 255, 255, 255},
		Axis:       color.RGBA{55, 65, 81, 255},
		Text:       color.RGBA{17, 24, 39, 255},
		Muted:      color.RGBA{107, 114, 128, 255},
		Primary:    color.RGBA{37, 99, 235, 255},
		Highlight:  color.RGBA{220, 38, 38, 255},

		Good: color.RGBA{5, 150, 105, 255},
		Fair: color.RGBA{217, 119, 6, 255},
		Low:  color.RGBA{220, 38, 38, 255},
	}
}

// BandColor returns the colour of the score band for v.
func (s Style) BandColor(v float64) color.RGBA {
	switch model.BandOf(v) {
	case model.BandGood:
		return s.Good
	case model.BandFair:
		return s.Fair
	default:
		return s.Low
	}
}

func (s Style) background() gochart.Style {
	p := s.Padding
	return gochart.Style{
		FillColor: drawingColor(s.Background),
		Padding:   gochart.Box{Top: p + int(s.TitleSize)*2, Left: p, Right: p, Bottom: p},
	}
}

func (s Style) title() gochart.Style {
	return gochart.Style{FontSize: s.TitleSize, FontColor: drawingColor(s.Text)}
}

func (s Style) axis() gochart.Style {
	return gochart.Style{StrokeColor: drawingColor(s.Axis), FontColor: drawingColor(s.Text)}
}

// points renders a series as dots only, without connecting lines.
func points(col color.RGBA, size float64) gochart.Style {
	return gochart.Style{
		StrokeWidth: gochart.Disabled,
		DotWidth:    size,
		DotColor:    drawingColor(col),
	}
}

func drawingColor(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
