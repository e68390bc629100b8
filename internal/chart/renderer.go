/*
PURPOSE:
  Chart Renderer. Turns one person's record into the fixed set of report charts.

REQUIREMENTS:
  User-specified:
  - Charts: component distribution bars, stress/calmness/mood comparison, score scatter.
  - A missing input column skips that one chart, never the record.

  Implementation-discovered:
  - The scatter is only meaningful against the cohort, so the renderer keeps the dataset.
  - Rendering stays in memory; saving to disk belongs to the batch driver's scratch area.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Uses: internal/model, plot.go (github.com/wcharczuk/go-chart/v2)

ERROR HANDLING:
  - Skipped charts are returned as *SkipError alongside the charts. The wrapped error is
    *model.KeyNotFoundError for absent inputs, or the go-chart render error.

USAGE:
  r := chart.NewRenderer(chart.DefaultStyle(), ds)
  charts, skipped := r.Render(rec, "Alice")
*/

package chart

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/daryltucker/ei-reports/internal/model"
)

// Chart is a rendered, unsaved chart image.
type Chart struct {
	Kind  model.ChartKind
	Title string
	Image image.Image
}

// SkipError reports a chart left out because its inputs are missing.
type SkipError struct {
	Kind model.ChartKind
	Err  error
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("%s chart skipped: %v", e.Kind, e.Err)
}

func (e *SkipError) Unwrap() error {
	return e.Err
}

// Renderer draws per-record charts.
type Renderer struct {
	Style  Style
	Cohort *model.Dataset
}

// NewRenderer creates a Renderer. cohort may be nil, in which case the score
// scatter shows only the record itself.
func NewRenderer(style Style, cohort *model.Dataset) *Renderer {
	return &Renderer{Style: style, Cohort: cohort}
}

// Render produces the charts available for rec in model.ChartKinds order.
// Charts whose inputs are missing are left out and reported in skipped.
func (r *Renderer) Render(rec model.Record, identity string) (charts []Chart, skipped []error) {
	for _, kind := range model.ChartKinds {
		img, err := r.render(kind, rec, identity)
		if err != nil {
			skipped = append(skipped, &SkipError{Kind: kind, Err: err})
			continue
		}
		charts = append(charts, Chart{Kind: kind, Title: kind.Title(), Image: img})
	}
	return charts, skipped
}

func (r *Renderer) render(kind model.ChartKind, rec model.Record, identity string) (image.Image, error) {
	switch kind {
	case model.ChartComponents:
		return r.components(rec, identity)
	case model.ChartWellbeing:
		return r.wellbeing(rec, identity)
	case model.ChartScores:
		return r.scores(rec, identity)
	}
	return nil, &model.KeyNotFoundError{Column: string(kind)}
}

func (r *Renderer) components(rec model.Record, identity string) (image.Image, error) {
	cols := componentColumns(rec, r.Cohort)
	var bars []Bar
	for _, col := range cols {
		v, err := rec.Number(col)
		if err != nil {
			continue
		}
		bars = append(bars, Bar{Label: strings.TrimSuffix(col, " (%)"), Value: v, Color: r.Style.BandColor(v)})
	}
	if len(bars) == 0 {
		return nil, &model.KeyNotFoundError{Column: "EI component (%)", Row: rec.Index + 1}
	}
	return Bars(r.Style, identity+" - EI Components", "Score (%)", bars)
}

func (r *Renderer) wellbeing(rec model.Record, identity string) (image.Image, error) {
	var bars []Bar
	var firstErr error
	for _, col := range []string{model.ColStress, model.ColCalmness, model.ColMood} {
		v, err := rec.Number(col)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		colr := r.Style.BandColor(v)
		if col == model.ColStress {
			colr = r.Style.BandColor(100 - v)
		}
		bars = append(bars, Bar{Label: strings.TrimSuffix(col, " (%)"), Value: v, Color: colr})
	}
	if len(bars) == 0 {
		return nil, firstErr
	}
	return Bars(r.Style, identity+" - Stress, Calmness and Mood", "Level (%)", bars)
}

func (r *Renderer) scores(rec model.Record, identity string) (image.Image, error) {
	x, err := rec.Number(model.ColEIScore)
	if err != nil {
		return nil, err
	}
	y, err := rec.Number(model.ColPerformance)
	if err != nil {
		return nil, err
	}
	var pts []Point
	if r.Cohort != nil {
		for _, other := range r.Cohort.Records {
			if other.Index == rec.Index {
				continue
			}
			ox, errX := other.Number(model.ColEIScore)
			oy, errY := other.Number(model.ColPerformance)
			if errX == nil && errY == nil {
				pts = append(pts, Point{X: ox, Y: oy})
			}
		}
	}
	return Scatter(r.Style, identity+" - EI Score vs Performance", model.ColEIScore, model.ColPerformance, pts, &Point{X: x, Y: y})
}

// componentColumns prefers the dataset binding; without one it falls back to
// the record's own "(%)" columns.
func componentColumns(rec model.Record, ds *model.Dataset) []string {
	if ds != nil {
		return ds.Binding.Columns(model.RoleComponent)
	}
	b, _ := model.DefaultSchema().Bind(rec.Columns)
	return b.Columns(model.RoleComponent)
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
