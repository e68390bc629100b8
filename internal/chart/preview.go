package chart

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/daryltucker/ei-reports/internal/model"
	"github.com/daryltucker/ei-reports/internal/stats"
)

// DefaultPreviewFile is the fixed name of the dataset preview image.
const DefaultPreviewFile = "data_preview.png"

// Preview renders the 2×2 dataset overview: EI Score distribution, mean per
// component, Stress vs Calmness and EI Score vs Performance. Panels whose
// columns are absent or empty are left blank with a note.
func Preview(ds *model.Dataset, ov *stats.Overview, s Style) image.Image {
	pw, ph := s.Width, s.Height
	c := NewCanvas(pw*2, ph*2, s.Background)
	panel := func(col, row int) image.Rectangle {
		return image.Rect(col*pw, row*ph, (col+1)*pw, (row+1)*ph)
	}
	place := func(r image.Rectangle, img image.Image, err error) {
		if err != nil {
			c.Note(r, err.Error(), s.Muted)
			return
		}
		c.Paste(r, img)
	}

	if vals, err := ds.Numbers(model.ColEIScore); err != nil {
		place(panel(0, 0), nil, unavailable(model.ColEIScore))
	} else {
		img, err := Histogram(s, "Distribution of Overall EI Scores", model.ColEIScore, stats.Histogram(vals, stats.HistogramBins))
		place(panel(0, 0), img, err)
	}

	if len(ov.ComponentMeans) > 0 {
		bars := make([]Bar, 0, len(ov.ComponentMeans))
		for _, cm := range ov.ComponentMeans {
			bars = append(bars, Bar{Label: strings.TrimSuffix(cm.Column, " (%)"), Value: cm.Mean, Color: s.Fair})
		}
		img, err := Bars(s, "Average Scores by EI Component", "Average Score (%)", bars)
		place(panel(1, 0), img, err)
	} else {
		place(panel(1, 0), nil, unavailable("EI component (%)"))
	}

	img, err := scatterPanel(s, ds, model.ColStress, model.ColCalmness, "Stress vs Calmness Correlation")
	place(panel(0, 1), img, err)
	img, err = scatterPanel(s, ds, model.ColEIScore, model.ColPerformance, "Performance vs EI Score")
	place(panel(1, 1), img, err)

	return c.Image()
}

func scatterPanel(s Style, ds *model.Dataset, xCol, yCol, title string) (image.Image, error) {
	for _, col := range []string{xCol, yCol} {
		if !ds.HasColumn(col) {
			return nil, unavailable(col)
		}
	}
	var pts []Point
	for _, rec := range ds.Records {
		x, errX := rec.Number(xCol)
		y, errY := rec.Number(yCol)
		if errX == nil && errY == nil {
			pts = append(pts, Point{X: x, Y: y})
		}
	}
	return Scatter(s, title, xCol, yCol, pts, nil)
}

func unavailable(col string) error {
	return fmt.Errorf("column %q not available", col)
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodePNG(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
