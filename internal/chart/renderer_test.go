package chart

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/daryltucker/ei-reports/internal/model"
	"github.com/daryltucker/ei-reports/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var header = []string{"Name", "EI Score", "Performance", "Empathy (%)", "Motivation (%)", "Stress (%)", "Calmness (%)", "Mood (%)"}

func cohort(t *testing.T, rows ...[]string) *model.Dataset {
	t.Helper()
	return cohortWith(t, header, rows...)
}

func cohortWith(t *testing.T, header []string, rows ...[]string) *model.Dataset {
	t.Helper()
	b, err := model.DefaultSchema().Bind(header)
	require.NoError(t, err)
	ds := &model.Dataset{Columns: header, Binding: b}
	for i, row := range rows {
		rec := model.Record{Index: i, Columns: header, Values: map[string]model.Value{}}
		for j, col := range header {
			rec.Values[col] = model.ParseValue(row[j])
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds
}

func kinds(charts []Chart) []model.ChartKind {
	var out []model.ChartKind
	for _, c := range charts {
		out = append(out, c.Kind)
	}
	return out
}

func TestRenderAllCharts(t *testing.T) {
	ds := cohort(t,
		[]string{"Alice", "82", "77", "90", "71", "25", "80", "75"},
		[]string{"Bob", "65", "60", "55", "74", "60", "45", "58"},
	)
	r := NewRenderer(DefaultStyle(), ds)

	charts, skipped := r.Render(ds.Records[0], "Alice")
	assert.Empty(t, skipped)
	assert.Equal(t, model.ChartKinds, kinds(charts))
	for _, c := range charts {
		assert.Equal(t, image.Rect(0, 0, 800, 480), c.Image.Bounds())
		assert.Equal(t, c.Kind.Title(), c.Title)
	}
}

func TestRenderSkipsMissingInputs(t *testing.T) {
	ds := cohort(t,
		[]string{"Carol", "70", "", "", "", "", "", "66"},
	)
	r := NewRenderer(DefaultStyle(), ds)

	charts, skipped := r.Render(ds.Records[0], "Carol")
	assert.Equal(t, []model.ChartKind{model.ChartWellbeing}, kinds(charts))
	require.Len(t, skipped, 2)
	for _, err := range skipped {
		var knf *model.KeyNotFoundError
		assert.ErrorAs(t, err, &knf)
	}
}

func TestRenderWithoutCohort(t *testing.T) {
	ds := cohort(t, []string{"Dan", "88", "91", "95", "", "", "", ""})
	r := NewRenderer(DefaultStyle(), nil)

	charts, skipped := r.Render(ds.Records[0], "Dan")
	assert.Equal(t, []model.ChartKind{model.ChartComponents, model.ChartScores}, kinds(charts))
	assert.Len(t, skipped, 1)
}

func TestRenderIsDeterministic(t *testing.T) {
	ds := cohort(t,
		[]string{"Alice", "82", "77", "90", "71", "25", "80", "75"},
		[]string{"Bob", "65", "60", "55", "74", "60", "45", "58"},
	)
	r := NewRenderer(DefaultStyle(), ds)

	encode := func() [][]byte {
		charts, _ := r.Render(ds.Records[1], "Bob")
		var out [][]byte
		for _, c := range charts {
			var buf bytes.Buffer
			require.NoError(t, EncodePNG(&buf, c.Image))
			out = append(out, buf.Bytes())
		}
		return out
	}
	assert.Equal(t, encode(), encode())
}

func TestPreview(t *testing.T) {
	ds := cohort(t,
		[]string{"Alice", "82", "77", "90", "71", "25", "80", "75"},
		[]string{"Bob", "65", "60", "55", "74", "60", "45", "58"},
		[]string{"Carol", "74", "70", "66", "80", "40", "62", "70"},
	)
	ov, err := stats.NewOverview(ds)
	require.NoError(t, err)

	s := DefaultStyle()
	img := Preview(ds, ov, s)
	assert.Equal(t, image.Rect(0, 0, s.Width*2, s.Height*2), img.Bounds())

	path := filepath.Join(t.TempDir(), DefaultPreviewFile)
	require.NoError(t, SavePNG(path, img))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, s.Width*2, cfg.Width)
}

func TestPreviewNotesMissingColumns(t *testing.T) {
	ds := cohortWith(t, []string{"Name", "EI Score"}, []string{"Alice", "82"}, []string{"Bob", "64"})
	ov, err := stats.NewOverview(ds)
	require.NoError(t, err)

	s := DefaultStyle()
	img := Preview(ds, ov, s)
	require.Equal(t, image.Rect(0, 0, s.Width*2, s.Height*2), img.Bounds())

	// The Stress vs Calmness panel carries only the note: mostly background.
	lower := img.(*image.RGBA).SubImage(image.Rect(0, s.Height, s.Width, s.Height*2)).(*image.RGBA)
	inked := 0
	for y := lower.Rect.Min.Y; y < lower.Rect.Max.Y; y++ {
		for x := lower.Rect.Min.X; x < lower.Rect.Max.X; x++ {
			if lower.RGBAAt(x, y) != s.Background {
				inked++
			}
		}
	}
	assert.Greater(t, inked, 0)
	assert.Less(t, inked, s.Width*s.Height/50)
}

func TestPlotsRejectEmptyInput(t *testing.T) {
	s := DefaultStyle()
	_, err := Bars(s, "empty", "", nil)
	assert.Error(t, err)
	_, err = Scatter(s, "empty", "x", "y", nil, nil)
	assert.Error(t, err)
	_, err = Histogram(s, "empty", "x", nil)
	assert.Error(t, err)

	img, err := Scatter(s, "single", "x", "y", nil, &Point{X: 50, Y: 50})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, s.Width, s.Height), img.Bounds())
}

func TestCanvasPasteAndNote(t *testing.T) {
	s := DefaultStyle()
	c := NewCanvas(40, 40, s.Background)
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	src.Set(0, 0, s.Highlight)
	c.Paste(image.Rect(20, 20, 30, 30), src)
	c.Note(image.Rect(0, 0, 20, 20), "x", s.Text)

	rgba := c.Image().(*image.RGBA)
	assert.Equal(t, s.Highlight, rgba.RGBAAt(20, 20))
	assert.Equal(t, s.Background, rgba.RGBAAt(39, 0))
}
