package stats

import (
	"math"

	"github.com/daryltucker/ei-reports/internal/model"
)

// Matrix is a symmetric correlation matrix indexed in Columns order.
type Matrix struct {
	Columns []string
	Values  [][]float64
}

// At returns the correlation between columns a and b.
func (m *Matrix) At(a, b string) (float64, bool) {
	i, j := m.index(a), m.index(b)
	if i < 0 || j < 0 {
		return 0, false
	}
	return m.Values[i][j], true
}

func (m *Matrix) index(col string) int {
	for i, c := range m.Columns {
		if c == col {
			return i
		}
	}
	return -1
}

// Correlate computes pairwise Pearson correlations over records where both
// cells are numeric. Pairs with fewer than two observations or zero variance
// are 0; the diagonal is 1. Every value lies in [-1, 1].
func Correlate(ds *model.Dataset, cols []string) (*Matrix, error) {
	for _, c := range cols {
		if !ds.HasColumn(c) {
			return nil, &model.KeyNotFoundError{Column: c}
		}
	}

	m := &Matrix{Columns: cols, Values: make([][]float64, len(cols))}
	for i := range cols {
		m.Values[i] = make([]float64, len(cols))
		m.Values[i][i] = 1
	}
	for i := 0; i < len(cols); i++ {
		for j := i + 1; j < len(cols); j++ {
			xs, ys := paired(ds, cols[i], cols[j])
			r := Pearson(xs, ys)
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m, nil
}

func paired(ds *model.Dataset, a, b string) (xs, ys []float64) {
	for _, rec := range ds.Records {
		x, okx := rec.Values[a]
		y, oky := rec.Values[b]
		if okx && oky && x.Numeric && y.Numeric {
			xs = append(xs, x.Number)
			ys = append(ys, y.Number)
		}
	}
	return xs, ys
}

// Pearson returns the correlation coefficient of xs and ys, clamped to [-1, 1].
// Non-finite input yields 0.
func Pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return 0
	}
	mx, my := Mean(xs), Mean(ys)
	var sxy, sxx, syy float64
	for i := 0; i < n; i++ {
		dx, dy := xs[i]-mx, ys[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0
	}
	r := sxy / math.Sqrt(sxx*syy)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return math.Max(-1, math.Min(1, r))
}
