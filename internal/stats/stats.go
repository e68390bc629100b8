// Package stats is the Metric Aggregator: descriptive statistics, histograms
// and Pearson correlations over dataset columns.
package stats

import (
	"math"
	"sort"

	"github.com/daryltucker/ei-reports/internal/model"
)

// Summary holds descriptive statistics for one column.
type Summary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	P25    float64
	Median float64
	P75    float64
	Max    float64
}

// Describe summarises each of cols. A column absent from the dataset fails
// with *model.KeyNotFoundError. Blank and non-numeric cells are skipped.
func Describe(ds *model.Dataset, cols []string) ([]Summary, error) {
	out := make([]Summary, 0, len(cols))
	for _, col := range cols {
		vals, err := ds.Numbers(col)
		if err != nil {
			return nil, err
		}
		out = append(out, Summarize(col, vals))
	}
	return out, nil
}

// Summarize computes a Summary over vals.
func Summarize(col string, vals []float64) Summary {
	s := Summary{Column: col, Count: len(vals)}
	if len(vals) == 0 {
		return s
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	s.Mean = Mean(vals)
	s.Std = StdDev(vals)
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.P25 = quantile(sorted, 0.25)
	s.Median = quantile(sorted, 0.5)
	s.P75 = quantile(sorted, 0.75)
	return s
}

// Mean returns the arithmetic mean, or 0 for no values.
func Mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// StdDev returns the sample standard deviation (n-1), or 0 for fewer than two values.
func StdDev(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	m := Mean(vals)
	var ss float64
	for _, v := range vals {
		ss += (v - m) * (v - m)
	}
	return math.Sqrt(ss / float64(len(vals)-1))
}

// quantile interpolates linearly between closest ranks; sorted must be ascending.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Bin is one histogram bucket covering [Lo, Hi).
type Bin struct {
	Lo, Hi float64
	Count  int
}

// Histogram splits the range of vals into n equal-width bins. The maximum
// value falls into the last bin. NaN and infinities are not counted.
func Histogram(vals []float64, n int) []Bin {
	vals = finite(vals)
	if len(vals) == 0 || n < 1 {
		return nil
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		lo -= 0.5
		hi += 0.5
	}
	width := (hi - lo) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Lo = lo + float64(i)*width
		bins[i].Hi = lo + float64(i+1)*width
	}
	for _, v := range vals {
		i := int((v - lo) / width)
		if i >= n {
			i = n - 1
		}
		bins[i].Count++
	}
	return bins
}

func finite(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// ColumnMean is the average of one column.
type ColumnMean struct {
	Column string
	Mean   float64
}

// ComponentMeans averages every component column of the dataset, sorted
// ascending by mean (ties by column name).
func ComponentMeans(ds *model.Dataset) []ColumnMean {
	var out []ColumnMean
	for _, col := range ds.Binding.Columns(model.RoleComponent) {
		vals, err := ds.Numbers(col)
		if err != nil || len(vals) == 0 {
			continue
		}
		out = append(out, ColumnMean{Column: col, Mean: Mean(vals)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Mean == out[j].Mean {
			return out[i].Column < out[j].Column
		}
		return out[i].Mean < out[j].Mean
	})
	return out
}
