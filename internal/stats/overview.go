package stats

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/daryltucker/ei-reports/internal/model"
)

// HistogramBins is the bin count of the EI Score distribution panel.
const HistogramBins = 10

// Overview is the dataset-level preview.
type Overview struct {
	Rows           int
	Columns        []string
	Vintages       []string
	Summaries      []Summary
	Correlations   *Matrix
	ComponentMeans []ColumnMean
	// Degraded lists statistics that were skipped because a column is absent.
	Degraded []error
}

// NewOverview computes the preview statistics. Absent columns degrade the
// affected statistic and are recorded in Degraded.
func NewOverview(ds *model.Dataset) (*Overview, error) {
	ov := &Overview{
		Rows:           ds.Len(),
		Columns:        ds.Columns,
		ComponentMeans: ComponentMeans(ds),
	}

	if ds.HasColumn(model.ColVintage) {
		seen := map[string]bool{}
		for _, r := range ds.Records {
			if v := r.Text(model.ColVintage); v != "" && !seen[v] {
				seen[v] = true
				ov.Vintages = append(ov.Vintages, v)
			}
		}
		sort.Strings(ov.Vintages)
	} else {
		ov.Degraded = append(ov.Degraded, &model.KeyNotFoundError{Column: model.ColVintage})
	}

	sums, err := Describe(ds, ds.Binding.Numeric())
	if err != nil {
		return nil, err
	}
	ov.Summaries = sums

	var present []string
	for _, col := range model.CorrelationColumns {
		if ds.HasColumn(col) {
			present = append(present, col)
			continue
		}
		ov.Degraded = append(ov.Degraded, &model.KeyNotFoundError{Column: col})
	}
	if ov.Correlations, err = Correlate(ds, present); err != nil {
		return nil, err
	}
	return ov, nil
}

// Err joins the degradations, or returns nil.
func (ov *Overview) Err() error {
	return errors.Join(ov.Degraded...)
}

// WriteSummary prints the overview as text. Output depends only on ov.
func WriteSummary(w io.Writer, ov *Overview) error {
	var b strings.Builder
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(&b, "%s\nEMOTIONAL INTELLIGENCE ASSESSMENT DATA PREVIEW\n%s\n\n", rule, rule)

	fmt.Fprintf(&b, "Dataset Overview:\n")
	fmt.Fprintf(&b, "   Total People: %d\n", ov.Rows)
	fmt.Fprintf(&b, "   Total Parameters: %d\n", len(ov.Columns))
	if len(ov.Vintages) > 0 {
		fmt.Fprintf(&b, "   Assessment Years: %s\n", strings.Join(ov.Vintages, ", "))
	}

	fmt.Fprintf(&b, "\nParameters Included:\n")
	for i, c := range ov.Columns {
		fmt.Fprintf(&b, "   %2d. %s\n", i+1, c)
	}

	fmt.Fprintf(&b, "\nSample Statistics:\n")
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "column\tcount\tmean\tstd\tmin\t25%\t50%\t75%\tmax\t")
	for _, s := range ov.Summaries {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t\n",
			s.Column, s.Count, s.Mean, s.Std, s.Min, s.P25, s.Median, s.P75, s.Max)
	}
	tw.Flush()

	if len(ov.ComponentMeans) > 0 {
		fmt.Fprintf(&b, "\nAverage Scores by EI Component:\n")
		for _, cm := range ov.ComponentMeans {
			fmt.Fprintf(&b, "   %-28s %6.2f\n", strings.TrimSuffix(cm.Column, " (%)"), cm.Mean)
		}
	}

	if m := ov.Correlations; m != nil && len(m.Columns) > 0 {
		fmt.Fprintf(&b, "\nKey Correlations:\n")
		tw = tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintf(tw, "\t%s\t\n", strings.Join(m.Columns, "\t"))
		for i, c := range m.Columns {
			cells := make([]string, len(m.Columns))
			for j := range m.Columns {
				cells[j] = fmt.Sprintf("%.3f", m.Values[i][j])
			}
			fmt.Fprintf(tw, "%s\t%s\t\n", c, strings.Join(cells, "\t"))
		}
		tw.Flush()
	}

	for _, d := range ov.Degraded {
		fmt.Fprintf(&b, "\nSkipped: %v", d)
	}
	if len(ov.Degraded) > 0 {
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
