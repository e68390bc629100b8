/*
PURPOSE:
  Defines the core data structures used throughout ei-reports.
  These models represent the loaded assessment dataset, a single person's record,
  chart artifacts and per-record generation outcomes.

REQUIREMENTS:
  User-specified:
  - Columns are shared across all records and keep header order for display.
  - A record exposes both text and numeric values by column name.

  Implementation-discovered:
  - Percentages arrive as "85", "85.0" or "85%" depending on how the sheet was typed.
  - Outcomes need JSON tags for the run manifest.

ARCHITECTURE INTEGRATION:
  - Used by: internal/dataset, internal/stats, internal/chart, internal/document, internal/engine
  - Shared across boundaries.

ERROR HANDLING:
  - Lookups of absent or blank cells return *KeyNotFoundError (see errors.go).

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - Records never copy Columns; they share the dataset's header slice.

USAGE:
  v, err := rec.Number(model.ColEIScore)

SELF-HEALING INSTRUCTIONS:
  - If a new value format appears in sheets, extend ParseValue.

RELATED FILES:
  - internal/model/schema.go
  - internal/output/csv.go

MAINTENANCE:
  - Update Outcome and the manifest writers together.
*/

package model

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Value is a single cell. Numeric is set when Raw parses as a number.
type Value struct {
	Raw     string
	Number  float64
	Numeric bool
}

// ParseValue converts a raw cell into a Value, accepting "%" suffixes and
// thousands separators. NaN and infinities are kept as non-numeric text.
func ParseValue(raw string) Value {
	v := Value{Raw: strings.TrimSpace(raw)}
	s := strings.TrimSuffix(v.Raw, "%")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return v
	}
	f, err := strconv.ParseFloat(s, 64)
	if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		v.Number = f
		v.Numeric = true
	}
	return v
}

// Blank reports whether the cell carried no content.
func (v Value) Blank() bool {
	return v.Raw == ""
}

// Record is one individual's row of assessment metrics.
type Record struct {
	Index   int
	Columns []string
	Values  map[string]Value
}

// Has reports whether the record has a non-blank value for col.
func (r Record) Has(col string) bool {
	v, ok := r.Values[col]
	return ok && !v.Blank()
}

// Text returns the raw text of col, or "" when absent.
func (r Record) Text(col string) string {
	return r.Values[col].Raw
}

// Number returns the numeric value of col.
func (r Record) Number(col string) (float64, error) {
	v, ok := r.Values[col]
	if !ok || v.Blank() {
		return 0, &KeyNotFoundError{Column: col, Row: r.Index + 1}
	}
	if !v.Numeric {
		return 0, &ValueError{Column: col, Row: r.Index + 1, Raw: v.Raw}
	}
	return v.Number, nil
}

// Dataset is the full ordered collection of records loaded from input.
type Dataset struct {
	Source  string
	Sheet   string
	Columns []string
	Records []Record
	Binding Binding
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// HasColumn reports whether the header contains col.
func (d *Dataset) HasColumn(col string) bool {
	for _, c := range d.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Numbers collects the numeric values of col across all records, skipping
// blank and non-numeric cells.
func (d *Dataset) Numbers(col string) ([]float64, error) {
	if !d.HasColumn(col) {
		return nil, &KeyNotFoundError{Column: col}
	}
	out := make([]float64, 0, len(d.Records))
	for _, r := range d.Records {
		if v, ok := r.Values[col]; ok && v.Numeric {
			out = append(out, v.Number)
		}
	}
	return out, nil
}

// ChartKind names one of the fixed per-record charts.
type ChartKind string

const (
	ChartComponents ChartKind = "components"
	ChartWellbeing  ChartKind = "wellbeing"
	ChartScores     ChartKind = "scores"
)

// ChartKinds lists the per-record charts in rendering order.
var ChartKinds = []ChartKind{ChartComponents, ChartWellbeing, ChartScores}

// Title returns the caption used for the chart kind.
func (k ChartKind) Title() string {
	switch k {
	case ChartComponents:
		return "EI Component Scores"
	case ChartWellbeing:
		return "Stress, Calmness and Mood"
	case ChartScores:
		return "EI Score vs Performance"
	}
	return string(k)
}

// ChartFile is a saved chart artifact ready to embed in a document.
type ChartFile struct {
	Kind ChartKind
	Path string
}

// Outcome is the result of generating one record's document.
type Outcome struct {
	Index    int           `json:"index"`
	Identity string        `json:"identity"`
	Path     string        `json:"path,omitempty"`
	Charts   []ChartKind   `json:"charts"`
	Skipped  []ChartKind   `json:"skipped_charts,omitempty"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// OK reports whether the document was written.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Status returns "ok" or "failed".
func (o Outcome) Status() string {
	if o.OK() {
		return "ok"
	}
	return "failed"
}
