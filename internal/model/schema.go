package model

import "strings"

// Well-known column names of the assessment sheet.
const (
	ColName                = "Name"
	ColVintage             = "Vintage"
	ColEIScore             = "EI Score"
	ColPerformance         = "Performance"
	ColEmotionalRegulation = "Emotional Regulation Score"
	ColStress              = "Stress (%)"
	ColCalmness            = "Calmness (%)"
	ColMood                = "Mood (%)"
)

// CorrelationColumns is the fixed column set of the overview correlation matrix.
var CorrelationColumns = []string{ColEIScore, ColPerformance, ColEmotionalRegulation, ColStress, ColCalmness}

// Role classifies how a column is used.
type Role string

const (
	RoleIdentity  Role = "identity"
	RoleCohort    Role = "cohort"
	RoleComposite Role = "composite"
	RoleWellbeing Role = "wellbeing"
	RoleComponent Role = "component"
	RoleIgnored   Role = "ignored"
)

// ColumnSpec describes one expected column.
type ColumnSpec struct {
	Name     string
	Role     Role
	Required bool
}

// Schema is the ordered list of expected columns. Any header containing
// PercentMarker that is not listed is treated as a component column.
type Schema struct {
	Columns       []ColumnSpec
	PercentMarker string
}

// DefaultSchema returns the schema of the EI assessment workbook. Every
// column is optional; charts and sections that need an absent column are
// skipped per record.
func DefaultSchema() Schema {
	return Schema{
		Columns: []ColumnSpec{
			{Name: ColName, Role: RoleIdentity},
			{Name: ColVintage, Role: RoleCohort},
			{Name: ColEIScore, Role: RoleComposite},
			{Name: ColPerformance, Role: RoleComposite},
			{Name: ColEmotionalRegulation, Role: RoleComposite},
			{Name: ColStress, Role: RoleWellbeing},
			{Name: ColCalmness, Role: RoleWellbeing},
			{Name: ColMood, Role: RoleWellbeing},
		},
		PercentMarker: "(%)",
	}
}

// Binding is the result of checking a header row against a schema.
type Binding struct {
	Roles   map[string]Role
	Missing []string
	Ignored []string
	order   []string
}

// Bind classifies headers. Required columns absent from headers are returned
// as *KeyNotFoundError; the Binding is still usable for diagnostics.
func (s Schema) Bind(headers []string) (Binding, error) {
	b := Binding{Roles: make(map[string]Role, len(headers)), order: headers}
	known := make(map[string]ColumnSpec, len(s.Columns))
	for _, c := range s.Columns {
		known[c.Name] = c
	}
	for _, h := range headers {
		if cs, ok := known[h]; ok {
			b.Roles[h] = cs.Role
			continue
		}
		if s.PercentMarker != "" && strings.Contains(h, s.PercentMarker) {
			b.Roles[h] = RoleComponent
			continue
		}
		b.Roles[h] = RoleIgnored
		b.Ignored = append(b.Ignored, h)
	}
	var firstErr error
	for _, c := range s.Columns {
		if _, ok := b.Roles[c.Name]; ok {
			continue
		}
		b.Missing = append(b.Missing, c.Name)
		if c.Required && firstErr == nil {
			firstErr = &KeyNotFoundError{Column: c.Name}
		}
	}
	return b, firstErr
}

// Columns returns the bound headers with the given role, in header order.
func (b Binding) Columns(role Role) []string {
	var out []string
	for _, h := range b.order {
		if b.Roles[h] == role {
			out = append(out, h)
		}
	}
	return out
}

// Percentages returns component and wellbeing columns in header order.
func (b Binding) Percentages() []string {
	var out []string
	for _, h := range b.order {
		if r := b.Roles[h]; r == RoleComponent || r == RoleWellbeing {
			out = append(out, h)
		}
	}
	return out
}

// Numeric returns every column that carries a metric, in header order.
func (b Binding) Numeric() []string {
	var out []string
	for _, h := range b.order {
		switch b.Roles[h] {
		case RoleComposite, RoleComponent, RoleWellbeing:
			out = append(out, h)
		}
	}
	return out
}

// Band is a coarse rating of a percentage-like score.
type Band string

const (
	BandGood Band = "good"
	BandFair Band = "fair"
	BandLow  Band = "low"
)

// BandOf rates a 0-100 score: >=80 good, >=60 fair, otherwise low.
func BandOf(score float64) Band {
	switch {
	case score >= 80:
		return BandGood
	case score >= 60:
		return BandFair
	default:
		return BandLow
	}
}
