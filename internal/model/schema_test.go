package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaBind(t *testing.T) {
	headers := []string{"Name", "EI Score", "Empathy (%)", "Stress (%)", "Department", "Self-Awareness (%)"}

	b, err := DefaultSchema().Bind(headers)
	require.NoError(t, err)

	assert.Equal(t, []string{"Empathy (%)", "Self-Awareness (%)"}, b.Columns(RoleComponent))
	assert.Equal(t, []string{"Stress (%)"}, b.Columns(RoleWellbeing))
	assert.Equal(t, []string{"Department"}, b.Ignored)
	assert.Equal(t, []string{"Empathy (%)", "Stress (%)", "Self-Awareness (%)"}, b.Percentages())
	assert.Contains(t, b.Missing, ColPerformance)
	assert.NotContains(t, b.Missing, ColEIScore)
}

func TestSchemaBindMissingRequired(t *testing.T) {
	b, err := DefaultSchema().Bind([]string{"Name", "Performance"})
	require.NoError(t, err)
	assert.Contains(t, b.Missing, ColEIScore)

	strict := Schema{Columns: []ColumnSpec{
		{Name: ColName, Role: RoleIdentity},
		{Name: ColEIScore, Role: RoleComposite, Required: true},
	}}
	_, err = strict.Bind([]string{"Name", "Performance"})
	var knf *KeyNotFoundError
	require.True(t, errors.As(err, &knf))
	assert.Equal(t, ColEIScore, knf.Column)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw     string
		numeric bool
		want    float64
	}{
		{"85", true, 85},
		{" 72.5% ", true, 72.5},
		{"1,200", true, 1200},
		{"Alice", false, 0},
		{"", false, 0},
		{"NaN", false, 0},
		{"Inf", false, 0},
		{"-Infinity%", false, 0},
	}
	for _, tt := range tests {
		v := ParseValue(tt.raw)
		assert.Equal(t, tt.numeric, v.Numeric, tt.raw)
		assert.Equal(t, tt.want, v.Number, tt.raw)
	}
}

func TestRecordNumber(t *testing.T) {
	rec := Record{Index: 2, Values: map[string]Value{
		ColEIScore: ParseValue("77"),
		ColName:    ParseValue("Bob"),
		ColStress:  ParseValue(""),
	}}

	v, err := rec.Number(ColEIScore)
	require.NoError(t, err)
	assert.Equal(t, 77.0, v)

	_, err = rec.Number(ColStress)
	var knf *KeyNotFoundError
	require.ErrorAs(t, err, &knf)
	assert.Equal(t, 3, knf.Row)

	_, err = rec.Number(ColName)
	var ve *ValueError
	require.ErrorAs(t, err, &ve)
}

func TestBandOf(t *testing.T) {
	assert.Equal(t, BandGood, BandOf(80))
	assert.Equal(t, BandFair, BandOf(60))
	assert.Equal(t, BandLow, BandOf(59.9))
}
