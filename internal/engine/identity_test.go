package engine

import (
	"testing"

	"github.com/daryltucker/ei-reports/internal/model"
	"github.com/stretchr/testify/assert"
)

func namedDataset(names ...string) *model.Dataset {
	ds := &model.Dataset{Columns: []string{model.ColName}}
	for i, n := range names {
		ds.Records = append(ds.Records, model.Record{
			Index:   i,
			Columns: ds.Columns,
			Values:  map[string]model.Value{model.ColName: model.ParseValue(n)},
		})
	}
	return ds
}

func TestIdentities(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  []string
	}{
		{"unique", []string{"Alice", "Bob"}, []string{"Alice", "Bob"}},
		{"blank falls back to position", []string{"Alice", "  ", ""}, []string{"Alice", "Person_2", "Person_3"}},
		{"duplicates numbered", []string{"Dana", "Dana", "dana"}, []string{"Dana", "Dana_2", "dana_3"}},
		{"suffix collision", []string{"Eve_2", "Eve", "Eve"}, []string{"Eve_2", "Eve", "Eve_3"}},
		{"sanitised", []string{"A/B: C?", " .hidden. "}, []string{"A_B_ C_", "hidden"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Identities(namedDataset(tt.names...)))
		})
	}
}
