package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/daryltucker/ei-reports/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	require.NoError(t, WriteWorkbook(path, "Data", rows))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFixture(t, [][]interface{}{
		{},
		{"Name", "EI Score", "Empathy (%)", "Notes"},
		{"Alice", 81.5, "77%"},
		{},
		{"Bob", 64, 59, "late"},
	})

	ds, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Data", ds.Sheet)
	assert.Equal(t, []string{"Name", "EI Score", "Empathy (%)", "Notes"}, ds.Columns)
	require.Equal(t, 2, ds.Len())

	alice := ds.Records[0]
	assert.Equal(t, 0, alice.Index)
	assert.Equal(t, "Alice", alice.Text(model.ColName))
	v, err := alice.Number("Empathy (%)")
	require.NoError(t, err)
	assert.Equal(t, 77.0, v)
	assert.False(t, alice.Has("Notes"))

	bob := ds.Records[1]
	assert.Equal(t, 1, bob.Index)
	assert.Equal(t, "late", bob.Text("Notes"))

	assert.Equal(t, []string{"Empathy (%)"}, ds.Binding.Columns(model.RoleComponent))
	assert.Equal(t, []string{"Notes"}, ds.Binding.Ignored)
}

func TestLoadSelectsSheet(t *testing.T) {
	path := writeFixture(t, [][]interface{}{{"EI Score"}, {70}})

	_, err := Load(path, WithSheet("Missing"))
	var le *model.LoadError
	require.ErrorAs(t, err, &le)

	ds, err := Load(path, WithSheet("Data"))
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	notXLSX := filepath.Join(dir, "notes.xlsx")
	require.NoError(t, os.WriteFile(notXLSX, []byte("plain text"), 0644))

	emptyBook := filepath.Join(dir, "empty.xlsx")
	require.NoError(t, WriteWorkbook(emptyBook, "Data", nil))

	tests := []struct {
		name string
		path string
		want error
	}{
		{name: "missing file", path: filepath.Join(dir, "nope.xlsx")},
		{name: "not a workbook", path: notXLSX},
		{name: "no header", path: emptyBook, want: ErrNoHeader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Load(tt.path)
			assert.Nil(t, ds)

			var le *model.LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.path, le.Path)
			if tt.want != nil {
				assert.True(t, errors.Is(err, tt.want))
			}
		})
	}

}

func TestLoadWithoutEIScore(t *testing.T) {
	path := writeFixture(t, [][]interface{}{{"Name", "Performance"}, {"Alice", 80}})

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
	assert.Contains(t, ds.Binding.Missing, model.ColEIScore)

	strict := model.Schema{Columns: []model.ColumnSpec{
		{Name: model.ColName, Role: model.RoleIdentity},
		{Name: model.ColEIScore, Role: model.RoleComposite, Required: true},
	}}
	ds, err = Load(path, WithSchema(strict))
	assert.Nil(t, ds)
	var le *model.LoadError
	require.ErrorAs(t, err, &le)
	var knf *model.KeyNotFoundError
	require.ErrorAs(t, err, &knf)
	assert.Equal(t, model.ColEIScore, knf.Column)
}

func TestWriteSampleRoundTrip(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.xlsx")
	b := filepath.Join(dir, "b.xlsx")
	require.NoError(t, WriteSample(a, 25, 7))
	require.NoError(t, WriteSample(b, 25, 7))

	dsA, err := Load(a)
	require.NoError(t, err)
	dsB, err := Load(b)
	require.NoError(t, err)

	assert.Equal(t, SampleHeader(), dsA.Columns)
	require.Equal(t, 25, dsA.Len())
	assert.Equal(t, dsA.Records, dsB.Records)
	assert.Empty(t, dsA.Binding.Missing)
	assert.Equal(t, "Aisha Khan 2", dsA.Records[20].Text(model.ColName))

	for _, rec := range dsA.Records {
		for _, col := range dsA.Binding.Percentages() {
			v, err := rec.Number(col)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 100.0)
		}
	}

	assert.Error(t, WriteSample(filepath.Join(dir, "c.xlsx"), 0, 1))
}
