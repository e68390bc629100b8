package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/daryltucker/ei-reports/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSampleThenGenerate(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := execute(t, "sample", "write", "team.xlsx", "-n", "4", "--seed", "7")
	require.NoError(t, err)
	assert.FileExists(t, "team.xlsx")

	out, err := execute(t, "generate", "team.xlsx", "out")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 4 reports in out")

	pdfs, err := filepath.Glob(filepath.Join("out", "*_Report.pdf"))
	require.NoError(t, err)
	assert.Len(t, pdfs, 4)
	assert.FileExists(t, filepath.Join("out", "report_manifest.csv"))
	assert.NoDirExists(t, "temp_charts")
}

func TestGenerateFlagsOverridePositional(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := execute(t, "sample", "write", "a.xlsx", "-n", "2")
	require.NoError(t, err)

	out, err := execute(t, "generate", "missing.xlsx", "ignored", "-i", "a.xlsx", "-o", "flags", "--no-manifest", "--metrics-file", "run.prom")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 2 reports in flags")
	assert.NoFileExists(t, filepath.Join("flags", "report_manifest.csv"))
	assert.FileExists(t, "run.prom")
	assert.NoDirExists(t, "ignored")
}

func TestGenerateMissingInput(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := execute(t, "generate", "nope.xlsx")
	var le *model.LoadError
	assert.ErrorAs(t, err, &le)
}

func TestGenerateUsesConfigFile(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := execute(t, "sample", "write", "cfg.xlsx", "-n", "3")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile("custom.yaml", []byte("input_file: cfg.xlsx\noutput_dir: from-config\n"), 0644))

	out, err := execute(t, "--config", "custom.yaml", "generate")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 3 reports in from-config")
}

func TestInvalidLogLevel(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := execute(t, "--log-level", "loud", "sample", "write")
	assert.Error(t, err)
	assert.NoFileExists(t, "ei_assessment_data.xlsx")
}

func TestPreview(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := execute(t, "sample", "write", "-n", "12")
	require.NoError(t, err)
	assert.FileExists(t, "ei_assessment_data.xlsx")

	out, err := execute(t, "preview", "--out", filepath.Join("img", "preview.png"))
	require.NoError(t, err)
	assert.Contains(t, out, "EMOTIONAL INTELLIGENCE ASSESSMENT DATA PREVIEW")
	assert.Contains(t, out, "Total People: 12")
	assert.Contains(t, out, "Key Correlations:")
	assert.FileExists(t, filepath.Join("img", "preview.png"))
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
