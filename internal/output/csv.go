/*
PURPOSE:
  Writes the run manifest (one row per input record) to a CSV file.
  Ensures data integrity by flushing writes immediately.

REQUIREMENTS:
  User-specified:
  - Every per-record failure is reported with the person's identity.

  Implementation-discovered:
  - A manifest next to the PDFs lets operators see which people were skipped and why
    without digging through logs.
  - Re-runs overwrite the manifest, the same way they overwrite the reports.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.Outcome

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write (a crashed run still leaves a usable manifest).

USAGE:
  w, err := output.NewCSVWriter("reports/report_manifest.csv", runID)
  w.Write(outcome)
  w.Close()

RELATED FILES:
  - internal/model/types.go
  - internal/output/json.go
*/

package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/daryltucker/ei-reports/internal/model"
)

// CSVWriter handles writing outcomes to a CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	runID  string
	mu     sync.Mutex
}

// NewCSVWriter creates a new CSVWriter.
// It overwrites the file if it exists.
func NewCSVWriter(path, runID string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)

	header := []string{
		"run_id", "index", "identity", "status", "path",
		"charts", "skipped_charts", "duration_s", "error",
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()

	return &CSVWriter{
		file:   f,
		writer: w,
		runID:  runID,
	}, nil
}

// Write writes a single outcome to the CSV file.
func (cw *CSVWriter) Write(o model.Outcome) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	errStr := ""
	if o.Err != nil {
		errStr = o.Err.Error()
	}

	record := []string{
		cw.runID,
		fmt.Sprintf("%d", o.Index),
		o.Identity,
		o.Status(),
		o.Path,
		joinKinds(o.Charts),
		joinKinds(o.Skipped),
		fmt.Sprintf("%.4f", o.Duration.Seconds()),
		errStr,
	}

	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.file.Close()
}

func joinKinds(kinds []model.ChartKind) string {
	ss := make([]string, len(kinds))
	for i, k := range kinds {
		ss[i] = string(k)
	}
	return strings.Join(ss, ";")
}
