/*
PURPOSE:
  Writes the run manifest to a JSON Lines file (NDJSON).
  Optimized for machine parsing (jq, log shippers).

IMPLEMENTATION RULES:
  - Use encoding/json.NewEncoder.
  - One line per record, same order as the dataset.

USAGE:
  w, err := output.NewJSONWriter("reports/report_manifest.jsonl", runID)
  w.Write(outcome)
  w.Close()
*/

package output

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/daryltucker/ei-reports/internal/model"
)

// ManifestEntry is one JSON line of the manifest.
type ManifestEntry struct {
	RunID string `json:"run_id"`
	model.Outcome
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// JSONWriter handles writing outcomes to a JSON Lines file.
type JSONWriter struct {
	file    *os.File
	encoder *json.Encoder
	runID   string
	mu      sync.Mutex
}

// NewJSONWriter creates a new JSONWriter.
func NewJSONWriter(path, runID string) (*JSONWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return &JSONWriter{
		file:    f,
		encoder: json.NewEncoder(f),
		runID:   runID,
	}, nil
}

// Write writes a single outcome as a JSON line.
func (jw *JSONWriter) Write(o model.Outcome) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	entry := ManifestEntry{RunID: jw.runID, Outcome: o, Status: o.Status()}
	if o.Err != nil {
		entry.Error = o.Err.Error()
	}
	return jw.encoder.Encode(entry)
}

// Close closes the underlying file.
func (jw *JSONWriter) Close() error {
	return jw.file.Close()
}
