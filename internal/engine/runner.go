/*
PURPOSE:
  Batch Driver. Orchestrates report generation for every person in the dataset.
  Loops through records -> charts -> document and collects one outcome per record.

REQUIREMENTS:
  User-specified:
  - Records processed strictly in dataset order, one at a time.
  - A failing record is reported (with identity) and skipped; the batch continues.
  - Chart files are removed after each record; the chart folder is removed when empty.
  - Report the number of generated documents.

  Implementation-discovered:
  - Panics inside a record's generation are recovered into that record's error.
  - A partially written PDF is removed so the output count matches the outcomes.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/dataset, internal/engine (scratch, identity), internal/output

ERROR HANDLING:
  - Load errors are fatal and returned.
  - Per-record errors become *RecordError in the outcome; never returned from Run.
  - Manifest and metrics export failures are logged, not fatal.

IMPLEMENTATION RULES:
  - No goroutines. No retries.

USAGE:
  summary, err := engine.Run(cfg)

RELATED FILES:
  - internal/engine/scratch.go
  - internal/engine/identity.go

MAINTENANCE:
  - Update iteration logic if parallelism is introduced (scratch scopes assume one writer).
*/

package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/daryltucker/ei-reports/internal/chart"
	"github.com/daryltucker/ei-reports/internal/config"
	"github.com/daryltucker/ei-reports/internal/dataset"
	"github.com/daryltucker/ei-reports/internal/model"
	"github.com/daryltucker/ei-reports/internal/output"
	"github.com/google/uuid"
)

// ReportSuffix is appended to the identity to name each document.
const ReportSuffix = "_Report.pdf"

// Manifest file names inside the output folder.
const (
	ManifestCSV  = "report_manifest.csv"
	ManifestJSON = "report_manifest.jsonl"
)

// Summary is the result of a batch run.
type Summary struct {
	RunID    string
	Outcomes []model.Outcome
}

// Generated returns the number of documents written.
func (s *Summary) Generated() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

// Failed returns the outcomes of records that produced no document.
func (s *Summary) Failed() []model.Outcome {
	var out []model.Outcome
	for _, o := range s.Outcomes {
		if !o.OK() {
			out = append(out, o)
		}
	}
	return out
}

// Run executes the full batch described by cfg.
func Run(cfg *config.Config, opts ...Option) (*Summary, error) {
	output.Logger.Info("Reading data", "path", cfg.InputFile)
	ds, err := dataset.Load(cfg.InputFile, dataset.WithSheet(cfg.Sheet))
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...).Run(ds)
}

// Run generates one report per record of ds.
func (e *Engine) Run(ds *model.Dataset) (*Summary, error) {
	cfg := e.Config

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}
	scratch, err := OpenScratch(cfg.ChartDir)
	if err != nil {
		return nil, err
	}

	summary := &Summary{RunID: uuid.NewString()}
	e.Metrics.Records.Set(float64(ds.Len()))
	renderer := e.renderer(ds)
	identities := Identities(ds)

	output.Logger.Info("Generating reports", "run_id", summary.RunID, "output_dir", cfg.OutputDir, "records", ds.Len())

	for i, rec := range ds.Records {
		identity := identities[i]
		output.Logger.Info("Processing record", "identity", identity, "row", rec.Index+1)

		o := e.generate(renderer, scratch, rec, identity)
		if o.OK() {
			output.Logger.Info("Report written", "identity", identity, "path", o.Path, "charts", len(o.Charts), "duration", o.Duration)
		} else {
			output.Logger.Error("Report failed", "identity", identity, "error", o.Err)
		}
		e.Metrics.Observe(o)
		summary.Outcomes = append(summary.Outcomes, o)
	}

	if err := scratch.Close(); err != nil {
		output.Logger.Warn("Chart directory kept", "dir", scratch.Dir(), "error", err)
	}

	output.Logger.Info("Generated reports",
		"run_id", summary.RunID,
		"generated", summary.Generated(),
		"failed", len(summary.Failed()),
		"output_dir", cfg.OutputDir,
	)

	if cfg.Manifest {
		if err := writeManifest(cfg.OutputDir, summary); err != nil {
			output.Logger.Error("Failed to write manifest", "error", err)
		}
	}
	if cfg.MetricsFile != "" {
		if err := e.Metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			output.Logger.Error("Failed to export metrics", "error", err)
		}
	}
	return summary, nil
}

// generate produces one record's document. Its chart files are always
// released before it returns.
func (e *Engine) generate(r ChartRenderer, scratch *Scratch, rec model.Record, identity string) (o model.Outcome) {
	start := time.Now()
	o = model.Outcome{Index: rec.Index, Identity: identity}
	stage := StageRender
	scope := scratch.Scope(identity)
	path := filepath.Join(e.Config.OutputDir, identity+ReportSuffix)

	defer func() {
		if err := scope.Release(); err != nil {
			output.Logger.Error("Failed to remove chart files", "identity", identity, "error", err)
		}
		o.Duration = time.Since(start)
	}()
	defer func() {
		if p := recover(); p != nil {
			if stage == StageWrite {
				os.Remove(path)
			}
			o.Err = &RecordError{Identity: identity, Stage: stage, Err: fmt.Errorf("panic: %v", p)}
			o.Path = ""
		}
	}()

	charts, skipped := r.Render(rec, identity)
	for _, err := range skipped {
		output.Logger.Warn("Chart skipped", "identity", identity, "error", err)
		var se *chart.SkipError
		if errors.As(err, &se) {
			o.Skipped = append(o.Skipped, se.Kind)
		}
	}

	stage = StageSave
	files, err := scope.Save(charts)
	if err != nil {
		o.Err = &RecordError{Identity: identity, Stage: stage, Err: err}
		return o
	}

	stage = StageCompose
	doc, err := e.composer.Compose(rec, identity, files)
	if err != nil {
		o.Err = &RecordError{Identity: identity, Stage: stage, Err: err}
		return o
	}

	stage = StageWrite
	if err := doc.WriteFile(path); err != nil {
		os.Remove(path)
		o.Err = &RecordError{Identity: identity, Stage: stage, Err: err}
		return o
	}

	for _, f := range files {
		o.Charts = append(o.Charts, f.Kind)
	}
	o.Path = path
	return o
}

func writeManifest(dir string, s *Summary) error {
	csvPath := filepath.Join(dir, ManifestCSV)
	csvWriter, err := output.NewCSVWriter(csvPath, s.RunID)
	if err != nil {
		return fmt.Errorf("failed to init CSV writer at %s: %w", csvPath, err)
	}
	defer csvWriter.Close()

	jsonPath := filepath.Join(dir, ManifestJSON)
	jsonWriter, err := output.NewJSONWriter(jsonPath, s.RunID)
	if err != nil {
		return fmt.Errorf("failed to init JSON writer at %s: %w", jsonPath, err)
	}
	defer jsonWriter.Close()

	for _, o := range s.Outcomes {
		if err := csvWriter.Write(o); err != nil {
			return fmt.Errorf("failed to write manifest row for %s: %w", o.Identity, err)
		}
		if err := jsonWriter.Write(o); err != nil {
			return fmt.Errorf("failed to write manifest line for %s: %w", o.Identity, err)
		}
	}
	return nil
}
