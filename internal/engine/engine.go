/*
PURPOSE:
  Wires the per-record pipeline: chart rendering, scratch storage, document composition.
  Replaces ad hoc globals with one Engine value handed to the runner.

REQUIREMENTS:
  Implementation-discovered:
  - Tests need to swap the renderer or composer to inject faults for a single record.
  - The composer's concrete document type is adapted to a small interface here.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/chart, internal/document, internal/output

USAGE:
  e := engine.New(cfg)
  summary := e.Run(ds)
*/

package engine

import (
	"github.com/daryltucker/ei-reports/internal/chart"
	"github.com/daryltucker/ei-reports/internal/config"
	"github.com/daryltucker/ei-reports/internal/document"
	"github.com/daryltucker/ei-reports/internal/model"
	"github.com/daryltucker/ei-reports/internal/output"
)

// ChartRenderer renders the charts of one record.
type ChartRenderer interface {
	Render(rec model.Record, identity string) ([]chart.Chart, []error)
}

// Document is a composed report ready to be written.
type Document interface {
	WriteFile(path string) error
}

// Composer lays out one record's report.
type Composer interface {
	Compose(rec model.Record, identity string, charts []model.ChartFile) (Document, error)
}

// Engine runs the batch.
type Engine struct {
	Config   *config.Config
	Metrics  *output.Metrics
	renderer func(ds *model.Dataset) ChartRenderer
	composer Composer
}

// Option customises an Engine.
type Option func(*Engine)

// WithRenderer replaces the chart renderer. The function receives the dataset
// being processed so renderers can draw cohort context.
func WithRenderer(fn func(ds *model.Dataset) ChartRenderer) Option {
	return func(e *Engine) { e.renderer = fn }
}

// WithComposer replaces the document composer.
func WithComposer(c Composer) Option {
	return func(e *Engine) { e.composer = c }
}

// WithMetrics records outcomes into m.
func WithMetrics(m *output.Metrics) Option {
	return func(e *Engine) { e.Metrics = m }
}

// New creates a new Engine.
func New(cfg *config.Config, opts ...Option) *Engine {
	e := &Engine{
		Config:  cfg,
		Metrics: output.NewMetrics(),
		renderer: func(ds *model.Dataset) ChartRenderer {
			return chart.NewRenderer(chart.DefaultStyle(), ds)
		},
		composer: PDFComposer{Composer: document.NewComposer()},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PDFComposer adapts document.Composer to the Composer interface.
type PDFComposer struct {
	*document.Composer
}

// Compose implements Composer.
func (p PDFComposer) Compose(rec model.Record, identity string, charts []model.ChartFile) (Document, error) {
	doc, err := p.Composer.Compose(rec, identity, charts)
	if err != nil {
		return nil, err
	}
	return doc, nil
}
