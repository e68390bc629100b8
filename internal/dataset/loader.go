/*
PURPOSE:
  Data Loader. Reads the assessment workbook into a model.Dataset.

REQUIREMENTS:
  User-specified:
  - Read a spreadsheet with a header row; one record per following row.
  - Report row and column counts.
  - Fail the whole load (no partial dataset) when the file is missing, unreadable or not tabular.

  Implementation-discovered:
  - excelize drops trailing empty cells, so short rows are padded against the header.
  - Exported sheets often carry blank spacer rows; those are skipped.
  - The header is checked once against the schema so later stages never look up columns ad hoc.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine, internal/cli (preview)
  - Uses: internal/model, internal/output

ERROR HANDLING:
  - Every failure is returned as *model.LoadError wrapping the cause.

USAGE:
  ds, err := dataset.Load("ei_assessment_data.xlsx")

RELATED FILES:
  - internal/model/schema.go
  - internal/dataset/sample.go
*/

package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/daryltucker/ei-reports/internal/model"
	"github.com/daryltucker/ei-reports/internal/output"
	"github.com/xuri/excelize/v2"
)

// ErrNoHeader is returned (wrapped in a LoadError) when the sheet has no non-empty row.
var ErrNoHeader = errors.New("sheet has no header row")

type options struct {
	sheet  string
	schema model.Schema
}

// Option customises Load.
type Option func(*options)

// WithSheet selects a sheet by name instead of the first one.
func WithSheet(name string) Option {
	return func(o *options) { o.sheet = name }
}

// WithSchema replaces the default column schema.
func WithSchema(s model.Schema) Option {
	return func(o *options) { o.schema = s }
}

// Load reads the workbook at path.
func Load(path string, opts ...Option) (*model.Dataset, error) {
	o := options{schema: model.DefaultSchema()}
	for _, opt := range opts {
		opt(&o)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &model.LoadError{Path: path, Err: err}
	}
	defer f.Close()

	sheet := o.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, &model.LoadError{Path: path, Err: errors.New("workbook has no sheets")}
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &model.LoadError{Path: path, Err: fmt.Errorf("failed to read sheet %q: %w", sheet, err)}
	}

	ds, err := fromRows(rows, o.schema)
	if err != nil {
		return nil, &model.LoadError{Path: path, Err: err}
	}
	ds.Source = path
	ds.Sheet = sheet

	output.Logger.Info("Loaded dataset",
		"path", path,
		"sheet", sheet,
		"rows", ds.Len(),
		"columns", len(ds.Columns),
	)
	if len(ds.Binding.Ignored) > 0 {
		output.Logger.Debug("Ignoring unrecognised columns", "columns", ds.Binding.Ignored)
	}
	if len(ds.Binding.Missing) > 0 {
		output.Logger.Info("Optional columns not present", "columns", ds.Binding.Missing)
	}
	return ds, nil
}

func fromRows(rows [][]string, schema model.Schema) (*model.Dataset, error) {
	start := -1
	for i, row := range rows {
		if !blankRow(row) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, ErrNoHeader
	}

	header := make([]string, len(rows[start]))
	for i, h := range rows[start] {
		header[i] = strings.TrimSpace(h)
	}

	binding, err := schema.Bind(header)
	if err != nil {
		return nil, err
	}

	ds := &model.Dataset{Columns: header, Binding: binding}
	for _, row := range rows[start+1:] {
		if blankRow(row) {
			continue
		}
		rec := model.Record{
			Index:   len(ds.Records),
			Columns: header,
			Values:  make(map[string]model.Value, len(header)),
		}
		for i, col := range header {
			if col == "" {
				continue
			}
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			rec.Values[col] = model.ParseValue(cell)
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
