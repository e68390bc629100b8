package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/daryltucker/ei-reports/internal/chart"
	"github.com/daryltucker/ei-reports/internal/model"
)

// Scratch is the temporary chart directory of one run. Only the batch driver
// writes to it, one record scope at a time.
type Scratch struct {
	dir     string
	created bool
}

// OpenScratch creates dir if needed.
func OpenScratch(dir string) (*Scratch, error) {
	s := &Scratch{dir: dir}
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		s.created = true
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory %s: %w", dir, err)
	}
	return s, nil
}

// Dir returns the scratch directory path.
func (s *Scratch) Dir() string {
	return s.dir
}

// Scope starts a record's chart area. Release must be called when the
// record's document has been written or abandoned.
func (s *Scratch) Scope(identity string) *Scope {
	return &Scope{scratch: s, identity: identity}
}

// Close removes the scratch directory if it is empty. A non-empty directory
// is left in place.
func (s *Scratch) Close() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(entries) > 0 {
		return fmt.Errorf("chart directory %s not empty (%d entries)", s.dir, len(entries))
	}
	return os.Remove(s.dir)
}

// Scope owns the chart files of one record.
type Scope struct {
	scratch  *Scratch
	identity string
	files    []string
}

// Save writes charts as PNG files, in order, and returns their locations.
func (sc *Scope) Save(charts []chart.Chart) ([]model.ChartFile, error) {
	out := make([]model.ChartFile, 0, len(charts))
	for _, c := range charts {
		path := filepath.Join(sc.scratch.dir, fmt.Sprintf("%s_%s.png", sc.identity, c.Kind))
		sc.files = append(sc.files, path)
		if err := chart.SavePNG(path, c.Image); err != nil {
			return nil, fmt.Errorf("failed to save %s chart: %w", c.Kind, err)
		}
		out = append(out, model.ChartFile{Kind: c.Kind, Path: path})
	}
	return out, nil
}

// Release removes every file the scope created.
func (sc *Scope) Release() error {
	var errs []error
	for _, f := range sc.files {
		if err := os.Remove(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	sc.files = nil
	return errors.Join(errs...)
}
