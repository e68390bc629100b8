package model

import "fmt"

// LoadError means the input could not be read as a dataset. It is fatal for a run.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load dataset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// KeyNotFoundError means an expected column is absent from the dataset, or
// blank for one record when Row is set.
type KeyNotFoundError struct {
	Column string
	Row    int
}

func (e *KeyNotFoundError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("column %q has no value in row %d", e.Column, e.Row)
	}
	return fmt.Sprintf("column %q not found", e.Column)
}

// ValueError means a cell expected to be numeric holds something else.
type ValueError struct {
	Column string
	Row    int
	Raw    string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("column %q row %d: %q is not a number", e.Column, e.Row, e.Raw)
}
