package engine

import "fmt"

// Stage names the step of a record's generation that failed.
type Stage string

const (
	StageRender  Stage = "render"
	StageSave    Stage = "save"
	StageCompose Stage = "compose"
	StageWrite   Stage = "write"
)

// RecordError is a failure confined to one record. The batch continues.
type RecordError struct {
	Identity string
	Stage    Stage
	Err      error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("report for %s failed at %s: %v", e.Identity, e.Stage, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
