package picksheet

import (
	"errors"
	"fmt"
)

// ErrNoOutput indicates that neither a workbook nor a document output
// path was requested.
var ErrNoOutput = errors.New("no output requested")

// BuildError represents an error while building picking sheets.
type BuildError struct {
	Path  string
	Stage string // "read", "table", "xlsx", "docx"
	Err   error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build error for %q (%s): %v", e.Path, e.Stage, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// NewBuildError creates a new BuildError.
func NewBuildError(path, stage string, err error) *BuildError {
	return &BuildError{
		Path:  path,
		Stage: stage,
		Err:   err,
	}
}
