package pipeline

import (
	"errors"
	"fmt"

	"hrpipe/internal/frame"
)

// LoadError reports that the input could not be opened, read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load %s: %v", e.Path, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// SchemaError reports a stage that references a column the table does not
// have, or that needs a column to be numeric when it is not.
type SchemaError struct {
	Stage  string
	Column string
	Err    error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("stage %s: column %q: %v", e.Stage, e.Column, e.Err)
}
func (e *SchemaError) Unwrap() error { return e.Err }

// WriteError reports that the output, or the optional SQL export, could not
// be written. Target is a file path or a table name.
type WriteError struct {
	Target string
	Err    error
}

func (e *WriteError) Error() string { return fmt.Sprintf("write %s: %v", e.Target, e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }

// classify maps a frame-level failure of stage to a *SchemaError. Other
// errors are wrapped with the stage name.
func classify(stage string, err error) error {
	if err == nil {
		return nil
	}
	var mc *frame.MissingColumnError
	if errors.As(err, &mc) {
		return &SchemaError{Stage: stage, Column: mc.Column, Err: err}
	}
	var nn *frame.NotNumericError
	if errors.As(err, &nn) {
		return &SchemaError{Stage: stage, Column: nn.Column, Err: err}
	}
	return fmt.Errorf("stage %s: %w", stage, err)
}
