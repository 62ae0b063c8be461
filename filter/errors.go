package filter

import (
	"fmt"
)

type (
	// CompilationError indicates a filter expression could not be compiled
	CompilationError struct {
		Expression string
		Reason     string
		Column     int // 0 if unknown
		Err        error
	}

	// EvaluationError indicates a filter failed on a specific row
	EvaluationError struct {
		Expression string
		Row        int
		Err        error
	}
)

func (e *CompilationError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("invalid filter %q at column %d: %s", e.Expression, e.Column, e.Reason)
	}
	return fmt.Sprintf("invalid filter %q: %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("filter %q failed on row %d: %v", e.Expression, e.Row, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
