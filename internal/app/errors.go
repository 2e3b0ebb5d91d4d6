package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the editor should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrNoActiveDocument indicates no document is currently open.
	ErrNoActiveDocument = errors.New("no active document")

	// ErrUnsavedChanges indicates a document has unsaved changes.
	ErrUnsavedChanges = errors.New("unsaved changes")
)

// OperationError describes a failed editor operation on a target,
// typically a file path.
type OperationError struct {
	Op     string
	Target string
	Err    error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
