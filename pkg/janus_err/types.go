// pkg/janus_err/types.go

package janus_err

import "errors"

// ErrAborted is returned when the operator declines to continue at a manual gate.
var ErrAborted = errors.New("aborted by operator")

// UserError marks an error as expected and recoverable by the user.
type UserError struct {
	cause error
}

func (e *UserError) Error() string {
	return e.cause.Error()
}

func (e *UserError) Unwrap() error {
	return e.cause
}
