// Package errclass defines the stable, machine-readable error classes.
package errclass

import "fmt"

// PomError is a stable error class with an optional detail message.
// Two PomErrors match under errors.Is when their Codes are equal.
type PomError struct {
	Code    string
	Message string
}

func (e *PomError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *PomError) Is(target error) bool {
	t, ok := target.(*PomError)
	return ok && e.Code == t.Code
}

// WithMessage returns a new PomError with the same Code but a specific message.
func (e *PomError) WithMessage(msg string) *PomError {
	return &PomError{Code: e.Code, Message: msg}
}

// WithMessagef returns a new PomError with a formatted message.
func (e *PomError) WithMessagef(format string, args ...any) *PomError {
	return &PomError{Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

var (
	// ErrDurationInvalid rejects a requested duration <= 0 before any
	// state is read or written.
	ErrDurationInvalid = &PomError{Code: "E_DURATION_INVALID"}

	// ErrStateWrite marks a failed save. The invocation's decision still
	// stands; only resumability of the next invocation is at risk.
	ErrStateWrite = &PomError{Code: "E_STATE_WRITE"}

	// ErrNoteInvalid rejects a session note containing control characters.
	ErrNoteInvalid = &PomError{Code: "E_NOTE_INVALID"}
)
