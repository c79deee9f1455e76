package core

import "github.com/pkg/errors"

// FieldError ties an input error message to the JSON field it concerns.
type FieldError struct {
	Field string
	Error string
}

// ValidationError is raised by services for input problems the struct
// validators cannot see, eg. email uniqueness or the wizard's consent
// checks. The HTTP layer renders Fields as a field-to-message map.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown requests a graceful stop of the API server; an integrity
// problem is not worth serving through.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
