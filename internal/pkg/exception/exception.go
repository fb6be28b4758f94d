package exception

import (
	"errors"
	"fmt"
)

// Kind classifies an application error for reporting.
type Kind string

const (
	KindExtraction  Kind = "extraction"
	KindTransport   Kind = "transport"
	KindPersistence Kind = "persistence"
	KindUnsupported Kind = "unsupported"
	KindConflict    Kind = "conflict"
	KindConfig      Kind = "config"
	KindUnknown     Kind = "unknown"
)

// ApplicationError handles application level errors.
type ApplicationError struct {
	Kind       Kind
	Message    string
	StatusCode int
	Cause      error
}

// Error interface implementation.
func (e ApplicationError) Error() string {
	if e.Cause == nil {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Message, e.Cause)
}

func (e ApplicationError) Unwrap() error {
	if e.Cause == nil {
		return errors.New(e.Message)
	}

	return e.Cause
}

// Is matches on kind and message so a sentinel still matches after WithCause.
func (e ApplicationError) Is(target error) bool {
	var targetErr ApplicationError

	if !errors.As(target, &targetErr) {
		return false
	}

	return e.Kind == targetErr.Kind &&
		e.Message == targetErr.Message
}

// ErrorCode returns error code for an application error.
func (e ApplicationError) ErrorCode() int {
	return e.StatusCode
}

// WithCause returns a copy of the sentinel carrying cause.
func (e ApplicationError) WithCause(cause error) ApplicationError {
	e.Cause = cause

	return e
}

// Withf returns a copy of the sentinel carrying a formatted cause.
func (e ApplicationError) Withf(format string, args ...any) ApplicationError {
	return e.WithCause(fmt.Errorf(format, args...))
}

// KindOf returns the kind of the first ApplicationError in err's chain.
func KindOf(err error) Kind {
	var appErr ApplicationError
	if errors.As(err, &appErr) && appErr.Kind != "" {
		return appErr.Kind
	}

	return KindUnknown
}
