package service

import (
	"net/http"

	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/exception"
)

var ErrNoFaresFound = exception.ApplicationError{
	Kind:       exception.KindPersistence,
	Message:    "no fares found",
	StatusCode: http.StatusNotFound,
}

var ErrSweepInProgress = exception.ApplicationError{
	Kind:       exception.KindConflict,
	Message:    "a sweep is already running",
	StatusCode: http.StatusConflict,
}

var ErrAcquireLock = exception.ApplicationError{
	Kind:       exception.KindTransport,
	Message:    "failed to acquire sweep lock",
	StatusCode: http.StatusServiceUnavailable,
}

var ErrBuildSource = exception.ApplicationError{
	Kind:       exception.KindConfig,
	Message:    "failed to build fare source",
	StatusCode: http.StatusInternalServerError,
}
