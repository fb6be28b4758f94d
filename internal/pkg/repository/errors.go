package repository

import (
	"net/http"

	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/exception"
)

var ErrResetSchema = exception.ApplicationError{
	Kind:       exception.KindPersistence,
	StatusCode: http.StatusInternalServerError,
	Message:    "failed to reset flight schema",
}

var ErrInsertFlight = exception.ApplicationError{
	Kind:       exception.KindPersistence,
	StatusCode: http.StatusInternalServerError,
	Message:    "failed to insert flight",
}

var ErrQueryFlights = exception.ApplicationError{
	Kind:       exception.KindPersistence,
	StatusCode: http.StatusInternalServerError,
	Message:    "failed to query flights",
}

var ErrUnsupportedDriver = exception.ApplicationError{
	Kind:       exception.KindConfig,
	StatusCode: http.StatusInternalServerError,
	Message:    "unsupported database driver",
}
