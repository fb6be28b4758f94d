package providerutils

import (
	"net/http"

	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/exception"
)

var ErrExtraction = exception.ApplicationError{
	Kind:       exception.KindExtraction,
	StatusCode: http.StatusUnprocessableEntity,
	Message:    "failed to extract flight listings",
}

var ErrTransport = exception.ApplicationError{
	Kind:       exception.KindTransport,
	StatusCode: http.StatusBadGateway,
	Message:    "provider page unreachable or failed to render",
}

var ErrUnsupportedVariant = exception.ApplicationError{
	Kind:       exception.KindUnsupported,
	StatusCode: http.StatusBadRequest,
	Message:    "unsupported fare source variant",
}
