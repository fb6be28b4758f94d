package http

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	kithttp "github.com/go-kit/kit/transport/http"
)

// MakeHandlerFunc wires an endpoint with its decoder and encoder; errors go
// through ErrorResponse.
func MakeHandlerFunc(
	endpt endpoint.Endpoint,
	decoder kithttp.DecodeRequestFunc,
	encoder kithttp.EncodeResponseFunc,
) http.HandlerFunc {
	return kithttp.NewServer(
		endpt,
		decoder,
		encoder,
		kithttp.ServerErrorEncoder(ErrorResponse),
	).ServeHTTP
}

// DecodeEmpty is the decoder of requests without input.
func DecodeEmpty(_ context.Context, _ *http.Request) (interface{}, error) {
	return struct{}{}, nil
}
