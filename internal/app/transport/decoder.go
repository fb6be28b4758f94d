package transport

import (
	"context"
	"net/http"
	"strconv"

	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/dto"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/exception"
)

var ErrInvalidQuery = exception.ApplicationError{
	Kind:       exception.KindConfig,
	StatusCode: http.StatusBadRequest,
	Message:    "invalid query parameter",
}

func decodeFareReportRequest(_ context.Context, r *http.Request) (interface{}, error) {
	query := r.URL.Query()

	req := &dto.FareReportRequest{
		SortField: query.Get("sort_field"),
		SortOrder: query.Get("sort_order"),
	}

	if raw := query.Get("nonstop_only"); raw != "" {
		nonstopOnly, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, ErrInvalidQuery.Withf("nonstop_only: %w", err)
		}

		req.NonstopOnly = nonstopOnly
	}

	if raw := query.Get("max_price"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, ErrInvalidQuery.Withf("max_price: %w", err)
		}

		req.MaxPrice = &maxPrice
	}

	if err := req.Bind(r); err != nil {
		return nil, err
	}

	return req, nil
}
