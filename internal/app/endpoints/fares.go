package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/dto"
)

type FareService interface {
	FareReport(ctx context.Context, req dto.FareReportRequest) (dto.FareReportResponse, error)
}

type FareEndpoint struct {
	CheapestFares endpoint.Endpoint
}

func MakeFareEndpoint(service FareService) FareEndpoint {
	return FareEndpoint{
		CheapestFares: makeCheapestFaresEndpoint(service),
	}
}

func makeCheapestFaresEndpoint(service FareService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.FareReportRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		report, err := service.FareReport(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("fare report: %w", err)
		}

		return report, nil
	}
}
