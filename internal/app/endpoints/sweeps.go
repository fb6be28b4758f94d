package endpoints

import (
	"context"
	"fmt"

	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/dto"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/logger"
)

type SweepStarter interface {
	Start(ctx context.Context) (string, error)
}

type SweepEndpoint struct {
	StartSweep endpoint.Endpoint
}

func MakeSweepEndpoint(base context.Context, starter SweepStarter) SweepEndpoint {
	return SweepEndpoint{
		StartSweep: makeStartSweepEndpoint(base, starter),
	}
}

func makeStartSweepEndpoint(base context.Context, starter SweepStarter) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		sweepCtx := base
		if reqID, ok := ctx.Value(logger.RequestIDKey).(string); ok {
			sweepCtx = context.WithValue(base, logger.RequestIDKey, reqID)
		}

		sweepID, err := starter.Start(sweepCtx)
		if err != nil {
			return nil, fmt.Errorf("start sweep: %w", err)
		}

		return dto.StartSweepResponse{
			SweepID: sweepID,
			Message: "sweep started",
		}, nil
	}
}
