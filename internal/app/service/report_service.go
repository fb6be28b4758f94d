package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/dto"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/flight"
)

type FareReader interface {
	QueryCheapestPerDestination(ctx context.Context) ([]dto.FlightRecord, error)
}

// ReportService turns stored fares into the cheapest fare per destination.
type ReportService struct {
	reader       FareReader
	destinations []string
}

func NewReportService(reader FareReader, destinations []string) *ReportService {
	return &ReportService{
		reader:       reader,
		destinations: destinations,
	}
}

// CheapestFares returns one fare per destination in the configured order.
// Destinations with no stored fare are left out and returned as missing.
func (s *ReportService) CheapestFares(ctx context.Context) ([]dto.CheapestFare, []string, error) {
	records, err := s.reader.QueryCheapestPerDestination(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query cheapest fares: %w", err)
	}

	fares, missing := flight.CheapestPerDestination(records, s.destinations)

	if len(missing) > 0 {
		slog.WarnContext(ctx, "no fares stored for destinations", slog.Any("destinations", missing))
	}

	return fares, missing, nil
}

// FareReport godoc
// @Summary      Cheapest fare per destination
// @Tags         Fares
// @Description  Cheapest stored fare per destination, nonstop preferred
// @Param        sort_field    query  string  false  "destination, price or depart_date"
// @Param        sort_order    query  string  false  "asc or desc"
// @Param        nonstop_only  query  bool    false  "only nonstop fares"
// @Param        max_price     query  number  false  "upper price bound"
// @Success      200  {object}  dto.FareReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/fares/cheapest [get]
func (s *ReportService) FareReport(ctx context.Context, req dto.FareReportRequest) (dto.FareReportResponse, error) {
	fares, missing, err := s.CheapestFares(ctx)
	if err != nil {
		return dto.FareReportResponse{}, err
	}

	if len(fares) == 0 {
		return dto.FareReportResponse{}, ErrNoFaresFound
	}

	destinations := len(fares) + len(missing)

	fares = flight.FilterFares(fares, req.NonstopOnly, req.MaxPrice)
	fares = flight.SortFares(fares, req.SortField, req.SortOrder)

	return dto.FareReportResponse{
		Metadata: dto.FareReportMetadata{
			TotalResults: len(fares),
			Destinations: destinations,
			Missing:      missing,
		},
		Fares: fares,
	}, nil
}
