package flight

import (
	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/dto"
)

// FilterFares drops fares that are not nonstop when nonstopOnly is set and
// fares above maxPrice when it is given.
func FilterFares(fares []dto.CheapestFare, nonstopOnly bool, maxPrice *float64) []dto.CheapestFare {
	results := make([]dto.CheapestFare, 0, len(fares))

	for _, fare := range fares {
		if nonstopOnly && !fare.Flight.IsNonstop() {
			continue
		}

		if maxPrice != nil && fare.Flight.Price > *maxPrice {
			continue
		}

		results = append(results, fare)
	}

	return results
}
