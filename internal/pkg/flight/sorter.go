package flight

import (
	"sort"

	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/dto"
)

const (
	SortFieldDestination = "destination"
	SortFieldPrice       = "price"
	SortFieldDepartDate  = "depart_date"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// SortFares orders the report. An empty field keeps the destination order
// the fares came in.
func SortFares(fares []dto.CheapestFare, field, order string) []dto.CheapestFare {
	desc := order == SortOrderDesc

	var less func(a, b dto.FlightRecord) bool

	switch field {
	case SortFieldDestination:
		less = func(a, b dto.FlightRecord) bool { return a.DestCity < b.DestCity }
	case SortFieldPrice:
		less = func(a, b dto.FlightRecord) bool { return a.Price < b.Price }
	case SortFieldDepartDate:
		less = func(a, b dto.FlightRecord) bool { return a.DepartDate.Before(b.DepartDate) }
	default:
		if desc {
			for i, j := 0, len(fares)-1; i < j; i, j = i+1, j-1 {
				fares[i], fares[j] = fares[j], fares[i]
			}
		}
		return fares
	}

	sort.SliceStable(fares, func(i, j int) bool {
		if desc {
			return less(fares[j].Flight, fares[i].Flight)
		}
		return less(fares[i].Flight, fares[j].Flight)
	})

	return fares
}
