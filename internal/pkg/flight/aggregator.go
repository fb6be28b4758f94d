package flight

import (
	"sort"

	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/dto"
)

// SelectCheapest picks the cheapest nonstop record, or the cheapest of the
// rest when none is nonstop. Equal prices go to the lower ID, then the
// earlier departure.
func SelectCheapest(records []dto.FlightRecord) (dto.CheapestFare, bool) {
	var (
		nonstop, other       dto.FlightRecord
		hasNonstop, hasOther bool
	)

	for _, r := range records {
		if r.IsNonstop() {
			if !hasNonstop || cheaper(r, nonstop) {
				nonstop, hasNonstop = r, true
			}
			continue
		}

		if !hasOther || cheaper(r, other) {
			other, hasOther = r, true
		}
	}

	switch {
	case hasNonstop:
		return dto.NewCheapestFare(nonstop), true
	case hasOther:
		return dto.NewCheapestFare(other), true
	default:
		return dto.CheapestFare{}, false
	}
}

func cheaper(a, b dto.FlightRecord) bool {
	if a.Price != b.Price {
		return a.Price < b.Price
	}

	if a.ID != b.ID {
		return a.ID < b.ID
	}

	return a.DepartDate.Before(b.DepartDate)
}

// CheapestPerDestination groups records by destination and returns one fare
// per destination in the given order, plus the destinations with no record.
// With no order given, destinations come out alphabetically.
func CheapestPerDestination(records []dto.FlightRecord, destinations []string) ([]dto.CheapestFare, []string) {
	byDest := make(map[string][]dto.FlightRecord)
	for _, r := range records {
		byDest[r.DestCity] = append(byDest[r.DestCity], r)
	}

	order := destinations
	if len(order) == 0 {
		order = make([]string, 0, len(byDest))
		for dest := range byDest {
			order = append(order, dest)
		}
		sort.Strings(order)
	}

	fares := make([]dto.CheapestFare, 0, len(order))
	missing := make([]string, 0)

	for _, dest := range order {
		fare, ok := SelectCheapest(byDest[dest])
		if !ok {
			missing = append(missing, dest)
			continue
		}

		fares = append(fares, fare)
	}

	return fares, missing
}
