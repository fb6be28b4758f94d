package flight

import (
	"time"

	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/dto"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/utils"
)

// GenerateWindows enumerates [d, d+tripLength] for every departure d from
// start while the return stays on or before end, in ascending order.
func GenerateWindows(start, end time.Time, tripLength int) []dto.Window {
	if tripLength <= 0 {
		return nil
	}

	start = utils.TruncateToDate(start)
	end = utils.TruncateToDate(end)

	windows := make([]dto.Window, 0, max(utils.DaysBetween(start, end)-tripLength+1, 0))

	for depart := start; !depart.AddDate(0, 0, tripLength).After(end); depart = depart.AddDate(0, 0, 1) {
		windows = append(windows, dto.Window{
			DepartDate: depart,
			ReturnDate: depart.AddDate(0, 0, tripLength),
		})
	}

	return windows
}

// Tuples expands a plan destination by destination, each in window order.
func Tuples(plan dto.SweepPlan) []dto.SearchCriteria {
	windows := GenerateWindows(plan.RangeStart, plan.RangeEnd, plan.TripLength)
	tuples := make([]dto.SearchCriteria, 0, len(windows)*len(plan.Destinations))

	for _, dest := range plan.Destinations {
		for _, w := range windows {
			tuples = append(tuples, dto.SearchCriteria{
				Origin:      plan.Origin,
				Destination: dest,
				DepartDate:  w.DepartDate,
				ReturnDate:  w.ReturnDate,
			})
		}
	}

	return tuples
}
