package dto

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/exception"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/utils"
)

const (
	LabelNonstop   = "Non-stop"
	LabelWithStops = "With stops"
)

var ErrInvalidFlightRecord = exception.ApplicationError{
	Kind:       exception.KindExtraction,
	StatusCode: http.StatusUnprocessableEntity,
	Message:    "invalid flight record",
}

// FlightRecord is one priced round-trip itinerary. Build it with
// NewFlightRecord; the zero ID means it has not been read back from the store.
type FlightRecord struct {
	ID         int64
	OriginCity string
	DestCity   string
	DepartDate time.Time
	ReturnDate time.Time
	Price      float64
	Nonstop    *bool
}

// NewFlightRecord validates the record invariants. nonstop nil means the
// source could not observe the stop count.
func NewFlightRecord(origin, dest string, depart, ret time.Time, price float64, nonstop *bool) (FlightRecord, error) {
	origin = strings.TrimSpace(origin)
	dest = strings.TrimSpace(dest)

	if origin == "" || dest == "" {
		return FlightRecord{}, ErrInvalidFlightRecord.Withf("empty city (origin=%q, dest=%q)", origin, dest)
	}

	depart = utils.TruncateToDate(depart)
	ret = utils.TruncateToDate(ret)

	if !depart.Before(ret) {
		return FlightRecord{}, ErrInvalidFlightRecord.Withf("depart %s is not before return %s",
			utils.FormatISODate(depart), utils.FormatISODate(ret))
	}

	if price < 0 {
		return FlightRecord{}, ErrInvalidFlightRecord.Withf("negative price %.2f", price)
	}

	var flag *bool
	if nonstop != nil {
		v := *nonstop
		flag = &v
	}

	return FlightRecord{
		OriginCity: origin,
		DestCity:   dest,
		DepartDate: depart,
		ReturnDate: ret,
		Price:      price,
		Nonstop:    flag,
	}, nil
}

// IsNonstop reports whether the record is known to be nonstop.
func (f FlightRecord) IsNonstop() bool {
	return f.Nonstop != nil && *f.Nonstop
}

// WithID returns a copy carrying the store identity.
func (f FlightRecord) WithID(id int64) FlightRecord {
	f.ID = id

	return f
}

func (f FlightRecord) String() string {
	nonstop := "unknown"
	if f.Nonstop != nil {
		nonstop = fmt.Sprintf("%t", *f.Nonstop)
	}

	return fmt.Sprintf("%s <-> %s from %s to %s (%s) [Non-stop: %s]",
		f.OriginCity, f.DestCity,
		utils.FormatISODate(f.DepartDate), utils.FormatISODate(f.ReturnDate),
		utils.FormatDollar(f.Price), nonstop)
}

type flightRecordJSON struct {
	ID         int64   `json:"id,omitempty"`
	OriginCity string  `json:"origin_city"`
	DestCity   string  `json:"dest_city"`
	DepartDate string  `json:"depart_date"`
	ReturnDate string  `json:"return_date"`
	Price      float64 `json:"price"`
	Nonstop    *bool   `json:"nonstop"`
}

func (f FlightRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(flightRecordJSON{
		ID:         f.ID,
		OriginCity: f.OriginCity,
		DestCity:   f.DestCity,
		DepartDate: utils.FormatISODate(f.DepartDate),
		ReturnDate: utils.FormatISODate(f.ReturnDate),
		Price:      f.Price,
		Nonstop:    f.Nonstop,
	})
}

func (f *FlightRecord) UnmarshalJSON(data []byte) error {
	var raw flightRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	depart, err := utils.ParseISODate(raw.DepartDate)
	if err != nil {
		return err
	}

	ret, err := utils.ParseISODate(raw.ReturnDate)
	if err != nil {
		return err
	}

	*f = FlightRecord{
		ID:         raw.ID,
		OriginCity: raw.OriginCity,
		DestCity:   raw.DestCity,
		DepartDate: depart,
		ReturnDate: ret,
		Price:      raw.Price,
		Nonstop:    raw.Nonstop,
	}

	return nil
}

// Window is one candidate (depart, return) pair.
type Window struct {
	DepartDate time.Time
	ReturnDate time.Time
}

// SearchCriteria is one sweep tuple handed to a fare source.
type SearchCriteria struct {
	Origin      string
	Destination string
	DepartDate  time.Time
	ReturnDate  time.Time
}

func (s SearchCriteria) String() string {
	return fmt.Sprintf("%s->%s %s/%s", s.Origin, s.Destination,
		utils.FormatISODate(s.DepartDate), utils.FormatISODate(s.ReturnDate))
}

// SweepPlan is the immutable description of what a sweep covers.
type SweepPlan struct {
	Origin       string
	Destinations []string
	RangeStart   time.Time
	RangeEnd     time.Time
	TripLength   int
}

// CheapestFare is the winning record for one destination.
type CheapestFare struct {
	Flight FlightRecord `json:"flight"`
	Label  string       `json:"label"`
}

func NewCheapestFare(flight FlightRecord) CheapestFare {
	label := LabelWithStops
	if flight.IsNonstop() {
		label = LabelNonstop
	}

	return CheapestFare{Flight: flight, Label: label}
}

// String renders the report line.
func (c CheapestFare) String() string {
	return fmt.Sprintf("Cheapest flight to %s: %s -> %s from %s to %s (%s) (%s)",
		c.Flight.DestCity, c.Flight.OriginCity, c.Flight.DestCity,
		utils.FormatISODate(c.Flight.DepartDate), utils.FormatISODate(c.Flight.ReturnDate),
		utils.FormatDollar(c.Flight.Price), c.Label)
}

// SweepSummary counts what one sweep did.
type SweepSummary struct {
	SweepID         string    `json:"sweep_id"`
	Origin          string    `json:"origin"`
	Windows         int       `json:"windows"`
	Tuples          int       `json:"tuples"`
	TuplesSucceeded int       `json:"tuples_succeeded"`
	TuplesFailed    int       `json:"tuples_failed"`
	Fallbacks       int       `json:"fallbacks"`
	RecordsFetched  int       `json:"records_fetched"`
	RecordsInserted int64     `json:"records_inserted"`
	InsertFailures  int       `json:"insert_failures"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
}

// FareReportRequest is the query of GET /api/v1/fares/cheapest.
type FareReportRequest struct {
	SortField   string   `json:"sort_field" validate:"omitempty,oneof=destination price depart_date"`
	SortOrder   string   `json:"sort_order" validate:"omitempty,oneof=asc desc"`
	NonstopOnly bool     `json:"nonstop_only"`
	MaxPrice    *float64 `json:"max_price,omitempty" validate:"omitempty,gt=0"`
}

// Bind lets render.Bind validate the request.
func (r *FareReportRequest) Bind(_ *http.Request) error {
	return r.Validate()
}

func (r *FareReportRequest) Validate() error {
	if err := ValidateSingleError(r); err != nil {
		return exception.ApplicationError{
			Kind:       exception.KindConfig,
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	return nil
}

type FareReportMetadata struct {
	TotalResults int      `json:"total_results"`
	Destinations int      `json:"destinations"`
	Missing      []string `json:"missing"`
}

type FareReportResponse struct {
	Metadata FareReportMetadata `json:"metadata"`
	Fares    []CheapestFare     `json:"fares"`
}

type StartSweepResponse struct {
	SweepID string `json:"sweep_id"`
	Message string `json:"message"`
}
