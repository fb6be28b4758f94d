package skyscanner

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/dto"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/flightprovider"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/flightprovider/providerutils"
)

const (
	ProviderName = "skyscanner"

	searchURL     = "https://www.skyscanner.com/transport/flights"
	urlDateLayout = "060102"

	NonstopFilter = "stops=!oneStop,!twoPlusStops"
)

type Selectors struct {
	Listing string
	Price   string
	// Stops matches the outbound then the return descriptor of a listing.
	Stops string
	// NoDirectBanner is shown when the nonstop filter found nothing and the
	// page falls back to connecting flights.
	NoDirectBanner string
}

var DefaultSelectors = Selectors{
	Listing:        `div[class^="FlightsTicket_container"]`,
	Price:          `div[class^="Price_mainPriceContainer"] span`,
	Stops:          `span[class^="LegInfo_stopsLabelContainer"]`,
	NoDirectBanner: `div[class^="NoDirectFlightsBanner"]`,
}

// Provider searches Skyscanner. Each listing shows the stops of both legs.
type Provider struct {
	config    flightprovider.FlightProviderConfig
	selectors Selectors
}

func NewProvider(config flightprovider.FlightProviderConfig) flightprovider.FareSource {
	return &Provider{
		config:    config,
		selectors: DefaultSelectors,
	}
}

func (p *Provider) Name() string {
	return ProviderName
}

// FetchNonstop runs the stops filtered search. The no-direct banner empties
// the result whatever listings are on the page.
func (p *Provider) FetchNonstop(ctx context.Context, criteria dto.SearchCriteria) ([]dto.FlightRecord, error) {
	return p.fetch(ctx, criteria, flightprovider.ModeNonstop, NonstopFilter)
}

func (p *Provider) FetchAny(ctx context.Context, criteria dto.SearchCriteria) ([]dto.FlightRecord, error) {
	return p.fetch(ctx, criteria, flightprovider.ModeAny, "")
}

func (p *Provider) fetch(ctx context.Context, criteria dto.SearchCriteria, mode, extraFilter string) (records []dto.FlightRecord, err error) {
	started := time.Now()
	defer func() {
		p.config.Metrics.ObserveFetch(ProviderName, mode, started, err)
	}()

	html, err := flightprovider.RenderPage(ctx, ProviderName, p.config, flightprovider.Page{
		URL:          BuildURL(criteria.Origin, criteria.Destination, criteria.DepartDate, criteria.ReturnDate, extraFilter),
		WaitSelector: p.selectors.Listing,
	})
	if err != nil {
		return nil, err
	}

	return ParseListings(html, criteria, mode == flightprovider.ModeNonstop, p.selectors)
}

// BuildURL builds the round-trip economy search URL for one adult.
// extraFilter is appended as is when set.
func BuildURL(origin, dest string, depart, ret time.Time, extraFilter string) string {
	u := fmt.Sprintf("%s/%s/%s/%s/%s/?adultsv2=1&cabinclass=economy&rtn=1",
		searchURL,
		url.PathEscape(strings.ToLower(origin)),
		url.PathEscape(strings.ToLower(dest)),
		depart.Format(urlDateLayout),
		ret.Format(urlDateLayout),
	)

	if extraFilter != "" {
		u += "&" + extraFilter
	}

	return u
}

// ParseListings extracts one record per listing with nonstop computed from
// both legs. With nonstopOnly set the no-direct banner yields no records.
func ParseListings(html string, criteria dto.SearchCriteria, nonstopOnly bool, selectors Selectors) ([]dto.FlightRecord, error) {
	doc, err := providerutils.ParseDocument(html)
	if err != nil {
		return nil, err
	}

	if nonstopOnly && providerutils.Exists(doc, selectors.NoDirectBanner) {
		return []dto.FlightRecord{}, nil
	}

	return providerutils.ExtractListings(doc, selectors.Listing, func(listing *goquery.Selection) (dto.FlightRecord, error) {
		text, err := providerutils.RequiredText(listing, selectors.Price)
		if err != nil {
			return dto.FlightRecord{}, err
		}

		price, err := providerutils.ParseDecimalPrice(text)
		if err != nil {
			return dto.FlightRecord{}, err
		}

		nonstop, err := parseLegs(listing, selectors.Stops)
		if err != nil {
			return dto.FlightRecord{}, err
		}

		return dto.NewFlightRecord(criteria.Origin, criteria.Destination,
			criteria.DepartDate, criteria.ReturnDate, price, &nonstop)
	})
}

func parseLegs(listing *goquery.Selection, selector string) (bool, error) {
	legs := listing.Find(selector)
	if legs.Length() < 2 {
		return false, providerutils.ErrExtraction.Withf("expected 2 stop descriptors, found %d", legs.Length())
	}

	outbound, err := providerutils.ParseStops(legs.Eq(0).Text())
	if err != nil {
		return false, err
	}

	inbound, err := providerutils.ParseStops(legs.Eq(1).Text())
	if err != nil {
		return false, err
	}

	return outbound == 0 && inbound == 0, nil
}
