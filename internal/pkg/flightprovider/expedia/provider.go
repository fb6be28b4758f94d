package expedia

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
	ProviderName = "expedia"

	searchURL     = "https://www.expedia.com/Flights-Search"
	urlDateLayout = "1/2/2006"
	nonstopFilter = `filters=[{"numOfStopFilterValue":{"stopInfo":{"numberOfStops":0,"stopFilterOperation":"EQUAL"}}}]`
)

type Selectors struct {
	Listing string
	Price   string
}

var DefaultSelectors = Selectors{
	Listing: `[data-test-id="offer-listing"]`,
	Price:   "span.is-visually-hidden.uitk-price-a11y",
}

// Provider searches Expedia. Its listings carry no stop count, so only the
// nonstop filter in the query tells stops apart.
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

// FetchNonstop returns listings of the nonstop filtered search, all marked nonstop.
func (p *Provider) FetchNonstop(ctx context.Context, criteria dto.SearchCriteria) ([]dto.FlightRecord, error) {
	return p.fetch(ctx, criteria, flightprovider.ModeNonstop)
}

// FetchAny returns listings of the unfiltered search with the stop count unknown.
func (p *Provider) FetchAny(ctx context.Context, criteria dto.SearchCriteria) ([]dto.FlightRecord, error) {
	return p.fetch(ctx, criteria, flightprovider.ModeAny)
}

func (p *Provider) fetch(ctx context.Context, criteria dto.SearchCriteria, mode string) (records []dto.FlightRecord, err error) {
	started := time.Now()
	defer func() {
		p.config.Metrics.ObserveFetch(ProviderName, mode, started, err)
	}()

	nonstop := mode == flightprovider.ModeNonstop

	html, err := flightprovider.RenderPage(ctx, ProviderName, p.config, flightprovider.Page{
		URL:          BuildURL(criteria.Origin, criteria.Destination, criteria.DepartDate, criteria.ReturnDate, nonstop),
		WaitSelector: p.selectors.Listing,
	})
	if err != nil {
		return nil, err
	}

	return ParseListings(html, criteria, nonstop, p.selectors)
}

// BuildURL builds the round-trip economy search URL for one adult.
func BuildURL(origin, dest string, depart, ret time.Time, nonstop bool) string {
	from := url.PathEscape(origin)
	to := url.PathEscape(dest)

	var b strings.Builder

	b.WriteString(searchURL)
	b.WriteString("?")

	if nonstop {
		b.WriteString(nonstopFilter)
		b.WriteString("&")
	}

	fmt.Fprintf(&b, "leg1=from:%s,to:%s,departure:%sTANYT,fromType:U,toType:U", from, to, depart.Format(urlDateLayout))
	fmt.Fprintf(&b, "&leg2=from:%s,to:%s,departure:%sTANYT,fromType:U,toType:U", to, from, ret.Format(urlDateLayout))
	b.WriteString("&mode=search&options=carrier:,cabinclass:,maxhops:1,nopenalty:N")
	b.WriteString("&passengers=adults:1,children:0,infantinlap:N&trip=roundtrip")

	return b.String()
}

// ParseListings extracts one record per listing. nonstop marks every record
// nonstop; otherwise the stop count is left unknown.
func ParseListings(html string, criteria dto.SearchCriteria, nonstop bool, selectors Selectors) ([]dto.FlightRecord, error) {
	doc, err := providerutils.ParseDocument(html)
	if err != nil {
		return nil, err
	}

	var flag *bool
	if nonstop {
		flag = &nonstop
	}

	return providerutils.ExtractListings(doc, selectors.Listing, func(listing *goquery.Selection) (dto.FlightRecord, error) {
		text, err := providerutils.RequiredText(listing, selectors.Price)
		if err != nil {
			return dto.FlightRecord{}, err
		}

		price, err := providerutils.ParseWholePrice(text)
		if err != nil {
			return dto.FlightRecord{}, err
		}

		return dto.NewFlightRecord(criteria.Origin, criteria.Destination,
			criteria.DepartDate, criteria.ReturnDate, price, flag)
	})
}
