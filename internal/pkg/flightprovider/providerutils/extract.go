package providerutils

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/dto"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/exception"
)

// ListingParser turns one listing node into a record.
type ListingParser func(listing *goquery.Selection) (dto.FlightRecord, error)

// ParseDocument loads rendered HTML.
func ParseDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, ErrExtraction.Withf("parse document: %w", err)
	}

	return doc, nil
}

// ExtractListings applies parse to every node matching selector, in document
// order. The first listing that fails to parse fails the whole extraction.
func ExtractListings(doc *goquery.Document, selector string, parse ListingParser) ([]dto.FlightRecord, error) {
	listings := doc.Find(selector)
	records := make([]dto.FlightRecord, 0, listings.Length())

	var parseErr error
	listings.EachWithBreak(func(i int, listing *goquery.Selection) bool {
		record, err := parse(listing)
		if err != nil {
			parseErr = fmt.Errorf("listing %d: %w", i, err)
			if exception.KindOf(err) != exception.KindExtraction {
				parseErr = ErrExtraction.WithCause(parseErr)
			}
			return false
		}

		records = append(records, record)

		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}

	return records, nil
}

// RequiredText returns the trimmed text of the first match of selector inside
// listing, failing when the field is absent.
func RequiredText(listing *goquery.Selection, selector string) (string, error) {
	field := listing.Find(selector).First()
	if field.Length() == 0 {
		return "", ErrExtraction.Withf("missing field %q", selector)
	}

	return strings.TrimSpace(field.Text()), nil
}

// Exists reports whether selector matches anything in doc.
func Exists(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
