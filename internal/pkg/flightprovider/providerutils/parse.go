package providerutils

import (
	"regexp"
	"strconv"
	"strings"
)

const directStops = "direct"

var (
	// one amount, an optional leading currency symbol and grouped thousands
	wholePrice    = regexp.MustCompile(`^\s*(?:\p{Sc}\s*)?(\d{1,3}(?:,\d{3})+|\d+)\s*$`)
	decimalPrice  = regexp.MustCompile(`^\s*(?:\p{Sc}\s*)?((?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?)\s*$`)
	leadingNumber = regexp.MustCompile(`^\s*(\d+)`)
)

// ParseWholePrice reads prices like "$1,234" into whole currency units.
func ParseWholePrice(text string) (float64, error) {
	match := wholePrice.FindStringSubmatch(text)
	if match == nil {
		return 0, ErrExtraction.Withf("price %q is not a single whole amount", text)
	}

	amount, err := strconv.Atoi(strings.ReplaceAll(match[1], ",", ""))
	if err != nil {
		return 0, ErrExtraction.Withf("price %q: %w", text, err)
	}

	return float64(amount), nil
}

// ParseDecimalPrice reads a single amount like "$1,234.50" or "€ 89.99".
// Anything else in the text is an extraction error.
func ParseDecimalPrice(text string) (float64, error) {
	match := decimalPrice.FindStringSubmatch(text)
	if match == nil {
		return 0, ErrExtraction.Withf("price %q is not a single amount", text)
	}

	amount, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", ""), 64)
	if err != nil {
		return 0, ErrExtraction.Withf("price %q: %w", text, err)
	}

	return amount, nil
}

// ParseStops maps a stop descriptor to a count: "Direct" is 0, otherwise the
// leading integer ("2 stops" is 2).
func ParseStops(text string) (int, error) {
	text = strings.TrimSpace(text)
	if strings.EqualFold(text, directStops) {
		return 0, nil
	}

	match := leadingNumber.FindStringSubmatch(text)
	if match == nil {
		return 0, ErrExtraction.Withf("stop descriptor %q", text)
	}

	stops, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, ErrExtraction.Withf("stop descriptor %q: %w", text, err)
	}

	return stops, nil
}
