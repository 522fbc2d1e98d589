package msisdn

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ttacon/libphonenumber"
)

var (
	ErrNoRegions     = errors.New("no phone regions configured")
	ErrInvalidNumber = errors.New("not a valid phone number")

	hasLetters = regexp.MustCompile(`[A-Za-z]`)
)

// Normalize returns number in E.164 form. Numbers without a leading "+" are
// tried against each region in order; the first region for which the number
// is valid wins. More common regions belong at the front of the list.
func Normalize(number string, regions []string) (string, error) {
	n := strings.TrimSpace(number)
	if n == "" {
		return "", ErrInvalidNumber
	}
	if strings.HasPrefix(n, "+") {
		pn, err := libphonenumber.Parse(n, "")
		if err != nil || !libphonenumber.IsValidNumber(pn) {
			return "", fmt.Errorf("%w: %q", ErrInvalidNumber, number)
		}
		return libphonenumber.Format(pn, libphonenumber.E164), nil
	}
	if len(regions) == 0 {
		return "", ErrNoRegions
	}
	for _, region := range regions {
		region = strings.ToUpper(strings.TrimSpace(region))
		pn, err := libphonenumber.Parse(n, region)
		if err != nil {
			continue
		}
		if libphonenumber.IsValidNumberForRegion(pn, region) {
			return libphonenumber.Format(pn, libphonenumber.E164), nil
		}
	}
	return "", fmt.Errorf("%w for regions %v: %q", ErrInvalidNumber, regions, number)
}

// NormalizeSender is Normalize for sender addresses. Alphanumeric sender ids
// (e.g. "ACME") are returned unchanged.
func NormalizeSender(sender string, regions []string) (string, error) {
	s := strings.TrimSpace(sender)
	if hasLetters.MatchString(s) {
		return s, nil
	}
	return Normalize(s, regions)
}

// Digits strips the leading "+" from an E.164 number, the format some
// gateways expect.
func Digits(e164 string) string {
	return strings.TrimPrefix(e164, "+")
}
