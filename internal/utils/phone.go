package utils

import (
	"errors"
	"strings"

	"github.com/ttacon/libphonenumber"
)

// ErrInvalidPhone is returned when a number cannot be parsed or is not valid for its region.
var ErrInvalidPhone = errors.New("invalid phone number")

// NormalizePhone parses raw using defaultRegion for numbers without a country prefix
// and returns it in E.164 form. Blank input yields an empty string and no error.
func NormalizePhone(raw, defaultRegion string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if defaultRegion == "" {
		defaultRegion = "IN"
	}
	num, err := libphonenumber.Parse(raw, strings.ToUpper(defaultRegion))
	if err != nil {
		return "", ErrInvalidPhone
	}
	if !libphonenumber.IsValidNumber(num) {
		return "", ErrInvalidPhone
	}
	return libphonenumber.Format(num, libphonenumber.E164), nil
}
