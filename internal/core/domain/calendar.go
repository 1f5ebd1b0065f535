package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day format used for filters, invoices and assignments.
const DateLayout = "2006-01-02"

// BusinessDate returns the calendar day t falls on in loc.
func BusinessDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

// ParseDate validates a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}
