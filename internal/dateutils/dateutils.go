// Package dateutils provides the date parsing used for ISO 20022 documents.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Layouts found in CAMT date and datetime elements.
const (
	DateLayoutISO = "2006-01-02"
)

// datetimeLayouts are tried in order for <CreDtTm> and <DtTm> elements.
// Banks emit datetimes with and without timezone designators.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	DateLayoutISO,
}

// ParseISODate parses a plain YYYY-MM-DD value.
func ParseISODate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayoutISO, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date: %s", value)
	}
	return t, nil
}

// ParseISODateTime parses an ISO date or datetime value and truncates it to
// the date.
func ParseISODateTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return Truncate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse datetime: %s", value)
}

// Truncate drops the time component of a timestamp, keeping the date in UTC.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ToISODate formats a time.Time value as YYYY-MM-DD.
func ToISODate(t time.Time) string {
	return t.Format(DateLayoutISO)
}
