package model

import (
	"regexp"
	"time"
)

var ordinalSuffix = regexp.MustCompile(`(\d)(st|nd|rd|th)`)

// ConvertDate converts "3rd June 2024" into "2024-06-03".
// It returns false when s is not a recognizable date.
func ConvertDate(s string) (string, bool) {
	clean := ordinalSuffix.ReplaceAllString(s, "$1")
	t, err := time.Parse("2 January 2006", clean)
	if err != nil {
		return "", false
	}
	return t.Format(time.DateOnly), true
}

// AvailabilityISO returns the availability date as YYYY-MM-DD, or false when
// the release has no date or it cannot be converted
func (r *Release) AvailabilityISO() (string, bool) {
	if r.AvailabilityDate == nil {
		return "", false
	}
	return ConvertDate(*r.AvailabilityDate)
}
