package usecase

import "regexp"

var availabilityDate = regexp.MustCompile(`\d{1,2}(?:st|nd|rd|th) [A-Za-z]+ \d{4}`)

// findAvailabilityDate returns the first textual date in s
func findAvailabilityDate(s string) (string, bool) {
	m := availabilityDate.FindString(s)
	return m, m != ""
}
