// Package validation provides input checks for operator-submitted values.
package validation

import "time"

// DateLayout is the calendar date format accepted on the admin form and
// stored in settings.
const DateLayout = "2006-01-02"

// ValidateDate checks that a string is a parseable calendar date.
func ValidateDate(s string) bool {
	if s == "" {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ParseDate parses a calendar date in the given location, at midnight.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}
