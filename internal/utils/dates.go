package utils

import (
	"time"
)

// DisplayDateLayout is the day/month/year layout used in tables and summaries
const DisplayDateLayout = "02/01/2006"

// DisplayDate formats a record date. Record dates are stored in UTC.
func DisplayDate(t time.Time) string {
	return t.UTC().Format(DisplayDateLayout)
}

// LoadLocation returns the named time zone, or UTC when the name is empty
// or the zone database does not know it
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		// In production docker, ensure tzdata is installed
		return time.UTC
	}
	return loc
}

// Clock returns a function reporting the current time in loc
func Clock(loc *time.Location) func() time.Time {
	return func() time.Time {
		return time.Now().In(loc)
	}
}
