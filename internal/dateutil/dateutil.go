// Package dateutil validates calendar dates in the fixed YYYY-MM-DD format.
package dateutil

import "time"

// Layout is the only date format the application accepts.
const Layout = "2006-01-02"

// IsValid reports whether date is a real calendar date in YYYY-MM-DD form.
// The parsed value is formatted back and compared against the input, so
// impossible dates that the parser would otherwise normalize (2023-02-30,
// month 13) are rejected along with format mismatches.
func IsValid(date string) bool {
	t, err := time.Parse(Layout, date)
	if err != nil {
		return false
	}
	return t.Format(Layout) == date
}
