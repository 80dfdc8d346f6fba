package entity

import "time"

// DateFormat is the calendar date layout used by the Valet API and the CLI.
const DateFormat = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date into a midnight-UTC time.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(date time.Time) string {
	return date.Format(DateFormat)
}
