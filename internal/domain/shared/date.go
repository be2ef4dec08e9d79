package shared

import "time"

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// DateOf truncates a timestamp to its calendar date (UTC midnight).
// Deliveries, billing periods and payment dates are calendar dates;
// normalizing here keeps range comparisons exact.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a calendar date in DateLayout
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// NextDay returns the calendar date one day after t
func NextDay(t time.Time) time.Time {
	return DateOf(t).AddDate(0, 0, 1)
}

// SameDate returns true when a and b fall on the same calendar date
func SameDate(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}

// FormatDate renders a calendar date in DateLayout
func FormatDate(t time.Time) string {
	return DateOf(t).Format(DateLayout)
}
