package calendar

import (
	"time"
)

// Date truncates a timestamp to midnight UTC. The engine works at day
// granularity; any time-of-day carried on the wire is ignored.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Window enumerates every day of the inclusive range [start, end].
// An inverted range yields an empty sequence.
func Window(start, end time.Time) []time.Time {
	start = Date(start)
	end = Date(end)

	if end.Before(start) {
		return nil
	}

	days := make([]time.Time, 0, DaysBetween(start, end)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	return days
}

// DaysBetween returns the number of whole days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Date(b).Sub(Date(a)).Hours() / 24)
}

// Occupies reports whether a stay of [checkIn, checkOut) covers day d.
// The check-out day itself is free for the next guest.
func Occupies(checkIn, checkOut, d time.Time) bool {
	d = Date(d)

	return !d.Before(Date(checkIn)) && d.Before(Date(checkOut))
}

// Overlaps reports whether the half-open ranges [a1, a2) and [b1, b2)
// share at least one day.
func Overlaps(a1, a2, b1, b2 time.Time) bool {
	return Date(a1).Before(Date(b2)) && Date(b1).Before(Date(a2))
}
