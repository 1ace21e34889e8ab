// Package calendar builds the month grid and relative date labels shown by
// the memory calendar.
package calendar

import (
	"math"
	"time"
)

// GridSize is the number of cells in a month view: six weeks of seven days.
const GridSize = 42

// Days returns the 42 dates of the month view containing t. The grid starts
// on the Sunday on or before the first of the month and includes the
// trailing days of the previous month and the leading days of the next.
// Every returned date is midnight in t's location.
func Days(t time.Time) []time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	start := first.AddDate(0, 0, -int(first.Weekday()))

	days := make([]time.Time, GridSize)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// SameDay reports whether a and b fall on the same calendar date in a's
// location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FormatRelative labels d relative to now: "Today", "Yesterday", the weekday
// name within the past week, "January 2" within the same month, otherwise
// "January 2, 2006".
func FormatRelative(d, now time.Time) string {
	d = d.In(now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())

	// Rounding absorbs 23h and 25h days around DST changes.
	diff := int(math.Round(today.Sub(day).Hours() / 24))

	switch {
	case diff == 0:
		return "Today"
	case diff == 1:
		return "Yesterday"
	case diff > 1 && diff < 7:
		return d.Weekday().String()
	case d.Year() == now.Year() && d.Month() == now.Month():
		return d.Format("January 2")
	default:
		return d.Format("January 2, 2006")
	}
}
