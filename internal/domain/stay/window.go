package stay

import "cloud.google.com/go/civil"

// DaysBetween counts calendar days from a to b, both inclusive.
// Returns 0 when b is before a, never a negative number.
func DaysBetween(a, b civil.Date) int {
	if b.Before(a) {
		return 0
	}
	return b.DaysSince(a) + 1
}

// Contribution returns how many days of s fall inside w, along with the
// clamped range. ok is false when the stay does not overlap the window.
func Contribution(s Stay, w Window) (days int, clamped Window, ok bool) {
	clamped = Window{Start: maxDate(s.EntryDate, w.Start), End: minDate(s.ExitDate, w.End)}
	if clamped.Start.After(clamped.End) {
		return 0, clamped, false
	}
	return DaysBetween(clamped.Start, clamped.End), clamped, true
}

// DaysInWindow sums the days of all stays that fall inside w.
//
// Pure function: stays are not modified.
func DaysInWindow(stays []Stay, w Window) int {
	total := 0
	for _, s := range stays {
		days, _, _ := Contribution(s, w)
		total += days
	}
	return total
}

func maxDate(a, b civil.Date) civil.Date {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b civil.Date) civil.Date {
	if a.Before(b) {
		return a
	}
	return b
}
