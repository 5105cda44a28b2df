// Package week provides the Monday-to-Sunday window arithmetic used by the
// planner. Both the week board and lesson-date validation go through the same
// Window so the two can never disagree on where a week starts.
package week

import "time"

// Window is one planner week: Start is Monday 00:00:00, End is the last
// nanosecond of Sunday.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowFor returns the window containing t.
func WindowFor(t time.Time) Window {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := int(day.Weekday()) - 1
	if day.Weekday() == time.Sunday {
		offset = 6
	}
	start := day.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return Window{Start: start, End: end}
}

// ContainsDate reports whether t's calendar date falls inside the window.
// Only the date matters; the time of day is ignored.
func (w Window) ContainsDate(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, w.Start.Location())
	return !day.Before(w.Start) && !day.After(w.End)
}

// Days returns the seven day starts of the window, Monday first.
func (w Window) Days() [7]time.Time {
	var days [7]time.Time
	for i := range days {
		days[i] = w.Start.AddDate(0, 0, i)
	}
	return days
}

// Next returns the following week's window.
func (w Window) Next() Window {
	return WindowFor(w.Start.AddDate(0, 0, 7))
}

// Prev returns the preceding week's window.
func (w Window) Prev() Window {
	return WindowFor(w.Start.AddDate(0, 0, -7))
}
