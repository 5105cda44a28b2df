package week

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestWindowForMonday(t *testing.T) {
	// 2024-06-03 is a Monday.
	w := WindowFor(date(2024, time.June, 3))
	if !w.Start.Equal(date(2024, time.June, 3)) {
		t.Fatalf("start = %v, want Jun 3", w.Start)
	}
	if w.End.Day() != 9 || w.End.Month() != time.June {
		t.Fatalf("end = %v, want Jun 9", w.End)
	}
}

func TestWindowForMidweek(t *testing.T) {
	// Thursday maps back to the same Monday.
	w := WindowFor(time.Date(2024, time.June, 6, 14, 30, 0, 0, time.Local))
	if !w.Start.Equal(date(2024, time.June, 3)) {
		t.Fatalf("start = %v, want Jun 3", w.Start)
	}
}

func TestWindowForSunday(t *testing.T) {
	// Sunday belongs to the week that started six days earlier.
	w := WindowFor(date(2024, time.June, 9))
	if !w.Start.Equal(date(2024, time.June, 3)) {
		t.Fatalf("start = %v, want Jun 3", w.Start)
	}
}

func TestWindowAcrossMonthBoundary(t *testing.T) {
	// 2024-07-01 is a Monday; the prior Sunday is Jun 30.
	w := WindowFor(date(2024, time.June, 30))
	if !w.Start.Equal(date(2024, time.June, 24)) {
		t.Fatalf("start = %v, want Jun 24", w.Start)
	}
	if w.End.Month() != time.June || w.End.Day() != 30 {
		t.Fatalf("end = %v, want Jun 30", w.End)
	}
}

func TestContainsDate(t *testing.T) {
	w := WindowFor(date(2024, time.June, 3))

	if !w.ContainsDate(time.Date(2024, time.June, 3, 10, 0, 0, 0, time.Local)) {
		t.Fatal("Monday morning should be inside")
	}
	if !w.ContainsDate(time.Date(2024, time.June, 9, 23, 59, 0, 0, time.Local)) {
		t.Fatal("late Sunday should be inside")
	}
	if w.ContainsDate(date(2024, time.June, 10)) {
		t.Fatal("next Monday should be outside")
	}
	if w.ContainsDate(date(2024, time.June, 2)) {
		t.Fatal("previous Sunday should be outside")
	}
}

func TestDays(t *testing.T) {
	w := WindowFor(date(2024, time.June, 5))
	days := w.Days()
	if !days[0].Equal(date(2024, time.June, 3)) {
		t.Fatalf("first day = %v, want Jun 3", days[0])
	}
	if !days[6].Equal(date(2024, time.June, 9)) {
		t.Fatalf("last day = %v, want Jun 9", days[6])
	}
}

func TestNextPrev(t *testing.T) {
	w := WindowFor(date(2024, time.June, 3))
	if !w.Next().Start.Equal(date(2024, time.June, 10)) {
		t.Fatalf("next start = %v, want Jun 10", w.Next().Start)
	}
	if !w.Prev().Start.Equal(date(2024, time.May, 27)) {
		t.Fatalf("prev start = %v, want May 27", w.Prev().Start)
	}
	round := w.Next().Prev()
	if !round.Start.Equal(w.Start) {
		t.Fatal("next then prev should round-trip")
	}
}
