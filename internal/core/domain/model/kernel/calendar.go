package kernel

import "time"

// IsBusinessDay reports whether t falls on Monday through Friday. There is no
// holiday calendar.
func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// NextBusinessDay returns the first business day strictly after t's date,
// truncated to midnight in t's location.
func NextBusinessDay(t time.Time) time.Time {
	d := startOfDay(t).AddDate(0, 0, 1)
	for !IsBusinessDay(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// AddBusinessDays advances t's date by n business days, skipping weekends.
// n <= 0 returns t's date unchanged.
//
// Example:
//
//	friday := time.Date(2026, 10, 16, 15, 0, 0, 0, time.UTC)
//	kernel.AddBusinessDays(friday, 2) // Tuesday 2026-10-20
func AddBusinessDays(t time.Time, n int) time.Time {
	d := startOfDay(t)
	for i := 0; i < n; i++ {
		d = NextBusinessDay(d)
	}
	return d
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
