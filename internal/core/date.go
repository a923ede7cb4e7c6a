package core

import "time"

// DateRange is an inclusive [Start, End] interval. Both bounds count.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls within the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// CurrentMonthRange returns the first through last calendar day of the month
// containing now, in now's location.
func CurrentMonthRange(now time.Time) DateRange {
	y, m, _ := now.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	end := time.Date(y, m+1, 0, 23, 59, 59, 0, now.Location())
	return DateRange{Start: start, End: end}
}

// AddMonthClamped advances t by one calendar month, clamping the day to the
// last day of the target month: Jan 31 becomes Feb 28 (29 in leap years),
// never Mar 3. time.AddDate alone would overflow into the month after.
func AddMonthClamped(t time.Time) time.Time {
	y, m, d := t.Date()
	last := lastDayOfMonth(y, m+1, t.Location())
	if d > last {
		d = last
	}
	return time.Date(y, m+1, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func lastDayOfMonth(year int, month time.Month, loc *time.Location) int {
	// Day zero of the following month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
