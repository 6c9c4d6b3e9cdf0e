// Package calendar generates the rolling weekly date grid every view and
// calculation is anchored to. All functions take the reference instant as an
// explicit parameter so callers (and tests) control what "today" means.
package calendar

import "time"

// DayLayout is the canonical day-key format (YYYY-MM-DD).
const DayLayout = "2006-01-02"

// DisplayWeeks is the production window size: two years of weeks.
const DisplayWeeks = 104

// A Week is seven consecutive days, Sunday (index 0) through Saturday.
type Week [7]time.Time

// Sunday returns the first day of the week.
func (w Week) Sunday() time.Time { return w[0] }

// Saturday returns the last day of the week.
func (w Week) Saturday() time.Time { return w[6] }

// DayKey canonicalizes an instant to its local calendar date, YYYY-MM-DD.
// The same normalization is used everywhere a day key is produced, so
// completion maps, exports, and display grids always agree.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// Today returns the day key for the current instant.
func Today(now time.Time) string {
	return DayKey(now)
}

// ParseDayKey parses a canonical day key back into a date (local midnight).
func ParseDayKey(key string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, key, time.Local)
}

// WeekOf returns the week containing t: the Sunday on or before t through
// the following Saturday. Defined for any input; never fails.
func WeekOf(t time.Time) Week {
	sunday := t.AddDate(0, 0, -int(t.Weekday()))
	var week Week
	for i := 0; i < 7; i++ {
		week[i] = sunday.AddDate(0, 0, i)
	}
	return week
}

// Window produces numWeeks weeks ordered most-recent-first: index 0 is the
// week containing anchor, and each later index is exactly one week older.
// A non-positive numWeeks yields an empty window.
func Window(anchor time.Time, numWeeks int) []Week {
	if numWeeks <= 0 {
		return nil
	}
	weeks := make([]Week, 0, numWeeks)
	for i := 0; i < numWeeks; i++ {
		weeks = append(weeks, WeekOf(anchor.AddDate(0, 0, -7*i)))
	}
	return weeks
}

// ShortDayName returns the three-letter weekday name (Sun..Sat) for t.
func ShortDayName(t time.Time) string {
	return t.Weekday().String()[:3]
}

// IsToday reports whether t falls on the same local calendar date as now.
func IsToday(t, now time.Time) bool {
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	return ty == ny && tm == nm && td == nd
}
