// Package rotation derives the weekly rotation boundary: the ISO week key
// that scopes regattas and tide omens, and the deterministic per-week
// selector both features draw from.
package rotation

import (
	"fmt"
	"time"
)

// CurrentKey returns the week key for the current instant in UTC.
func CurrentKey() string {
	return KeyAt(time.Now())
}

// KeyAt returns the ISO-8601 week key (YYYY-Www) for t. The ISO
// week-numbering year is used, not the calendar year, so dates around New
// Year resolve to the week that contains their Thursday.
func KeyAt(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// WeekEnd returns the upcoming Monday 00:00 UTC strictly after t. When t is
// exactly Monday 00:00 the boundary is the following Monday, a full 7-day
// window.
func WeekEnd(t time.Time) time.Time {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	fromMonday := (int(t.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, 7-fromMonday)
}
