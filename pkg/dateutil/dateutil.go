// Package dateutil computes journal dates in the configured timezone.
// A "journal day" follows the user's wall clock (America/New_York by
// default), not UTC, and weeks start on Monday.
package dateutil

import "time"

// DateLayout is the wire and storage format for journal dates.
const DateLayout = "2006-01-02"

// LogDate formats t as a YYYY-MM-DD journal date in loc.
func LogDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// DayName returns the schedule day name ("Monday".."Sunday") for t in loc.
func DayName(t time.Time, loc *time.Location) string {
	return t.In(loc).Weekday().String()
}

// Hour returns the wall-clock hour (0-23) of t in loc.
func Hour(t time.Time, loc *time.Location) int {
	return t.In(loc).Hour()
}

// WeekRange returns the Monday and Sunday journal dates of the week
// containing t, evaluated in loc.
func WeekRange(t time.Time, loc *time.Location) (start, end string) {
	local := t.In(loc)
	offset := (int(local.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	monday := local.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format(DateLayout), sunday.Format(DateLayout)
}
