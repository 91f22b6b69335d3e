// Package timeutil holds the pure time helpers behind due dates, reminders and
// the weekly timeline. Callers always pass the current time explicitly.
package timeutil

import (
	"math"
	"time"
)

// Range is an inclusive span of time.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the range, both ends inclusive.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Days returns the midnight of every calendar day starting at r.Start, up to
// and including the day holding r.End.
func (r Range) Days() []time.Time {
	days := make([]time.Time, 0, 7)
	for d := StartOfDay(r.Start); !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// StartOfDay truncates t to local midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekRange returns Monday 00:00:00.000 through Sunday 23:59:59.999 of the
// week holding now, shifted by offset whole weeks. Positive offsets move into
// the future.
func WeekRange(offset int, now time.Time) Range {
	// time.Weekday is Sunday=0; shift so Monday=0 .. Sunday=6.
	mon0 := (int(now.Weekday()) + 6) % 7
	start := StartOfDay(now).AddDate(0, 0, offset*7-mon0)
	end := start.AddDate(0, 0, 7).Add(-time.Millisecond)
	return Range{Start: start, End: end}
}

// MinutesUntil returns the signed number of whole minutes from now to
// instant, rounding halves up.
func MinutesUntil(instant, now time.Time) int {
	mins := float64(instant.Sub(now)) / float64(time.Minute)
	return int(math.Floor(mins + 0.5))
}
