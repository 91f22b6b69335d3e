package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02 15:04"
	layoutDateT    = "2006-01-02T15:04"
	layoutDue      = "Mon 02 Jan 15:04"
	layoutDueYear  = "Mon 02 Jan 2006 15:04"
)

// ParseDue reads a due time typed by a user. A bare date means the end of
// that day. Values without a zone are read in now's location.
func ParseDue(v string, now time.Time) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, fmt.Errorf("empty due time")
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	loc := now.Location()
	for _, layout := range []string{layoutDateTime, layoutDateT} {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t, nil
		}
	}
	t, err := time.ParseInLocation(layoutDate, v, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized due time %q, use %q or RFC3339", v, layoutDateTime)
	}
	return t.Add(23*time.Hour + 59*time.Minute), nil
}

// FormatDue renders an instant in local time for listings and reminder
// bodies. The year is only shown when it differs from now's year.
func FormatDue(t, now time.Time) string {
	local := t.Local()
	if local.Year() != now.Local().Year() {
		return local.Format(layoutDueYear)
	}
	return local.Format(layoutDue)
}
