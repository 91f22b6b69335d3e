package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

var (
	windowPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitMap       = map[string]time.Duration{
		"m":       time.Minute,
		"min":     time.Minute,
		"mins":    time.Minute,
		"minute":  time.Minute,
		"minutes": time.Minute,
		"h":       time.Hour,
		"hr":      time.Hour,
		"hrs":     time.Hour,
		"hour":    time.Hour,
		"hours":   time.Hour,
		"d":       day,
		"day":     day,
		"days":    day,
		"w":       week,
		"wk":      week,
		"wks":     week,
		"week":    week,
		"weeks":   week,
	}
)

// ParseWindow parses a relative offset such as "45m", "3d" or "1w2d6h" and
// returns the duration with its compact form. Seconds are not accepted since
// due times and reminders are minute resolution.
func ParseWindow(input string) (time.Duration, string, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, "", fmt.Errorf("empty duration")
	}

	total := time.Duration(0)
	for len(remaining) > 0 {
		matches := windowPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, "", fmt.Errorf("invalid duration segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid duration value %q: %w", matches[1], err)
		}
		base, ok := unitMap[matches[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported duration unit %q", matches[2])
		}
		total += time.Duration(value) * base
		remaining = remaining[len(matches[0]):]
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("duration must be greater than zero")
	}
	return total, FormatWindow(total), nil
}

// FormatWindow renders a duration with w/d/h/m tokens, dropping seconds.
func FormatWindow(d time.Duration) string {
	if d < time.Minute {
		return "0m"
	}

	units := []struct {
		label string
		value time.Duration
	}{
		{"w", week},
		{"d", day},
		{"h", time.Hour},
		{"m", time.Minute},
	}

	var b strings.Builder
	remaining := d
	for _, u := range units {
		if remaining < u.value {
			continue
		}
		count := remaining / u.value
		remaining -= count * u.value
		fmt.Fprintf(&b, "%d%s", count, u.label)
	}
	return b.String()
}
