package options

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/studyplan/pkg/timeutil"
)

// ParseMinutes reads a plain number of minutes ("90") or a window such as
// "1h30m" or "2d".
func ParseMinutes(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	d, _, err := timeutil.ParseWindow(s)
	if err != nil {
		return 0, fmt.Errorf("invalid minutes %q: %w", s, err)
	}
	return int(d / time.Minute), nil
}
