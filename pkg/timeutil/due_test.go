package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDue(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)
	now := time.Date(2026, time.October, 19, 8, 0, 0, 0, loc)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2026-10-21 14:00", time.Date(2026, time.October, 21, 14, 0, 0, 0, loc)},
		{"2026-10-21T14:30", time.Date(2026, time.October, 21, 14, 30, 0, 0, loc)},
		{"2026-10-21", time.Date(2026, time.October, 21, 23, 59, 0, 0, loc)},
		{"2026-10-21T14:00:00Z", time.Date(2026, time.October, 21, 14, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseDue(tt.in, now)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: want %s got %s", tt.in, tt.want, got)
	}
}

func TestParseDueInvalid(t *testing.T) {
	for _, in := range []string{"", "tomorrow", "21/10/2026"} {
		_, err := ParseDue(in, time.Now())
		assert.Error(t, err, in)
	}
}

func TestFormatDueYearFollowsNow(t *testing.T) {
	due := time.Date(2026, time.October, 19, 14, 0, 0, 0, time.Local)

	assert.Equal(t, due.Format(layoutDue), FormatDue(due, due.Add(-time.Hour)))
	assert.Equal(t, due.Format(layoutDueYear), FormatDue(due, due.AddDate(1, 0, 0)))
}
