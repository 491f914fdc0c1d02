package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocalRoundTrip(t *testing.T) {
	dates := []string{
		"2024-01-01",
		"2024-02-29", // leap day
		"2024-12-31",
		"2025-06-15",
	}

	for _, s := range dates {
		parsed, err := ParseLocal(s)
		require.NoError(t, err)
		assert.Equal(t, s, Format(parsed), "round trip should be identity")
		assert.Equal(t, time.Local, parsed.Location(), "must parse as local date, not UTC")
	}
}

func TestParseLocalInvalid(t *testing.T) {
	for _, s := range []string{"", "not-a-date", "2024-13-01", "01/02/2024"} {
		_, err := ParseLocal(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestTomorrowAcrossBoundaries(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-10", "2024-03-11"},
		{"2024-01-31", "2024-02-01"}, // month boundary
		{"2024-02-28", "2024-02-29"}, // leap year
		{"2024-12-31", "2025-01-01"}, // year boundary
	}

	for _, tt := range tests {
		got, err := Tomorrow(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestYesterdayAcrossBoundaries(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-11", "2024-03-10"},
		{"2024-03-01", "2024-02-29"}, // leap year
		{"2025-01-01", "2024-12-31"}, // year boundary
	}

	for _, tt := range tests {
		got, err := Yesterday(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestYesterdayTomorrowInverse(t *testing.T) {
	got, err := Tomorrow("2024-12-31")
	require.NoError(t, err)
	back, err := Yesterday(got)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", back)
}

func TestDayWindow(t *testing.T) {
	day, err := ParseLocal("2024-06-15")
	require.NoError(t, err)

	start, end := DayWindow(day)

	assert.Equal(t, "2024-06-15", Format(start))
	assert.Equal(t, "2024-06-15", Format(end), "end must remain inside the same day")
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, int64(24*60*60*1000-1), end.UnixMilli()-start.UnixMilli())
}

func TestDayWindowDSTTransitions(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name  string
		day   time.Time
		hours time.Duration
	}{
		{"spring forward, 23h day", time.Date(2025, 3, 9, 12, 0, 0, 0, loc), 23 * time.Hour},
		{"fall back, 25h day", time.Date(2025, 11, 2, 12, 0, 0, 0, loc), 25 * time.Hour},
		{"ordinary day", time.Date(2025, 7, 1, 12, 0, 0, 0, loc), 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := DayWindow(tt.day)

			// The window must cover the whole calendar day and nothing more,
			// whatever its wall-clock length.
			assert.Equal(t, tt.day.Format(Layout), start.In(loc).Format(Layout))
			assert.Equal(t, tt.day.Format(Layout), end.In(loc).Format(Layout), "end must remain inside the same day")
			assert.Equal(t, 0, start.In(loc).Hour())
			assert.Equal(t, 23, end.In(loc).Hour())
			assert.Equal(t, tt.hours-time.Millisecond, end.Sub(start))
		})
	}
}
