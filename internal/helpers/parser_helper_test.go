package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScheduleTimestampPair(t *testing.T) {
	start, end, err := ParseSchedule("2026-10-01T18:00:00Z", "2026-10-01T21:00:00Z", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 10, 1, 21, 0, 0, 0, time.UTC), end)
}

func TestParseScheduleDateWithRange(t *testing.T) {
	start, end, err := ParseSchedule("", "", "2026-10-01", "19:00", "23:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 1, 19, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 10, 1, 23, 30, 0, 0, time.UTC), end)
}

func TestParseScheduleRangeWrapsMidnight(t *testing.T) {
	start, end, err := ParseSchedule("", "", "2026-10-01", "22:00", "02:00")
	require.NoError(t, err)
	assert.True(t, end.After(start))
	assert.Equal(t, 1, end.Day()-start.Day())
	assert.Equal(t, 2, end.Hour())
}

func TestParseScheduleErrors(t *testing.T) {
	cases := []struct {
		name                                   string
		startTime, endTime, date, startAt, endAt string
	}{
		{"nothing provided", "", "", "", "", ""},
		{"bad start_time", "yesterday", "2026-10-01T21:00:00Z", "", "", ""},
		{"bad end_time", "2026-10-01T18:00:00Z", "later", "", "", ""},
		{"date without range", "", "", "2026-10-01", "", ""},
		{"bad date", "", "", "01-10-2026", "19:00", "23:00"},
		{"bad clock", "", "", "2026-10-01", "7pm", "23:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseSchedule(tc.startTime, tc.endTime, tc.date, tc.startAt, tc.endAt)
			assert.Error(t, err)
		})
	}
}
