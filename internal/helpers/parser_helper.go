package helpers

import (
	"fmt"
	"strconv"
	"time"
)

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// ParseSchedule converts either schedule representation into the canonical
// start/end timestamp pair. Clients send RFC3339 start_time/end_time, or
// the older date (2006-01-02) plus start_at/end_at (15:04) trio.
func ParseSchedule(startTime, endTime, date, startAt, endAt string) (time.Time, time.Time, error) {
	if startTime != "" || endTime != "" {
		start, err := time.Parse(time.RFC3339, startTime)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start_time: %v", err)
		}
		end, err := time.Parse(time.RFC3339, endTime)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end_time: %v", err)
		}
		return start, end, nil
	}

	if date == "" || startAt == "" || endAt == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("either start_time/end_time or date with start_at/end_at is required")
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date: %v", err)
	}
	start, err := atOnDay(day, startAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_at: %v", err)
	}
	end, err := atOnDay(day, endAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_at: %v", err)
	}
	// A time range ending at or before its start wraps past midnight.
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return start, end, nil
}

func atOnDay(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}
