package schedule

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRange is returned by every range-taking operation when the start
// date falls after the end date.
var ErrInvalidRange = errors.New("start date may not be after end date")

// StartOfDay truncates a time to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of the calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// SameCalendarDay reports whether two instants fall on the same calendar day.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// EnumerateDays returns every calendar day from start to end inclusive,
// ascending. A range whose start is after its end is an error, not an empty
// sequence.
func EnumerateDays(start, end time.Time) ([]time.Time, error) {
	start = StartOfDay(start)
	end = StartOfDay(end)
	if start.After(end) {
		return nil, ErrInvalidRange
	}

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, nil
}

// ComposeShiftInstants builds the start and end instants of a shift on the
// given day from wall-clock times of day ("HH:mm"). If the end time of day is
// earlier than the start time of day the shift crosses midnight and the end
// instant lands on the following calendar day.
func ComposeShiftInstants(day time.Time, startTime, endTime string) (time.Time, time.Time, error) {
	sh, sm, err := parseClock(startTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	eh, em, err := parseClock(endTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), sh, sm, 0, 0, day.Location())

	endDay := day
	if eh < sh || (eh == sh && em < sm) {
		endDay = day.AddDate(0, 0, 1)
	}
	end := time.Date(endDay.Year(), endDay.Month(), endDay.Day(), eh, em, 0, 0, day.Location())

	return start, end, nil
}

// parseClock parses an "HH:mm" time of day.
func parseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}
