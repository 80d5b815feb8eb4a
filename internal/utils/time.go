package utils

import (
	"fmt"
	"time"

	"habbit/internal/constants"
)

// StartOfDay strips the time-of-day component, keeping the location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayString formats a time as a YYYY-MM-DD calendar-day string.
func DayString(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDay parses a YYYY-MM-DD string into a time at midnight local time.
func ParseDay(day string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, day, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
	}
	return t, nil
}

// StartOfWeek returns the Monday at the start of the week containing t,
// normalized to midnight.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	// time.Weekday counts Sunday as 0; shift so Monday is the first day.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekDays returns the 7 consecutive days (Monday..Sunday) of the week that
// is offset weeks from the week containing t.
func WeekDays(t time.Time, offset int) []time.Time {
	monday := StartOfWeek(t).AddDate(0, 0, offset*7)
	days := make([]time.Time, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, monday.AddDate(0, 0, i))
	}
	return days
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// CorrespondingDay returns the day in week sharing the weekday of date, or
// the first day of week when no match exists. An empty week returns date
// unchanged.
func CorrespondingDay(week []time.Time, date time.Time) time.Time {
	for _, d := range week {
		if d.Weekday() == date.Weekday() {
			return StartOfDay(d)
		}
	}
	if len(week) > 0 {
		return StartOfDay(week[0])
	}
	return date
}
