package utils

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	in := time.Date(2024, 3, 15, 17, 42, 9, 123, time.Local)
	got := StartOfDay(in)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("expected midnight, got %v", got)
	}
	if !SameDay(in, got) {
		t.Errorf("day changed: %v -> %v", in, got)
	}
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"wednesday", time.Date(2024, 3, 13, 12, 0, 0, 0, time.Local), "2024-03-11"},
		{"monday itself", time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local), "2024-03-11"},
		{"sunday maps to preceding monday", time.Date(2024, 3, 17, 23, 59, 0, 0, time.Local), "2024-03-11"},
		{"across month boundary", time.Date(2024, 5, 1, 8, 0, 0, 0, time.Local), "2024-04-29"},
		{"across year boundary", time.Date(2025, 1, 1, 8, 0, 0, 0, time.Local), "2024-12-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StartOfWeek(tt.in)
			if DayString(got) != tt.want {
				t.Errorf("StartOfWeek(%v) = %s, want %s", tt.in, DayString(got), tt.want)
			}
			if got.Weekday() != time.Monday {
				t.Errorf("StartOfWeek(%v) is a %v, want Monday", tt.in, got.Weekday())
			}
		})
	}
}

func TestWeekDays(t *testing.T) {
	base := time.Date(2024, 3, 13, 12, 0, 0, 0, time.Local)

	for offset := -3; offset <= 3; offset++ {
		week := WeekDays(base, offset)
		if len(week) != 7 {
			t.Fatalf("offset %d: expected 7 days, got %d", offset, len(week))
		}
		if week[0].Weekday() != time.Monday {
			t.Errorf("offset %d: week starts on %v, want Monday", offset, week[0].Weekday())
		}
		for i := 1; i < 7; i++ {
			if diff := week[i].Sub(week[i-1]); diff != 24*time.Hour {
				t.Errorf("offset %d: gap between day %d and %d is %v", offset, i-1, i, diff)
			}
		}
	}

	// Consecutive offsets begin exactly 7 days apart.
	a := WeekDays(base, 0)
	b := WeekDays(base, 1)
	if diff := b[0].Sub(a[0]); diff != 7*24*time.Hour {
		t.Errorf("week offset step = %v, want 168h", diff)
	}
}

func TestCorrespondingDay(t *testing.T) {
	base := time.Date(2024, 3, 13, 0, 0, 0, 0, time.Local) // a Wednesday
	prev := WeekDays(base, -1)

	got := CorrespondingDay(prev, base)
	if got.Weekday() != time.Wednesday {
		t.Errorf("expected Wednesday, got %v", got.Weekday())
	}
	if DayString(got) != "2024-03-06" {
		t.Errorf("expected 2024-03-06, got %s", DayString(got))
	}

	// Empty week falls back to the date itself.
	if got := CorrespondingDay(nil, base); !got.Equal(base) {
		t.Errorf("empty week: expected %v, got %v", base, got)
	}
}

func TestParseDayRoundTrip(t *testing.T) {
	day, err := ParseDay("2024-06-01")
	if err != nil {
		t.Fatalf("failed to parse day: %v", err)
	}
	if DayString(day) != "2024-06-01" {
		t.Errorf("round trip mismatch: %s", DayString(day))
	}

	if _, err := ParseDay("06/01/2024"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}
