package domain

import (
	"errors"
	"testing"
	"time"
)

func mustLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	location, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("failed to load location %s: %v", name, err)
	}
	return location
}

// TestTargetDateBeforeCutoffReturnsToday tests that every hour before 13:00 maps to today
func TestTargetDateBeforeCutoffReturnsToday(t *testing.T) {
	la := mustLocation(t, "America/Los_Angeles")

	for hour := 0; hour < 13; hour++ {
		now := time.Date(2024, time.March, 5, hour, 30, 0, 0, la)
		got, err := TargetDate(now, "America/Los_Angeles", 13)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if got != "2024-03-05" {
			t.Errorf("hour %d: expected 2024-03-05, got %s", hour, got)
		}
	}
}

// TestTargetDateFromCutoffReturnsTomorrow tests that 13:00 onwards maps to tomorrow
func TestTargetDateFromCutoffReturnsTomorrow(t *testing.T) {
	la := mustLocation(t, "America/Los_Angeles")

	for hour := 13; hour < 24; hour++ {
		now := time.Date(2024, time.March, 5, hour, 0, 0, 0, la)
		got, err := TargetDate(now, "America/Los_Angeles", 13)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if got != "2024-03-06" {
			t.Errorf("hour %d: expected 2024-03-06, got %s", hour, got)
		}
	}
}

// TestTargetDateUsesLocalCalendarNotUTC tests instants whose UTC date differs from the local date
func TestTargetDateUsesLocalCalendarNotUTC(t *testing.T) {
	// 2024-03-06 02:00 UTC is 2024-03-05 18:00 in Los Angeles: after cutoff, so tomorrow is the 6th.
	now := time.Date(2024, time.March, 6, 2, 0, 0, 0, time.UTC)
	got, err := TargetDate(now, "America/Los_Angeles", 13)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got != "2024-03-06" {
		t.Errorf("expected 2024-03-06, got %s", got)
	}

	// 2024-03-05 20:00 UTC is 2024-03-06 05:00 in Tokyo: before cutoff, so today is the 6th.
	now = time.Date(2024, time.March, 5, 20, 0, 0, 0, time.UTC)
	got, err = TargetDate(now, "Asia/Tokyo", 13)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got != "2024-03-06" {
		t.Errorf("expected 2024-03-06, got %s", got)
	}
}

// TestTargetDateRollsOverMonthAndYear tests day increment across month and year boundaries
func TestTargetDateRollsOverMonthAndYear(t *testing.T) {
	la := mustLocation(t, "America/Los_Angeles")

	tests := []struct {
		now      time.Time
		expected string
	}{
		{time.Date(2024, time.February, 29, 14, 0, 0, 0, la), "2024-03-01"},
		{time.Date(2024, time.December, 31, 23, 59, 0, 0, la), "2025-01-01"},
		// DST starts 2024-03-10 in Los Angeles; the day is still added on the calendar.
		{time.Date(2024, time.March, 9, 23, 30, 0, 0, la), "2024-03-10"},
	}

	for _, tt := range tests {
		got, err := TargetDate(tt.now, "America/Los_Angeles", 13)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if got != tt.expected {
			t.Errorf("for %v expected %s, got %s", tt.now, tt.expected, got)
		}
	}
}

// TestTargetDateEmptyTimezoneUsesDefault tests the documented default timezone
func TestTargetDateEmptyTimezoneUsesDefault(t *testing.T) {
	now := time.Date(2024, time.March, 6, 2, 0, 0, 0, time.UTC)

	got, err := TargetDate(now, "", 13)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	want, _ := TargetDate(now, DefaultTimezone, 13)
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

// TestTargetDateInvalidTimezoneReturnsConfigError tests that unknown zones are not replaced by UTC
func TestTargetDateInvalidTimezoneReturnsConfigError(t *testing.T) {
	_, err := TargetDate(time.Now(), "Mars/Olympus_Mons", 13)
	if err == nil {
		t.Fatal("expected error for invalid timezone, got nil")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got: %v", err)
	}
}
