package domain

import (
	"fmt"
	"time"
)

const (
	DatetimeLayout = "2006-01-02T15:04:05Z"
	OnlyDate       = "2006-01-02"

	// DefaultTimezone is used only when no timezone is configured at all
	DefaultTimezone = "America/Los_Angeles"
	// DefaultCutoffHour is the local hour from which tomorrow's lunch is shown
	DefaultCutoffHour = 13
)

// LoadLocation resolves a timezone name, falling back to DefaultTimezone when empty.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidConfig, name)
	}
	return location, nil
}

// TargetDate returns the lunch date to look up as YYYY-MM-DD: today in the given
// timezone, or tomorrow once the local hour reaches cutoffHour. The day is added on
// the local calendar so midnight in UTC does not shift the result.
func TargetDate(now time.Time, timezone string, cutoffHour int) (string, error) {
	location, err := LoadLocation(timezone)
	if err != nil {
		return "", err
	}
	if cutoffHour <= 0 || cutoffHour > 23 {
		cutoffHour = DefaultCutoffHour
	}
	local := now.In(location)
	y, m, d := local.Date()
	if local.Hour() >= cutoffHour {
		d++
	}
	return time.Date(y, m, d, 0, 0, 0, 0, location).Format(OnlyDate), nil
}
