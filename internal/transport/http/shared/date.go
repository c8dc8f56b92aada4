package shared

import (
	"strings"
	"time"

	"timeclock/internal/platform/clock"
)

// ParseDate accepts YYYY-MM-DD or RFC3339 and returns the civil date.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(clock.DateLayout, value); err == nil {
		return clock.Date(parsed), nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return clock.Date(parsed), nil
}
