package clock

import "time"

// Func returns the current instant. Services take one so tests can pin time.
type Func func() time.Time

func System() time.Time {
	return time.Now().UTC()
}

// DateOf returns the civil date of t in loc as midnight UTC.
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date normalises a date value to midnight UTC, dropping any clock component.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func IsMonday(date time.Time) bool {
	return date.Weekday() == time.Monday
}

// StartOfWeek returns the Monday on or before date.
func StartOfWeek(date time.Time) time.Time {
	date = Date(date)
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}

// WeekDays returns the seven dates starting at weekStart.
func WeekDays(weekStart time.Time) []time.Time {
	weekStart = Date(weekStart)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = weekStart.AddDate(0, 0, i)
	}
	return days
}

const DateLayout = "2006-01-02"
