package schedule

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// ShiftTime is a wall-clock time of day stored as minutes since midnight.
type ShiftTime int

const minutesPerDay = 24 * 60

func NewShiftTime(hour, minute int) (ShiftTime, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrInvalidTime, hour, minute)
	}
	return ShiftTime(hour*60 + minute), nil
}

// ParseShiftTime accepts "HH:MM" and "HH:MM:SS"; seconds are dropped.
func ParseShiftTime(value string) (ShiftTime, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return NewShiftTime(parsed.Hour(), parsed.Minute())
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
}

func (t ShiftTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t ShiftTime) Valid() bool {
	return t >= 0 && t < minutesPerDay
}

// HoursUntil returns end - t in hours, rounded to four places.
func (t ShiftTime) HoursUntil(end ShiftTime) decimal.Decimal {
	return decimal.NewFromInt(int64(end - t)).DivRound(decimal.NewFromInt(60), 4)
}

func (t ShiftTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ShiftTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseShiftTime(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t ShiftTime) PGTime() pgtype.Time {
	return pgtype.Time{Microseconds: int64(t) * int64(time.Minute/time.Microsecond), Valid: true}
}

func ShiftTimeFromPG(value pgtype.Time) ShiftTime {
	return ShiftTime(value.Microseconds / int64(time.Minute/time.Microsecond))
}
