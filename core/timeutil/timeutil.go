package timeutil

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/siherrmann/decayer/model"
)

// ErrInvalidFormat is returned for clock times that are not 24-hour "HH:MM"
// and dates that are not "YYYY-MM-DD"
var ErrInvalidFormat = errors.New("invalid format")

const (
	clockLayout = "15:04"
	dateLayout  = "2006-01-02"
)

// TimeOfDay is a wall clock time with minute resolution
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseClockTime parses a 24-hour "HH:MM" clock time.
// "12:00" is noon; "25:00", "12:60", "noon" and "12:00:00" fail with ErrInvalidFormat.
func ParseClockTime(text string) (TimeOfDay, error) {
	parsed, err := time.Parse(clockLayout, strings.TrimSpace(text))
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: clock time %q must be HH:MM", ErrInvalidFormat, text)
	}
	return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

// ParseDate parses a "YYYY-MM-DD" calendar date at midnight UTC
func ParseDate(text string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidFormat, text)
	}
	return parsed, nil
}

// Combine places tod on the calendar day of date. The location of date is
// kept as is; no timezone conversion happens.
func Combine(date time.Time, tod TimeOfDay) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), tod.Hour, tod.Minute, 0, 0, date.Location())
}

// ElapsedBetween returns |t1 - t0| expressed in unit.
// It is symmetric in t0 and t1.
func ElapsedBetween(t0, t1 time.Time, unit model.TimeUnit) (float64, error) {
	seconds := math.Abs(t1.Sub(t0).Seconds())
	return unit.FromSeconds(seconds)
}
