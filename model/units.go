package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// ErrUnknownUnit is returned for time or activity units outside the fixed tables
var ErrUnknownUnit = errors.New("unknown unit")

// TimeUnit is the unit elapsed times and half-lives are expressed in
type TimeUnit string

const (
	TimeUnitDay    TimeUnit = "d"
	TimeUnitHour   TimeUnit = "h"
	TimeUnitMinute TimeUnit = "m"
	TimeUnitSecond TimeUnit = "s"
)

// SecondsPerYear is the Julian year used for catalog half-lives given in years
const SecondsPerYear = 365.2422 * 86400

var timeUnitSeconds = map[TimeUnit]float64{
	TimeUnitDay:    86400,
	TimeUnitHour:   3600,
	TimeUnitMinute: 60,
	TimeUnitSecond: 1,
}

var timeUnitAliases = map[string]TimeUnit{
	"d": TimeUnitDay, "day": TimeUnitDay, "days": TimeUnitDay,
	"h": TimeUnitHour, "hour": TimeUnitHour, "hours": TimeUnitHour,
	"m": TimeUnitMinute, "min": TimeUnitMinute, "minute": TimeUnitMinute, "minutes": TimeUnitMinute,
	"s": TimeUnitSecond, "sec": TimeUnitSecond, "second": TimeUnitSecond, "seconds": TimeUnitSecond,
}

// TimeUnits lists the supported time units, longest first
func TimeUnits() []TimeUnit {
	return []TimeUnit{TimeUnitDay, TimeUnitHour, TimeUnitMinute, TimeUnitSecond}
}

// ParseTimeUnit accepts d/h/m/s and their long names
func ParseTimeUnit(s string) (TimeUnit, error) {
	u, ok := timeUnitAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: time unit %q", ErrUnknownUnit, s)
	}
	return u, nil
}

// Valid reports whether u is one of d/h/m/s
func (u TimeUnit) Valid() bool {
	_, ok := timeUnitSeconds[u]
	return ok
}

// Seconds returns the length of one u in seconds, 0 for an unknown unit
func (u TimeUnit) Seconds() float64 {
	return timeUnitSeconds[u]
}

// FromSeconds converts a duration in seconds to u
func (u TimeUnit) FromSeconds(seconds float64) (float64, error) {
	factor, ok := timeUnitSeconds[u]
	if !ok {
		return 0, fmt.Errorf("%w: time unit %q", ErrUnknownUnit, string(u))
	}
	return seconds / factor, nil
}

// ActivityUnit is the unit activities are expressed in
type ActivityUnit string

const (
	ActivityUnitMicroCurie ActivityUnit = "µCi"
	ActivityUnitMilliCurie ActivityUnit = "mCi"
	ActivityUnitCurie      ActivityUnit = "Ci"
	ActivityUnitBecquerel  ActivityUnit = "Bq"
	ActivityUnitKiloBq     ActivityUnit = "kBq"
	ActivityUnitMegaBq     ActivityUnit = "MBq"
)

var activityUnitBecquerels = map[ActivityUnit]float64{
	ActivityUnitMicroCurie: 3.7e4,
	ActivityUnitMilliCurie: 3.7e7,
	ActivityUnitCurie:      3.7e10,
	ActivityUnitBecquerel:  1,
	ActivityUnitKiloBq:     1e3,
	ActivityUnitMegaBq:     1e6,
}

// ActivityUnits lists the supported activity units in selector order
func ActivityUnits() []ActivityUnit {
	return []ActivityUnit{
		ActivityUnitMicroCurie,
		ActivityUnitMilliCurie,
		ActivityUnitCurie,
		ActivityUnitBecquerel,
		ActivityUnitKiloBq,
		ActivityUnitMegaBq,
	}
}

// ParseActivityUnit matches the unit symbol exactly; "uCi" is accepted for µCi.
// Case matters since mCi and MBq differ only by prefix.
func ParseActivityUnit(s string) (ActivityUnit, error) {
	s = strings.TrimSpace(s)
	if s == "uCi" {
		return ActivityUnitMicroCurie, nil
	}
	u := ActivityUnit(s)
	if !lo.Contains(ActivityUnits(), u) {
		return "", fmt.Errorf("%w: activity unit %q", ErrUnknownUnit, s)
	}
	return u, nil
}

// Valid reports whether u is a supported activity unit
func (u ActivityUnit) Valid() bool {
	_, ok := activityUnitBecquerels[u]
	return ok
}

// Becquerels returns the number of Bq in one u, 0 for an unknown unit
func (u ActivityUnit) Becquerels() float64 {
	return activityUnitBecquerels[u]
}

// Convert expresses value (in u) in the unit to
func (u ActivityUnit) Convert(value float64, to ActivityUnit) (float64, error) {
	from, ok := activityUnitBecquerels[u]
	if !ok {
		return 0, fmt.Errorf("%w: activity unit %q", ErrUnknownUnit, string(u))
	}
	target, ok := activityUnitBecquerels[to]
	if !ok {
		return 0, fmt.Errorf("%w: activity unit %q", ErrUnknownUnit, string(to))
	}
	return value * from / target, nil
}
