package model

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
)

// QueryEntry is the interpolated activity of one nuclide at the query time
type QueryEntry struct {
	Nuclide    string  `json:"nuclide"`
	Activity   float64 `json:"activity"`
	Percentage float64 `json:"percentage"` // share of the total in percent, NaN if the total is zero
}

// PercentageDefined reports whether the share could be computed
func (e QueryEntry) PercentageDefined() bool {
	return !math.IsNaN(e.Percentage)
}

// MarshalJSON writes an undefined percentage as null, JSON has no NaN
func (e QueryEntry) MarshalJSON() ([]byte, error) {
	var percentage *float64
	if e.PercentageDefined() {
		percentage = &e.Percentage
	}
	return json.Marshal(struct {
		Nuclide    string   `json:"nuclide"`
		Activity   float64  `json:"activity"`
		Percentage *float64 `json:"percentage"`
	}{e.Nuclide, e.Activity, percentage})
}

// QueryResult holds the activities of a series at one point in time
type QueryResult struct {
	Time        float64      `json:"time"`         // requested time
	ClampedTime float64      `json:"clamped_time"` // time actually evaluated
	Clamped     bool         `json:"clamped"`
	Entries     []QueryEntry `json:"entries"`
	Total       float64      `json:"total"`
}

// Entry returns the entry for nuclide
func (r *QueryResult) Entry(nuclide string) (QueryEntry, bool) {
	for _, e := range r.Entries {
		if e.Nuclide == nuclide {
			return e, true
		}
	}
	return QueryEntry{}, false
}

// CurveResult is everything one computation produces
type CurveResult struct {
	ID           uuid.UUID          `json:"id"`
	Chain        NuclideChain       `json:"chain"`
	TimeUnit     TimeUnit           `json:"time_unit"`
	ActivityUnit ActivityUnit       `json:"activity_unit"`
	HalfLives    map[string]float64 `json:"half_lives"` // in TimeUnit
	MaxSpan      float64            `json:"max_span"`
	MeasuredAt   time.Time          `json:"measured_at"`
	TargetAt     *time.Time         `json:"target_at,omitempty"`
	Elapsed      float64            `json:"elapsed"`
	Series       *DecayTimeSeries   `json:"series"`
	Query        *QueryResult       `json:"query"`
}
