package model

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	// ErrInvalidSeries is returned when a time series breaks its invariants
	ErrInvalidSeries = errors.New("invalid decay time series")
	// ErrMissingNuclide is returned when a series has no column for a nuclide
	ErrMissingNuclide = errors.New("nuclide missing from series")
)

// ActivitySample is one row of a series: the activity of every nuclide at Time
type ActivitySample struct {
	Time       float64            `json:"time"`
	Activities map[string]float64 `json:"activities"`
}

// DecayTimeSeries is a sampled activity-vs-time table.
// Times start at 0 and are strictly increasing; every nuclide column has one
// value per time. A series is never modified after NewDecayTimeSeries.
type DecayTimeSeries struct {
	TimeUnit     TimeUnit             `json:"time_unit"`
	ActivityUnit ActivityUnit         `json:"activity_unit"`
	Nuclides     []string             `json:"nuclides"`
	Times        []float64            `json:"times"`
	Activities   map[string][]float64 `json:"activities"`
}

// NewDecayTimeSeries copies the given columns into a validated series
func NewDecayTimeSeries(timeUnit TimeUnit, activityUnit ActivityUnit, nuclides []string, times []float64, activities map[string][]float64) (*DecayTimeSeries, error) {
	s := &DecayTimeSeries{
		TimeUnit:     timeUnit,
		ActivityUnit: activityUnit,
		Nuclides:     slices.Clone(nuclides),
		Times:        slices.Clone(times),
		Activities:   make(map[string][]float64, len(nuclides)),
	}
	for _, n := range nuclides {
		s.Activities[n] = slices.Clone(activities[n])
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the series invariants
func (s *DecayTimeSeries) Validate() error {
	if !s.TimeUnit.Valid() {
		return fmt.Errorf("%w: %w: time unit %q", ErrInvalidSeries, ErrUnknownUnit, string(s.TimeUnit))
	}
	if !s.ActivityUnit.Valid() {
		return fmt.Errorf("%w: %w: activity unit %q", ErrInvalidSeries, ErrUnknownUnit, string(s.ActivityUnit))
	}
	if len(s.Nuclides) == 0 {
		return fmt.Errorf("%w: no nuclide columns", ErrInvalidSeries)
	}
	if len(s.Times) == 0 {
		return fmt.Errorf("%w: no samples", ErrInvalidSeries)
	}
	if s.Times[0] < 0 {
		return fmt.Errorf("%w: negative start time %v", ErrInvalidSeries, s.Times[0])
	}
	for i := 1; i < len(s.Times); i++ {
		if !(s.Times[i] > s.Times[i-1]) {
			return fmt.Errorf("%w: times not strictly increasing at index %d", ErrInvalidSeries, i)
		}
	}

	for _, n := range s.Nuclides {
		column, ok := s.Activities[n]
		if !ok {
			return fmt.Errorf("%w: %w: %s", ErrInvalidSeries, ErrMissingNuclide, n)
		}
		if len(column) != len(s.Times) {
			return fmt.Errorf("%w: column %s has %d values for %d times", ErrInvalidSeries, n, len(column), len(s.Times))
		}
		for i, a := range column {
			if a < 0 || math.IsNaN(a) || math.IsInf(a, 0) {
				return fmt.Errorf("%w: activity of %s at index %d is %v", ErrInvalidSeries, n, i, a)
			}
		}
	}
	return nil
}

// Len returns the number of samples
func (s *DecayTimeSeries) Len() int {
	return len(s.Times)
}

// Span returns the last sampled time
func (s *DecayTimeSeries) Span() float64 {
	if len(s.Times) == 0 {
		return 0
	}
	return s.Times[len(s.Times)-1]
}

// Column returns a copy of the activity column of nuclide
func (s *DecayTimeSeries) Column(nuclide string) ([]float64, bool) {
	column, ok := s.Activities[nuclide]
	if !ok {
		return nil, false
	}
	return slices.Clone(column), true
}

// Rows returns the series as one ActivitySample per time
func (s *DecayTimeSeries) Rows() []ActivitySample {
	rows := make([]ActivitySample, len(s.Times))
	for i, t := range s.Times {
		activities := make(map[string]float64, len(s.Nuclides))
		for _, n := range s.Nuclides {
			activities[n] = s.Activities[n][i]
		}
		rows[i] = ActivitySample{Time: t, Activities: activities}
	}
	return rows
}

// Filter returns a new series holding only the columns of chain, in chain order
func (s *DecayTimeSeries) Filter(chain NuclideChain) (*DecayTimeSeries, error) {
	if err := chain.Validate(); err != nil {
		return nil, err
	}
	for _, n := range chain {
		if _, ok := s.Activities[n]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingNuclide, n)
		}
	}
	return NewDecayTimeSeries(s.TimeUnit, s.ActivityUnit, chain, s.Times, s.Activities)
}
