package curve

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/siherrmann/decayer/model"
)

// ErrEmptySeries is returned when a series has no samples to query
var ErrEmptySeries = errors.New("empty series")

// Interpolate evaluates the piecewise linear function through (xs, ys) at x.
// xs must be strictly increasing. Outside [xs[0], xs[last]] the boundary value
// is returned. Empty or mismatched input yields NaN.
func Interpolate(xs, ys []float64, x float64) float64 {
	if len(xs) == 0 || len(xs) != len(ys) || math.IsNaN(x) {
		return math.NaN()
	}

	last := len(xs) - 1
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[last] {
		return ys[last]
	}

	i := sort.SearchFloat64s(xs, x)
	if xs[i] == x {
		return ys[i]
	}
	x0, x1 := xs[i-1], xs[i]
	return ys[i-1] + (ys[i]-ys[i-1])*(x-x0)/(x1-x0)
}

// QueryAt interpolates every column of series at t. A t outside the sampled
// domain is clamped to it. Percentages are NaN when the total activity is 0.
func QueryAt(series *model.DecayTimeSeries, t float64) (*model.QueryResult, error) {
	if series == nil || series.Len() == 0 || len(series.Nuclides) == 0 {
		return nil, ErrEmptySeries
	}
	if math.IsNaN(t) {
		return nil, fmt.Errorf("query time is not a number")
	}

	clamped := math.Min(math.Max(t, series.Times[0]), series.Span())
	result := &model.QueryResult{
		Time:        t,
		ClampedTime: clamped,
		Clamped:     clamped != t,
		Entries:     make([]model.QueryEntry, len(series.Nuclides)),
	}

	for i, n := range series.Nuclides {
		column, ok := series.Activities[n]
		if !ok {
			return nil, fmt.Errorf("%w: %s", model.ErrMissingNuclide, n)
		}
		activity := Interpolate(series.Times, column, clamped)
		result.Entries[i] = model.QueryEntry{Nuclide: n, Activity: activity}
		result.Total += activity
	}

	for i := range result.Entries {
		if result.Total == 0 {
			result.Entries[i].Percentage = math.NaN()
			continue
		}
		result.Entries[i].Percentage = result.Entries[i].Activity / result.Total * 100
	}

	return result, nil
}
