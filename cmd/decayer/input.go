package main

import (
	"fmt"
	"time"

	"github.com/siherrmann/decayer/core/timeutil"
	"github.com/siherrmann/decayer/model"
	"github.com/spf13/cobra"
)

// curveInput holds the flags shared by query and curve
type curveInput struct {
	pair            string
	chain           []string
	parentActivity  float64
	progenyActivity float64
	activities      []float64
	activityUnit    string
	timeUnit        string
	measuredDate    string
	measuredTime    string
	targetDate      string
	targetTime      string
	elapsed         float64
}

func (in *curveInput) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&in.pair, "pair", "p", model.DefaultPairs()[0].Label, "Nuclide pair, see 'decayer pairs'")
	f.StringSliceVar(&in.chain, "chain", nil, "Explicit decay chain, parent first (replaces --pair)")
	f.Float64Var(&in.parentActivity, "parent-activity", 1, "Initial activity of the parent")
	f.Float64Var(&in.progenyActivity, "progeny-activity", 0, "Initial activity of the progeny")
	f.Float64SliceVar(&in.activities, "activities", nil, "Initial activities of every --chain member")
	f.StringVarP(&in.activityUnit, "activity-unit", "a", string(model.ActivityUnitMicroCurie), "Activity unit (µCi, mCi, Ci, Bq, kBq, MBq)")
	f.StringVarP(&in.timeUnit, "time-unit", "u", string(model.TimeUnitDay), "Time unit (d, h, m, s)")
	f.StringVar(&in.measuredDate, "measured-date", "", "Date of the measurement as YYYY-MM-DD, defaults to today")
	f.StringVar(&in.measuredTime, "measured-time", "", "Time of the measurement as HH:MM, defaults to now")
	f.StringVar(&in.targetDate, "target-date", "", "Date to query as YYYY-MM-DD, defaults to the measurement date")
	f.StringVar(&in.targetTime, "target-time", "", "Time to query as HH:MM")
	f.Float64VarP(&in.elapsed, "elapsed", "e", 0, "Elapsed time since the measurement in the time unit (replaces --target-*)")
	cmd.MarkFlagsMutuallyExclusive("pair", "chain")
	cmd.MarkFlagsMutuallyExclusive("elapsed", "target-date")
	cmd.MarkFlagsMutuallyExclusive("elapsed", "target-time")
}

// request builds the curve request. now supplies the default dates.
func (in *curveInput) request(cmd *cobra.Command, now time.Time) (model.CurveRequest, error) {
	activityUnit, err := model.ParseActivityUnit(in.activityUnit)
	if err != nil {
		return model.CurveRequest{}, err
	}
	timeUnit, err := model.ParseTimeUnit(in.timeUnit)
	if err != nil {
		return model.CurveRequest{}, err
	}

	req := model.CurveRequest{
		ActivityUnit: activityUnit,
		TimeUnit:     timeUnit,
		MeasuredTime: in.measuredTime,
	}
	if req.MeasuredTime == "" {
		req.MeasuredTime = now.Format("15:04")
	}

	if len(in.chain) > 0 {
		req.Chain = model.NuclideChain(in.chain)
		req.InitialActivities = in.activities
	} else {
		req.Pair = in.pair
		req.InitialActivities = []float64{in.parentActivity, in.progenyActivity}
	}

	req.MeasuredDate, err = parseDateFlag("measured-date", in.measuredDate, now)
	if err != nil {
		return model.CurveRequest{}, err
	}

	switch {
	case cmd.Flags().Changed("elapsed"):
		elapsed := in.elapsed
		req.Elapsed = &elapsed
	case in.targetTime != "" || in.targetDate != "":
		target, err := parseDateFlag("target-date", in.targetDate, req.MeasuredDate)
		if err != nil {
			return model.CurveRequest{}, err
		}
		req.TargetDate = &target
		req.TargetTime = in.targetTime
	default:
		elapsed := 0.0
		req.Elapsed = &elapsed
	}

	return req, nil
}

// parseDateFlag returns the date at midnight UTC, the location timeutil.ParseDate
// uses, so measured and target times differ by their wall clock difference.
// An empty value takes the calendar day of fallback in its own location.
func parseDateFlag(name, value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return time.Date(fallback.Year(), fallback.Month(), fallback.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := timeutil.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: --%s %q", errInvalidDate, name, value)
	}
	return date, nil
}
