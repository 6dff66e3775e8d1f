package decayer

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/siherrmann/decayer/core/curve"
	"github.com/siherrmann/decayer/core/decay"
	"github.com/siherrmann/decayer/core/timeutil"
	"github.com/siherrmann/decayer/helper"
	"github.com/siherrmann/decayer/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDecayer(opts ...Option) *Decayer {
	opts = append([]Option{WithLogger(helper.NewLogger(io.Discard, slog.LevelError))}, opts...)
	return New(decay.DefaultCatalog(), opts...)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func elapsed(v float64) *float64 {
	return &v
}

func thoriumRequest() model.CurveRequest {
	return model.CurveRequest{
		Pair:              "Th-227 / Ra-223",
		InitialActivities: []float64{1, 0},
		ActivityUnit:      model.ActivityUnitMicroCurie,
		TimeUnit:          model.TimeUnitDay,
		MeasuredDate:      date(2024, time.March, 1),
		MeasuredTime:      "09:00",
		Elapsed:           elapsed(11.43),
	}
}

// MockProvider serves a fixed two point series for any chain
type MockProvider struct {
	calls int
}

func (m *MockProvider) Sample(ctx context.Context, req decay.SampleRequest) (*model.DecayTimeSeries, error) {
	m.calls++
	activities := make(map[string][]float64, len(req.Chain))
	for i, n := range req.Chain {
		activities[n] = []float64{req.InitialActivities[i], req.InitialActivities[i] / 2}
	}
	return model.NewDecayTimeSeries(req.TimeUnit, req.ActivityUnit, req.Chain, []float64{0, req.Span}, activities)
}

// sourceOnly hides the lister of a catalog
type sourceOnly struct {
	decay.NuclideSource
}

func TestNew(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		d := newTestDecayer()

		require.NotNil(t, d.Engine, "Expected an engine")
		assert.Nil(t, d.DB, "Expected no database for an in-memory catalog")
		assert.Equal(t, model.DefaultCurveConfig(), d.Config())
		assert.Equal(t, model.DefaultPairs(), d.Pairs())
		assert.NoError(t, d.Close(), "Expected Close to handle nil DB gracefully")
	})

	t.Run("Pairs returns a copy", func(t *testing.T) {
		d := newTestDecayer()
		pairs := d.Pairs()
		pairs[0].Label = "changed"

		assert.Equal(t, "Th-227 / Ra-223", d.Pairs()[0].Label)
	})

	t.Run("Custom pairs", func(t *testing.T) {
		d := newTestDecayer(WithPairs([]model.NuclidePair{{Label: "Ra-223 / Rn-219", Parent: "Ra-223", Progeny: "Rn-219"}}))

		req := thoriumRequest()
		req.Pair = "Ra-223 / Rn-219"
		result, err := d.Compute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, model.NuclideChain{"Ra-223", "Rn-219"}, result.Chain)
	})
}

func TestCompute(t *testing.T) {
	ctx := context.Background()
	d := newTestDecayer()

	t.Run("Th-227 / Ra-223 after one Ra-223 half-life", func(t *testing.T) {
		result, err := d.Compute(ctx, thoriumRequest())

		require.NoError(t, err, "Expected Compute to succeed")
		assert.NotEmpty(t, result.ID)
		assert.Equal(t, model.NuclideChain{"Th-227", "Ra-223"}, result.Chain)
		assert.InDelta(t, 18.68, result.HalfLives["Th-227"], 1e-9)
		assert.InDelta(t, 11.43, result.HalfLives["Ra-223"], 1e-9)
		assert.InDelta(t, 224.16, result.MaxSpan, 1e-9)
		assert.Equal(t, time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC), result.MeasuredAt)
		assert.Nil(t, result.TargetAt)
		assert.Equal(t, 11.43, result.Elapsed)

		assert.Equal(t, []string{"Th-227", "Ra-223"}, result.Series.Nuclides, "Expected progeny columns to be filtered")
		assert.Equal(t, 501, result.Series.Len())
		assert.InDelta(t, result.MaxSpan, result.Series.Span(), 1e-9)

		th, ok := result.Query.Entry("Th-227")
		require.True(t, ok)
		ra, ok := result.Query.Entry("Ra-223")
		require.True(t, ok)
		assert.False(t, result.Query.Clamped)
		assert.Greater(t, ra.Percentage, 0.0)
		assert.Less(t, ra.Percentage, th.Percentage)
		assert.InDelta(t, 100, th.Percentage+ra.Percentage, 1e-9)
		assert.Equal(t, "0.65", curve.FormatActivity(th.Activity))
		assert.Equal(t, "0.40", curve.FormatActivity(ra.Activity))
	})

	t.Run("Target date and time", func(t *testing.T) {
		req := thoriumRequest()
		req.Elapsed = nil
		target := date(2024, time.March, 11)
		req.TargetDate = &target
		req.TargetTime = "21:00"

		result, err := d.Compute(ctx, req)

		require.NoError(t, err)
		require.NotNil(t, result.TargetAt)
		assert.Equal(t, time.Date(2024, time.March, 11, 21, 0, 0, 0, time.UTC), *result.TargetAt)
		assert.InDelta(t, 10.5, result.Elapsed, 1e-12)
	})

	t.Run("Target before measurement is symmetric", func(t *testing.T) {
		req := thoriumRequest()
		req.Elapsed = nil
		target := date(2024, time.February, 20)
		req.TargetDate = &target
		req.TargetTime = "09:00"

		result, err := d.Compute(ctx, req)

		require.NoError(t, err)
		assert.InDelta(t, 10, result.Elapsed, 1e-12)
	})

	t.Run("Explicit chain in hours", func(t *testing.T) {
		req := thoriumRequest()
		req.Pair = ""
		req.Chain = model.NuclideChain{"Mo-99", "Tc-99m"}
		req.InitialActivities = []float64{10, 0}
		req.ActivityUnit = model.ActivityUnitMilliCurie
		req.TimeUnit = model.TimeUnitHour
		req.Elapsed = elapsed(23)

		result, err := d.Compute(ctx, req)

		require.NoError(t, err)
		assert.InDelta(t, 12*65.94, result.MaxSpan, 1e-9)
		tc, _ := result.Query.Entry("Tc-99m")
		assert.Greater(t, tc.Activity, 0.0)
	})

	t.Run("Elapsed beyond the span is clamped", func(t *testing.T) {
		req := thoriumRequest()
		req.Elapsed = elapsed(1000)

		result, err := d.Compute(ctx, req)

		require.NoError(t, err)
		assert.True(t, result.Query.Clamped)
		assert.InDelta(t, result.MaxSpan, result.Query.ClampedTime, 1e-9)
	})

	t.Run("Zero activities give undefined percentages", func(t *testing.T) {
		req := thoriumRequest()
		req.InitialActivities = []float64{0, 0}

		result, err := d.Compute(ctx, req)

		require.NoError(t, err)
		for _, e := range result.Query.Entries {
			assert.True(t, math.IsNaN(e.Percentage))
		}
	})

	t.Run("Invalid request", func(t *testing.T) {
		req := thoriumRequest()
		req.MeasuredTime = ""

		_, err := d.Compute(ctx, req)
		assert.ErrorIs(t, err, model.ErrInvalidRequest)
	})

	t.Run("Activities do not match the chain", func(t *testing.T) {
		req := thoriumRequest()
		req.InitialActivities = []float64{1}

		_, err := d.Compute(ctx, req)
		assert.ErrorIs(t, err, model.ErrInvalidRequest)
	})

	t.Run("Unknown pair", func(t *testing.T) {
		req := thoriumRequest()
		req.Pair = "U-238 / Th-234"

		_, err := d.Compute(ctx, req)
		assert.ErrorIs(t, err, model.ErrUnknownPair)
	})

	t.Run("Unknown nuclide", func(t *testing.T) {
		req := thoriumRequest()
		req.Pair = ""
		req.Chain = model.NuclideChain{"U-238", "Th-234"}

		_, err := d.Compute(ctx, req)
		assert.ErrorIs(t, err, decay.ErrUnknownNuclide)
	})

	t.Run("Stable chain has no span", func(t *testing.T) {
		req := thoriumRequest()
		req.Pair = ""
		req.Chain = model.NuclideChain{"Pb-207"}
		req.InitialActivities = []float64{0}

		_, err := d.Compute(ctx, req)
		assert.ErrorIs(t, err, curve.ErrNoFiniteHalfLife)
	})

	t.Run("Invalid clock time", func(t *testing.T) {
		req := thoriumRequest()
		req.MeasuredTime = "25:00"

		_, err := d.Compute(ctx, req)
		assert.ErrorIs(t, err, timeutil.ErrInvalidFormat)
	})
}

func TestComputeWithProvider(t *testing.T) {
	provider := &MockProvider{}
	d := newTestDecayer(WithProvider(provider), WithConfig(model.CurveConfig{Points: 2, SpanHalfLives: 1}))

	result, err := d.Compute(context.Background(), thoriumRequest())

	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls, "Expected the custom provider to be used")
	assert.InDelta(t, 18.68, result.MaxSpan, 1e-9)

	th, _ := result.Query.Entry("Th-227")
	assert.InDelta(t, 1-0.5*11.43/18.68, th.Activity, 1e-9)
}

func TestNuclides(t *testing.T) {
	ctx := context.Background()

	t.Run("In-memory catalog", func(t *testing.T) {
		nuclides, err := newTestDecayer().Nuclides(ctx)

		require.NoError(t, err)
		assert.Len(t, nuclides, len(decay.DefaultCatalog().Nuclides()))
	})

	t.Run("Source that cannot list", func(t *testing.T) {
		d := New(sourceOnly{decay.DefaultCatalog()}, WithLogger(helper.NewLogger(io.Discard, slog.LevelError)))

		_, err := d.Nuclides(ctx)
		assert.Error(t, err)
	})
}

func TestDescendants(t *testing.T) {
	d := newTestDecayer()
	ctx := context.Background()

	t.Run("Mo-99 walk", func(t *testing.T) {
		steps, err := d.Descendants(ctx, "Mo-99", 0)
		require.NoError(t, err)

		names := make([]string, 0, len(steps))
		for _, s := range steps {
			names = append(names, s.Nuclide.Name)
		}
		assert.Equal(t, []string{"Mo-99", "Tc-99m", "Tc-99", "Ru-99"}, names)
		assert.InDelta(t, 0.8773, steps[1].Fraction, 1e-9)
		assert.Equal(t, 2, steps[3].Distance)
	})

	t.Run("Limited hops", func(t *testing.T) {
		steps, err := d.Descendants(ctx, "Th-227", 2)
		require.NoError(t, err)
		assert.Len(t, steps, 3)
	})

	t.Run("Direct progeny", func(t *testing.T) {
		steps, err := d.DirectProgeny(ctx, "Bi-211")
		require.NoError(t, err)
		require.Len(t, steps, 2)
		assert.Equal(t, "Tl-207", steps[0].Nuclide.Name)
		assert.Equal(t, "Po-211", steps[1].Nuclide.Name)
	})

	t.Run("Unknown nuclide", func(t *testing.T) {
		_, err := d.Descendants(ctx, "U-238", 0)
		assert.ErrorIs(t, err, decay.ErrUnknownNuclide)
	})
}
