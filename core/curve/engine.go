package curve

import (
	"context"

	"github.com/siherrmann/decayer/core/decay"
	"github.com/siherrmann/decayer/model"
)

// Engine samples decay curves through a provider and queries them
type Engine struct {
	provider decay.Provider
	config   model.CurveConfig
}

// NewEngine creates an engine. Zero config fields fall back to the defaults.
func NewEngine(provider decay.Provider, config model.CurveConfig) *Engine {
	defaults := model.DefaultCurveConfig()
	if config.Points < 2 {
		config.Points = defaults.Points
	}
	if !(config.SpanHalfLives > 0) {
		config.SpanHalfLives = defaults.SpanHalfLives
	}
	return &Engine{
		provider: provider,
		config:   config,
	}
}

// Config returns the effective configuration
func (e *Engine) Config() model.CurveConfig {
	return e.config
}

// MaxSpan returns the configured multiple of the longest finite half-life
func (e *Engine) MaxSpan(halfLives []float64, unit model.TimeUnit) (float64, error) {
	return maxSpan(halfLives, unit, e.config.SpanHalfLives)
}

// Sample samples the chain over [0, span] and drops every column the
// provider returned beyond the chain.
func (e *Engine) Sample(ctx context.Context, chain model.NuclideChain, initial []float64, activityUnit model.ActivityUnit, timeUnit model.TimeUnit, span float64) (*model.DecayTimeSeries, error) {
	series, err := e.provider.Sample(ctx, decay.SampleRequest{
		Chain:             chain,
		InitialActivities: initial,
		ActivityUnit:      activityUnit,
		TimeUnit:          timeUnit,
		Span:              span,
		Points:            e.config.Points,
	})
	if err != nil {
		return nil, err
	}
	return series.Filter(chain)
}

// QueryAt interpolates series at t, see QueryAt
func (e *Engine) QueryAt(series *model.DecayTimeSeries, t float64) (*model.QueryResult, error) {
	return QueryAt(series, t)
}
