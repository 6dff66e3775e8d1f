package decayer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/decayer/core/curve"
	"github.com/siherrmann/decayer/core/decay"
	"github.com/siherrmann/decayer/core/graph"
	"github.com/siherrmann/decayer/core/timeutil"
	"github.com/siherrmann/decayer/database"
	"github.com/siherrmann/decayer/helper"
	"github.com/siherrmann/decayer/model"
	loadSql "github.com/siherrmann/decayer/sql"
)

// Decayer computes decay curves of nuclide chains and queries them
type Decayer struct {
	DB      *helper.Database    // nil unless created with NewWithDatabase
	Catalog decay.NuclideSource // source of half-lives and branches
	Engine  *curve.Engine
	// Options
	config   model.CurveConfig
	provider decay.Provider
	pairs    []model.NuclidePair
	// Logging
	log *slog.Logger
}

// Option configures a Decayer
type Option func(*Decayer)

// WithConfig replaces the default sampling and rounding settings.
// A MaxChainDepth of 0 samples the requested chain only.
func WithConfig(config model.CurveConfig) Option {
	return func(d *Decayer) {
		d.config = config
	}
}

// WithLogger replaces the default pretty logger
func WithLogger(logger *slog.Logger) Option {
	return func(d *Decayer) {
		d.log = logger
	}
}

// WithProvider replaces the Bateman solver with another curve provider
func WithProvider(provider decay.Provider) Option {
	return func(d *Decayer) {
		d.provider = provider
	}
}

// WithPairs replaces the selectable nuclide pairs
func WithPairs(pairs []model.NuclidePair) Option {
	return func(d *Decayer) {
		d.pairs = pairs
	}
}

// New creates a Decayer reading nuclide data from source
func New(source decay.NuclideSource, opts ...Option) *Decayer {
	d := &Decayer{
		Catalog: source,
		config:  model.DefaultCurveConfig(),
		pairs:   model.DefaultPairs(),
		log:     helper.NewLogger(os.Stdout, slog.LevelInfo),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.provider == nil {
		depth := d.config.MaxChainDepth
		if depth == 0 {
			depth = -1
		}
		d.provider = decay.NewBatemanProvider(source, depth)
	}
	d.Engine = curve.NewEngine(d.provider, d.config)

	return d
}

// NewWithDatabase creates a Decayer backed by the PostgreSQL catalog.
// An empty catalog is seeded with decay.DefaultCatalog.
func NewWithDatabase(config *helper.DatabaseConfiguration, opts ...Option) (*Decayer, error) {
	// Logger
	probe := &Decayer{log: helper.NewLogger(os.Stdout, slog.LevelInfo)}
	for _, opt := range opts {
		opt(probe)
	}
	logger := probe.log

	// Initialize database
	db := helper.NewDatabase("decayer", config, logger)
	err := loadSql.Init(db.Instance)
	if err != nil {
		return nil, helper.NewError("initialize database types", err)
	}

	// force=false to not reload if functions already exist
	catalog, err := database.NewCatalog(db, false)
	if err != nil {
		return nil, helper.NewError("create catalog", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	empty, err := catalog.Empty(ctx)
	if err != nil {
		return nil, helper.NewError("check catalog", err)
	}
	if empty {
		count, err := catalog.Seed(ctx, decay.DefaultCatalog())
		if err != nil {
			return nil, helper.NewError("seed catalog", err)
		}
		logger.Info("Seeded nuclide catalog", slog.Int("nuclides", count))
	}

	d := New(catalog, append([]Option{WithLogger(logger)}, opts...)...)
	d.DB = db

	return d, nil
}

// Close closes the database connection
func (d *Decayer) Close() error {
	if d.DB != nil && d.DB.Instance != nil {
		return d.DB.Instance.Close()
	}
	return nil
}

// Config returns the effective sampling and rounding settings
func (d *Decayer) Config() model.CurveConfig {
	return d.Engine.Config()
}

// Pairs returns the selectable nuclide pairs
func (d *Decayer) Pairs() []model.NuclidePair {
	return append([]model.NuclidePair(nil), d.pairs...)
}

// Nuclides returns every nuclide of the catalog sorted by name
func (d *Decayer) Nuclides(ctx context.Context) ([]*model.Nuclide, error) {
	lister, ok := d.Catalog.(decay.NuclideLister)
	if !ok {
		return nil, helper.NewError("list nuclides", fmt.Errorf("catalog %T cannot list its nuclides", d.Catalog))
	}

	nuclides, err := lister.ListNuclides(ctx)
	if err != nil {
		return nil, helper.NewError("list nuclides", err)
	}
	return nuclides, nil
}

// Descendants walks the decay graph breadth-first from name, at most maxHops
// deep. The first step is name itself. A maxHops of 0 uses decay.DefaultMaxDepth.
func (d *Decayer) Descendants(ctx context.Context, name string, maxHops int) ([]*graph.ChainStep, error) {
	if maxHops <= 0 {
		maxHops = decay.DefaultMaxDepth
	}
	steps, err := graph.BFS(ctx, d.Catalog, name, maxHops)
	if err != nil {
		return nil, helper.NewError("walk descendants", err)
	}
	return steps, nil
}

// DirectProgeny returns the nuclides name decays into in one step
func (d *Decayer) DirectProgeny(ctx context.Context, name string) ([]*graph.ChainStep, error) {
	steps, err := graph.Progeny(ctx, d.Catalog, name)
	if err != nil {
		return nil, helper.NewError("direct progeny", err)
	}
	return steps, nil
}

// Chain resolves the nuclides a request selects, by pair label or explicitly
func (d *Decayer) Chain(req *model.CurveRequest) (model.NuclideChain, error) {
	chain := req.Chain
	if req.Pair != "" {
		pair, err := model.FindPair(d.pairs, req.Pair)
		if err != nil {
			return nil, err
		}
		chain = pair.Chain()
	}

	if err := chain.Validate(); err != nil {
		return nil, err
	}
	if len(req.InitialActivities) != len(chain) {
		return nil, fmt.Errorf("%w: %d initial activities for %d nuclides", model.ErrInvalidRequest, len(req.InitialActivities), len(chain))
	}
	return chain, nil
}

// Compute runs one full computation: it samples the chain over twelve of its
// longest half-lives and interpolates the activities at the requested time.
// A query time outside the sampled span is clamped to it.
func (d *Decayer) Compute(ctx context.Context, req model.CurveRequest) (*model.CurveResult, error) {
	if err := req.Validate(); err != nil {
		return nil, helper.NewError("validate request", err)
	}

	chain, err := d.Chain(&req)
	if err != nil {
		return nil, helper.NewError("resolve chain", err)
	}

	halfLives, err := decay.HalfLives(ctx, d.Catalog, chain, req.TimeUnit)
	if err != nil {
		return nil, helper.NewError("look up half-lives", err)
	}

	span, err := d.Engine.MaxSpan(halfLives, req.TimeUnit)
	if err != nil {
		return nil, helper.NewError("max span", err)
	}

	measuredClock, err := timeutil.ParseClockTime(req.MeasuredTime)
	if err != nil {
		return nil, helper.NewError("parse measured time", err)
	}
	measuredAt := timeutil.Combine(req.MeasuredDate, measuredClock)

	result := &model.CurveResult{
		ID:           uuid.New(),
		Chain:        chain,
		TimeUnit:     req.TimeUnit,
		ActivityUnit: req.ActivityUnit,
		HalfLives:    make(map[string]float64, len(chain)),
		MaxSpan:      span,
		MeasuredAt:   measuredAt,
	}
	for i, name := range chain {
		result.HalfLives[name] = halfLives[i]
	}

	if req.TargetDate != nil {
		targetClock, err := timeutil.ParseClockTime(req.TargetTime)
		if err != nil {
			return nil, helper.NewError("parse target time", err)
		}
		targetAt := timeutil.Combine(*req.TargetDate, targetClock)
		result.TargetAt = &targetAt

		result.Elapsed, err = timeutil.ElapsedBetween(measuredAt, targetAt, req.TimeUnit)
		if err != nil {
			return nil, helper.NewError("elapsed time", err)
		}
	} else {
		result.Elapsed = *req.Elapsed
	}

	d.log.Debug("Sampling decay curve",
		slog.String("chain", chain.String()),
		slog.Float64("span", span),
		slog.String("time_unit", string(req.TimeUnit)),
		slog.Int("points", d.Engine.Config().Points),
	)

	result.Series, err = d.Engine.Sample(ctx, chain, req.InitialActivities, req.ActivityUnit, req.TimeUnit, span)
	if err != nil {
		return nil, helper.NewError("sample curve", err)
	}

	result.Query, err = d.Engine.QueryAt(result.Series, result.Elapsed)
	if err != nil {
		return nil, helper.NewError("query curve", err)
	}

	if result.Query.Clamped {
		d.log.Warn("Query time outside the sampled span, clamped",
			slog.Float64("elapsed", result.Elapsed),
			slog.Float64("clamped", result.Query.ClampedTime),
		)
	}
	d.log.Info("Computed decay curve",
		slog.String("id", result.ID.String()),
		slog.String("chain", chain.String()),
		slog.Float64("elapsed", result.Elapsed),
	)

	return result, nil
}
