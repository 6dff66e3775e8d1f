package decay

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/siherrmann/decayer/core/graph"
	"github.com/siherrmann/decayer/model"
)

// DefaultMaxDepth limits how many progeny are appended below the last chain member
const DefaultMaxDepth = 8

// ErrBrokenChain is returned when a chain member is not a direct progeny of its predecessor
var ErrBrokenChain = errors.New("broken decay chain")

// SampleRequest describes the curve a Provider has to sample
type SampleRequest struct {
	Chain             model.NuclideChain
	InitialActivities []float64 // one per chain member, in ActivityUnit
	ActivityUnit      model.ActivityUnit
	TimeUnit          model.TimeUnit
	Span              float64 // in TimeUnit, sampled from 0
	Points            int
}

// Validate checks the request shape, not the nuclides.
func (r SampleRequest) Validate() error {
	if err := r.Chain.Validate(); err != nil {
		return err
	}
	if len(r.InitialActivities) != len(r.Chain) {
		return fmt.Errorf("got %d initial activities for a chain of %d", len(r.InitialActivities), len(r.Chain))
	}
	for i, a := range r.InitialActivities {
		if math.IsNaN(a) || math.IsInf(a, 0) || a < 0 {
			return fmt.Errorf("initial activity of %s must be a non-negative number, got %v", r.Chain[i], a)
		}
	}
	if !r.ActivityUnit.Valid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownUnit, r.ActivityUnit)
	}
	if !r.TimeUnit.Valid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownUnit, r.TimeUnit)
	}
	if !(r.Span > 0) || math.IsInf(r.Span, 0) {
		return fmt.Errorf("span must be positive and finite, got %v", r.Span)
	}
	if r.Points < 2 {
		return fmt.Errorf("at least 2 points are needed, got %d", r.Points)
	}
	return nil
}

// Provider samples activity curves of a decay chain.
// The returned series holds at least one column per chain member and may
// hold further progeny.
type Provider interface {
	Sample(ctx context.Context, req SampleRequest) (*model.DecayTimeSeries, error)
}

// BatemanProvider solves the Bateman equations for the chain extended by the
// dominant progeny of its last member.
type BatemanProvider struct {
	source   NuclideSource
	maxDepth int
}

// NewBatemanProvider creates a provider reading nuclide data from source.
// A negative maxDepth disables the chain extension, zero selects DefaultMaxDepth.
func NewBatemanProvider(source NuclideSource, maxDepth int) *BatemanProvider {
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}
	if maxDepth < 0 {
		maxDepth = 0
	}
	return &BatemanProvider{
		source:   source,
		maxDepth: maxDepth,
	}
}

// Sample implements Provider
func (p *BatemanProvider) Sample(ctx context.Context, req SampleRequest) (*model.DecayTimeSeries, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	members, fractions, err := p.resolve(ctx, req.Chain)
	if err != nil {
		return nil, err
	}

	becquerels := req.ActivityUnit.Becquerels()
	names := make([]string, len(members))
	lambdas := make([]float64, len(members))
	n0 := make([]float64, len(members))
	for i, n := range members {
		names[i] = n.Name
		lambdas[i] = n.DecayConstant()
		if i >= len(req.InitialActivities) || req.InitialActivities[i] == 0 {
			continue
		}
		if n.Stable() {
			return nil, fmt.Errorf("stable nuclide %s cannot have an initial activity", n.Name)
		}
		n0[i] = req.InitialActivities[i] * becquerels / lambdas[i]
	}

	solver, err := newBatemanSolver(lambdas, fractions, n0)
	if err != nil {
		return nil, err
	}

	seconds := req.TimeUnit.Seconds()
	times := make([]float64, req.Points)
	activities := make(map[string][]float64, len(names))
	for _, name := range names {
		activities[name] = make([]float64, req.Points)
	}
	for j := range times {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		times[j] = req.Span * float64(j) / float64(req.Points-1)
		for i, a := range solver.activities(times[j] * seconds) {
			activities[names[i]][j] = a / becquerels
		}
	}

	return model.NewDecayTimeSeries(req.TimeUnit, req.ActivityUnit, names, times, activities)
}

// resolve returns the chain members followed by the dominant progeny of the
// last member, and the branching fraction between consecutive members.
func (p *BatemanProvider) resolve(ctx context.Context, chain model.NuclideChain) ([]*model.Nuclide, []float64, error) {
	members := make([]*model.Nuclide, 0, len(chain)+p.maxDepth)
	var fractions []float64

	for i, name := range chain {
		n, err := p.source.Nuclide(ctx, name)
		if err != nil {
			return nil, nil, err
		}
		members = append(members, n)
		if i == len(chain)-1 {
			break
		}

		fraction, err := p.branchFraction(ctx, name, chain[i+1])
		if err != nil {
			return nil, nil, err
		}
		fractions = append(fractions, fraction)
	}

	if p.maxDepth == 0 {
		return members, fractions, nil
	}

	steps, err := graph.LinearChain(ctx, p.source, chain[len(chain)-1], p.maxDepth)
	if err != nil {
		return nil, nil, err
	}
	for _, step := range steps[1:] {
		if chain.Contains(step.Nuclide.Name) {
			break
		}
		members = append(members, step.Nuclide)
		fractions = append(fractions, step.Branch)
	}

	return members, fractions, nil
}

func (p *BatemanProvider) branchFraction(ctx context.Context, parent, progeny string) (float64, error) {
	branches, err := p.source.Branches(ctx, parent)
	if err != nil {
		return 0, err
	}
	for _, b := range branches {
		if b.Progeny == progeny {
			return b.Fraction, nil
		}
	}
	return 0, fmt.Errorf("%w: %s does not decay to %s", ErrBrokenChain, parent, progeny)
}
