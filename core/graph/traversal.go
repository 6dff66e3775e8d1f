package graph

import (
	"context"
	"slices"

	"github.com/siherrmann/decayer/model"
)

// DecayGraph is the read side of a nuclide catalog: nuclides are nodes,
// decay branches are directed edges from parent to progeny.
type DecayGraph interface {
	Nuclide(ctx context.Context, name string) (*model.Nuclide, error)
	Branches(ctx context.Context, parent string) ([]*model.DecayBranch, error)
}

// ChainStep is a nuclide reached while walking down a decay graph
type ChainStep struct {
	Nuclide  *model.Nuclide
	Distance int      // hops from the start nuclide
	Path     []string // names from the start nuclide to this one
	Branch   float64  // fraction of the branch leading into this nuclide, 1 for the start
	Fraction float64  // product of the branch fractions along Path
}

// BFS walks breadth-first from start over decay branches, at most maxHops deep.
// A nuclide reachable over several paths is reported once, on the first path found.
func BFS(ctx context.Context, g DecayGraph, start string, maxHops int) ([]*ChainStep, error) {
	source, err := g.Nuclide(ctx, start)
	if err != nil {
		return nil, err
	}

	visited := map[string]bool{start: true}
	queue := []*ChainStep{{
		Nuclide:  source,
		Distance: 0,
		Path:     []string{start},
		Branch:   1,
		Fraction: 1,
	}}

	var results []*ChainStep
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		results = append(results, current)

		if current.Distance >= maxHops || current.Nuclide.Stable() {
			continue
		}

		branches, err := g.Branches(ctx, current.Nuclide.Name)
		if err != nil {
			return nil, err
		}

		for _, branch := range branches {
			if visited[branch.Progeny] {
				continue
			}

			progeny, err := g.Nuclide(ctx, branch.Progeny)
			if err != nil {
				return nil, err
			}
			visited[branch.Progeny] = true

			path := append(slices.Clone(current.Path), branch.Progeny)
			queue = append(queue, &ChainStep{
				Nuclide:  progeny,
				Distance: current.Distance + 1,
				Path:     path,
				Branch:   branch.Fraction,
				Fraction: current.Fraction * branch.Fraction,
			})
		}
	}

	return results, nil
}

// LinearChain follows the dominant branch from start until a stable nuclide,
// a nuclide without known branches or maxHops is reached. The first step is start.
func LinearChain(ctx context.Context, g DecayGraph, start string, maxHops int) ([]*ChainStep, error) {
	current, err := g.Nuclide(ctx, start)
	if err != nil {
		return nil, err
	}

	steps := []*ChainStep{{
		Nuclide:  current,
		Distance: 0,
		Path:     []string{start},
		Branch:   1,
		Fraction: 1,
	}}
	visited := map[string]bool{start: true}

	for hop := 1; hop <= maxHops && !current.Stable(); hop++ {
		branches, err := g.Branches(ctx, current.Name)
		if err != nil {
			return nil, err
		}

		dominant := DominantBranch(branches)
		if dominant == nil || visited[dominant.Progeny] {
			break
		}

		progeny, err := g.Nuclide(ctx, dominant.Progeny)
		if err != nil {
			return nil, err
		}
		visited[progeny.Name] = true

		last := steps[len(steps)-1]
		steps = append(steps, &ChainStep{
			Nuclide:  progeny,
			Distance: hop,
			Path:     append(slices.Clone(last.Path), progeny.Name),
			Branch:   dominant.Fraction,
			Fraction: last.Fraction * dominant.Fraction,
		})
		current = progeny
	}

	return steps, nil
}

// DominantBranch returns the branch with the largest fraction, nil if there is none.
// Ties keep the first branch.
func DominantBranch(branches []*model.DecayBranch) *model.DecayBranch {
	var dominant *model.DecayBranch
	for _, b := range branches {
		if dominant == nil || b.Fraction > dominant.Fraction {
			dominant = b
		}
	}
	return dominant
}

// Progeny returns the direct progeny of a nuclide (one hop)
func Progeny(ctx context.Context, g DecayGraph, parent string) ([]*ChainStep, error) {
	results, err := BFS(ctx, g, parent, 1)
	if err != nil {
		return nil, err
	}
	return results[1:], nil
}
