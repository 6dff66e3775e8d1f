package decay

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/siherrmann/decayer/model"
)

// ErrUnknownNuclide is returned when a nuclide is not in the catalog
var ErrUnknownNuclide = errors.New("unknown nuclide")

// NuclideSource provides half-lives and decay branches.
// It is the source of truth for half-lives; callers never hard-code them.
type NuclideSource interface {
	Nuclide(ctx context.Context, name string) (*model.Nuclide, error)
	Branches(ctx context.Context, parent string) ([]*model.DecayBranch, error)
}

// NuclideLister is implemented by sources that can enumerate their nuclides
type NuclideLister interface {
	ListNuclides(ctx context.Context) ([]*model.Nuclide, error)
}

// Catalog is an in-memory NuclideSource
type Catalog struct {
	nuclides map[string]*model.Nuclide
	branches map[string][]*model.DecayBranch
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		nuclides: make(map[string]*model.Nuclide),
		branches: make(map[string][]*model.DecayBranch),
	}
}

// AddNuclide adds or replaces a nuclide
func (c *Catalog) AddNuclide(n *model.Nuclide) error {
	if n.Name == "" {
		return fmt.Errorf("nuclide name is empty")
	}
	if !(n.HalfLife > 0) {
		return fmt.Errorf("half-life of %s must be positive, got %v", n.Name, n.HalfLife)
	}
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	c.nuclides[n.Name] = n
	return nil
}

// AddBranch adds a decay branch between two nuclides already in the catalog
func (c *Catalog) AddBranch(b *model.DecayBranch) error {
	parent, ok := c.nuclides[b.Parent]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNuclide, b.Parent)
	}
	if _, ok := c.nuclides[b.Progeny]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNuclide, b.Progeny)
	}
	if parent.Stable() {
		return fmt.Errorf("stable nuclide %s cannot decay", parent.Name)
	}
	if !(b.Fraction > 0 && b.Fraction <= 1) {
		return fmt.Errorf("branching fraction %s → %s must be in (0, 1], got %v", b.Parent, b.Progeny, b.Fraction)
	}

	total := b.Fraction
	for _, existing := range c.branches[b.Parent] {
		if existing.Progeny == b.Progeny {
			return fmt.Errorf("branch %s → %s already exists", b.Parent, b.Progeny)
		}
		total += existing.Fraction
	}
	if total > 1+1e-9 {
		return fmt.Errorf("branching fractions of %s sum to %v", b.Parent, total)
	}

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	c.branches[b.Parent] = append(c.branches[b.Parent], b)
	return nil
}

// Nuclide implements NuclideSource
func (c *Catalog) Nuclide(ctx context.Context, name string) (*model.Nuclide, error) {
	n, ok := c.nuclides[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNuclide, name)
	}
	return n, nil
}

// Branches implements NuclideSource
func (c *Catalog) Branches(ctx context.Context, parent string) ([]*model.DecayBranch, error) {
	if _, ok := c.nuclides[parent]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNuclide, parent)
	}
	return c.branches[parent], nil
}

// Nuclides returns all nuclides sorted by name
func (c *Catalog) Nuclides() []*model.Nuclide {
	nuclides := make([]*model.Nuclide, 0, len(c.nuclides))
	for _, n := range c.nuclides {
		nuclides = append(nuclides, n)
	}
	sort.Slice(nuclides, func(i, j int) bool { return nuclides[i].Name < nuclides[j].Name })
	return nuclides
}

// ListNuclides implements NuclideLister
func (c *Catalog) ListNuclides(ctx context.Context) ([]*model.Nuclide, error) {
	return c.Nuclides(), nil
}

// AllBranches returns every branch, grouped by parent in name order
func (c *Catalog) AllBranches() []*model.DecayBranch {
	var branches []*model.DecayBranch
	for _, n := range c.Nuclides() {
		branches = append(branches, c.branches[n.Name]...)
	}
	return branches
}

// HalfLives looks up the half-life of every chain member, expressed in unit.
// Stable members yield +Inf.
func HalfLives(ctx context.Context, source NuclideSource, chain model.NuclideChain, unit model.TimeUnit) ([]float64, error) {
	halfLives := make([]float64, len(chain))
	for i, name := range chain {
		n, err := source.Nuclide(ctx, name)
		if err != nil {
			return nil, err
		}
		if n.Stable() {
			halfLives[i] = math.Inf(1)
			continue
		}
		halfLives[i], err = n.HalfLifeIn(unit)
		if err != nil {
			return nil, err
		}
	}
	return halfLives, nil
}
