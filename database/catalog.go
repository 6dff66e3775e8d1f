package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/siherrmann/decayer/core/decay"
	"github.com/siherrmann/decayer/helper"
	"github.com/siherrmann/decayer/model"
)

// Catalog serves nuclides and decay branches from PostgreSQL.
// It implements decay.NuclideSource.
type Catalog struct {
	NuclidesHandler *NuclidesDBHandler
	BranchesHandler *BranchesDBHandler
}

// NewCatalog creates the nuclides and branches handlers in dependency order
func NewCatalog(db *helper.Database, force bool) (*Catalog, error) {
	nuclides, err := NewNuclidesDBHandler(db, force)
	if err != nil {
		return nil, helper.NewError("create nuclides handler", err)
	}

	branches, err := NewBranchesDBHandler(db, force)
	if err != nil {
		return nil, helper.NewError("create branches handler", err)
	}

	return &Catalog{
		NuclidesHandler: nuclides,
		BranchesHandler: branches,
	}, nil
}

// Nuclide implements decay.NuclideSource
func (c *Catalog) Nuclide(ctx context.Context, name string) (*model.Nuclide, error) {
	nuclide, err := c.NuclidesHandler.SelectNuclide(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", decay.ErrUnknownNuclide, name)
	}
	if err != nil {
		return nil, helper.NewError("select nuclide", err)
	}
	return nuclide, nil
}

// Branches implements decay.NuclideSource
func (c *Catalog) Branches(ctx context.Context, parent string) ([]*model.DecayBranch, error) {
	if _, err := c.Nuclide(ctx, parent); err != nil {
		return nil, err
	}

	branches, err := c.BranchesHandler.SelectBranchesFromNuclide(ctx, parent)
	if err != nil {
		return nil, helper.NewError("select branches", err)
	}
	return branches, nil
}

// ListNuclides implements decay.NuclideLister
func (c *Catalog) ListNuclides(ctx context.Context) ([]*model.Nuclide, error) {
	nuclides, err := c.NuclidesHandler.SelectAllNuclides(ctx)
	if err != nil {
		return nil, helper.NewError("select nuclides", err)
	}
	return nuclides, nil
}

// Empty reports whether no nuclide is stored yet
func (c *Catalog) Empty(ctx context.Context) (bool, error) {
	nuclides, err := c.ListNuclides(ctx)
	if err != nil {
		return false, err
	}
	return len(nuclides) == 0, nil
}

// Seed copies every nuclide and branch of source into the database in one
// transaction, so a failed seed leaves the catalog as it was.
// Existing rows with the same name (or parent and progeny) are updated.
// It returns the number of nuclides written.
func (c *Catalog) Seed(ctx context.Context, source *decay.Catalog) (int, error) {
	tx, err := c.NuclidesHandler.db.Instance.BeginTx(ctx, nil)
	if err != nil {
		return 0, helper.NewError("begin seed", err)
	}
	defer tx.Rollback()

	nuclides := source.Nuclides()
	for _, n := range nuclides {
		row := &model.Nuclide{
			Name:     n.Name,
			HalfLife: n.HalfLife,
			Metadata: n.Metadata.Clone(),
		}
		if err := insertNuclide(ctx, tx, row); err != nil {
			return 0, helper.NewError(fmt.Sprintf("insert nuclide %s", n.Name), err)
		}
	}

	for _, b := range source.AllBranches() {
		row := &model.DecayBranch{
			Parent:   b.Parent,
			Progeny:  b.Progeny,
			Mode:     b.Mode,
			Fraction: b.Fraction,
			Metadata: b.Metadata.Clone(),
		}
		if err := insertBranch(ctx, tx, row); err != nil {
			return 0, helper.NewError(fmt.Sprintf("insert branch %s → %s", b.Parent, b.Progeny), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, helper.NewError("commit seed", err)
	}
	return len(nuclides), nil
}
