package database

import (
	"context"
	"testing"

	"github.com/siherrmann/decayer/core/decay"
	"github.com/siherrmann/decayer/core/graph"
	"github.com/siherrmann/decayer/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	database := initDB(t)

	t.Run("Invalid call NewCatalog with nil database", func(t *testing.T) {
		_, err := NewCatalog(nil, false)
		assert.Error(t, err)
	})

	catalog, err := NewCatalog(database, true)
	require.NoError(t, err, "Expected NewCatalog to not return an error")

	defaults := decay.DefaultCatalog()
	count, err := catalog.Seed(ctx, defaults)
	require.NoError(t, err, "Expected seeding to succeed")
	assert.Equal(t, len(defaults.Nuclides()), count)

	t.Run("Catalog is not empty after seeding", func(t *testing.T) {
		empty, err := catalog.Empty(ctx)
		require.NoError(t, err)
		assert.False(t, empty)
	})

	t.Run("Seeding twice updates in place", func(t *testing.T) {
		before, err := catalog.ListNuclides(ctx)
		require.NoError(t, err)

		_, err = catalog.Seed(ctx, defaults)
		require.NoError(t, err)

		after, err := catalog.ListNuclides(ctx)
		require.NoError(t, err)
		assert.Equal(t, len(before), len(after))
	})

	t.Run("Nuclide matches the in-memory catalog", func(t *testing.T) {
		stored, err := catalog.Nuclide(ctx, "Th-227")
		require.NoError(t, err)
		expected, err := defaults.Nuclide(ctx, "Th-227")
		require.NoError(t, err)

		assert.Equal(t, expected.HalfLife, stored.HalfLife)
		assert.Equal(t, "ICRP-107", stored.Metadata.String("source"))

		lead, err := catalog.Nuclide(ctx, "Pb-207")
		require.NoError(t, err)
		assert.True(t, lead.Stable())
	})

	t.Run("Unknown nuclide", func(t *testing.T) {
		_, err := catalog.Nuclide(ctx, "U-238")
		assert.ErrorIs(t, err, decay.ErrUnknownNuclide)

		_, err = catalog.Branches(ctx, "U-238")
		assert.ErrorIs(t, err, decay.ErrUnknownNuclide)
	})

	t.Run("Branches match the in-memory catalog", func(t *testing.T) {
		branches, err := catalog.Branches(ctx, "Bi-211")
		require.NoError(t, err)
		require.Len(t, branches, 2)
		assert.Equal(t, "Tl-207", branches[0].Progeny)
		assert.Equal(t, 0.99724, branches[0].Fraction)
		assert.Equal(t, model.DecayModeAlpha, branches[0].Mode)
	})

	t.Run("Chain walk over the database", func(t *testing.T) {
		steps, err := graph.LinearChain(ctx, catalog, "Ra-223", 8)
		require.NoError(t, err)
		assert.Equal(t, []string{"Ra-223", "Rn-219", "Po-215", "Pb-211", "Bi-211", "Tl-207", "Pb-207"}, steps[len(steps)-1].Path)
	})

	t.Run("Half-lives from the database", func(t *testing.T) {
		halfLives, err := decay.HalfLives(ctx, catalog, model.NuclideChain{"Th-227", "Ra-223"}, model.TimeUnitDay)
		require.NoError(t, err)
		assert.InDelta(t, 18.68, halfLives[0], 1e-9)
		assert.InDelta(t, 11.43, halfLives[1], 1e-9)
	})

	t.Run("Provider samples from the database", func(t *testing.T) {
		series, err := decay.NewBatemanProvider(catalog, 0).Sample(ctx, decay.SampleRequest{
			Chain:             model.NuclideChain{"Th-227", "Ra-223"},
			InitialActivities: []float64{100, 0},
			ActivityUnit:      model.ActivityUnitKiloBq,
			TimeUnit:          model.TimeUnitDay,
			Span:              186.8,
			Points:            11,
		})
		require.NoError(t, err)
		assert.InDelta(t, 50, series.Activities["Th-227"][1], 1e-9)
	})

	t.Run("Failed seed leaves no rows behind", func(t *testing.T) {
		broken := decay.NewCatalog()
		require.NoError(t, broken.AddNuclide(&model.Nuclide{Name: "Cf-252", HalfLife: 2.645 * model.SecondsPerYear}))
		require.NoError(t, broken.AddNuclide(&model.Nuclide{Name: "Cm-248", HalfLife: 3.48e5 * model.SecondsPerYear}))
		require.NoError(t, broken.AddBranch(&model.DecayBranch{Parent: "Cf-252", Progeny: "Cm-248", Mode: "SF", Fraction: 0.969}))

		_, err := catalog.Seed(ctx, broken)
		require.Error(t, err, "Expected a decay mode outside the enum to fail")

		_, err = catalog.Nuclide(ctx, "Cf-252")
		assert.ErrorIs(t, err, decay.ErrUnknownNuclide, "Expected the nuclide insert to be rolled back")
		_, err = catalog.Nuclide(ctx, "Cm-248")
		assert.ErrorIs(t, err, decay.ErrUnknownNuclide)
	})
}
