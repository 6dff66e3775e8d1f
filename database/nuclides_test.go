package database

import (
	"context"
	"database/sql"
	"math"
	"testing"
	"time"

	"github.com/siherrmann/decayer/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNuclidesNewNuclidesDBHandler(t *testing.T) {
	database := initDB(t)

	t.Run("Valid call NewNuclidesDBHandler", func(t *testing.T) {
		nuclidesDbHandler, err := NewNuclidesDBHandler(database, true)
		assert.NoError(t, err, "Expected NewNuclidesDBHandler to not return an error")
		require.NotNil(t, nuclidesDbHandler, "Expected NewNuclidesDBHandler to return a non-nil instance")
		require.NotNil(t, nuclidesDbHandler.db, "Expected NewNuclidesDBHandler to have a non-nil database instance")
		require.NotNil(t, nuclidesDbHandler.db.Instance, "Expected NewNuclidesDBHandler to have a non-nil database connection instance")
	})

	t.Run("Invalid call NewNuclidesDBHandler with nil database", func(t *testing.T) {
		_, err := NewNuclidesDBHandler(nil, false)
		assert.Error(t, err, "Expected error when creating NuclidesDBHandler with nil database")
		assert.Contains(t, err.Error(), "database connection is nil", "Expected specific error message for nil database connection")
	})
}

func TestNuclidesInsert(t *testing.T) {
	ctx := context.Background()
	database := initDB(t)

	nuclidesDbHandler, err := NewNuclidesDBHandler(database, true)
	require.NoError(t, err, "Expected NewNuclidesDBHandler to not return an error")

	t.Run("Insert nuclide", func(t *testing.T) {
		nuclide := &model.Nuclide{
			Name:     "I-131",
			HalfLife: 8.0252 * 86400,
			Metadata: model.Metadata{"source": "ICRP-107"},
		}

		err := nuclidesDbHandler.InsertNuclide(ctx, nuclide)
		assert.NoError(t, err, "Expected Insert to not return an error")
		assert.NotEmpty(t, nuclide.ID, "Expected inserted nuclide to have an ID")
		assert.Equal(t, 8.0252*86400, nuclide.HalfLife)
		assert.Equal(t, "ICRP-107", nuclide.Metadata.String("source"))
		assert.WithinDuration(t, time.Now(), nuclide.CreatedAt, 2*time.Second, "Expected CreatedAt to be set")

		// Cleanup
		nuclidesDbHandler.DeleteNuclide(ctx, nuclide.Name)
	})

	t.Run("Insert stable nuclide", func(t *testing.T) {
		nuclide := &model.Nuclide{Name: "Xe-131", HalfLife: math.Inf(1)}

		err := nuclidesDbHandler.InsertNuclide(ctx, nuclide)
		require.NoError(t, err)
		assert.True(t, nuclide.Stable(), "Expected a NULL half-life to read back as stable")
		assert.NotNil(t, nuclide.Metadata, "Expected empty metadata instead of nil")

		var halfLife sql.NullFloat64
		err = database.Instance.QueryRow(`SELECT half_life FROM nuclides WHERE name = $1`, nuclide.Name).Scan(&halfLife)
		require.NoError(t, err)
		assert.False(t, halfLife.Valid, "Expected stable half-life to be stored as NULL")

		// Cleanup
		nuclidesDbHandler.DeleteNuclide(ctx, nuclide.Name)
	})

	t.Run("Insert duplicate nuclide (upsert)", func(t *testing.T) {
		first := &model.Nuclide{Name: "Lu-177", HalfLife: 6.64 * 86400}
		err := nuclidesDbHandler.InsertNuclide(ctx, first)
		require.NoError(t, err)

		second := &model.Nuclide{Name: "Lu-177", HalfLife: 6.647 * 86400, Metadata: model.Metadata{"source": "update"}}
		err = nuclidesDbHandler.InsertNuclide(ctx, second)
		assert.NoError(t, err, "Expected Insert to not return an error for duplicate")
		assert.Equal(t, first.ID, second.ID, "Expected the existing row to be updated")
		assert.Equal(t, 6.647*86400, second.HalfLife)

		// Cleanup
		nuclidesDbHandler.DeleteNuclide(ctx, first.Name)
	})

	t.Run("Insert nuclide with invalid half-life", func(t *testing.T) {
		err := nuclidesDbHandler.InsertNuclide(ctx, &model.Nuclide{Name: "Bad-1", HalfLife: -1})
		assert.Error(t, err, "Expected negative half-life to violate the check constraint")
	})
}

func TestNuclidesSelect(t *testing.T) {
	ctx := context.Background()
	database := initDB(t)

	nuclidesDbHandler, err := NewNuclidesDBHandler(database, true)
	require.NoError(t, err)

	nuclide := &model.Nuclide{Name: "F-18", HalfLife: 109.77 * 60}
	err = nuclidesDbHandler.InsertNuclide(ctx, nuclide)
	require.NoError(t, err)
	defer nuclidesDbHandler.DeleteNuclide(ctx, nuclide.Name)

	t.Run("Select existing nuclide", func(t *testing.T) {
		found, err := nuclidesDbHandler.SelectNuclide(ctx, "F-18")
		assert.NoError(t, err, "Expected Select to not return an error")
		require.NotNil(t, found)
		assert.Equal(t, nuclide.ID, found.ID)
		assert.Equal(t, nuclide.HalfLife, found.HalfLife)
	})

	t.Run("Select non-existent nuclide", func(t *testing.T) {
		_, err := nuclidesDbHandler.SelectNuclide(ctx, "F-19")
		assert.ErrorIs(t, err, sql.ErrNoRows, "Expected no rows for a missing nuclide")
	})

	t.Run("Select all nuclides is ordered by name", func(t *testing.T) {
		other := &model.Nuclide{Name: "C-11", HalfLife: 20.364 * 60}
		require.NoError(t, nuclidesDbHandler.InsertNuclide(ctx, other))
		defer nuclidesDbHandler.DeleteNuclide(ctx, other.Name)

		nuclides, err := nuclidesDbHandler.SelectAllNuclides(ctx)
		assert.NoError(t, err)

		names := make([]string, len(nuclides))
		for i, n := range nuclides {
			names[i] = n.Name
		}
		assert.Contains(t, names, "F-18")
		assert.Contains(t, names, "C-11")
		assert.IsIncreasing(t, names)
	})
}

func TestNuclidesUpdateMetadata(t *testing.T) {
	ctx := context.Background()
	database := initDB(t)

	nuclidesDbHandler, err := NewNuclidesDBHandler(database, true)
	require.NoError(t, err)

	nuclide := &model.Nuclide{Name: "Ga-67", HalfLife: 3.2617 * 86400}
	require.NoError(t, nuclidesDbHandler.InsertNuclide(ctx, nuclide))
	defer nuclidesDbHandler.DeleteNuclide(ctx, nuclide.Name)

	t.Run("Update metadata", func(t *testing.T) {
		err := nuclidesDbHandler.UpdateNuclideMetadata(ctx, "Ga-67", model.Metadata{"note": "SPECT"})
		assert.NoError(t, err)

		found, err := nuclidesDbHandler.SelectNuclide(ctx, "Ga-67")
		require.NoError(t, err)
		assert.Equal(t, "SPECT", found.Metadata.String("note"))
	})

	t.Run("Update metadata to nil clears it", func(t *testing.T) {
		err := nuclidesDbHandler.UpdateNuclideMetadata(ctx, "Ga-67", nil)
		assert.NoError(t, err)

		found, err := nuclidesDbHandler.SelectNuclide(ctx, "Ga-67")
		require.NoError(t, err)
		assert.Empty(t, found.Metadata)
	})
}

func TestNuclidesDelete(t *testing.T) {
	ctx := context.Background()
	database := initDB(t)

	nuclidesDbHandler, err := NewNuclidesDBHandler(database, true)
	require.NoError(t, err)

	t.Run("Delete existing nuclide", func(t *testing.T) {
		nuclide := &model.Nuclide{Name: "In-111", HalfLife: 2.8047 * 86400}
		require.NoError(t, nuclidesDbHandler.InsertNuclide(ctx, nuclide))

		err := nuclidesDbHandler.DeleteNuclide(ctx, "In-111")
		assert.NoError(t, err, "Expected Delete to not return an error")

		_, err = nuclidesDbHandler.SelectNuclide(ctx, "In-111")
		assert.Error(t, err, "Expected error when selecting deleted nuclide")
	})

	t.Run("Delete non-existent nuclide", func(t *testing.T) {
		err := nuclidesDbHandler.DeleteNuclide(ctx, "In-112")
		assert.NoError(t, err, "Expected no error when deleting a missing nuclide")
	})
}
