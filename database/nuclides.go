package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/siherrmann/decayer/helper"
	"github.com/siherrmann/decayer/model"
	loadSql "github.com/siherrmann/decayer/sql"
)

// NuclidesDBHandlerFunctions defines the interface for Nuclides database operations.
type NuclidesDBHandlerFunctions interface {
	InsertNuclide(ctx context.Context, nuclide *model.Nuclide) error
	UpdateNuclideMetadata(ctx context.Context, name string, metadata model.Metadata) error
	DeleteNuclide(ctx context.Context, name string) error
	SelectNuclide(ctx context.Context, name string) (*model.Nuclide, error)
	SelectAllNuclides(ctx context.Context) ([]*model.Nuclide, error)
}

// NuclidesDBHandler handles nuclide-related database operations
type NuclidesDBHandler struct {
	db *helper.Database
}

// NewNuclidesDBHandler creates a new nuclides database handler.
// It initializes the database connection and loads nuclide-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewNuclidesDBHandler(db *helper.Database, force bool) (*NuclidesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	nuclidesDbHandler := &NuclidesDBHandler{
		db: db,
	}

	err := loadSql.LoadNuclidesSql(nuclidesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load nuclides sql", err)
	}

	err = nuclidesDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized NuclidesDBHandler")

	return nuclidesDbHandler, nil
}

// CreateTable creates the 'nuclides' table in the database.
// If the table already exists, it does not create it again.
func (h *NuclidesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_nuclides();`)
	if err != nil {
		log.Panicf("error initializing nuclides table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table nuclides")

	return nil
}

// InsertNuclide inserts a new nuclide or updates the one with the same name.
// Stable nuclides are stored without a half-life.
func (h *NuclidesDBHandler) InsertNuclide(ctx context.Context, nuclide *model.Nuclide) error {
	return insertNuclide(ctx, h.db.Instance, nuclide)
}

func insertNuclide(ctx context.Context, q querier, nuclide *model.Nuclide) error {
	if nuclide.Metadata == nil {
		nuclide.Metadata = model.Metadata{}
	}

	row := q.QueryRowContext(
		ctx,
		`SELECT * FROM insert_nuclide($1, $2, $3)`,
		nuclide.Name,
		halfLifeValue(nuclide.HalfLife),
		nuclide.Metadata,
	)

	err := scanNuclide(row, nuclide)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// UpdateNuclideMetadata replaces the metadata of a nuclide
func (h *NuclidesDBHandler) UpdateNuclideMetadata(ctx context.Context, name string, metadata model.Metadata) error {
	if metadata == nil {
		metadata = model.Metadata{}
	}

	_, err := h.db.Instance.ExecContext(
		ctx,
		`SELECT update_nuclide_metadata($1, $2)`,
		name,
		metadata,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

// DeleteNuclide deletes a nuclide and its branches by name
func (h *NuclidesDBHandler) DeleteNuclide(ctx context.Context, name string) error {
	_, err := h.db.Instance.ExecContext(
		ctx,
		`SELECT delete_nuclide($1)`,
		name,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

// SelectNuclide retrieves a nuclide by name.
// The error wraps sql.ErrNoRows if there is none.
func (h *NuclidesDBHandler) SelectNuclide(ctx context.Context, name string) (*model.Nuclide, error) {
	nuclide := &model.Nuclide{}
	row := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT * FROM select_nuclide($1)`,
		name,
	)

	err := scanNuclide(row, nuclide)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return nuclide, nil
}

// SelectAllNuclides retrieves all nuclides ordered by name
func (h *NuclidesDBHandler) SelectAllNuclides(ctx context.Context) ([]*model.Nuclide, error) {
	rows, err := h.db.Instance.QueryContext(
		ctx,
		`SELECT * FROM select_all_nuclides()`,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var nuclides []*model.Nuclide
	for rows.Next() {
		nuclide := &model.Nuclide{}
		err := scanNuclide(rows, nuclide)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		nuclides = append(nuclides, nuclide)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return nuclides, nil
}

// querier is satisfied by *sql.DB and *sql.Tx
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNuclide(row scanner, nuclide *model.Nuclide) error {
	var halfLife sql.NullFloat64
	err := row.Scan(
		&nuclide.ID,
		&nuclide.Name,
		&halfLife,
		&nuclide.Metadata,
		&nuclide.CreatedAt,
	)
	if err != nil {
		return err
	}

	nuclide.HalfLife = math.Inf(1)
	if halfLife.Valid {
		nuclide.HalfLife = halfLife.Float64
	}
	return nil
}

func halfLifeValue(halfLife float64) sql.NullFloat64 {
	if math.IsInf(halfLife, 1) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: halfLife, Valid: true}
}
