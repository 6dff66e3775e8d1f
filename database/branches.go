package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/decayer/helper"
	"github.com/siherrmann/decayer/model"
	loadSql "github.com/siherrmann/decayer/sql"
)

// BranchesDBHandlerFunctions defines the interface for decay branch database operations.
type BranchesDBHandlerFunctions interface {
	InsertBranch(ctx context.Context, branch *model.DecayBranch) error
	SelectBranchesFromNuclide(ctx context.Context, parent string) ([]*model.DecayBranch, error)
	SelectAllBranches(ctx context.Context) ([]*model.DecayBranch, error)
	DeleteBranch(ctx context.Context, id uuid.UUID) error
}

// BranchesDBHandler handles decay branch database operations
type BranchesDBHandler struct {
	db *helper.Database
}

// NewBranchesDBHandler creates a new branches database handler.
// The nuclides table has to exist before, branches reference it.
// If force is true, it will reload the SQL functions even if they already exist.
func NewBranchesDBHandler(db *helper.Database, force bool) (*BranchesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	branchesDbHandler := &BranchesDBHandler{
		db: db,
	}

	err := loadSql.LoadBranchesSql(branchesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load branches sql", err)
	}

	err = branchesDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized BranchesDBHandler")

	return branchesDbHandler, nil
}

// CreateTable creates the 'decay_branches' table and its parent index.
// If the table already exists, it does not create it again.
func (h *BranchesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_branches();`)
	if err != nil {
		log.Panicf("error initializing decay_branches table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table decay_branches")

	return nil
}

// InsertBranch inserts a new branch or updates the one between the same nuclides
func (h *BranchesDBHandler) InsertBranch(ctx context.Context, branch *model.DecayBranch) error {
	return insertBranch(ctx, h.db.Instance, branch)
}

func insertBranch(ctx context.Context, q querier, branch *model.DecayBranch) error {
	if branch.Metadata == nil {
		branch.Metadata = model.Metadata{}
	}

	row := q.QueryRowContext(
		ctx,
		`SELECT * FROM insert_branch($1, $2, $3, $4, $5)`,
		branch.Parent,
		branch.Progeny,
		branch.Mode,
		branch.Fraction,
		branch.Metadata,
	)

	err := scanBranch(row, branch)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectBranchesFromNuclide retrieves the branches of a parent, largest fraction first
func (h *BranchesDBHandler) SelectBranchesFromNuclide(ctx context.Context, parent string) ([]*model.DecayBranch, error) {
	return h.selectBranches(ctx, `SELECT * FROM select_branches_from_nuclide($1)`, parent)
}

// SelectAllBranches retrieves every branch grouped by parent
func (h *BranchesDBHandler) SelectAllBranches(ctx context.Context) ([]*model.DecayBranch, error) {
	return h.selectBranches(ctx, `SELECT * FROM select_all_branches()`)
}

// DeleteBranch deletes a branch by ID
func (h *BranchesDBHandler) DeleteBranch(ctx context.Context, id uuid.UUID) error {
	_, err := h.db.Instance.ExecContext(
		ctx,
		`SELECT delete_branch($1)`,
		id,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

func (h *BranchesDBHandler) selectBranches(ctx context.Context, query string, args ...any) ([]*model.DecayBranch, error) {
	rows, err := h.db.Instance.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var branches []*model.DecayBranch
	for rows.Next() {
		branch := &model.DecayBranch{}
		err := scanBranch(rows, branch)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		branches = append(branches, branch)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return branches, nil
}

func scanBranch(row scanner, branch *model.DecayBranch) error {
	return row.Scan(
		&branch.ID,
		&branch.Parent,
		&branch.Progeny,
		&branch.Mode,
		&branch.Fraction,
		&branch.Metadata,
		&branch.CreatedAt,
	)
}
