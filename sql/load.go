package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
)

//go:embed init.sql
var initSQL string

//go:embed nuclides.sql
var nuclidesSQL string

//go:embed branches.sql
var branchesSQL string

// Function lists for verification
var NuclidesFunctions = []string{
	"init_nuclides",
	"insert_nuclide",
	"select_nuclide",
	"select_all_nuclides",
	"update_nuclide_metadata",
	"delete_nuclide",
}

var BranchesFunctions = []string{
	"init_branches",
	"insert_branch",
	"select_branches_from_nuclide",
	"select_all_branches",
	"delete_branch",
}

// Init creates the types shared by the catalog tables
func Init(db *sql.DB) error {
	_, err := db.Exec(initSQL)
	if err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}

	log.Println("Database types initialized successfully")
	return nil
}

// LoadNuclidesSql loads nuclide-related SQL functions
func LoadNuclidesSql(db *sql.DB, force bool) error {
	return loadFunctions(db, "nuclides", nuclidesSQL, NuclidesFunctions, force)
}

// LoadBranchesSql loads branch-related SQL functions
func LoadBranchesSql(db *sql.DB, force bool) error {
	return loadFunctions(db, "branches", branchesSQL, BranchesFunctions, force)
}

// LoadAllSql loads all SQL functions
func LoadAllSql(db *sql.DB, force bool) error {
	if err := LoadNuclidesSql(db, force); err != nil {
		return err
	}

	if err := LoadBranchesSql(db, force); err != nil {
		return err
	}

	return nil
}

// loadFunctions executes script unless all functions exist already.
// With force the script is executed in any case.
func loadFunctions(db *sql.DB, name string, script string, functions []string, force bool) error {
	if !force {
		exist, err := checkFunctions(db, functions)
		if err != nil {
			return fmt.Errorf("error checking existing %s functions: %w", name, err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(script)
	if err != nil {
		return fmt.Errorf("error executing %s SQL: %w", name, err)
	}

	exist, err := checkFunctions(db, functions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Printf("SQL %s functions loaded successfully", name)
	return nil
}

// checkFunctions verifies that all required functions exist in the database
func checkFunctions(db *sql.DB, sqlFunctions []string) (bool, error) {
	var allExist bool
	for _, f := range sqlFunctions {
		err := db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);`,
			f,
		).Scan(&allExist)
		if err != nil {
			return false, fmt.Errorf("error checking existence of function %s: %w", f, err)
		}
		if !allExist {
			log.Printf("Function %s does not exist", f)
			break
		}
	}
	return allExist, nil
}
