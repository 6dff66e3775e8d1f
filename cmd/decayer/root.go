package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/siherrmann/decayer"
	"github.com/siherrmann/decayer/core/curve"
	"github.com/siherrmann/decayer/core/decay"
	"github.com/siherrmann/decayer/core/timeutil"
	"github.com/siherrmann/decayer/helper"
	"github.com/siherrmann/decayer/model"
	"github.com/spf13/cobra"
)

var (
	logLevel    string
	useDatabase bool
)

// RootCmd is the decayer command line
var RootCmd = &cobra.Command{
	Use:   "decayer",
	Short: "Activity curves of radioactive parent/progeny pairs",
	Long: `decayer samples the activity of a decay chain over twelve of its longest
half-lives and reports the activities and shares at a given time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error), defaults to DECAYER_LOG_LEVEL")
	RootCmd.PersistentFlags().BoolVar(&useDatabase, "database", false, "Read nuclides from the PostgreSQL catalog configured by the DB_* variables")
}

// newDecayer creates the facade from flags and environment
func newDecayer() (*decayer.Decayer, error) {
	level := decayer.LoadLogLevel()
	if logLevel != "" {
		level = helper.ParseLogLevel(logLevel)
	}
	logger := helper.NewLogger(os.Stderr, level)

	config, err := decayer.LoadCurveConfig()
	if err != nil {
		return nil, err
	}
	opts := []decayer.Option{
		decayer.WithLogger(logger),
		decayer.WithConfig(config),
	}

	if !useDatabase {
		return decayer.New(decay.DefaultCatalog(), opts...), nil
	}

	dbConfig, err := helper.NewDatabaseConfiguration()
	if err != nil {
		return nil, err
	}
	return decayer.NewWithDatabase(dbConfig, opts...)
}

var errInvalidDate = errors.New("invalid date")

// userMessage maps errors to messages for the terminal
func userMessage(err error) string {
	switch {
	case errors.Is(err, errInvalidDate):
		return "dates must be YYYY-MM-DD"
	case errors.Is(err, timeutil.ErrInvalidFormat):
		return "time must be HH:MM"
	case errors.Is(err, model.ErrUnknownPair):
		return fmt.Sprintf("%v, run 'decayer pairs' for the available pairs", err)
	case errors.Is(err, decay.ErrUnknownNuclide):
		return fmt.Sprintf("%v, run 'decayer nuclides' for the catalog", err)
	case errors.Is(err, decay.ErrBrokenChain):
		return "each chain member must be a direct progeny of the previous one"
	case errors.Is(err, curve.ErrNoFiniteHalfLife):
		return "the chain has no radioactive member"
	default:
		return err.Error()
	}
}
