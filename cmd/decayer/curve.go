package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	curveInputs curveInput
	curveFormat string
)

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Sampled decay curve of a chain",
	Long: `Curve writes the sampled activity of every chain member over the full span,
one row per sample, as CSV or as the complete JSON result.`,
	Example: `  decayer curve --pair "Ge-68 / Ga-68" --parent-activity 50 -a MBq -u h > ge68.csv
  decayer curve --pair "Sr-90 / Y-90" --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if curveFormat != "csv" && curveFormat != "json" {
			return fmt.Errorf("unknown format %q, use csv or json", curveFormat)
		}

		req, err := curveInputs.request(cmd, time.Now())
		if err != nil {
			return err
		}

		d, err := newDecayer()
		if err != nil {
			return err
		}
		defer d.Close()

		result, err := d.Compute(context.Background(), req)
		if err != nil {
			return err
		}

		if curveFormat == "json" {
			return writeJSON(cmd.OutOrStdout(), result)
		}
		return writeCSV(cmd.OutOrStdout(), result.Series)
	},
}

func init() {
	curveInputs.register(curveCmd)
	curveCmd.Flags().StringVarP(&curveFormat, "format", "f", "csv", "Output format (csv, json)")
	RootCmd.AddCommand(curveCmd)
}
