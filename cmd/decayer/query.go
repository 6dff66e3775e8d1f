package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

var queryInput curveInput

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Activities of a chain at a target time",
	Long: `Query samples the decay curve of a pair or chain and reports the activity
and share of every member at the target time or after the elapsed time.`,
	Example: `  decayer query --pair "Th-227 / Ra-223" --parent-activity 1 --measured-date 2024-03-01 --measured-time 09:00 --elapsed 11.43
  decayer query --chain Mo-99,Tc-99m --activities 10,0 -a mCi -u h --measured-date 2024-03-01 --target-date 2024-03-02 --target-time 09:00`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := queryInput.request(cmd, time.Now())
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
		return printReport(cmd.OutOrStdout(), result, d.Config())
	},
}

func init() {
	queryInput.register(queryCmd)
	RootCmd.AddCommand(queryCmd)
}
