package main

import (
	"context"

	"github.com/siherrmann/decayer/core/decay"
	"github.com/siherrmann/decayer/core/graph"
	"github.com/spf13/cobra"
)

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "List the selectable nuclide pairs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDecayer()
		if err != nil {
			return err
		}
		defer d.Close()

		return printPairs(cmd.OutOrStdout(), d.Pairs())
	},
}

var nuclidesCmd = &cobra.Command{
	Use:   "nuclides",
	Short: "List the nuclides of the catalog with their half-lives",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDecayer()
		if err != nil {
			return err
		}
		defer d.Close()

		nuclides, err := d.Nuclides(context.Background())
		if err != nil {
			return err
		}
		return printNuclides(cmd.OutOrStdout(), nuclides)
	},
}

var (
	progenyHops   int
	progenyDirect bool
)

var progenyCmd = &cobra.Command{
	Use:   "progeny NUCLIDE",
	Short: "Walk the decay graph below a nuclide",
	Long: `Progeny lists every nuclide reachable from NUCLIDE over catalog decay
branches, with its distance and the cumulative branching fraction.`,
	Example: `  decayer progeny Ac-225
  decayer progeny Bi-211 --direct`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDecayer()
		if err != nil {
			return err
		}
		defer d.Close()

		var steps []*graph.ChainStep
		if progenyDirect {
			steps, err = d.DirectProgeny(context.Background(), args[0])
		} else {
			steps, err = d.Descendants(context.Background(), args[0], progenyHops)
		}
		if err != nil {
			return err
		}
		return printSteps(cmd.OutOrStdout(), steps)
	},
}

func init() {
	progenyCmd.Flags().IntVar(&progenyHops, "hops", decay.DefaultMaxDepth, "Maximum number of decays to follow")
	progenyCmd.Flags().BoolVar(&progenyDirect, "direct", false, "Only list the direct progeny")

	RootCmd.AddCommand(pairsCmd)
	RootCmd.AddCommand(nuclidesCmd)
	RootCmd.AddCommand(progenyCmd)
}
