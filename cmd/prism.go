package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/deniz-lab/wrangle/internal/labstats"
	"github.com/deniz-lab/wrangle/internal/table"
)

var (
	prismIn       string
	prismOut      string
	prismValue    string
	prismRowVar   string
	prismColVar   string
	prismOutliers bool
	prismGroupBy  []string
)

var prismCmd = &cobra.Command{
	Use:   "prism",
	Short: "Summarize a tidy table for GraphPad Prism",
	Long: `Groups a tidy CSV and reports mean, standard deviation, and N of a
measurement column per group, ready for transfer into GraphPad Prism.
With --flag-outliers, rows are first flagged against the IQR bounds of
samples with matching metadata.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		t, err := table.ReadFile(prismIn, table.ReadOptions{TrimSpace: true})
		if err != nil {
			return eris.Wrap(err, "prism: read input")
		}

		if prismOutliers {
			t, err = labstats.FlagOutliers(t, prismValue, prismGroupBy...)
			if err != nil {
				return eris.Wrap(err, "prism: flag outliers")
			}
		}

		summary, err := labstats.PrismSummary(t, prismValue, prismRowVar, prismColVar)
		if err != nil {
			return eris.Wrap(err, "prism: summarize")
		}

		return writeTable(summary, prismOut)
	},
}

func init() {
	prismCmd.Flags().StringVar(&prismIn, "in", "", "tidy CSV to summarize (required)")
	prismCmd.Flags().StringVar(&prismOut, "out", "", "output CSV path (default: stdout)")
	prismCmd.Flags().StringVar(&prismValue, "value", "Intensity", "measurement column to summarize")
	prismCmd.Flags().StringVar(&prismRowVar, "row", "[titrant] (nM)", "grouping column for summary rows")
	prismCmd.Flags().StringVar(&prismColVar, "col", "", "optional second grouping column")
	prismCmd.Flags().BoolVar(&prismOutliers, "flag-outliers", false, "add an IQR outlier column before summarizing")
	prismCmd.Flags().StringSliceVar(&prismGroupBy, "group-by", nil, "metadata columns defining outlier groups")
	_ = prismCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(prismCmd)
}
