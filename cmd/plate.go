package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deniz-lab/wrangle/internal/plate"
	"github.com/deniz-lab/wrangle/internal/table"
)

var (
	plateGlobs []string
	plateOut   string
)

var plateCmd = &cobra.Command{
	Use:   "plate",
	Short: "Tidy plate fluorimeter workbooks",
	Long: `Reads the core facility's plate fluorimeter XLSX workbooks into a
tidy table: one row per well per read, with plate row, plate column,
intensity, read parameters, and the run number from each sheet name.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		files, err := expandGlobs(plateGlobs)
		if err != nil {
			return eris.Wrap(err, "plate: expand globs")
		}

		tables := make([]*table.Table, 0, len(files))
		for _, f := range files {
			t, err := plate.ReadFile(f)
			if err != nil {
				return eris.Wrapf(err, "plate: read %s", f)
			}
			zap.L().Info("plate: read workbook", zap.String("path", f), zap.Int("wells", t.Len()))
			tables = append(tables, t)
		}

		return writeTable(table.Concat(tables...), plateOut)
	},
}

func init() {
	plateCmd.Flags().StringSliceVar(&plateGlobs, "glob", nil, "file glob pattern(s) for XLSX workbooks (required)")
	plateCmd.Flags().StringVar(&plateOut, "out", "", "output CSV path (default: stdout)")
	_ = plateCmd.MarkFlagRequired("glob")
	rootCmd.AddCommand(plateCmd)
}
