package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deniz-lab/wrangle/internal/tidy"
)

var (
	nanodropGlobs     []string
	nanodropOut       string
	nanodropParseKey  string
	nanodropSep       string
	nanodropFields    []string
	nanodropKinds     []string
	nanodropKeepBuf   bool
	nanodropDropBad   bool
	nanodropSampleCol string
)

var nanodropCmd = &cobra.Command{
	Use:   "nanodrop",
	Short: "Tidy nanodrop spectrophotometer exports",
	Long: `Reads one or more nanodrop CSV/TSV exports, strips export junk,
pivots the per-read wavelength/absorbance column pairs into one column per
wavelength, parses sample names against a naming convention, and writes a
tidy CSV.

Examples:
  # built-in RNA/peptide convention, drop buffers, write tidy.csv
  wrangle nanodrop --glob 'exports/*.tsv' --out tidy.csv

  # custom three-field convention, keep buffers
  wrangle nanodrop --glob 'exports/*.csv' \
    --sep _ --fields Peptide,Concentration,Ratio --keep-buffers`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		files, err := expandGlobs(nanodropGlobs)
		if err != nil {
			return eris.Wrap(err, "nanodrop: expand globs")
		}
		zap.L().Info("nanodrop: tidying", zap.Int("files", len(files)))

		key, err := buildParseKey(nanodropParseKey, nanodropSep, nanodropFields, nanodropKinds)
		if err != nil {
			return eris.Wrap(err, "nanodrop: build parse key")
		}

		sampleCol := nanodropSampleCol
		if sampleCol == "" {
			sampleCol = cfg.Tidy.SampleColumn
		}

		result, err := tidy.Tidy(files, tidy.Options{
			SampleColumn:  sampleCol,
			Key:           key,
			BufferNames:   cfg.Tidy.BufferNames,
			DropBuffers:   !nanodropKeepBuf,
			DropMalformed: nanodropDropBad,
		})
		if err != nil {
			return eris.Wrap(err, "nanodrop: tidy")
		}

		return writeTable(result, nanodropOut)
	},
}

func init() {
	nanodropCmd.Flags().StringSliceVar(&nanodropGlobs, "glob", nil, "file glob pattern(s) to tidy (required)")
	nanodropCmd.Flags().StringVar(&nanodropOut, "out", "", "output CSV path (default: stdout)")
	nanodropCmd.Flags().StringVar(&nanodropParseKey, "parse-key", "", "built-in naming convention: rna-peptide or kdna-mg2")
	nanodropCmd.Flags().StringVar(&nanodropSep, "sep", "_", "sample-name separator for --fields")
	nanodropCmd.Flags().StringSliceVar(&nanodropFields, "fields", nil, "ordered field names encoded in sample names")
	nanodropCmd.Flags().StringSliceVar(&nanodropKinds, "kinds", nil, "field types matching --fields (str, int, float, bool)")
	nanodropCmd.Flags().BoolVar(&nanodropKeepBuf, "keep-buffers", false, "keep buffer/blank rows with empty metadata")
	nanodropCmd.Flags().BoolVar(&nanodropDropBad, "drop-malformed", false, "drop rows whose sample names do not parse")
	nanodropCmd.Flags().StringVar(&nanodropSampleCol, "sample-column", "", "sample-name column (default from config)")
	_ = nanodropCmd.MarkFlagRequired("glob")
	rootCmd.AddCommand(nanodropCmd)
}
