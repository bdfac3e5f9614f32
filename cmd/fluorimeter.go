package main

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deniz-lab/wrangle/internal/ifx"
	"github.com/deniz-lab/wrangle/internal/tidy"
	"github.com/deniz-lab/wrangle/internal/units"
)

var (
	fluorGlobs        []string
	fluorOut          string
	fluorTitle        bool
	fluorCorrect      bool
	fluorSlit         float64
	fluorNormalize    bool
	fluorDropZeros    []string
	fluorBreakOut     string
	fluorBreakOutCols []string
)

var fluorimeterCmd = &cobra.Command{
	Use:   "fluorimeter",
	Short: "Assemble fluorimeter .ifx exports into one tidy table",
	Long: `Reads .ifx files, promotes the experiment conditions recorded in
each file's descriptor (concentrations, comment, timestamp, fixed
wavelengths) to columns, and concatenates everything into one CSV.

When runs titrate different molecules, --break-out titrant combines the
mutually exclusive per-molecule condition columns into "titrant" and
"[titrant]" columns (the grouping the prism command expects by default).
Concentration conditions are converted to nanomolar unless --nm=false
is given. With --correct, intensities are divided by the
instrument sensitivity at each row's emission wavelength; the slit width
is read from the comment column unless --slit is given.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		files, err := expandGlobs(fluorGlobs)
		if err != nil {
			return eris.Wrap(err, "fluorimeter: expand globs")
		}
		zap.L().Info("fluorimeter: assembling", zap.Int("files", len(files)))

		result, err := ifx.Assemble(files, ifx.AssembleOptions{TitleAsColumn: fluorTitle})
		if err != nil {
			return eris.Wrap(err, "fluorimeter: assemble")
		}

		if fluorBreakOut != "" {
			result, err = tidy.BreakOutVariable(result, fluorBreakOut, fluorBreakOutCols...)
			if err != nil {
				return eris.Wrap(err, "fluorimeter: break out variable")
			}
		}

		if fluorNormalize {
			for _, c := range result.Columns {
				if !strings.HasPrefix(c, "[") || !strings.HasSuffix(c, "]") {
					continue
				}
				if err := units.NormalizeColumn(result, c); err != nil {
					return eris.Wrap(err, "fluorimeter: normalize concentrations")
				}
			}
		}

		if fluorCorrect {
			result, err = ifx.CorrectIntensity(result, fluorSlit)
			if err != nil {
				return eris.Wrap(err, "fluorimeter: correct intensity")
			}
		}

		if len(fluorDropZeros) > 0 {
			result, err = tidy.DropZeros(result, fluorDropZeros...)
			if err != nil {
				return eris.Wrap(err, "fluorimeter: drop zeros")
			}
		}

		return writeTable(result, fluorOut)
	},
}

func init() {
	fluorimeterCmd.Flags().StringSliceVar(&fluorGlobs, "glob", nil, "file glob pattern(s) for .ifx files (required)")
	fluorimeterCmd.Flags().StringVar(&fluorOut, "out", "", "output CSV path (default: stdout)")
	fluorimeterCmd.Flags().BoolVar(&fluorTitle, "title-column", false, "carry the descriptor title through as a column")
	fluorimeterCmd.Flags().BoolVar(&fluorCorrect, "correct", false, "apply instrument sensitivity corrections to intensities")
	fluorimeterCmd.Flags().Float64Var(&fluorSlit, "slit", 0, "slit width for corrections: 0.5, 1, or 2 (default: detect from comments)")
	fluorimeterCmd.Flags().StringVar(&fluorBreakOut, "break-out", "", "combine per-molecule [condition] columns into <name> and [<name>] columns")
	fluorimeterCmd.Flags().StringSliceVar(&fluorBreakOutCols, "break-out-columns", nil, "columns to combine (default: every column with empty cells)")
	fluorimeterCmd.Flags().BoolVar(&fluorNormalize, "nm", true, "convert [condition] concentration columns to nM")
	fluorimeterCmd.Flags().StringSliceVar(&fluorDropZeros, "drop-zeros", nil, "drop rows holding zero in these columns (for log-scale plots)")
	_ = fluorimeterCmd.MarkFlagRequired("glob")
	rootCmd.AddCommand(fluorimeterCmd)
}
