package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deniz-lab/wrangle/internal/plot"
	"github.com/deniz-lab/wrangle/internal/table"
)

var (
	plotIn       string
	plotOut      string
	plotX        string
	plotY        string
	plotCat      string
	plotLogX     bool
	plotLogY     bool
	plotTitle    string
	plotAverages bool
	plotFormat   string
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Scatter-plot a tidy table",
	Long: `Renders a scatter plot of two numeric columns of a tidy CSV as PNG
or SVG. An optional category column colors the points with the lab's
standard palette; --averages adds a median line per category.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		t, err := table.ReadFile(plotIn, table.ReadOptions{TrimSpace: true})
		if err != nil {
			return eris.Wrap(err, "plot: read input")
		}

		format := plotFormat
		if format == "" {
			format = strings.TrimPrefix(filepath.Ext(plotOut), ".")
		}
		if format == "" {
			format = cfg.Plot.Format
		}

		f, err := os.Create(plotOut)
		if err != nil {
			return eris.Wrap(err, "plot: create output file")
		}
		defer f.Close() //nolint:errcheck

		err = plot.Render(t, plot.Spec{
			X:        plotX,
			Y:        plotY,
			Category: plotCat,
			LogX:     plotLogX,
			LogY:     plotLogY,
			Title:    plotTitle,
			Averages: plotAverages,
			Width:    cfg.Plot.Width,
			Height:   cfg.Plot.Height,
		}, format, f)
		if err != nil {
			return err
		}

		zap.L().Info("wrote plot", zap.String("path", plotOut), zap.String("format", format))
		return nil
	},
}

func init() {
	plotCmd.Flags().StringVar(&plotIn, "in", "", "tidy CSV to plot (required)")
	plotCmd.Flags().StringVar(&plotOut, "out", "", "output image path (required)")
	plotCmd.Flags().StringVar(&plotX, "x", "", "x-axis column (required)")
	plotCmd.Flags().StringVar(&plotY, "y", "", "y-axis column (required)")
	plotCmd.Flags().StringVar(&plotCat, "cat", "", "category column for point colors")
	plotCmd.Flags().BoolVar(&plotLogX, "log-x", false, "log-scale x axis")
	plotCmd.Flags().BoolVar(&plotLogY, "log-y", false, "log-scale y axis")
	plotCmd.Flags().StringVar(&plotTitle, "title", "", "plot title")
	plotCmd.Flags().BoolVar(&plotAverages, "averages", false, "add a median line per category")
	plotCmd.Flags().StringVar(&plotFormat, "format", "", "png or svg (default: from --out extension, then config)")
	_ = plotCmd.MarkFlagRequired("in")
	_ = plotCmd.MarkFlagRequired("out")
	_ = plotCmd.MarkFlagRequired("x")
	_ = plotCmd.MarkFlagRequired("y")
	rootCmd.AddCommand(plotCmd)
}
