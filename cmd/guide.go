package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/deniz-lab/wrangle/internal/ifx"
	"github.com/deniz-lab/wrangle/internal/plate"
	"github.com/deniz-lab/wrangle/internal/plot"
	"github.com/deniz-lab/wrangle/internal/prompt"
	"github.com/deniz-lab/wrangle/internal/table"
	"github.com/deniz-lab/wrangle/internal/tidy"
)

const previewRows = 10

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Interactively tidy instrument exports (no flags needed)",
	Long: `A guided session for non-coders: answers a few questions about your
files and naming convention, shows a preview of the tidy table, saves it,
and optionally plots it. Type "quit" at any prompt to stop.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p := prompt.New(os.Stdin, os.Stdout)

		err := runGuide(p)
		if eris.Is(err, prompt.ErrQuit) {
			fmt.Println("Goodbye!")
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(guideCmd)
}

func runGuide(p *prompt.Prompter) error {
	files, ext, err := p.CollectFiles("What file(s) would you like to tidy? Glob patterns like data/*.tsv are allowed.")
	if err != nil {
		return err
	}

	kind, err := fileKind(p, ext)
	if err != nil {
		return err
	}

	var result *table.Table
	switch kind {
	case "nanodrop":
		result, err = guideNanodrop(p, files)
	case "fluorimeter":
		result, err = ifx.Assemble(files, ifx.AssembleOptions{})
	case "plate":
		result, err = guidePlate(files)
	}
	if err != nil {
		return err
	}

	preview(result)

	out, err := p.Text("What file name should the tidy table be saved under? Leave blank to skip saving.")
	if err != nil {
		return err
	}
	if out != "" {
		if err := result.WriteFile(out); err != nil {
			return err
		}
		fmt.Printf("Saved %d rows to %s\n", result.Len(), out)
	}

	wantPlot, err := p.YesNo("Would you like to plot the data?")
	if err != nil {
		return err
	}
	if !wantPlot {
		return nil
	}
	return guidePlot(p, result)
}

// fileKind maps a detected extension to an instrument type, asking when the
// extension is missing or ambiguous.
func fileKind(p *prompt.Prompter, ext string) (string, error) {
	switch ext {
	case "csv", "tsv", "txt":
		return "nanodrop", nil
	case "ifx":
		return "fluorimeter", nil
	case "xlsx":
		return "plate", nil
	case "xls":
		return "", eris.New("Legacy .xls workbooks are not supported. Re-save the export as .xlsx and try again.")
	}
	return p.Membership(
		"What kind of export is this? Choose one of nanodrop, fluorimeter, or plate.",
		[]string{"nanodrop", "fluorimeter", "plate"},
	)
}

func guideNanodrop(p *prompt.Prompter, files []string) (*table.Table, error) {
	key, err := p.RequestParseKey()
	if err != nil {
		return nil, err
	}
	dropBuffers, err := p.YesNo("Should buffer and blank measurements be dropped?")
	if err != nil {
		return nil, err
	}
	dropMalformed, err := p.YesNo("Should samples whose names do not follow the convention be dropped?")
	if err != nil {
		return nil, err
	}

	return tidy.Tidy(files, tidy.Options{
		SampleColumn:  cfg.Tidy.SampleColumn,
		Key:           key,
		BufferNames:   cfg.Tidy.BufferNames,
		DropBuffers:   dropBuffers,
		DropMalformed: dropMalformed,
	})
}

func guidePlate(files []string) (*table.Table, error) {
	tables := make([]*table.Table, 0, len(files))
	for _, f := range files {
		t, err := plate.ReadFile(f)
		if err != nil {
			return nil, eris.Wrapf(err, "guide: read %s", f)
		}
		tables = append(tables, t)
	}
	return table.Concat(tables...), nil
}

func guidePlot(p *prompt.Prompter, t *table.Table) error {
	columnHint := fmt.Sprintf("Choose one of %v (omit quotation marks).", t.Columns)

	x, err := p.Membership("What column should be plotted on the x axis?\n"+columnHint, t.Columns)
	if err != nil {
		return err
	}
	logX, err := p.YesNo("Should the x axis be a log scale?")
	if err != nil {
		return err
	}
	y, err := p.Membership("What column should be plotted on the y axis?\n"+columnHint, t.Columns)
	if err != nil {
		return err
	}
	logY, err := p.YesNo("Should the y axis be a log scale?")
	if err != nil {
		return err
	}

	cat, err := p.Interpret(
		"What column should determine the color of points, if any? Leave blank for none.\n"+columnHint,
		prompt.MemberOf(append(append([]string(nil), t.Columns...), "", "None")),
	)
	if err != nil {
		return err
	}
	if cat == "None" {
		cat = ""
	}
	if cat != "" {
		if n := distinctValues(t, cat); n > len(plot.Palette) {
			ok, err := p.Confirm(fmt.Sprintf(
				"This column will result in %d colors, but only %d different colors are available.\nAre you sure you want to proceed?",
				n, len(plot.Palette)))
			if err != nil {
				return err
			}
			if !ok {
				cat = ""
			}
		}
	}

	title, err := p.Text("What would you like to title the plot, if anything?")
	if err != nil {
		return err
	}
	if title == "None" {
		title = ""
	}

	out, err := p.Interpret("What file name should the plot be saved under? (.png or .svg)", func(s string) (string, error) {
		if s == "" {
			return "", eris.New("A file name is required.")
		}
		return s, nil
	})
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return eris.Wrap(err, "guide: create plot file")
	}
	defer f.Close() //nolint:errcheck

	err = plot.Render(t, plot.Spec{
		X:        x,
		Y:        y,
		Category: cat,
		LogX:     logX,
		LogY:     logY,
		Title:    title,
		Averages: false,
		Width:    cfg.Plot.Width,
		Height:   cfg.Plot.Height,
	}, formatFromName(out), f)
	if err != nil {
		return err
	}
	fmt.Printf("Saved plot to %s\n", out)
	return nil
}

func formatFromName(name string) string {
	if len(name) > 4 && name[len(name)-4:] == ".svg" {
		return "svg"
	}
	return "png"
}

func distinctValues(t *table.Table, column string) int {
	seen := make(map[string]bool)
	for i := range t.Rows {
		seen[t.Cell(i, column)] = true
	}
	return len(seen)
}

// preview prints the head of the table so the user can sanity-check the
// reshaping before saving.
func preview(t *table.Table) {
	fmt.Println()
	fmt.Printf("Tidy table: %d rows x %d columns\n", t.Len(), len(t.Columns))
	head := t.Filter(func(i int) bool { return i < previewRows })
	_ = head.Write(os.Stdout)
	if t.Len() > previewRows {
		fmt.Printf("... and %s more rows\n", strconv.Itoa(t.Len()-previewRows))
	}
	fmt.Println()
}
