// Package tidy reshapes wide instrument-native exports into tidy tables:
// one row per observation, one column per variable, with the metadata
// encoded in sample names promoted to columns of their own.
package tidy

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/deniz-lab/wrangle/internal/parsekey"
	"github.com/deniz-lab/wrangle/internal/table"
)

// BlankSampleID replaces the sample ID of buffer measurements that are kept.
const BlankSampleID = "blank"

// Options configures sample-name analysis.
type Options struct {
	// SampleColumn is the column holding free-text sample names.
	SampleColumn string
	// Key is the naming convention to parse names against.
	Key *parsekey.ParseKey
	// BufferNames are the buffer/blank indicators. Defaults to
	// parsekey.DefaultBufferNames when empty.
	BufferNames []string
	// DropBuffers removes buffer/blank rows instead of keeping them with
	// a rewritten sample ID and empty metadata.
	DropBuffers bool
	// DropMalformed removes rows whose names do not follow the convention
	// instead of keeping them with empty metadata.
	DropMalformed bool
}

func (o Options) withDefaults() Options {
	if o.SampleColumn == "" {
		o.SampleColumn = "Sample ID"
	}
	if o.Key == nil {
		o.Key = parsekey.RNAPeptide()
	}
	if len(o.BufferNames) == 0 {
		o.BufferNames = parsekey.DefaultBufferNames
	}
	return o
}

// junk column prefixes emitted by the nanodrop export software.
var junkColumns = []string{"Unnamed", "User name", "#"}

// CleanColumns drops export junk: columns named after junkColumns, columns
// with no values at all, and rows with no values at all. Cleaning an
// already-clean table is a no-op.
func CleanColumns(t *table.Table) *table.Table {
	out := t.Clone()
	out.Normalize()

	var drop []string
	for _, c := range out.Columns {
		for _, junk := range junkColumns {
			if strings.HasPrefix(c, junk) {
				drop = append(drop, c)
				break
			}
		}
	}
	out.DropColumns(drop...)

	// fully-empty columns
	drop = drop[:0]
	for _, c := range out.Columns {
		empty := true
		for i := range out.Rows {
			if out.Cell(i, c) != "" {
				empty = false
				break
			}
		}
		if empty {
			drop = append(drop, c)
		}
	}
	out.DropColumns(drop...)

	// fully-empty rows
	return out.Filter(func(i int) bool {
		for _, cell := range out.Rows[i] {
			if cell != "" {
				return true
			}
		}
		return false
	})
}

// RenameAbsByWavelength pivots the nanodrop's paired "<i> (nm)" and
// "<i> (Abs)" columns into one "Abs <wavelength>" column per distinct
// wavelength. Placement is per row: each row's absorbance lands in the
// column named for that row's wavelength cell. Rows that did not measure a
// wavelength leave that cell empty. Tables without paired columns pass
// through unchanged.
func RenameAbsByWavelength(t *table.Table) (*table.Table, error) {
	type pair struct{ nm, abs string }
	var pairs []pair
	for _, c := range t.Columns {
		if !strings.HasSuffix(c, " (nm)") {
			continue
		}
		prefix := strings.TrimSuffix(c, " (nm)")
		absCol := prefix + " (Abs)"
		if t.HasColumn(absCol) {
			pairs = append(pairs, pair{nm: c, abs: absCol})
		}
	}
	if len(pairs) == 0 {
		return t.Clone(), nil
	}

	// Collect distinct wavelengths in ascending numeric order.
	seen := make(map[string]float64)
	for _, p := range pairs {
		for i := range t.Rows {
			wl := strings.TrimSpace(t.Cell(i, p.nm))
			if wl == "" {
				continue
			}
			v, err := strconv.ParseFloat(wl, 64)
			if err != nil {
				return nil, eris.Wrapf(err, "tidy: wavelength %q in column %q", wl, p.nm)
			}
			seen[wl] = v
		}
	}
	wavelengths := make([]string, 0, len(seen))
	for wl := range seen {
		wavelengths = append(wavelengths, wl)
	}
	sort.Slice(wavelengths, func(i, j int) bool { return seen[wavelengths[i]] < seen[wavelengths[j]] })

	out := t.Clone()
	for _, wl := range wavelengths {
		if err := out.AddColumn("Abs "+wl, ""); err != nil {
			return nil, err
		}
	}
	for i := range out.Rows {
		for _, p := range pairs {
			wl := strings.TrimSpace(out.Cell(i, p.nm))
			if wl == "" {
				continue
			}
			if err := out.SetCell(i, "Abs "+wl, out.Cell(i, p.abs)); err != nil {
				return nil, err
			}
		}
	}
	for _, p := range pairs {
		out.DropColumns(p.nm, p.abs)
	}
	return out, nil
}

// AnalyzeSampleNames parses the sample-name column against the key and
// promotes the parsed fields to columns, applying the drop policy.
//
// Buffer rows that are kept have their sample ID rewritten to "blank".
// Malformed rows that are kept get empty metadata cells; keeping any is
// logged since downstream numeric coercion will see gaps. Field columns
// that end up fully empty are removed. Per-row parse failures are never
// errors; only invalid configuration is.
func AnalyzeSampleNames(t *table.Table, opts Options) (*table.Table, error) {
	opts = opts.withDefaults()
	if opts.Key == nil || len(opts.Key.Fields) == 0 {
		return nil, eris.New("tidy: parse key has no fields")
	}

	results := make([]parsekey.Result, t.Len())
	for i := range t.Rows {
		results[i] = opts.Key.Parse(t.Cell(i, opts.SampleColumn), opts.BufferNames)
	}

	kept := make([]int, 0, t.Len())
	malformedKept := 0
	for i, res := range results {
		switch res.Status {
		case parsekey.Buffer:
			if !opts.DropBuffers {
				kept = append(kept, i)
			}
		case parsekey.Malformed:
			if !opts.DropMalformed {
				kept = append(kept, i)
				malformedKept++
			}
		default:
			kept = append(kept, i)
		}
	}
	if malformedKept > 0 {
		zap.L().Warn("tidy: sample names do not adhere to the naming convention; metadata left empty",
			zap.Int("rows", malformedKept),
			zap.String("column", opts.SampleColumn),
		)
	}

	out := table.New(t.Columns...)
	for _, f := range opts.Key.Fields {
		if !out.HasColumn(f.Name) {
			out.Columns = append(out.Columns, f.Name)
		}
	}

	for _, i := range kept {
		row := make([]string, len(out.Columns))
		for j, c := range t.Columns {
			row[j] = t.Cell(i, c)
		}
		switch results[i].Status {
		case parsekey.Parsed:
			for j, f := range opts.Key.Fields {
				row[out.ColumnIndex(f.Name)] = results[i].Values[j]
			}
		case parsekey.Buffer:
			row[out.ColumnIndex(opts.SampleColumn)] = BlankSampleID
		}
		out.Rows = append(out.Rows, row)
	}

	// A field no sample ever populated carries no information.
	var empty []string
	for _, f := range opts.Key.Fields {
		all := true
		for i := range out.Rows {
			if out.Cell(i, f.Name) != "" {
				all = false
				break
			}
		}
		if all {
			empty = append(empty, f.Name)
		}
	}
	out.DropColumns(empty...)

	return out, nil
}

// BreakOutDateTime splits a combined timestamp column on its first space
// into "Date" and "Time" columns and drops the original. AM/PM markers stay
// with the time. Tables without the column pass through unchanged.
func BreakOutDateTime(t *table.Table, column string) (*table.Table, error) {
	if !t.HasColumn(column) {
		return t.Clone(), nil
	}

	out := t.Clone()
	if err := out.AddColumn("Date", ""); err != nil {
		return nil, err
	}
	if err := out.AddColumn("Time", ""); err != nil {
		return nil, err
	}
	for i := range out.Rows {
		date, time, _ := strings.Cut(out.Cell(i, column), " ")
		if err := out.SetCell(i, "Date", date); err != nil {
			return nil, err
		}
		if err := out.SetCell(i, "Time", time); err != nil {
			return nil, err
		}
	}
	out.DropColumns(column)
	return out, nil
}

// BreakOutVariable combines mutually exclusive condition columns, one per
// titrated molecule, into a "<variable>" column naming the molecule and a
// "[<variable>]" column holding its concentration. With no columns given,
// every column containing at least one empty cell is selected. Each row may
// hold at most one value among the selected columns; rows with none leave
// both new columns empty. The selected columns are dropped.
func BreakOutVariable(t *table.Table, variable string, columns ...string) (*table.Table, error) {
	if variable == "" {
		return nil, eris.New("tidy: a variable name is required")
	}

	selected := columns
	if len(selected) == 0 {
		for _, c := range t.Columns {
			for i := range t.Rows {
				if t.Cell(i, c) == "" {
					selected = append(selected, c)
					break
				}
			}
		}
	}
	for _, c := range selected {
		if !t.HasColumn(c) {
			return nil, eris.Errorf("tidy: no column %q", c)
		}
	}
	if len(selected) < 2 {
		return nil, eris.New("tidy: fewer than two columns were selected to combine")
	}

	bracketed := "[" + variable + "]"
	if t.HasColumn(variable) || t.HasColumn(bracketed) {
		return nil, eris.Errorf("tidy: %q may not name an existing column, as-is or with brackets added", variable)
	}

	out := t.Clone()
	if err := out.AddColumn(variable, ""); err != nil {
		return nil, err
	}
	if err := out.AddColumn(bracketed, ""); err != nil {
		return nil, err
	}

	for i := range out.Rows {
		var name, value string
		found := 0
		for _, c := range selected {
			cell := out.Cell(i, c)
			if cell == "" {
				continue
			}
			found++
			name = strings.ReplaceAll(strings.ReplaceAll(c, "[", ""), "]", "")
			value = cell
		}
		if found > 1 {
			return nil, eris.Errorf("tidy: row %d holds more than one value among the combined columns; they must be mutually exclusive", i)
		}
		if found == 0 {
			continue
		}
		if err := out.SetCell(i, variable, name); err != nil {
			return nil, err
		}
		if err := out.SetCell(i, bracketed, value); err != nil {
			return nil, err
		}
	}

	out.DropColumns(selected...)
	return out, nil
}

// DropZeros removes rows holding zero in any of the given columns so the
// result can be plotted on a log scale. Non-numeric, non-empty cells are an
// error; empty cells are kept.
func DropZeros(t *table.Table, columns ...string) (*table.Table, error) {
	for _, c := range columns {
		if !t.HasColumn(c) {
			return nil, eris.Errorf("tidy: no column %q", c)
		}
	}

	var badCell error
	out := t.Filter(func(i int) bool {
		for _, c := range columns {
			cell := t.Cell(i, c)
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil && badCell == nil {
				badCell = eris.Wrapf(err, "tidy: non-numeric value %q in column %q", cell, c)
			}
			if v == 0 {
				return false
			}
		}
		return true
	})
	if badCell != nil {
		return nil, badCell
	}
	return out, nil
}
