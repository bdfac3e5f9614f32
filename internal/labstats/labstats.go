// Package labstats adds simple descriptive statistics over tidy tables:
// IQR outlier flagging and grouped mean/std/count summaries shaped for
// transfer into GraphPad Prism.
package labstats

import (
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/rotisserie/eris"

	"github.com/deniz-lab/wrangle/internal/table"
	"github.com/deniz-lab/wrangle/internal/units"
)

// Bounds are IQR outlier bounds: values outside
// [Q1 - 1.5*IQR, Q3 + 1.5*IQR] count as outliers.
type Bounds struct {
	Lower float64
	Upper float64
}

// OutlierBounds computes IQR bounds for a set of measurements.
func OutlierBounds(values []float64) (Bounds, error) {
	q, err := stats.Quartile(values)
	if err != nil {
		return Bounds{}, eris.Wrap(err, "labstats: quartiles")
	}
	iqr := q.Q3 - q.Q1
	return Bounds{Lower: q.Q1 - 1.5*iqr, Upper: q.Q3 + 1.5*iqr}, nil
}

// FlagOutliers adds a boolean "<column> outlier" column. Bounds are computed
// within each group defined by the groupBy columns (outliers are judged
// against samples with matching metadata, not the whole dataset); with no
// groupBy columns the whole table is one group. Empty measurement cells are
// never outliers.
func FlagOutliers(t *table.Table, column string, groupBy ...string) (*table.Table, error) {
	if !t.HasColumn(column) {
		return nil, eris.Errorf("labstats: no column %q", column)
	}
	for _, g := range groupBy {
		if !t.HasColumn(g) {
			return nil, eris.Errorf("labstats: no grouping column %q", g)
		}
	}

	values := make([]float64, t.Len())
	present := make([]bool, t.Len())
	groups := make(map[string][]float64)
	keys := make([]string, t.Len())
	for i := range t.Rows {
		keys[i] = groupKey(t, i, groupBy)
		cell := t.Cell(i, column)
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, eris.Wrapf(err, "labstats: non-numeric value %q in column %q", cell, column)
		}
		values[i] = v
		present[i] = true
		groups[keys[i]] = append(groups[keys[i]], v)
	}

	bounds := make(map[string]Bounds, len(groups))
	for key, group := range groups {
		b, err := OutlierBounds(group)
		if err != nil {
			return nil, err
		}
		bounds[key] = b
	}

	out := t.Clone()
	if err := out.AddColumn(column+" outlier", "false"); err != nil {
		return nil, err
	}
	for i := range out.Rows {
		if !present[i] {
			continue
		}
		b := bounds[keys[i]]
		if values[i] < b.Lower || values[i] > b.Upper {
			if err := out.SetCell(i, column+" outlier", "true"); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// PrismSummary groups a tidy table and reports mean, standard deviation, and
// N of a measurement column per group, one group per output row. rowVar is
// required; colVar optionally adds a second grouping level. Group order
// follows first appearance in the input.
func PrismSummary(t *table.Table, valueColumn, rowVar, colVar string) (*table.Table, error) {
	if !t.HasColumn(valueColumn) {
		return nil, eris.Errorf("labstats: no column %q", valueColumn)
	}
	groupCols := []string{rowVar}
	if colVar != "" {
		groupCols = append(groupCols, colVar)
	}
	for _, g := range groupCols {
		if !t.HasColumn(g) {
			return nil, eris.Errorf("labstats: no grouping column %q", g)
		}
	}

	var order []string
	groups := make(map[string][]float64)
	labels := make(map[string][]string)
	for i := range t.Rows {
		cell := t.Cell(i, valueColumn)
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, eris.Wrapf(err,
				"labstats: could not coerce column %q to a number; summaries need quantitative data", valueColumn)
		}
		key := groupKey(t, i, groupCols)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
			cells := make([]string, len(groupCols))
			for j, g := range groupCols {
				cells[j] = t.Cell(i, g)
			}
			labels[key] = cells
		}
		groups[key] = append(groups[key], v)
	}

	out := table.New(append(append([]string(nil), groupCols...), "mean", "std", "count")...)
	for _, key := range order {
		group := groups[key]
		mean, err := stats.Mean(group)
		if err != nil {
			return nil, eris.Wrap(err, "labstats: mean")
		}
		std := 0.0
		if len(group) > 1 {
			std, err = stats.StandardDeviationSample(group)
			if err != nil {
				return nil, eris.Wrap(err, "labstats: std")
			}
		}
		row := append(append([]string(nil), labels[key]...),
			units.FormatFloat(mean),
			units.FormatFloat(std),
			strconv.Itoa(len(group)),
		)
		out.AppendRow(row...)
	}
	return out, nil
}

func groupKey(t *table.Table, row int, groupBy []string) string {
	if len(groupBy) == 0 {
		return ""
	}
	parts := make([]string, len(groupBy))
	for i, g := range groupBy {
		parts[i] = t.Cell(row, g)
	}
	return strings.Join(parts, "\x1f")
}
