// Package plot renders scatter charts of tidy tables to PNG or SVG.
package plot

import (
	"io"
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"
	"github.com/rotisserie/eris"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/deniz-lab/wrangle/internal/table"
)

// Palette is the lab's standard 10-color categorical palette.
var Palette = []string{
	"4e79a7", "f28e2b", "e15759", "76b7b2", "59a14f",
	"edc948", "b07aa1", "ff9da7", "9c755f", "bab0ac",
}

// Spec describes one scatter plot over a tidy table.
type Spec struct {
	X        string // numeric column for the x axis
	Y        string // numeric column for the y axis
	Category string // optional column coloring the points
	LogX     bool
	LogY     bool
	Title    string
	Averages bool // add a median line per category
	Width    int  // pixels; 0 uses the chart default
	Height   int
}

// Render draws the scatter described by spec and writes it to w in the
// given format ("png" or "svg"). Rows with an empty x or y cell are
// dropped; non-numeric values in those columns are an error.
func Render(t *table.Table, spec Spec, format string, w io.Writer) error {
	var provider chart.RendererProvider
	switch format {
	case "png", "":
		provider = chart.PNG
	case "svg":
		provider = chart.SVG
	default:
		return eris.Errorf("plot: unrecognized format %q, use png or svg", format)
	}

	groups, err := groupPoints(t, spec)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		return eris.New("plot: no plottable rows")
	}

	graph := chart.Chart{
		Title:  spec.Title,
		Width:  spec.Width,
		Height: spec.Height,
		XAxis:  chart.XAxis{Name: spec.X},
		YAxis:  chart.YAxis{Name: spec.Y},
	}
	if spec.LogX {
		graph.XAxis.Range = &chart.LogarithmicRange{}
	}
	if spec.LogY {
		graph.YAxis.Range = &chart.LogarithmicRange{}
	}

	for i, g := range groups {
		color := drawing.ColorFromHex(Palette[i%len(Palette)])
		series := chart.ContinuousSeries{
			Name:    g.name,
			XValues: g.xs,
			YValues: g.ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    5,
				DotColor:    color,
			},
		}
		graph.Series = append(graph.Series, series)

		if spec.Averages {
			mx, my, err := medians(g.xs, g.ys)
			if err != nil {
				return err
			}
			graph.Series = append(graph.Series, chart.ContinuousSeries{
				XValues: mx,
				YValues: my,
				Style: chart.Style{
					StrokeWidth: 2,
					StrokeColor: color,
				},
			})
		}
	}

	if spec.Category != "" {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}

	if err := graph.Render(provider, w); err != nil {
		return eris.Wrap(err, "plot: render")
	}
	return nil
}

type group struct {
	name string
	xs   []float64
	ys   []float64
}

// groupPoints extracts (x, y) points per category in first-seen order. With
// no category column everything lands in a single unnamed group.
func groupPoints(t *table.Table, spec Spec) ([]*group, error) {
	for _, c := range []string{spec.X, spec.Y} {
		if !t.HasColumn(c) {
			return nil, eris.Errorf("plot: no column %q", c)
		}
	}
	if spec.Category != "" && !t.HasColumn(spec.Category) {
		return nil, eris.Errorf("plot: no column %q", spec.Category)
	}

	var order []*group
	byName := make(map[string]*group)
	for i := range t.Rows {
		xCell, yCell := t.Cell(i, spec.X), t.Cell(i, spec.Y)
		if xCell == "" || yCell == "" {
			continue
		}
		x, err := strconv.ParseFloat(xCell, 64)
		if err != nil {
			return nil, eris.Wrapf(err, "plot: non-numeric value %q in column %q", xCell, spec.X)
		}
		y, err := strconv.ParseFloat(yCell, 64)
		if err != nil {
			return nil, eris.Wrapf(err, "plot: non-numeric value %q in column %q", yCell, spec.Y)
		}

		name := ""
		if spec.Category != "" {
			name = t.Cell(i, spec.Category)
		}
		g, ok := byName[name]
		if !ok {
			g = &group{name: name}
			byName[name] = g
			order = append(order, g)
		}
		g.xs = append(g.xs, x)
		g.ys = append(g.ys, y)
	}
	return order, nil
}

// medians returns the median y at each distinct x, in ascending x order.
func medians(xs, ys []float64) ([]float64, []float64, error) {
	byX := make(map[float64][]float64)
	var order []float64
	for i, x := range xs {
		if _, ok := byX[x]; !ok {
			order = append(order, x)
		}
		byX[x] = append(byX[x], ys[i])
	}

	sort.Float64s(order)

	my := make([]float64, len(order))
	for i, x := range order {
		m, err := stats.Median(byX[x])
		if err != nil {
			return nil, nil, eris.Wrap(err, "plot: median")
		}
		my[i] = m
	}
	return order, my, nil
}
