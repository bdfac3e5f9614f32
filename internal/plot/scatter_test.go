package plot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deniz-lab/wrangle/internal/table"
)

func titration() *table.Table {
	t := table.New("[titrant] (nM)", "Intensity", "Peptide")
	t.AppendRow("10", "100", "RG1")
	t.AppendRow("50", "220", "RG1")
	t.AppendRow("100", "350", "RG1")
	t.AppendRow("10", "90", "RG2")
	t.AppendRow("50", "180", "RG2")
	t.AppendRow("100", "300", "RG2")
	return t
}

func TestRenderSVG(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Render(titration(), Spec{
		X:        "[titrant] (nM)",
		Y:        "Intensity",
		Category: "Peptide",
		Title:    "Titration",
		Width:    800,
		Height:   500,
	}, "svg", &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<svg")
}

func TestRenderPNG(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Render(titration(), Spec{
		X:      "[titrant] (nM)",
		Y:      "Intensity",
		Width:  400,
		Height: 300,
	}, "png", &buf)
	require.NoError(t, err)
	// PNG magic number
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestRenderAverages(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Render(titration(), Spec{
		X:        "[titrant] (nM)",
		Y:        "Intensity",
		Category: "Peptide",
		Averages: true,
		Width:    800,
		Height:   500,
	}, "svg", &buf)
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()
		err := Render(titration(), Spec{X: "[titrant] (nM)", Y: "Intensity"}, "pdf", &bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("missing columns", func(t *testing.T) {
		t.Parallel()
		err := Render(titration(), Spec{X: "nope", Y: "Intensity"}, "svg", &bytes.Buffer{})
		assert.Error(t, err)
		err = Render(titration(), Spec{X: "[titrant] (nM)", Y: "Intensity", Category: "nope"}, "svg", &bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("no plottable rows", func(t *testing.T) {
		t.Parallel()
		empty := table.New("x", "y")
		empty.AppendRow("", "")
		err := Render(empty, Spec{X: "x", Y: "y"}, "svg", &bytes.Buffer{})
		assert.Error(t, err)
	})
}

func TestGroupPoints(t *testing.T) {
	t.Parallel()

	t.Run("groups in first-seen order", func(t *testing.T) {
		t.Parallel()
		groups, err := groupPoints(titration(), Spec{X: "[titrant] (nM)", Y: "Intensity", Category: "Peptide"})
		require.NoError(t, err)
		require.Len(t, groups, 2)
		assert.Equal(t, "RG1", groups[0].name)
		assert.Equal(t, "RG2", groups[1].name)
		assert.Equal(t, []float64{10, 50, 100}, groups[0].xs)
		assert.Equal(t, []float64{90, 180, 300}, groups[1].ys)
	})

	t.Run("no category yields one group", func(t *testing.T) {
		t.Parallel()
		groups, err := groupPoints(titration(), Spec{X: "[titrant] (nM)", Y: "Intensity"})
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Len(t, groups[0].xs, 6)
	})

	t.Run("empty cells skipped", func(t *testing.T) {
		t.Parallel()
		tbl := table.New("x", "y")
		tbl.AppendRow("1", "2")
		tbl.AppendRow("", "3")
		tbl.AppendRow("4", "")

		groups, err := groupPoints(tbl, Spec{X: "x", Y: "y"})
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, []float64{1}, groups[0].xs)
	})

	t.Run("non-numeric cell", func(t *testing.T) {
		t.Parallel()
		tbl := table.New("x", "y")
		tbl.AppendRow("one", "2")
		_, err := groupPoints(tbl, Spec{X: "x", Y: "y"})
		assert.Error(t, err)
	})
}

func TestMedians(t *testing.T) {
	t.Parallel()

	mx, my, err := medians(
		[]float64{100, 10, 10, 100, 10},
		[]float64{7, 1, 3, 9, 2},
	)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 100}, mx)
	assert.Equal(t, []float64{2, 8}, my)
}
