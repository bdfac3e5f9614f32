package labstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deniz-lab/wrangle/internal/table"
)

func TestOutlierBounds(t *testing.T) {
	t.Parallel()

	b, err := OutlierBounds([]float64{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)
	// Q1 = 2.5, Q3 = 6.5, IQR = 4
	assert.InDelta(t, -3.5, b.Lower, 1e-9)
	assert.InDelta(t, 12.5, b.Upper, 1e-9)

	_, err = OutlierBounds(nil)
	assert.Error(t, err)
}

func TestFlagOutliers(t *testing.T) {
	t.Parallel()

	t.Run("single group", func(t *testing.T) {
		t.Parallel()
		tbl := table.New("Intensity")
		for _, v := range []string{"10", "11", "12", "11", "10", "12", "11", "1000"} {
			tbl.AppendRow(v)
		}

		out, err := FlagOutliers(tbl, "Intensity")
		require.NoError(t, err)
		require.True(t, out.HasColumn("Intensity outlier"))

		flags := out.ColumnValues("Intensity outlier")
		assert.Equal(t, []string{"false", "false", "false", "false", "false", "false", "false", "true"}, flags)
	})

	t.Run("grouped", func(t *testing.T) {
		t.Parallel()
		tbl := table.New("Peptide", "Intensity")
		// group a clusters near 10, group b near 1000: neither group's
		// values are outliers within their own group
		for _, v := range []string{"9", "10", "11", "10", "9", "11"} {
			tbl.AppendRow("a", v)
		}
		for _, v := range []string{"990", "1000", "1010", "1000", "990", "1010"} {
			tbl.AppendRow("b", v)
		}

		out, err := FlagOutliers(tbl, "Intensity", "Peptide")
		require.NoError(t, err)
		for _, flag := range out.ColumnValues("Intensity outlier") {
			assert.Equal(t, "false", flag)
		}
	})

	t.Run("empty cells never flagged", func(t *testing.T) {
		t.Parallel()
		tbl := table.New("Intensity")
		for _, v := range []string{"10", "", "11", "12", "10"} {
			tbl.AppendRow(v)
		}

		out, err := FlagOutliers(tbl, "Intensity")
		require.NoError(t, err)
		assert.Equal(t, "false", out.Cell(1, "Intensity outlier"))
	})

	t.Run("missing columns", func(t *testing.T) {
		t.Parallel()
		tbl := table.New("Intensity")
		_, err := FlagOutliers(tbl, "nope")
		assert.Error(t, err)
		_, err = FlagOutliers(tbl, "Intensity", "nope")
		assert.Error(t, err)
	})

	t.Run("non-numeric value", func(t *testing.T) {
		t.Parallel()
		tbl := table.New("Intensity")
		tbl.AppendRow("bright")
		_, err := FlagOutliers(tbl, "Intensity")
		assert.Error(t, err)
	})
}

func TestPrismSummary(t *testing.T) {
	t.Parallel()

	t.Run("one grouping level", func(t *testing.T) {
		t.Parallel()
		tbl := table.New("[titrant] (nM)", "Intensity")
		tbl.AppendRow("50", "10")
		tbl.AppendRow("50", "14")
		tbl.AppendRow("100", "20")
		tbl.AppendRow("100", "")

		out, err := PrismSummary(tbl, "Intensity", "[titrant] (nM)", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"[titrant] (nM)", "mean", "std", "count"}, out.Columns)
		require.Equal(t, 2, out.Len())

		assert.Equal(t, "50", out.Cell(0, "[titrant] (nM)"))
		assert.Equal(t, "12", out.Cell(0, "mean"))
		assert.Equal(t, "2", out.Cell(0, "count"))

		// single measurement: std reported as 0
		assert.Equal(t, "100", out.Cell(1, "[titrant] (nM)"))
		assert.Equal(t, "20", out.Cell(1, "mean"))
		assert.Equal(t, "0", out.Cell(1, "std"))
		assert.Equal(t, "1", out.Cell(1, "count"))
	})

	t.Run("two grouping levels keep input order", func(t *testing.T) {
		t.Parallel()
		tbl := table.New("Peptide", "Ratio", "Intensity")
		tbl.AppendRow("RG2", "0.5", "1")
		tbl.AppendRow("RG1", "0.5", "2")
		tbl.AppendRow("RG2", "2", "3")
		tbl.AppendRow("RG2", "0.5", "5")

		out, err := PrismSummary(tbl, "Intensity", "Peptide", "Ratio")
		require.NoError(t, err)
		assert.Equal(t, []string{"Peptide", "Ratio", "mean", "std", "count"}, out.Columns)
		require.Equal(t, 3, out.Len())

		assert.Equal(t, []string{"RG2", "RG1", "RG2"}, out.ColumnValues("Peptide"))
		assert.Equal(t, []string{"0.5", "0.5", "2"}, out.ColumnValues("Ratio"))
		assert.Equal(t, []string{"3", "2", "3"}, out.ColumnValues("mean"))
		assert.Equal(t, []string{"2", "1", "1"}, out.ColumnValues("count"))
	})

	t.Run("missing columns", func(t *testing.T) {
		t.Parallel()
		tbl := table.New("Intensity")
		_, err := PrismSummary(tbl, "nope", "Intensity", "")
		assert.Error(t, err)
		_, err = PrismSummary(tbl, "Intensity", "nope", "")
		assert.Error(t, err)
	})

	t.Run("non-numeric measurement", func(t *testing.T) {
		t.Parallel()
		tbl := table.New("g", "Intensity")
		tbl.AppendRow("a", "bright")
		_, err := PrismSummary(tbl, "Intensity", "g", "")
		assert.Error(t, err)
	})
}
