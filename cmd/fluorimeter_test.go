package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deniz-lab/wrangle/internal/labstats"
	"github.com/deniz-lab/wrangle/internal/table"
)

const rnaExport = `Title=50 nM RNA
Comment=2 all
Columns=EmissionWavelength,Intensity
[Data]
520  1000.0
522  990.0
`

const dnaExport = `Title=25 nM DNA
Comment=2 all
Columns=EmissionWavelength,Intensity
[Data]
520  800.0
522  810.0
`

// Runs the fluorimeter command over exports titrating different molecules
// and checks that --break-out leaves the table grouped the way the prism
// command expects by default.
func TestFluorimeterCommandBreakOut(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rna.ifx"), []byte(rnaExport), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dna.ifx"), []byte(dnaExport), 0o644))
	out := filepath.Join(dir, "tidy.csv")

	rootCmd.SetArgs([]string{
		"fluorimeter",
		"--glob", filepath.Join(dir, "*.ifx"),
		"--out", out,
		"--break-out", "titrant",
	})
	require.NoError(t, rootCmd.Execute())

	tbl, err := table.ReadFile(out, table.ReadOptions{})
	require.NoError(t, err)
	require.True(t, tbl.HasColumn("titrant"))
	require.True(t, tbl.HasColumn("[titrant] (nM)"))
	assert.False(t, tbl.HasColumn("[RNA]"))
	assert.False(t, tbl.HasColumn("[DNA]"))
	assert.Equal(t, []string{"DNA", "DNA", "RNA", "RNA"}, tbl.ColumnValues("titrant"))
	assert.Equal(t, []string{"25", "25", "50", "50"}, tbl.ColumnValues("[titrant] (nM)"))

	summary, err := labstats.PrismSummary(tbl, "Intensity", "[titrant] (nM)", "")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Len())
}
