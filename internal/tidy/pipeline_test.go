package tidy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeExport(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTidy(t *testing.T) {
	t.Parallel()

	first := writeExport(t, "run1.tsv",
		"Sample ID\t1 (nm)\t1 (Abs)\t2 (nm)\t2 (Abs)\tDate and Time\tUser name\n"+
			"RG1_100_0.5\t350\t1\t600\t0.1\t6/1/2020 10:44:11 AM\tadmin\n"+
			"Buffer\t350\t2\t600\t0.2\t6/1/2020 10:45:02 AM\tadmin\n")
	second := writeExport(t, "run2.tsv",
		"Sample ID\t1 (nm)\t1 (Abs)\t2 (nm)\t2 (Abs)\tDate and Time\tUser name\n"+
			"RG2_50_2\t350\t3\t600\t0.3\t6/2/2020 9:02:40 AM\tadmin\n")

	out, err := Tidy([]string{first, second}, Options{DropBuffers: true})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Sample ID", "Abs 350", "Abs 600",
		"Peptide", "Peptide concentration (uM)", "RNA/Peptide Ratio",
		"Date", "Time",
	}, out.Columns)
	require.Equal(t, 2, out.Len())

	assert.Equal(t, "RG1", out.Cell(0, "Peptide"))
	assert.Equal(t, "1", out.Cell(0, "Abs 350"))
	assert.Equal(t, "6/1/2020", out.Cell(0, "Date"))
	assert.Equal(t, "RG2", out.Cell(1, "Peptide"))
	assert.Equal(t, "2", out.Cell(1, "RNA/Peptide Ratio"))
	assert.Equal(t, "9:02:40 AM", out.Cell(1, "Time"))
}

func TestTidyKeepsBuffers(t *testing.T) {
	t.Parallel()

	path := writeExport(t, "run.tsv",
		"Sample ID\t1 (nm)\t1 (Abs)\n"+
			"RG1_100_0.5\t350\t1\n"+
			"Buffer_100_0.5\t350\t2\n")

	out, err := Tidy([]string{path}, Options{})
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, BlankSampleID, out.Cell(1, "Sample ID"))
	assert.Equal(t, "2", out.Cell(1, "Abs 350"))
}

func TestTidyNoFiles(t *testing.T) {
	t.Parallel()
	_, err := Tidy(nil, Options{})
	assert.Error(t, err)
}

func TestTidyMissingFile(t *testing.T) {
	t.Parallel()
	_, err := Tidy([]string{filepath.Join(t.TempDir(), "nope.tsv")}, Options{})
	assert.Error(t, err)
}
