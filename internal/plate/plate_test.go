package plate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

// setCell writes a value at (row, col), extending the sheet as needed.
func setCell(sheet *xlsx.Sheet, r, c int, value string) {
	for len(sheet.Rows) <= r {
		sheet.AddRow()
	}
	row := sheet.Rows[r]
	for len(row.Cells) <= c {
		row.AddCell()
	}
	row.Cells[c].SetString(value)
}

// buildRead writes one read block onto a sheet: a Label row, parameter rows
// at the instrument's fixed offsets, and a small well grid.
func buildRead(sheet *xlsx.Sheet, labelRow int, gain string, intensities [][]string) {
	setCell(sheet, labelRow, 0, "Label: FI")

	setCell(sheet, labelRow+exWavelengthOffset, 0, "Excitation Wavelength")
	setCell(sheet, labelRow+exWavelengthOffset, 4, "485")
	setCell(sheet, labelRow+exWavelengthOffset, 5, "nm")

	setCell(sheet, labelRow+emWavelengthOffset, 0, "Emission Wavelength")
	setCell(sheet, labelRow+emWavelengthOffset, 4, "528")
	setCell(sheet, labelRow+emWavelengthOffset, 5, "nm")

	setCell(sheet, labelRow+gainOffset, 0, "Gain")
	setCell(sheet, labelRow+gainOffset, 4, gain)

	origin := labelRow + gridOffset
	for c := range intensities[0] {
		setCell(sheet, origin, c+1, string(rune('1'+c)))
	}
	for r, row := range intensities {
		setCell(sheet, origin+r+1, 0, string(rune('A'+r)))
		for c, v := range row {
			setCell(sheet, origin+r+1, c+1, v)
		}
	}
}

func TestFromWorkbook(t *testing.T) {
	t.Parallel()

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Read 3")
	require.NoError(t, err)
	buildRead(sheet, 0, "100", [][]string{
		{"11", "12", "13"},
		{"21", "22", "23"},
	})
	// trailing default sheet the instrument leaves behind
	_, err = f.AddSheet("Sheet1")
	require.NoError(t, err)

	out, err := fromWorkbook(f)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Plate row", "Plate column", "Intensity",
		"Excitation Wavelength (nm)", "Emission Wavelength (nm)", "Gain", "Run",
	}, out.Columns)
	require.Equal(t, 6, out.Len())

	assert.Equal(t, "A", out.Cell(0, "Plate row"))
	assert.Equal(t, "1", out.Cell(0, "Plate column"))
	assert.Equal(t, "11", out.Cell(0, "Intensity"))
	assert.Equal(t, "B", out.Cell(5, "Plate row"))
	assert.Equal(t, "3", out.Cell(5, "Plate column"))
	assert.Equal(t, "23", out.Cell(5, "Intensity"))

	assert.Equal(t, "485", out.Cell(0, "Excitation Wavelength (nm)"))
	assert.Equal(t, "528", out.Cell(0, "Emission Wavelength (nm)"))
	assert.Equal(t, "100", out.Cell(0, "Gain"))
	assert.Equal(t, "3", out.Cell(0, "Run"))
}

func TestFromWorkbookMultipleReads(t *testing.T) {
	t.Parallel()

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Read 1")
	require.NoError(t, err)
	buildRead(sheet, 0, "80", [][]string{{"1"}})
	buildRead(sheet, 25, "120", [][]string{{"2"}})

	out, err := fromWorkbook(f)
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, "80", out.Cell(0, "Gain"))
	assert.Equal(t, "120", out.Cell(1, "Gain"))
}

func TestFromWorkbookErrors(t *testing.T) {
	t.Parallel()

	t.Run("no sheets", func(t *testing.T) {
		t.Parallel()
		_, err := fromWorkbook(xlsx.NewFile())
		assert.Error(t, err)
	})

	t.Run("no label rows", func(t *testing.T) {
		t.Parallel()
		f := xlsx.NewFile()
		sheet, err := f.AddSheet("Read 1")
		require.NoError(t, err)
		setCell(sheet, 0, 0, "just notes")
		_, err = fromWorkbook(f)
		assert.Error(t, err)
	})
}

func TestRunNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "3", runNumber("Sheet3"))
	assert.Equal(t, "12", runNumber("Read 12"))
	assert.Equal(t, "", runNumber("Notes"))
	assert.Equal(t, "", runNumber(""))
}

func TestReadFileRoundTrip(t *testing.T) {
	t.Parallel()

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Read 2")
	require.NoError(t, err)
	buildRead(sheet, 0, "90", [][]string{{"5", "6"}})

	path := filepath.Join(t.TempDir(), "plate.xlsx")
	require.NoError(t, f.Save(path))

	out, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, "2", out.Cell(0, "Run"))
	assert.Equal(t, "6", out.Cell(1, "Intensity"))
}

func TestReadFileMissing(t *testing.T) {
	t.Parallel()
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}
