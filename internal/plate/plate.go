// Package plate reads the core facility's plate fluorimeter workbooks into
// tidy tables. Each sheet holds one or more reads; a read is a "Label" row
// followed by parameter rows and a 96-well intensity grid.
package plate

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/deniz-lab/wrangle/internal/table"
)

// Layout offsets within a read block, relative to its Label row.
const (
	exWavelengthOffset = 2
	emWavelengthOffset = 3
	gainOffset         = 6
	gridOffset         = 15
)

// The instrument lays each read's grid out as up to 12 rows by 8 columns.
const (
	maxPlateRows    = 12
	maxPlateColumns = 8
)

// ReadFile reads a plate fluorimeter workbook into one tidy table with
// Plate row / Plate column / Intensity columns plus read parameters and the
// run number taken from each sheet name. The trailing empty default sheet
// the instrument leaves behind is skipped.
func ReadFile(path string) (*table.Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "plate: open workbook")
	}
	return fromWorkbook(f)
}

func fromWorkbook(f *xlsx.File) (*table.Table, error) {
	if len(f.Sheets) == 0 {
		return nil, eris.New("plate: workbook has no sheets")
	}

	sheets := f.Sheets
	if len(sheets) > 1 && isSheetEmpty(sheets[len(sheets)-1]) {
		sheets = sheets[:len(sheets)-1]
	}

	var tables []*table.Table
	for _, sheet := range sheets {
		t, err := fromSheet(sheet)
		if err != nil {
			return nil, eris.Wrapf(err, "plate: sheet %q", sheet.Name)
		}
		tables = append(tables, t)
	}
	return table.Concat(tables...), nil
}

// fromSheet reads every labeled experiment on a sheet.
func fromSheet(sheet *xlsx.Sheet) (*table.Table, error) {
	labelRows := findLabelRows(sheet)
	if len(labelRows) == 0 {
		return nil, eris.New("plate: no Label rows found")
	}

	run := runNumber(sheet.Name)

	var tables []*table.Table
	for _, labelRow := range labelRows {
		t := measurements(sheet, labelRow)
		for _, p := range parameters(sheet, labelRow) {
			if err := t.AddColumn(p.name, p.value); err != nil {
				return nil, err
			}
		}
		if run != "" {
			if err := t.AddColumn("Run", run); err != nil {
				return nil, err
			}
		}
		tables = append(tables, t)
	}
	return table.Concat(tables...), nil
}

// findLabelRows returns the zero-indexed rows whose first cell contains
// "Label", each of which starts a read block.
func findLabelRows(sheet *xlsx.Sheet) []int {
	var rows []int
	for i := 0; i < len(sheet.Rows); i++ {
		if strings.Contains(cellValue(sheet, i, 0), "Label") {
			rows = append(rows, i)
		}
	}
	return rows
}

// measurements reads the well grid below a Label row into tidy rows.
func measurements(sheet *xlsx.Sheet, labelRow int) *table.Table {
	origin := labelRow + gridOffset
	t := table.New("Plate row", "Plate column", "Intensity")

	for rowNum := 1; rowNum <= maxPlateRows; rowNum++ {
		plateRow := cellValue(sheet, origin+rowNum, 0)
		if plateRow == "" {
			break
		}
		for colNum := 1; colNum <= maxPlateColumns; colNum++ {
			plateCol := cellValue(sheet, origin, colNum)
			if plateCol == "" {
				break
			}
			t.AppendRow(plateRow, plateCol, cellValue(sheet, origin+rowNum, colNum))
		}
	}
	return t
}

type parameter struct {
	name  string
	value string
}

// parameters reads the excitation wavelength, emission wavelength, and gain
// rows of a read block. Names carry their unit except Gain, which has none.
func parameters(sheet *xlsx.Sheet, labelRow int) []parameter {
	var params []parameter
	for _, offset := range []int{exWavelengthOffset, emWavelengthOffset, gainOffset} {
		name := cellValue(sheet, labelRow+offset, 0)
		unit := cellValue(sheet, labelRow+offset, 5)
		value := cellValue(sheet, labelRow+offset, 4)
		if name == "" {
			continue
		}
		if name != "Gain" && unit != "" {
			name = name + " (" + unit + ")"
		}
		params = append(params, parameter{name: name, value: value})
	}
	return params
}

// runNumber extracts the trailing integer of a sheet name ("Sheet3" -> "3").
func runNumber(name string) string {
	end := len(name)
	start := end
	for start > 0 && name[start-1] >= '0' && name[start-1] <= '9' {
		start--
	}
	if start == end {
		return ""
	}
	n, err := strconv.Atoi(name[start:end])
	if err != nil {
		return ""
	}
	return strconv.Itoa(n)
}

func isSheetEmpty(sheet *xlsx.Sheet) bool {
	for _, row := range sheet.Rows {
		for _, cell := range row.Cells {
			if cell.String() != "" {
				return false
			}
		}
	}
	return true
}

func cellValue(sheet *xlsx.Sheet, r, c int) string {
	if r < 0 || r >= len(sheet.Rows) {
		return ""
	}
	row := sheet.Rows[r]
	if c < 0 || c >= len(row.Cells) {
		return ""
	}
	return row.Cells[c].String()
}
