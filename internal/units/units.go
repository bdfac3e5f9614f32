// Package units normalizes numeric-with-unit strings from sample labels and
// instrument descriptors to canonical numeric values.
package units

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/deniz-lab/wrangle/internal/table"
)

// factors to nanomolar. Plain molar is deliberately unsupported: lab
// conventions write everything mM or smaller.
var toNanomolar = map[string]float64{
	"mm": 1e6,
	"um": 1e3,
	"nm": 1,
	"pm": 1e-3,
}

// Nanomolar converts a concentration string such as "150 mM", "5uM", or a
// bare number (assumed nM) to nanomolar. Unrecognized units are an error.
func Nanomolar(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, eris.New("units: empty concentration")
	}

	// Split at the trailing unit, if any.
	cut := strings.IndexFunc(trimmed, func(r rune) bool {
		return !(r >= '0' && r <= '9') && r != '.' && r != '-' && r != '+' && r != 'e' && r != 'E'
	})

	number := trimmed
	unit := ""
	if cut >= 0 {
		number = strings.TrimSpace(trimmed[:cut])
		unit = strings.TrimSpace(trimmed[cut:])
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, eris.Wrapf(err, "units: parse %q", s)
	}

	if unit == "" {
		return value, nil
	}
	factor, ok := toNanomolar[strings.ToLower(unit)]
	if !ok {
		return 0, eris.Errorf("units: unrecognized unit %q in %q", unit, s)
	}
	return value * factor, nil
}

// FormatFloat renders a float the way the lab's spreadsheets expect:
// shortest representation that round-trips.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// NormalizeColumn converts a table column of concentration strings to
// nanomolar in place and renames the column with an "(nM)" suffix.
// Empty cells stay empty.
func NormalizeColumn(t *table.Table, column string) error {
	i := t.ColumnIndex(column)
	if i < 0 {
		return eris.Errorf("units: no column %q", column)
	}

	for r := range t.Rows {
		cell := t.Cell(r, column)
		if cell == "" {
			continue
		}
		v, err := Nanomolar(cell)
		if err != nil {
			return eris.Wrapf(err, "units: row %d", r)
		}
		if err := t.SetCell(r, column, FormatFloat(v)); err != nil {
			return err
		}
	}

	t.Columns[i] = column + " (nM)"
	return nil
}
