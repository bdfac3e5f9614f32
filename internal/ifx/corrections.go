package ifx

import (
	"embed"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/deniz-lab/wrangle/internal/table"
	"github.com/deniz-lab/wrangle/internal/units"
)

// Instrument sensitivity corrections supplied by ISS as .ifa files, one per
// (polarizer, slit) combination. Intensity readings are divided by the
// correction at their emission wavelength.

//go:embed corrections/*.ifa
var correctionsFS embed.FS

type correctionSpec struct {
	polarizer string
	slit      float64
}

var correctionFiles = map[correctionSpec]string{
	{"horizontal", 0.5}: "horizontal polarizer and slit 05.ifa",
	{"horizontal", 1}:   "horizontal polarizer and slit 1.ifa",
	{"horizontal", 2}:   "horizontal polarizer and slit 2.ifa",
	{"vertical", 0.5}:   "vertical polarizer and slit 05.ifa",
	{"vertical", 1}:     "vertical polarizer and slit 1.ifa",
	{"vertical", 2}:     "vertical polarizer and slit 2.ifa",
	{"none", 0.5}:       "without polarizer and slit 05.ifa",
	{"none", 1}:         "without polarizer and slit 1.ifa",
	{"none", 2}:         "without polarizer and slit 2.ifa",
}

// Corrections returns the sensitivity correction per integer wavelength for
// the given polarizer ("horizontal", "vertical", "none" or empty) and slit
// (0.5, 1, or 2). ISS supplies even wavelengths only; odd wavelengths are
// the mean of their neighbors.
func Corrections(polarizer string, slit float64) (map[int]float64, error) {
	if polarizer == "" {
		polarizer = "none"
	}
	name, ok := correctionFiles[correctionSpec{strings.ToLower(polarizer), slit}]
	if !ok {
		return nil, eris.New("ifx: polarizer must be one of horizontal, vertical, or none, and slit one of 0.5, 1, or 2")
	}

	raw, err := correctionsFS.ReadFile("corrections/" + name)
	if err != nil {
		return nil, eris.Wrapf(err, "ifx: read corrections %q", name)
	}

	corrections, err := parseCorrections(string(raw))
	if err != nil {
		return nil, eris.Wrapf(err, "ifx: corrections %q", name)
	}
	return fillOddWavelengths(corrections), nil
}

// parseCorrections reads the [Data] section of a .ifa file: one
// "<wavelength> nm<tab><correction>" entry per line.
func parseCorrections(contents string) (map[int]float64, error) {
	_, data, found := strings.Cut(contents, "[Data]")
	if !found {
		return nil, eris.New("no [Data] section")
	}

	corrections := make(map[int]float64)
	for _, entry := range strings.Split(data, "\n") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		fields := strings.Fields(entry)
		if len(fields) < 3 || fields[1] != "nm" {
			return nil, eris.Errorf("malformed entry %q", entry)
		}
		wavelength, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, eris.Wrapf(err, "wavelength in entry %q", entry)
		}
		correction, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, eris.Wrapf(err, "correction in entry %q", entry)
		}
		corrections[wavelength] = correction
	}
	if len(corrections) == 0 {
		return nil, eris.New("no correction entries")
	}
	return corrections, nil
}

// fillOddWavelengths interpolates wavelengths missing between the file's
// first and last entries as the mean of their two neighbors.
func fillOddWavelengths(corrections map[int]float64) map[int]float64 {
	wavelengths := make([]int, 0, len(corrections))
	for wl := range corrections {
		wavelengths = append(wavelengths, wl)
	}
	sort.Ints(wavelengths)

	filled := make(map[int]float64, 2*len(corrections))
	for wl, c := range corrections {
		filled[wl] = c
	}
	for wl := wavelengths[0]; wl <= wavelengths[len(wavelengths)-1]; wl++ {
		if _, ok := filled[wl]; ok {
			continue
		}
		lo, hasLo := corrections[wl-1]
		hi, hasHi := corrections[wl+1]
		if hasLo && hasHi {
			filled[wl] = (lo + hi) / 2
		}
	}
	return filled
}

// DetectSlit interprets the instrument's Comment field, which the lab uses
// to record the slit widths for a run ("2 all", "1, 1, 1, 1", ...). Mixed
// slits are not supported.
func DetectSlit(comment string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(comment), " ", "")
	switch normalized {
	case "2,2,2,2", "2all":
		return 2, nil
	case "1,1,1,1", "1all":
		return 1, nil
	case "0.5,0.5,0.5,0.5", "0.5all":
		return 0.5, nil
	default:
		return 0, eris.Errorf("ifx: comment %q could not be interpreted as a slit width", comment)
	}
}

// CorrectIntensity divides the Intensity column by the instrument
// sensitivity at each row's emission wavelength, writing a "Corrected
// Intensity" column. Data is assumed measured without polarizers. When slit
// is zero it is detected per row from the comment column; pass 0.5, 1, or 2
// to override.
func CorrectIntensity(t *table.Table, slit float64) (*table.Table, error) {
	if slit != 0 && slit != 0.5 && slit != 1 && slit != 2 {
		return nil, eris.New("ifx: slit must be one of 0.5, 1, or 2")
	}
	if !t.HasColumn("Intensity") {
		return nil, eris.New("ifx: no Intensity column; assemble .ifx files first")
	}
	wavelengthColumn := "EmissionWavelength"
	if !t.HasColumn(wavelengthColumn) {
		wavelengthColumn = "em wavelength (nm)"
		if !t.HasColumn(wavelengthColumn) {
			return nil, eris.New("ifx: no emission wavelength column")
		}
	}
	if slit == 0 && !t.HasColumn("comment") {
		return nil, eris.New("ifx: no comment column to detect the slit from; pass the slit explicitly")
	}

	// One corrections table per slit actually used.
	bySlit := make(map[float64]map[int]float64)
	lookup := func(s float64) (map[int]float64, error) {
		if c, ok := bySlit[s]; ok {
			return c, nil
		}
		c, err := Corrections("none", s)
		if err != nil {
			return nil, err
		}
		bySlit[s] = c
		return c, nil
	}

	out := t.Clone()
	if err := out.AddColumn("Corrected Intensity", ""); err != nil {
		return nil, err
	}
	for i := range out.Rows {
		rowSlit := slit
		if rowSlit == 0 {
			detected, err := DetectSlit(out.Cell(i, "comment"))
			if err != nil {
				return nil, err
			}
			rowSlit = detected
		}
		corrections, err := lookup(rowSlit)
		if err != nil {
			return nil, err
		}

		intensity, err := strconv.ParseFloat(out.Cell(i, "Intensity"), 64)
		if err != nil {
			return nil, eris.Wrapf(err, "ifx: intensity at row %d", i)
		}
		wavelength, err := strconv.ParseFloat(out.Cell(i, wavelengthColumn), 64)
		if err != nil {
			return nil, eris.Wrapf(err, "ifx: emission wavelength at row %d", i)
		}
		correction, ok := corrections[int(math.Round(wavelength))]
		if !ok {
			return nil, eris.Errorf("ifx: no correction for %g nm at slit %g", wavelength, rowSlit)
		}
		if err := out.SetCell(i, "Corrected Intensity", units.FormatFloat(intensity/correction)); err != nil {
			return nil, err
		}
	}
	return out, nil
}
