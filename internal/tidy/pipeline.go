package tidy

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/deniz-lab/wrangle/internal/table"
)

// DateTimeColumn is the combined timestamp column nanodrop exports carry.
const DateTimeColumn = "Date and Time"

// Tidy runs the full nanodrop pipeline: read and concatenate the given
// delimited-text exports, strip export junk, pivot absorbance columns by
// wavelength, analyze sample names per the options, and break the combined
// timestamp into date and time.
func Tidy(paths []string, opts Options) (*table.Table, error) {
	if len(paths) == 0 {
		return nil, eris.New("tidy: no files were specified")
	}

	tables := make([]*table.Table, 0, len(paths))
	for _, path := range paths {
		t, err := table.ReadFile(path, table.ReadOptions{
			Delimiter: table.DelimiterForPath(path),
			TrimSpace: true,
		})
		if err != nil {
			return nil, err
		}
		zap.L().Debug("tidy: read file", zap.String("path", path), zap.Int("rows", t.Len()))
		tables = append(tables, t)
	}

	combined := CleanColumns(table.Concat(tables...))

	pivoted, err := RenameAbsByWavelength(combined)
	if err != nil {
		return nil, err
	}

	analyzed, err := AnalyzeSampleNames(pivoted, opts)
	if err != nil {
		return nil, err
	}

	return BreakOutDateTime(analyzed, DateTimeColumn)
}
