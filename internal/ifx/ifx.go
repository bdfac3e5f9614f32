// Package ifx reads the fluorimeter's .ifx text exports: a free-text
// descriptor block, a "Columns=" header line, and a whitespace-separated
// [Data] section. Experiment conditions embedded in the descriptor are
// promoted to columns when files are assembled.
package ifx

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/deniz-lab/wrangle/internal/table"
)

// File is one parsed .ifx export.
type File struct {
	Table      *table.Table
	Descriptor string
}

// Read parses a .ifx file from disk.
func Read(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "ifx: open file")
	}
	defer f.Close() //nolint:errcheck

	parsed, err := Parse(f)
	if err != nil {
		return nil, eris.Wrapf(err, "ifx: parse %s", path)
	}
	return parsed, nil
}

// Parse reads a .ifx export from r.
func Parse(r io.Reader) (*File, error) {
	scanner := bufio.NewScanner(r)

	var descriptor strings.Builder
	var columns []string

	// Descriptor lines up to the Columns= line.
	found := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "Columns=") {
			columns = strings.Split(strings.TrimRight(strings.TrimPrefix(line, "Columns="), " \t\r"), ",")
			found = true
			break
		}
		descriptor.WriteString(line)
		descriptor.WriteString("\n")
	}
	if !found {
		return nil, eris.New("ifx: no Columns line found")
	}

	// G factor and other metadata continue until the [Data] marker.
	found = false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "[Data]") {
			found = true
			break
		}
		descriptor.WriteString(line)
		descriptor.WriteString("\n")
	}
	if !found {
		return nil, eris.New("ifx: no [Data] section found")
	}

	t := table.New(columns...)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" {
			break
		}
		t.AppendRow(splitDataLine(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrap(err, "ifx: read")
	}

	return &File{Table: t, Descriptor: descriptor.String()}, nil
}

// splitDataLine splits a data row on spaces, discarding empty and tab
// tokens the instrument pads with.
func splitDataLine(line string) []string {
	var cells []string
	for _, tok := range strings.Split(line, " ") {
		tok = strings.TrimRight(tok, " \t")
		if tok == "" || tok == "\t" {
			continue
		}
		cells = append(cells, tok)
	}
	return cells
}

// AssembleOptions configures Assemble.
type AssembleOptions struct {
	// TitleAsColumn carries the descriptor title through as its own column.
	TitleAsColumn bool
}

// Assemble reads many .ifx files, broadcasts each file's descriptor
// conditions across its rows, and concatenates everything into one table.
// Paths without a .ifx extension are skipped.
func Assemble(paths []string, opts AssembleOptions) (*table.Table, error) {
	var tables []*table.Table
	for _, path := range paths {
		if !strings.HasSuffix(strings.ToLower(path), ".ifx") {
			zap.L().Debug("ifx: skipping non-ifx file", zap.String("path", path))
			continue
		}
		f, err := Read(path)
		if err != nil {
			return nil, err
		}

		t := f.Table.Clone()
		for _, cond := range Conditions(f.Descriptor, opts.TitleAsColumn) {
			if t.HasColumn(cond.Name) {
				return nil, eris.Errorf("ifx: descriptor condition %q collides with a data column in %s", cond.Name, path)
			}
			if err := t.AddColumn(cond.Name, cond.Value); err != nil {
				return nil, err
			}
		}
		tables = append(tables, t)
	}
	if len(tables) == 0 {
		return nil, eris.New("ifx: no .ifx files were specified")
	}
	return table.Concat(tables...), nil
}
