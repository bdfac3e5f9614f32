package table

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadOptions configures delimited-text parsing.
type ReadOptions struct {
	Delimiter rune // default ','
	TrimSpace bool
}

// DelimiterForPath picks a delimiter from a file extension: tab for .tsv
// and .txt (nanodrop exports use tab-delimited .txt), comma otherwise.
func DelimiterForPath(path string) rune {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".txt":
		return '\t'
	default:
		return ','
	}
}

// ReadFile reads a delimited text file into a table. The first record is the
// header. Nanodrop software writes UTF-16LE with a BOM; any BOM-marked
// encoding is transcoded transparently.
func ReadFile(path string, opts ReadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "table: open file")
	}
	defer f.Close() //nolint:errcheck

	t, err := Read(f, opts)
	if err != nil {
		return nil, eris.Wrapf(err, "table: read %s", path)
	}
	return t, nil
}

// Read reads delimited text from r into a table.
func Read(r io.Reader, opts ReadOptions) (*Table, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	reader := csv.NewReader(transform.NewReader(r, decoder))
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1 // allow variable fields
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return New(), nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "table: read header")
	}
	if opts.TrimSpace {
		for i := range header {
			header[i] = strings.TrimSpace(header[i])
		}
	}

	t := New(header...)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "table: read row")
		}
		if opts.TrimSpace {
			for i := range record {
				record[i] = strings.TrimSpace(record[i])
			}
		}
		t.AppendRow(record...)
	}
	return t, nil
}

// WriteFile writes the table as comma-delimited text.
func (t *Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "table: create output file")
	}
	defer f.Close() //nolint:errcheck
	return t.Write(f)
}

// Write writes the table as CSV to w.
func (t *Table) Write(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return eris.Wrap(err, "table: write header")
	}
	for i := range t.Rows {
		row := make([]string, len(t.Columns))
		for j, c := range t.Columns {
			row[j] = t.Cell(i, c)
		}
		if err := writer.Write(row); err != nil {
			return eris.Wrap(err, "table: write row")
		}
	}
	writer.Flush()
	return eris.Wrap(writer.Error(), "table: flush")
}
