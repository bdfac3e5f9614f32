package main

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/deniz-lab/wrangle/internal/parsekey"
	"github.com/deniz-lab/wrangle/internal/table"
)

// expandGlobs expands glob patterns to a sorted, de-duplicated file list,
// skipping directories.
func expandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, eris.Wrapf(err, "bad file pattern %q", pattern)
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() || seen[m] {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, eris.Errorf("no files matched %v", patterns)
	}
	sort.Strings(files)
	return files, nil
}

// writeTable writes a table to the given path, or to stdout when path is
// empty.
func writeTable(t *table.Table, path string) error {
	if path == "" {
		return t.Write(os.Stdout)
	}
	if err := t.WriteFile(path); err != nil {
		return err
	}
	zap.L().Info("wrote tidy table",
		zap.String("path", path),
		zap.Int("rows", t.Len()),
		zap.Int("columns", len(t.Columns)),
	)
	return nil
}

// buildParseKey assembles a ParseKey from --fields/--kinds/--sep flags, or
// returns a named built-in when --parse-key is set.
func buildParseKey(named, separator string, fieldNames, kindNames []string) (*parsekey.ParseKey, error) {
	switch named {
	case "rna-peptide":
		return parsekey.RNAPeptide(), nil
	case "kdna-mg2":
		return parsekey.KDNAMg2(), nil
	case "":
	default:
		return nil, eris.Errorf("unknown parse key %q, use rna-peptide or kdna-mg2", named)
	}

	if len(fieldNames) == 0 {
		return parsekey.RNAPeptide(), nil
	}
	fields := make([]parsekey.Field, len(fieldNames))
	for i, name := range fieldNames {
		kind := parsekey.String
		if i < len(kindNames) {
			k, err := parsekey.ParseKind(kindNames[i])
			if err != nil {
				return nil, err
			}
			kind = k
		}
		fields[i] = parsekey.Field{Name: name, Kind: kind}
	}
	return parsekey.New(separator, fields...)
}
