// Package parsekey defines the sample-naming convention used to encode
// experiment metadata in free-text sample IDs, and classifies individual
// sample names against it.
//
// A sample name is correctly formed iff splitting it on the key's separator
// yields exactly one token per field. Buffer and blank measurements are a
// category of their own so callers can drop them independently of
// misnamed samples.
package parsekey

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Kind is the intended data type of a parsed field.
type Kind int

const (
	String Kind = iota
	Float
	Int
	Bool
)

// ParseKind converts a user-supplied type name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "str", "string":
		return String, nil
	case "float", "number", "decimal":
		return Float, nil
	case "int", "integer":
		return Int, nil
	case "bool", "boolean":
		return Bool, nil
	default:
		return String, eris.Errorf("parsekey: invalid type %q, enter one of str, int, float, or bool", s)
	}
}

// Field is one named position in a sample name.
type Field struct {
	Name string
	Kind Kind
}

// ParseKey is a sample-naming convention: an ordered list of fields joined
// by a separator.
type ParseKey struct {
	Fields    []Field
	Separator string
}

// New validates and builds a ParseKey.
func New(separator string, fields ...Field) (*ParseKey, error) {
	if len(fields) == 0 {
		return nil, eris.New("parsekey: at least one field is required")
	}
	if separator == "" && len(fields) > 1 {
		return nil, eris.New("parsekey: a separator is required for multi-field names")
	}

	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return nil, eris.New("parsekey: field names may not be empty")
		}
		if strings.Contains(f.Name, separator) && separator != "" {
			return nil, eris.Errorf("parsekey: field name %q contains the separator %q", f.Name, separator)
		}
		if seen[f.Name] {
			return nil, eris.Errorf("parsekey: repeated field name %q", f.Name)
		}
		seen[f.Name] = true
	}

	return &ParseKey{Fields: append([]Field(nil), fields...), Separator: separator}, nil
}

// FieldNames returns the field names in key order.
func (k *ParseKey) FieldNames() []string {
	names := make([]string, len(k.Fields))
	for i, f := range k.Fields {
		names[i] = f.Name
	}
	return names
}

// Status classifies a sample name against a key.
type Status int

const (
	// Parsed means the name split into exactly one token per field.
	Parsed Status = iota
	// Buffer means the name identifies a buffer or blank measurement.
	Buffer
	// Malformed means the name does not follow the convention.
	Malformed
)

// Result is the outcome of parsing one sample name. Values is aligned with
// the key's fields and nil unless Status is Parsed.
type Result struct {
	Status Status
	Values []string
}

// Parse classifies a sample name. A name is a Buffer when the whole name or
// its first separator token case-insensitively matches one of bufferNames.
// Otherwise it is Parsed iff it splits into exactly len(Fields) tokens.
func (k *ParseKey) Parse(sampleID string, bufferNames []string) Result {
	name := strings.TrimSpace(sampleID)
	if name == "" {
		return Result{Status: Malformed}
	}

	var tokens []string
	if k.Separator == "" {
		tokens = []string{name}
	} else {
		tokens = strings.Split(name, k.Separator)
	}

	if isBuffer(name, tokens[0], bufferNames) {
		return Result{Status: Buffer}
	}

	if len(tokens) != len(k.Fields) {
		return Result{Status: Malformed}
	}
	for _, tok := range tokens {
		if tok == "" {
			// leading, trailing, or doubled separators
			return Result{Status: Malformed}
		}
	}

	return Result{Status: Parsed, Values: tokens}
}

// Join rejoins field values with the key's separator, inverting Parse for
// correctly formed names.
func (k *ParseKey) Join(values []string) string {
	return strings.Join(values, k.Separator)
}

func isBuffer(name, firstToken string, bufferNames []string) bool {
	for _, b := range bufferNames {
		if strings.EqualFold(name, b) || strings.EqualFold(firstToken, b) {
			return true
		}
	}
	return false
}

// DefaultBufferNames is the out-of-the-box buffer/blank indicator list.
var DefaultBufferNames = []string{"buffer", "blank"}

// RNAPeptide is the lab's RNA/peptide titration convention:
// "<peptide>_<peptide uM>_<RNA:peptide ratio>".
func RNAPeptide() *ParseKey {
	k, _ := New("_",
		Field{Name: "Peptide", Kind: String},
		Field{Name: "Peptide concentration (uM)", Kind: Float},
		Field{Name: "RNA/Peptide Ratio", Kind: Float},
	)
	return k
}

// KDNAMg2 is the kinetoplast DNA condensation convention:
// "<sample type>_<DNA ng/uL>_<Mg2+ concentration>".
func KDNAMg2() *ParseKey {
	k, _ := New("_",
		Field{Name: "kDNA sample type", Kind: String},
		Field{Name: "DNA concentration (ng/uL)", Kind: Float},
		Field{Name: "Mg2+ concentration", Kind: Float},
	)
	return k
}
