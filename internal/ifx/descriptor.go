package ifx

import (
	"strings"
)

// Condition is one experiment condition recovered from a descriptor.
type Condition struct {
	Name  string
	Value string
}

// concentration units recognized in descriptor titles, checked in this
// order. Plain molar is not recognized; enter mM.
var titleUnits = []string{"mM", "uM", "nM", "pM"}

// Conditions extracts experiment conditions from a .ifx descriptor.
//
// The title line encodes conditions as "<concentration> <unit> <molecule>"
// terms separated by " - "; each becomes a "[<molecule>]" condition. The
// comment, timestamp, and fixed excitation/emission wavelengths follow when
// present. Empty values are omitted.
func Conditions(descriptor string, titleAsColumn bool) []Condition {
	var conditions []Condition

	title := firstLine(descriptor)
	title = strings.TrimPrefix(title, "Title=")
	if titleAsColumn && title != "" {
		conditions = append(conditions, Condition{Name: "title", Value: title})
	}

	for _, attribute := range strings.Split(title, " - ") {
		attribute = strings.TrimSpace(attribute)
		divisor := -1
		for _, unit := range titleUnits {
			if divisor = strings.Index(attribute, unit); divisor >= 0 {
				break
			}
		}
		if divisor < 0 || divisor+3 > len(attribute) {
			continue
		}
		concentration := attribute[:divisor+2]
		molecule := attribute[divisor+3:]
		conditions = append(conditions, Condition{Name: "[" + molecule + "]", Value: concentration})
	}

	named := []Condition{
		{Name: "comment", Value: restOfLine(descriptor, "Comment=")},
		{Name: "timestamp", Value: restOfLine(descriptor, "Timestamp=")},
		{Name: "ex wavelength (nm)", Value: restOfLine(descriptor, "ExcitationWavelength=type:numeric,unit:nm,fixed:")},
		{Name: "em wavelength (nm)", Value: restOfLine(descriptor, "EmissionWavelength=type:numeric,unit:nm,fixed:")},
	}
	for _, c := range named {
		if c.Value != "" {
			conditions = append(conditions, c)
		}
	}
	return conditions
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// restOfLine returns the remainder of the descriptor line following the
// first occurrence of prefix, or "" if absent.
func restOfLine(descriptor, prefix string) string {
	start := strings.Index(descriptor, prefix)
	if start < 0 {
		return ""
	}
	rest := descriptor[start+len(prefix):]
	return firstLine(rest)
}
