// Package normalize repairs OCR artifacts in title-sheet text before it is
// handed to the model. The rules are tuned for one plan-sheet family.
package normalize

import (
	"regexp"
	"strings"
)

var (
	reSplitContractFor = regexp.MustCompile(`(?i)(CONTRACT)\s*FOR`)
	reSquishedScope    = regexp.MustCompile(`(?i)(CONTRACT FOR)([A-Z])`)
	reJobMarker        = regexp.MustCompile(`(?i)\bJN\b`)
	reDateMarker       = regexp.MustCompile(`(?i)\bDATE\b`)
	reBoilerplate      = regexp.MustCompile(`(?i)TITLE SHEET|DRAWING|SHEET|TITLE|DESIGN`)
	// B01-22222, S09-3, S09-3 of 22222, C03 of 22222
	reStructureNumber = regexp.MustCompile(`(?i)\b[A-Z]\d{2}(?:-\d{1,5}(?:\s+of\s+\d{5})?|\s+of\s+\d{5})\b`)
	reMultiSpace      = regexp.MustCompile(`\s{2,}`)
)

// Normalize applies the fixed substitution sequence. Order matters: the
// marker rewrites pad with spaces that the final collapse relies on, and
// boilerplate removal must run before structure numbers are stripped.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = reSplitContractFor.ReplaceAllString(s, "CONTRACT FOR")
	s = reSquishedScope.ReplaceAllString(s, "${1}: ${2}")
	s = reJobMarker.ReplaceAllString(s, " Job Number ")
	s = reDateMarker.ReplaceAllString(s, " Date ")
	s = reBoilerplate.ReplaceAllString(s, "")
	s = reStructureNumber.ReplaceAllString(s, "")
	s = reMultiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
