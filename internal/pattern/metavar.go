package pattern

import (
	"regexp"
	"strings"
)

// Metavariable names follow the rule syntax: $X for a single capture,
// $...X for an ordered sequence capture.
var metavarRe = regexp.MustCompile(`\$(\.\.\.)?[A-Z][A-Z0-9_]*`)

// IsMetavar reports whether name is a metavariable reference of either form.
func IsMetavar(name string) bool {
	return metavarRe.FindString(name) == name && name != ""
}

// IsSequenceMetavar reports whether name captures an ordered sequence.
func IsSequenceMetavar(name string) bool {
	return IsMetavar(name) && strings.HasPrefix(name, "$...")
}

// ScanMetavars extracts metavariable names from raw pattern text, unique,
// in order of first appearance. Used by rule validation before any tree
// exists for the pattern.
func ScanMetavars(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range metavarRe.FindAllString(text, -1) {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}
