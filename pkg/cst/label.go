package cst

import "strings"

// NormalizeLabel folds a reference label for lookup: case-folded, interior
// whitespace runs collapsed to a single space, leading and trailing
// whitespace stripped. Both the renderer's definition map and reference
// lookups go through this, so "Foo\n  Bar" and "foo bar" match.
func NormalizeLabel(label string) string {
	folded := strings.ToLower(label)
	fields := strings.Fields(folded)
	return strings.Join(fields, " ")
}
