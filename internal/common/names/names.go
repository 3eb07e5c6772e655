// Package names normalizes the display names of teams and zones.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// MaxLength is the longest accepted display name
const MaxLength = 32

// Key folds a display name into its case-insensitive lookup key.
// A cases.Caser is stateful, so a fresh one is used per call.
func Key(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// Valid reports whether name is non-empty, at most MaxLength runes and free of
// whitespace and control characters
func Valid(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > MaxLength {
		return false
	}
	return strings.IndexFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) < 0
}
