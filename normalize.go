package studyquiz

import "strings"

// Normalize collapses every run of whitespace to a single space and trims
// the ends. Empty or all-whitespace input yields "".
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}
