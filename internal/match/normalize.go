package match

import "strings"

// Normalize canonicalizes a free-text title for comparison: lowercase, runs of
// whitespace collapsed to single spaces, leading/trailing whitespace trimmed.
// Pure and idempotent.
func Normalize(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}
