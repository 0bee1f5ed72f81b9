package parser

import "strings"

// Normalize canonicalizes raw message text for pattern matching:
// non-breaking spaces become regular spaces, the whole text is uppercased,
// and commas become periods so locale-style decimals match uniformly.
// Used only for matching; the raw text is never persisted re-derived.
func Normalize(raw string) string {
	t := strings.ReplaceAll(raw, " ", " ")
	t = strings.ToUpper(t)
	return strings.ReplaceAll(t, ",", ".")
}
