package message

import "strings"

// Normalize collapses runs of whitespace into single spaces and trims the result.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Lower returns the normalized, lower-cased form used for matching.
func Lower(s string) string {
	return strings.ToLower(Normalize(s))
}

// NormalizePhone keeps only the digits of a phone number.
func NormalizePhone(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
