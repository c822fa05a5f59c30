package utils

// Truncate returns the first limit characters of s. The cap counts runes,
// not bytes, so multibyte text is never cut mid-sequence; it bounds prompt
// size without counting tokens.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
