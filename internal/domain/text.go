package domain

// Truncate cuts s to at most limit runes. Rune-based so multi-byte text
// (the corpus is largely Korean) is never split mid-character.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
