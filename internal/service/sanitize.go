package service

import "strings"

// DefaultMaxLen is the rune limit applied to prompt inputs and provider output
const DefaultMaxLen = 800

// Sanitize trims, truncates to DefaultMaxLen runes and blanks control characters.
func Sanitize(text string) string {
	return SanitizeN(text, DefaultMaxLen)
}

// SanitizeN is Sanitize with an explicit rune limit.
// Tab, LF and CR survive; every other C0 control becomes one space.
func SanitizeN(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	runes := []rune(text)
	if maxLen >= 0 && len(runes) > maxLen {
		runes = runes[:maxLen]
	}
	for i, r := range runes {
		if isBlankedControl(r) {
			runes[i] = ' '
		}
	}
	return string(runes)
}

func isBlankedControl(r rune) bool {
	return (r >= 0x00 && r <= 0x08) || r == 0x0b || r == 0x0c || (r >= 0x0e && r <= 0x1f)
}
