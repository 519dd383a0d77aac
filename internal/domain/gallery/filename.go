package gallery

import (
	"strings"
	"unicode"
)

// DefaultBasename is used when nothing usable is left of a file name
const DefaultBasename = "selection"

const unsafeFileChars = `<>:"/\|?*`

// SanitizeFileBasename turns arbitrary text into a download-safe file name.
// Control characters are dropped, whitespace and filesystem-reserved characters
// become single underscores and the result is lower-cased.
func SanitizeFileBasename(value string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, value)
	cleaned = strings.ToLower(strings.TrimSpace(cleaned))

	var b strings.Builder
	b.Grow(len(cleaned))
	lastUnderscore := false
	for _, r := range cleaned {
		if r == '_' || unicode.IsSpace(r) || strings.ContainsRune(unsafeFileChars, r) {
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
			continue
		}
		b.WriteRune(r)
		lastUnderscore = false
	}

	result := strings.Trim(b.String(), "_")
	if result == "" {
		return DefaultBasename
	}
	return result
}
