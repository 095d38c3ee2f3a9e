package normalize

import (
	"strings"
	"unicode/utf8"
)

// Sanitize drops what postgres text columns reject or what never belongs in a form
// invalid UTF-8, NUL and other C0 controls except tab and line breaks, DEL and C1 controls
func Sanitize(s string) string {
	if clean(s) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if unwanted(r) {
			return -1
		}
		return r
	}, strings.ToValidUTF8(s, ""))
}

func unwanted(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return false
	case r < 0x20, r == 0x7F:
		return true
	default:
		return r >= 0x80 && r <= 0x9F
	}
}

// clean lets already tidy input through without allocating
func clean(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if unwanted(r) {
			return false
		}
	}
	return true
}
