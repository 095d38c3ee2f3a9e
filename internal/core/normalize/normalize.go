// Package normalize cleans visitor supplied form input before it is stored
// Pipeline order
// 1 Sanitize drops control bytes and invalid UTF-8
// 2 Unicode NFC so visually equal names compare equal
// 3 Remove format chars (ZWJ ZWNJ FEFF and friends)
// 4 Collapse whitespace, keeping line breaks only for multiline fields
//
// Identifiers (email, phone) are additionally width folded so fullwidth
// digits and letters typed on mobile keyboards become ASCII
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pools of fresh transformer chains, transformers are stateful
var (
	textPool = sync.Pool{
		New: func() any {
			return transform.Chain(
				norm.NFC,
				runes.Remove(runes.In(unicode.Cf)),
			)
		},
	}
	identPool = sync.Pool{
		New: func() any {
			return transform.Chain(
				norm.NFKC,
				runes.Remove(runes.In(unicode.Cf)),
				width.Fold,
			)
		},
	}
	lower = cases.Lower(language.Und)
)

func apply(pool *sync.Pool, s string) string {
	tr := pool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	pool.Put(tr)
	if err != nil {
		return s
	}
	return out
}

// Text normalizes a single line field such as a name or a city
// all whitespace runs, line breaks included, become one space
func Text(s string) string {
	if s == "" {
		return ""
	}
	return collapseSpaces(apply(&textPool, Sanitize(s)), false)
}

// Multiline normalizes free text such as a message or a review
// whitespace runs containing a line break collapse to a single newline
func Multiline(s string) string {
	if s == "" {
		return ""
	}
	return collapseSpaces(apply(&textPool, Sanitize(s)), true)
}

// Email normalizes an address for storage and lookup
// the whole address is lowercased, local parts included
func Email(s string) string {
	if s == "" {
		return ""
	}
	s = apply(&identPool, Sanitize(s))
	return lower.String(strings.Join(strings.Fields(s), ""))
}

// Phone normalizes a phone number keeping its original punctuation
func Phone(s string) string {
	if s == "" {
		return ""
	}
	return collapseSpaces(apply(&identPool, Sanitize(s)), false)
}

// Optional normalizes an optional multiline field
// nil stays nil and blank input becomes nil
func Optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := Multiline(*s)
	if v == "" {
		return nil
	}
	return &v
}

// collapseSpaces converts whitespace runs to a single ASCII space
// when keepLines is set, runs containing a newline collapse to one newline
// leading and trailing whitespace is trimmed
func collapseSpaces(s string, keepLines bool) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	sawNL := false
	flush := func() {
		if !inWS {
			return
		}
		if sawNL && keepLines {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
		inWS = false
		sawNL = false
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			if r == '\n' || r == '\r' {
				sawNL = true
			}
			continue
		}
		flush()
		b.WriteRune(r)
	}
	flush()
	return strings.Trim(b.String(), " \n\t\r")
}
