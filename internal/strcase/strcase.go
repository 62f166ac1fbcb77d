// Package strcase converts identifiers between the casing conventions the
// generated targets use: snake_case for Rust items, PascalCase for types,
// camelCase for bridge methods, and flatcase for C++ namespaces.
package strcase

import (
	"strings"
	"unicode"
)

// split breaks an identifier into its word parts. Boundaries are non
// alphanumeric runes, lower-to-upper transitions, and the last upper rune of
// an acronym run (HTTPServer splits as HTTP, Server).
func split(s string) []string {
	var words []string
	var cur strings.Builder
	runes := []rune(s)

	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur.WriteRune(r)
	}
	flush()
	return words
}

// SnakeCase converts an identifier to snake_case.
func SnakeCase(s string) string {
	words := split(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

// PascalCase converts an identifier to PascalCase.
func PascalCase(s string) string {
	var b strings.Builder
	for _, w := range split(s) {
		b.WriteString(title(w))
	}
	return b.String()
}

// CamelCase converts an identifier to camelCase.
func CamelCase(s string) string {
	words := split(s)
	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			b.WriteString(strings.ToLower(w))
		} else {
			b.WriteString(title(w))
		}
	}
	return b.String()
}

// FlatCase converts an identifier to flatcase, all lowercase with no
// separators.
func FlatCase(s string) string {
	var b strings.Builder
	for _, w := range split(s) {
		b.WriteString(strings.ToLower(w))
	}
	return b.String()
}

func title(w string) string {
	if w == "" {
		return ""
	}
	r := []rune(strings.ToLower(w))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
