// Package format holds small text helpers shared by the API and the web GUI.
package format

import (
	"unicode"
	"unicode/utf8"
)

// Capitalize returns s with its first character upper-cased. The remainder of
// the string is left untouched. Empty input is returned as is.
func Capitalize(s string) string {
	if s == "" {
		return s
	}

	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}
