package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultLabeler converts an element name into a human-friendly label.
// Underscores become spaces, every uppercase letter starts a new word, and the
// first letter of each word is upper-cased. The rest of each word is kept as
// written, so "SMS_or_RCS" becomes "S M S Or R C S".
func DefaultLabeler(name string) string {
	if name == "" {
		return ""
	}

	spaced := strings.ReplaceAll(name, "_", " ")
	words := strings.Fields(splitUpper(spaced))
	for i, word := range words {
		words[i] = titleCase(word)
	}
	return strings.Join(words, " ")
}

func splitUpper(input string) string {
	var out strings.Builder
	for _, r := range input {
		if isUpper(r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(word)
	return string(unicode.ToUpper(r)) + word[size:]
}
