// Package textnorm canonicalizes OCR output and reduces it to translatable content.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize applies Unicode canonical composition (NFC) so combining marks and
// decomposed glyphs from OCR compare equal to their precomposed forms.
func Normalize(text string) string {
	return norm.NFC.String(text)
}

// ExtractLetters keeps ASCII letters, digits and spaces. Every other character becomes a
// space, runs of spaces collapse to one, and the result is trimmed. The function is
// idempotent.
func ExtractLetters(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	pendingSpace := false
	for _, r := range text {
		if isASCIIAlnum(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			continue
		}
		pendingSpace = true
	}

	return b.String()
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Words splits text into tokens on whitespace and the sentence punctuation . , ! ?
// Empty tokens are dropped; order is preserved.
func Words(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case ' ', '\t', '\r', '\n', '.', ',', '!', '?':
			return true
		}
		return false
	})
}
