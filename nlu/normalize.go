package nlu

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases text and folds Vietnamese accented characters to
// their base Latin letter, so keyword matching works regardless of how the
// user typed the diacritics. "Đặt sách" and "dat sach" normalize equally.
func Normalize(text string) string {
	text = strings.ToLower(text)

	// NFD decomposition + combining-mark removal handles every accented
	// vowel. đ does not decompose, so it needs its own mapping.
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, text)
	if err != nil {
		folded = text
	}

	return strings.Map(func(r rune) rune {
		if r == 'đ' {
			return 'd'
		}
		return r
	}, folded)
}
