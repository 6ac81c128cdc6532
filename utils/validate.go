package utils

import (
	"strings"
	"unicode"
)

// MinPhoneDigits is the minimum number of digits a phone number must carry.
// Vietnamese numbers are 9-11 digits after the leading zero/country code.
const MinPhoneDigits = 9

// ExtractDigits returns only the digit characters of text, in order.
// "SĐT: 091-234-5678" becomes "0912345678".
func ExtractDigits(text string) string {
	var b strings.Builder
	for _, r := range text {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidPhone reports whether text contains enough digits to pass as a
// phone number.
func IsValidPhone(text string) bool {
	return len(ExtractDigits(text)) >= MinPhoneDigits
}

// IsFullName reports whether name looks like a full name: at least two
// space-separated tokens after trimming.
func IsFullName(name string) bool {
	return len(strings.Fields(strings.TrimSpace(name))) >= 2
}
