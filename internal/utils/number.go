package utils

import (
	"strings"
	"unicode"
)

const (
	minNumberDigits = 7
	maxNumberDigits = 15
)

// NormalizeNumber strips formatting from a mobile number, keeping digits
// and a leading plus sign: "+1 (555) 010-2000" becomes "+15550102000".
func NormalizeNumber(number string) string {
	number = strings.TrimSpace(number)

	var b strings.Builder
	for i, r := range number {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateNumber checks a normalized number has a plausible digit count
func ValidateNumber(number string) bool {
	digits := strings.TrimPrefix(number, "+")
	if len(digits) < minNumberDigits || len(digits) > maxNumberDigits {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
