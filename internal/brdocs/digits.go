// Package brdocs formats, validates and classifies Brazilian tax documents
// (CPF and CNPJ) and the email addresses accepted in their place on login forms.
//
// Every function is pure and safe for concurrent use. Malformed input never
// panics: validators answer false and formatters return a best-effort string.
package brdocs

import "regexp"

var nonDigitPattern = regexp.MustCompile(`\D+`)

// Digits is a string made only of the ASCII characters 0-9.
// Values are built with OnlyDigits, never by conversion from user input.
type Digits string

// OnlyDigits removes every character that is not an ASCII digit
func OnlyDigits(input string) Digits {
	if input == "" {
		return ""
	}
	return Digits(nonDigitPattern.ReplaceAllString(input, ""))
}

// Truncate clips d to at most n digits
func (d Digits) Truncate(n int) Digits {
	if n < 0 {
		return ""
	}
	if len(d) > n {
		return d[:n]
	}
	return d
}

// String returns the digits as a plain string
func (d Digits) String() string {
	return string(d)
}

// Len returns the number of digits
func (d Digits) Len() int {
	return len(d)
}

// at returns the numeric value of the digit at position i
func (d Digits) at(i int) int {
	return int(d[i] - '0')
}

// allSame reports whether d is non-empty and made of a single repeated digit
func (d Digits) allSame() bool {
	if len(d) == 0 {
		return false
	}
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}
