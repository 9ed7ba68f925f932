package brdocs

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

// CPFLength is the number of digits in a CPF, check digits included
const CPFLength = 11

// FormatCPF masks the first 11 digits of input as DDD.DDD.DDD-DD.
// Partial input is masked progressively, so it can run on every keystroke.
func FormatCPF(input string) string {
	v := OnlyDigits(input).Truncate(CPFLength).String()
	switch n := len(v); {
	case n <= 3:
		return v
	case n <= 6:
		return v[:3] + "." + v[3:]
	case n <= 9:
		return v[:3] + "." + v[3:6] + "." + v[6:]
	default:
		return v[:3] + "." + v[3:6] + "." + v[6:9] + "-" + v[9:]
	}
}

// IsValidCPF validates a CPF using the modulo-11 check digit algorithm
func IsValidCPF(input string) bool {
	v := OnlyDigits(input)
	if v.Len() != CPFLength {
		return false
	}

	// Repeated digits pass the checksum but are never issued
	if v.allSame() {
		return false
	}

	if cpfCheckDigit(v, 9) != v.at(9) {
		return false
	}
	return cpfCheckDigit(v, 10) == v.at(10)
}

// cpfCheckDigit computes the check digit over the first n digits,
// weighting them from n+1 down to 2
func cpfCheckDigit(v Digits, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += v.at(i) * (n + 1 - i)
	}
	rev := 11 - sum%11
	if rev >= 10 {
		return 0
	}
	return rev
}

// CompleteCPF appends both check digits to a 9-digit CPF base
func CompleteCPF(base string) (string, error) {
	v := OnlyDigits(base)
	if v.Len() != CPFLength-2 || len(base) != v.Len() {
		return "", fmt.Errorf("%w: CPF base must have exactly 9 digits, got %q", ErrInvalidBase, base)
	}

	v += Digits(strconv.Itoa(cpfCheckDigit(v, 9)))
	v += Digits(strconv.Itoa(cpfCheckDigit(v, 10)))
	return v.String(), nil
}

// GenerateCPF returns a random valid CPF, digits only
func GenerateCPF(r *rand.Rand) string {
	for {
		base := randomDigits(r, CPFLength-2)
		if base.allSame() {
			continue
		}
		cpf, err := CompleteCPF(base.String())
		if err != nil {
			continue
		}
		return cpf
	}
}

func randomDigits(r *rand.Rand, n int) Digits {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('0' + r.IntN(10))
	}
	return Digits(b)
}
