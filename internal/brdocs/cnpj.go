package brdocs

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

// CNPJLength is the number of digits in a CNPJ, check digits included
const CNPJLength = 14

// CNPJKind tells a company headquarters from its branches
type CNPJKind string

const (
	CNPJKindMatriz  CNPJKind = "MATRIZ"
	CNPJKindFilial  CNPJKind = "FILIAL"
	CNPJKindInvalid CNPJKind = "INVALID"
)

// headquartersBranch is the branch number registered for the matriz
const headquartersBranch = "0001"

var (
	cnpjFirstWeights  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjSecondWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// FormatCNPJ masks the first 14 digits of input as DD.DDD.DDD/DDDD-DD.
// Partial input is masked progressively.
func FormatCNPJ(input string) string {
	v := OnlyDigits(input).Truncate(CNPJLength).String()
	switch n := len(v); {
	case n <= 2:
		return v
	case n <= 5:
		return v[:2] + "." + v[2:]
	case n <= 8:
		return v[:2] + "." + v[2:5] + "." + v[5:]
	case n <= 12:
		return v[:2] + "." + v[2:5] + "." + v[5:8] + "/" + v[8:]
	default:
		return v[:2] + "." + v[2:5] + "." + v[5:8] + "/" + v[8:12] + "-" + v[12:]
	}
}

// IsValidCNPJ validates a CNPJ using the official check digit algorithm
func IsValidCNPJ(input string) bool {
	v := OnlyDigits(input)
	if v.Len() != CNPJLength {
		return false
	}

	if v.allSame() {
		return false
	}

	if cnpjCheckDigit(v, cnpjFirstWeights) != v.at(12) {
		return false
	}
	return cnpjCheckDigit(v, cnpjSecondWeights) == v.at(13)
}

// cnpjCheckDigit weights the leading len(weights) digits of v
func cnpjCheckDigit(v Digits, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += v.at(i) * w
	}

	remainder := sum % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}

// CompleteCNPJ appends both check digits to a 12-digit CNPJ base
func CompleteCNPJ(base string) (string, error) {
	v := OnlyDigits(base)
	if v.Len() != CNPJLength-2 || len(base) != v.Len() {
		return "", fmt.Errorf("%w: CNPJ base must have exactly 12 digits, got %q", ErrInvalidBase, base)
	}

	v += Digits(strconv.Itoa(cnpjCheckDigit(v, cnpjFirstWeights)))
	v += Digits(strconv.Itoa(cnpjCheckDigit(v, cnpjSecondWeights)))
	return v.String(), nil
}

// GenerateCNPJ returns a random valid headquarters CNPJ, digits only
func GenerateCNPJ(r *rand.Rand) string {
	for {
		root := randomDigits(r, 8)
		if root.allSame() {
			continue
		}
		cnpj, err := CompleteCNPJ(root.String() + headquartersBranch)
		if err != nil {
			continue
		}
		return cnpj
	}
}

// CNPJRoot returns the first 8 digits, shared by every branch of a company
func CNPJRoot(cnpj string) string {
	v := OnlyDigits(cnpj)
	if v.Len() != CNPJLength {
		return ""
	}
	return v[:8].String()
}

// CNPJBranch returns the branch number (digits 9 to 12)
func CNPJBranch(cnpj string) string {
	v := OnlyDigits(cnpj)
	if v.Len() != CNPJLength {
		return ""
	}
	return v[8:12].String()
}

// CNPJKindOf reports whether a CNPJ belongs to a matriz or a filial
func CNPJKindOf(cnpj string) CNPJKind {
	branch := CNPJBranch(cnpj)
	switch branch {
	case "":
		return CNPJKindInvalid
	case headquartersBranch:
		return CNPJKindMatriz
	default:
		return CNPJKindFilial
	}
}

// SameCNPJRoot checks if two CNPJs belong to the same company
func SameCNPJRoot(a, b string) bool {
	rootA := CNPJRoot(a)
	rootB := CNPJRoot(b)

	return rootA != "" && rootA == rootB
}
