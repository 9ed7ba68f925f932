package brdocs

import (
	"fmt"
	"regexp"
	"strings"
)

// DocType selects the formatting and validation rules for a document
type DocType string

const (
	DocTypeCPF   DocType = "cpf"
	DocTypeCNPJ  DocType = "cnpj"
	DocTypeEmail DocType = "email"
)

// DocTypes lists every accepted document type
var DocTypes = []DocType{DocTypeCPF, DocTypeCNPJ, DocTypeEmail}

var emailHintPattern = regexp.MustCompile(`[A-Za-z@]`)

// ParseDocType converts s into a DocType, case-insensitively
func ParseDocType(s string) (DocType, error) {
	t := DocType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDocType, s)
	}
	return t, nil
}

// Valid reports whether t is one of the accepted document types
func (t DocType) Valid() bool {
	switch t {
	case DocTypeCPF, DocTypeCNPJ, DocTypeEmail:
		return true
	}
	return false
}

// String returns the wire name of the type
func (t DocType) String() string {
	return string(t)
}

// DetectDocType guesses the document type from partially typed text.
// Any letter or '@' means email so typing is never blocked; otherwise more
// than 11 digits means CNPJ and anything shorter is treated as a CPF.
func DetectDocType(text string) DocType {
	v := strings.TrimSpace(text)
	if emailHintPattern.MatchString(v) {
		return DocTypeEmail
	}
	if OnlyDigits(v).Len() > CPFLength {
		return DocTypeCNPJ
	}
	return DocTypeCPF
}

// FormatDocumentByType applies the display mask of t to value.
// Unknown types get the trimmed value back untouched.
func FormatDocumentByType(t DocType, value string) string {
	switch t {
	case DocTypeCPF:
		return FormatCPF(value)
	case DocTypeCNPJ:
		return FormatCNPJ(value)
	default:
		return strings.TrimSpace(value)
	}
}

// IsValidDocument validates value under the rules of t.
// Unknown types are never valid.
func IsValidDocument(t DocType, value string) bool {
	switch t {
	case DocTypeCPF:
		return IsValidCPF(value)
	case DocTypeCNPJ:
		return IsValidCNPJ(value)
	case DocTypeEmail:
		return IsValidEmail(value)
	default:
		return false
	}
}

// NormalizeDocument returns the form submission value for a document:
// the trimmed address for emails and the bare digits for cpf and cnpj
func NormalizeDocument(t DocType, value string) string {
	switch t {
	case DocTypeCPF, DocTypeCNPJ:
		return OnlyDigits(value).String()
	default:
		return strings.TrimSpace(value)
	}
}
