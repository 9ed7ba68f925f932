package brdocs

import (
	"regexp"
	"strings"
)

// emailPattern is a coarse structural check, not RFC 5322
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail trims input and checks it looks like local@domain.tld
func IsValidEmail(input string) bool {
	return emailPattern.MatchString(strings.TrimSpace(input))
}
