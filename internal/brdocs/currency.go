package brdocs

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// brlPrinter is built on first use and shared by every caller
var brlPrinter = sync.OnceValue(func() *message.Printer {
	return message.NewPrinter(language.BrazilianPortuguese)
})

var (
	nonNumericPattern = regexp.MustCompile(`[^0-9.\-]`)
	leadingNumber     = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)`)
)

// FormatBRL renders amount the way pt-BR displays Brazilian reais,
// e.g. "R$ 1.234,56" with a no-break space after the symbol
func FormatBRL(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ""
	}

	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	// avoid printing "-R$ 0,00"
	if math.Round(amount*100) == 0 {
		sign = ""
	}
	return sign + "R$\u00a0" + brlPrinter().Sprintf("%.2f", amount)
}

// ParseBRL reads a currency amount typed by a user.
// When a comma is present it is the decimal separator and dots group
// thousands; otherwise a dot is the decimal separator. Unparsable input is 0.
func ParseBRL(text string) float64 {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, "$", "")

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else {
		s = nonNumericPattern.ReplaceAllString(s, "")
	}

	num := leadingNumber.FindString(s)
	if num == "" {
		return 0
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	return n
}
