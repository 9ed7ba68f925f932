package brdocs

import (
	"regexp"
	"sort"
)

// Match is a valid document found inside free text
type Match struct {
	Type      DocType `json:"type"`
	Digits    string  `json:"digits"`
	Formatted string  `json:"formatted"`
	Offset    int     `json:"offset"`
}

type docPattern struct {
	docType DocType
	re      *regexp.Regexp
}

var extractPatterns = []docPattern{
	{DocTypeCNPJ, regexp.MustCompile(`\b\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}\b`)},
	{DocTypeCNPJ, regexp.MustCompile(`\b\d{14}\b`)},
	{DocTypeCPF, regexp.MustCompile(`\b\d{3}\.\d{3}\.\d{3}-\d{2}\b`)},
	{DocTypeCPF, regexp.MustCompile(`\b\d{11}\b`)},
}

// ExtractDocuments finds valid CPFs and CNPJs in text, formatted or bare.
// Matches are returned in order of appearance and each document appears once.
func ExtractDocuments(text string) []Match {
	var found []Match
	for _, p := range extractPatterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			raw := text[loc[0]:loc[1]]
			if !IsValidDocument(p.docType, raw) {
				continue
			}
			found = append(found, Match{
				Type:      p.docType,
				Digits:    OnlyDigits(raw).String(),
				Formatted: FormatDocumentByType(p.docType, raw),
				Offset:    loc[0],
			})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Offset < found[j].Offset
	})

	matches := make([]Match, 0, len(found))
	seen := make(map[string]bool, len(found))
	for _, m := range found {
		key := m.Type.String() + ":" + m.Digits
		if seen[key] {
			continue
		}
		seen[key] = true
		matches = append(matches, m)
	}
	return matches
}
