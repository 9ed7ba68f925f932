package brdocs

// Analysis describes everything the library can tell about a raw input
type Analysis struct {
	Input      string   `json:"input"`
	Type       DocType  `json:"type"`
	Normalized string   `json:"normalized"`
	Formatted  string   `json:"formatted"`
	Valid      bool     `json:"valid"`
	Root       string   `json:"root,omitempty"`
	Branch     string   `json:"branch,omitempty"`
	Kind       CNPJKind `json:"kind,omitempty"`
}

// Analyze classifies value with DetectDocType and describes it
func Analyze(value string) Analysis {
	return AnalyzeAs(DetectDocType(value), value)
}

// AnalyzeAs describes value under an already known document type
func AnalyzeAs(t DocType, value string) Analysis {
	a := Analysis{
		Input:      value,
		Type:       t,
		Normalized: NormalizeDocument(t, value),
		Formatted:  FormatDocumentByType(t, value),
		Valid:      IsValidDocument(t, value),
	}

	if t == DocTypeCNPJ && a.Valid {
		a.Root = CNPJRoot(a.Normalized)
		a.Branch = CNPJBranch(a.Normalized)
		a.Kind = CNPJKindOf(a.Normalized)
	}

	return a
}
