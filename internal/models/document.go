package models

import (
	"time"

	"github.com/nexconsult/brdocs-api/internal/brdocs"
)

// DocumentRequest carries a raw document together with its declared type
type DocumentRequest struct {
	Type  brdocs.DocType `json:"type" binding:"required,oneof=cpf cnpj email" example:"cpf"`
	Value string         `json:"value" example:"529.982.247-25"`
}

// DocumentAnalysis represents the full description of a document
type DocumentAnalysis struct {
	brdocs.Analysis
	Cache     bool      `json:"cache" example:"false"`
	CheckedAt time.Time `json:"checked_at" example:"2024-01-15T10:30:00Z"`
}

// ValidationResponse represents the verdict for a typed document
type ValidationResponse struct {
	Type       brdocs.DocType `json:"type" example:"cpf"`
	Value      string         `json:"value" example:"529.982.247-25"`
	Normalized string         `json:"normalized" example:"52998224725"`
	Formatted  string         `json:"formatted" example:"529.982.247-25"`
	Valid      bool           `json:"valid" example:"true"`
}

// FormatResponse represents a masked document
type FormatResponse struct {
	Type      brdocs.DocType `json:"type" example:"cnpj"`
	Value     string         `json:"value" example:"11222333000181"`
	Formatted string         `json:"formatted" example:"11.222.333/0001-81"`
}

// DetectResponse represents the classifier answer for partially typed text
type DetectResponse struct {
	Value     string         `json:"value" example:"11222333000181"`
	Type      brdocs.DocType `json:"type" example:"cnpj"`
	Formatted string         `json:"formatted" example:"11.222.333/0001-81"`
}

// GenerateResponse represents a generated test document
type GenerateResponse struct {
	Type      brdocs.DocType `json:"type" example:"cnpj"`
	Digits    string         `json:"digits" example:"11222333000181"`
	Formatted string         `json:"formatted" example:"11.222.333/0001-81"`
}

// BatchRequest represents a batch analysis request
type BatchRequest struct {
	Documents []string `json:"documents" binding:"required,min=1" example:"[\"52998224725\",\"11222333000181\"]"`
}

// BatchResponse represents a batch analysis response
type BatchResponse struct {
	Results    []BatchResult `json:"results"`
	Total      int           `json:"total" example:"2"`
	Valid      int           `json:"valid" example:"2"`
	Invalid    int           `json:"invalid" example:"0"`
	DurationMs int64         `json:"duration_ms" example:"1"`
	Timestamp  time.Time     `json:"timestamp" example:"2024-01-15T10:30:00Z"`
}

// BatchResult represents an individual result in a batch response
type BatchResult struct {
	Document string            `json:"document" example:"52998224725"`
	Success  bool              `json:"success" example:"true"`
	Data     *DocumentAnalysis `json:"data,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// ExtractRequest carries free text, or HTML when HTML is true
type ExtractRequest struct {
	Text string `json:"text" binding:"required" example:"Fornecedor 11.222.333/0001-81"`
	HTML bool   `json:"html" example:"false"`
}

// ExtractResponse lists the documents found in a text
type ExtractResponse struct {
	Matches []brdocs.Match `json:"matches"`
	Total   int            `json:"total" example:"1"`
}

// CurrencyResponse pairs an amount with its pt-BR display
type CurrencyResponse struct {
	Input     string  `json:"input,omitempty" example:"R$ 1.234,56"`
	Amount    float64 `json:"amount" example:"1234.56"`
	Formatted string  `json:"formatted" example:"R$ 1.234,56"`
}
