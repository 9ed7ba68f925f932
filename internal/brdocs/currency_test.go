package brdocs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "R$\u00a00,00"},
		{10.5, "R$\u00a010,50"},
		{1234.56, "R$\u00a01.234,56"},
		{1234567.891, "R$\u00a01.234.567,89"},
		{-5.5, "-R$\u00a05,50"},
		{-0.001, "R$\u00a00,00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBRL(tt.amount))
		})
	}

	assert.Empty(t, FormatBRL(math.NaN()))
	assert.Empty(t, FormatBRL(math.Inf(1)))
}

func TestParseBRL(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"", 0},
		{"abc", 0},
		{"10", 10},
		{"10,5", 10.5},
		{"10.50", 10.5},
		{"R$ 1.234,56", 1234.56},
		{"R$\u00a01.234,56", 1234.56},
		{"-R$ 5,50", -5.5},
		{"$ 12.30", 12.3},
		{"1.2.3", 1.2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseBRL(tt.input), 1e-9)
		})
	}
}

func TestParseBRLReadsFormatBRL(t *testing.T) {
	for _, amount := range []float64{0, 0.99, 12.3, 999.99, 1000, 48213.07} {
		assert.InDelta(t, amount, ParseBRL(FormatBRL(amount)), 1e-9)
	}
}
