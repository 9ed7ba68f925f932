package brdocs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDocuments(t *testing.T) {
	text := "Fornecedor 11.222.333/0001-81, responsável CPF 529.982.247-25. " +
		"Filial 11222333000262 e cliente 11144477735. " +
		"Repetido 11222333000181, inválido 11222333000182 e 12345678900."

	matches := ExtractDocuments(text)
	require.Len(t, matches, 4)

	assert.Equal(t, DocTypeCNPJ, matches[0].Type)
	assert.Equal(t, "11222333000181", matches[0].Digits)
	assert.Equal(t, "11.222.333/0001-81", matches[0].Formatted)

	assert.Equal(t, DocTypeCPF, matches[1].Type)
	assert.Equal(t, "52998224725", matches[1].Digits)

	assert.Equal(t, "11222333000262", matches[2].Digits)
	assert.Equal(t, "11144477735", matches[3].Digits)

	for i := 1; i < len(matches); i++ {
		assert.Less(t, matches[i-1].Offset, matches[i].Offset)
	}
}

func TestExtractDocumentsIgnoresLongerNumbers(t *testing.T) {
	assert.Empty(t, ExtractDocuments("pedido 5299822472512"))
	assert.Empty(t, ExtractDocuments("sem documentos aqui"))
}
