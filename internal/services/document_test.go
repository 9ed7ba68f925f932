package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/nexconsult/brdocs-api/internal/brdocs"
	"github.com/nexconsult/brdocs-api/internal/config"
	"github.com/nexconsult/brdocs-api/internal/logger"
	"github.com/nexconsult/brdocs-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDocumentService(t *testing.T, limit int) (*DocumentService, *CacheService, *MetricsService) {
	t.Helper()
	log := logger.Discard()
	cache := NewCacheService(nil, time.Minute, "doc:", log)
	metrics := NewMetricsService()
	cfg := config.DocumentsConfig{
		CacheTTL:         time.Minute,
		CachePrefix:      "doc:",
		BatchLimit:       limit,
		BatchConcurrency: 3,
	}
	return NewDocumentService(cfg, cache, NewExtractorService(log), metrics, log), cache, metrics
}

func TestAnalyzeCachesByNormalizedForm(t *testing.T) {
	ctx := context.Background()
	svc, cache, metrics := newTestDocumentService(t, 10)

	first, err := svc.Analyze(ctx, "529.982.247-25")
	require.NoError(t, err)
	assert.False(t, first.Cache)
	assert.True(t, first.Valid)
	assert.Equal(t, brdocs.DocTypeCPF, first.Type)

	ok, err := cache.Exists(ctx, "doc:cpf:52998224725")
	require.NoError(t, err)
	assert.True(t, ok)

	second, err := svc.Analyze(ctx, "52998224725")
	require.NoError(t, err)
	assert.True(t, second.Cache)
	assert.Equal(t, "52998224725", second.Input)
	assert.Equal(t, "529.982.247-25", second.Formatted)

	snap := metrics.Snapshot()
	assert.Equal(t, int64(1), snap.Cache.Hits)
	assert.Equal(t, int64(1), snap.Cache.Misses)

	removed, err := svc.Invalidate(ctx, "529.982.247-25")
	require.NoError(t, err)
	assert.True(t, removed)
	third, err := svc.Analyze(ctx, "52998224725")
	require.NoError(t, err)
	assert.False(t, third.Cache)

	removed, err = svc.Invalidate(ctx, "ana@bar.com")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestAnalyzeAsRejectsUnknownType(t *testing.T) {
	svc, _, _ := newTestDocumentService(t, 10)

	_, err := svc.AnalyzeAs(context.Background(), brdocs.DocType("rg"), "123")
	assert.ErrorIs(t, err, brdocs.ErrUnknownDocType)
}

func TestAnalyzeCNPJStructure(t *testing.T) {
	svc, _, _ := newTestDocumentService(t, 10)

	got, err := svc.AnalyzeAs(context.Background(), brdocs.DocTypeCNPJ, "11.222.333/0001-81")
	require.NoError(t, err)
	assert.True(t, got.Valid)
	assert.Equal(t, "11222333", got.Root)
	assert.Equal(t, "0001", got.Branch)
	assert.Equal(t, brdocs.CNPJKindMatriz, got.Kind)
}

func TestValidateAndFormat(t *testing.T) {
	svc, _, metrics := newTestDocumentService(t, 10)

	v := svc.Validate(context.Background(), models.DocumentRequest{Type: brdocs.DocTypeCNPJ, Value: "11222333000181"})
	assert.True(t, v.Valid)
	assert.Equal(t, "11.222.333/0001-81", v.Formatted)
	assert.Equal(t, "11222333000181", v.Normalized)

	v = svc.Validate(context.Background(), models.DocumentRequest{Type: brdocs.DocTypeCPF, Value: "111.111.111-11"})
	assert.False(t, v.Valid)

	f := svc.Format(models.DocumentRequest{Type: brdocs.DocTypeCPF, Value: "5299822"})
	assert.Equal(t, "529.982.2", f.Formatted)

	snap := metrics.Snapshot()
	assert.Equal(t, int64(1), snap.Documents.Valid)
	assert.Equal(t, int64(1), snap.Documents.Invalid)
	assert.Equal(t, int64(1), snap.Documents.Validations["cpf"])
}

func TestDetect(t *testing.T) {
	svc, _, _ := newTestDocumentService(t, 10)

	assert.Equal(t, brdocs.DocTypeEmail, svc.Detect("ana@").Type)

	d := svc.Detect("112223330001")
	assert.Equal(t, brdocs.DocTypeCNPJ, d.Type)
	assert.Equal(t, "11.222.333/0001", d.Formatted)
}

func TestBatchKeepsInputOrder(t *testing.T) {
	svc, _, _ := newTestDocumentService(t, 50)

	var docs []string
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			docs = append(docs, "52998224725")
		} else {
			docs = append(docs, fmt.Sprintf("invalid-%d@", i))
		}
	}

	resp, err := svc.Batch(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, resp.Results, len(docs))
	assert.Equal(t, 20, resp.Total)
	assert.Equal(t, 10, resp.Valid)
	assert.Equal(t, 10, resp.Invalid)

	for i, r := range resp.Results {
		assert.Equal(t, docs[i], r.Document)
		require.True(t, r.Success)
		assert.Equal(t, docs[i], r.Data.Input)
	}
}

func TestBatchTooLarge(t *testing.T) {
	svc, _, _ := newTestDocumentService(t, 2)

	_, err := svc.Batch(context.Background(), []string{"1", "2", "3"})
	assert.ErrorIs(t, err, ErrBatchTooLarge)
}

func TestBatchCancelledContext(t *testing.T) {
	svc, _, _ := newTestDocumentService(t, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := svc.Batch(ctx, []string{"52998224725", "11222333000181"})
	require.NoError(t, err)
	for _, r := range resp.Results {
		assert.False(t, r.Success)
		assert.NotEmpty(t, r.Error)
	}
	assert.Equal(t, 2, resp.Invalid)
}

func TestExtract(t *testing.T) {
	svc, _, _ := newTestDocumentService(t, 10)

	resp, err := svc.Extract(context.Background(), models.ExtractRequest{
		Text: "<table><tr><td>11222333000181</td><td>52998224725</td></tr></table>",
		HTML: true,
	})
	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, brdocs.DocTypeCNPJ, resp.Matches[0].Type)
	assert.Equal(t, brdocs.DocTypeCPF, resp.Matches[1].Type)

	resp, err = svc.Extract(context.Background(), models.ExtractRequest{Text: "nada aqui"})
	require.NoError(t, err)
	assert.NotNil(t, resp.Matches)
	assert.Zero(t, resp.Total)
}

func TestGenerate(t *testing.T) {
	svc, _, _ := newTestDocumentService(t, 10)

	for _, docType := range []brdocs.DocType{brdocs.DocTypeCPF, brdocs.DocTypeCNPJ} {
		got, err := svc.Generate(docType)
		require.NoError(t, err)
		assert.True(t, brdocs.IsValidDocument(docType, got.Digits))
		assert.Equal(t, brdocs.FormatDocumentByType(docType, got.Digits), got.Formatted)
	}

	_, err := svc.Generate(brdocs.DocTypeEmail)
	assert.ErrorIs(t, err, ErrNotGeneratable)
}
