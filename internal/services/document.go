package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/nexconsult/brdocs-api/internal/brdocs"
	"github.com/nexconsult/brdocs-api/internal/config"
	"github.com/nexconsult/brdocs-api/internal/models"
	"github.com/sirupsen/logrus"
)

// DocumentService implements document analysis on top of the brdocs library
type DocumentService struct {
	config    config.DocumentsConfig
	cache     CacheServiceInterface
	extractor ExtractorServiceInterface
	metrics   MetricsServiceInterface
	logger    *logrus.Logger

	randMu sync.Mutex
	rand   *rand.Rand
}

// NewDocumentService creates a new document service
func NewDocumentService(cfg config.DocumentsConfig, cache CacheServiceInterface, extractor ExtractorServiceInterface, metrics MetricsServiceInterface, logger *logrus.Logger) *DocumentService {
	seed := uint64(time.Now().UnixNano())
	return &DocumentService{
		config:    cfg,
		cache:     cache,
		extractor: extractor,
		metrics:   metrics,
		logger:    logger,
		rand:      rand.New(rand.NewPCG(seed, seed>>32|1)),
	}
}

func (s *DocumentService) cacheKey(docType brdocs.DocType, normalized string) string {
	return fmt.Sprintf("%s%s:%s", s.config.CachePrefix, docType, normalized)
}

// Analyze detects the type of value and describes it
func (s *DocumentService) Analyze(ctx context.Context, value string) (*models.DocumentAnalysis, error) {
	return s.AnalyzeAs(ctx, brdocs.DetectDocType(value), value)
}

// AnalyzeAs describes value under a known document type. Results are cached
// by normalized form, so differently masked inputs share one entry.
func (s *DocumentService) AnalyzeAs(ctx context.Context, docType brdocs.DocType, value string) (*models.DocumentAnalysis, error) {
	if !docType.Valid() {
		return nil, fmt.Errorf("analyze %q: %w", docType, brdocs.ErrUnknownDocType)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := s.cacheKey(docType, brdocs.NormalizeDocument(docType, value))
	logger := s.logger.WithFields(logrus.Fields{
		"document_type": docType,
		"cache_key":     key,
	})

	if cached, err := s.cache.Get(ctx, key); err == nil {
		var analysis brdocs.Analysis
		if err := json.Unmarshal([]byte(cached), &analysis); err == nil {
			s.metrics.RecordCacheHit(true)
			analysis.Input = value
			logger.Debug("Analysis found in cache")
			return &models.DocumentAnalysis{
				Analysis:  analysis,
				Cache:     true,
				CheckedAt: time.Now(),
			}, nil
		}
		logger.WithError(err).Warn("Failed to unmarshal cached analysis")
	}
	s.metrics.RecordCacheHit(false)

	analysis := brdocs.AnalyzeAs(docType, value)
	s.metrics.RecordValidation(docType, analysis.Valid)

	if data, err := json.Marshal(analysis); err == nil {
		if err := s.cache.Set(ctx, key, string(data)); err != nil {
			logger.WithError(err).Warn("Failed to cache analysis")
		}
	}

	return &models.DocumentAnalysis{
		Analysis:  analysis,
		CheckedAt: time.Now(),
	}, nil
}

// Validate returns the verdict for a typed document
func (s *DocumentService) Validate(ctx context.Context, req models.DocumentRequest) models.ValidationResponse {
	valid := brdocs.IsValidDocument(req.Type, req.Value)
	s.metrics.RecordValidation(req.Type, valid)

	s.logger.WithContext(ctx).WithFields(logrus.Fields{
		"document_type": req.Type,
		"valid":         valid,
	}).Debug("Document validated")

	return models.ValidationResponse{
		Type:       req.Type,
		Value:      req.Value,
		Normalized: brdocs.NormalizeDocument(req.Type, req.Value),
		Formatted:  brdocs.FormatDocumentByType(req.Type, req.Value),
		Valid:      valid,
	}
}

// Format masks a typed document
func (s *DocumentService) Format(req models.DocumentRequest) models.FormatResponse {
	return models.FormatResponse{
		Type:      req.Type,
		Value:     req.Value,
		Formatted: brdocs.FormatDocumentByType(req.Type, req.Value),
	}
}

// Detect classifies partially typed text and masks it accordingly
func (s *DocumentService) Detect(value string) models.DetectResponse {
	docType := brdocs.DetectDocType(value)
	return models.DetectResponse{
		Value:     value,
		Type:      docType,
		Formatted: brdocs.FormatDocumentByType(docType, value),
	}
}

// Batch analyzes several documents concurrently, keeping input order
func (s *DocumentService) Batch(ctx context.Context, documents []string) (*models.BatchResponse, error) {
	if len(documents) > s.config.BatchLimit {
		return nil, fmt.Errorf("%d documents, limit is %d: %w", len(documents), s.config.BatchLimit, ErrBatchTooLarge)
	}

	start := time.Now()
	results := make([]models.BatchResult, len(documents))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, s.config.BatchConcurrency)

	for i, document := range documents {
		wg.Add(1)
		go func(index int, value string) {
			defer wg.Done()

			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				results[index] = models.BatchResult{Document: value, Error: ctx.Err().Error()}
				return
			}
			defer func() { <-semaphore }()

			analysis, err := s.Analyze(ctx, value)
			if err != nil {
				results[index] = models.BatchResult{Document: value, Error: err.Error()}
				return
			}
			results[index] = models.BatchResult{Document: value, Success: true, Data: analysis}
		}(i, document)
	}

	wg.Wait()

	resp := &models.BatchResponse{
		Results:    results,
		Total:      len(results),
		DurationMs: time.Since(start).Milliseconds(),
		Timestamp:  time.Now(),
	}
	for _, r := range results {
		if r.Success && r.Data.Valid {
			resp.Valid++
		} else {
			resp.Invalid++
		}
	}

	s.logger.WithFields(logrus.Fields{
		"total":    resp.Total,
		"valid":    resp.Valid,
		"duration": time.Since(start),
	}).Info("Batch analysis completed")

	return resp, nil
}

// Extract finds valid documents in text, converting HTML first when asked
func (s *DocumentService) Extract(ctx context.Context, req models.ExtractRequest) (*models.ExtractResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := req.Text
	if req.HTML {
		var err error
		if text, err = s.extractor.TextFromHTML(req.Text); err != nil {
			return nil, fmt.Errorf("extract documents: %w", err)
		}
	}

	matches := brdocs.ExtractDocuments(text)
	if matches == nil {
		matches = []brdocs.Match{}
	}
	for _, m := range matches {
		s.metrics.RecordValidation(m.Type, true)
	}

	return &models.ExtractResponse{
		Matches: matches,
		Total:   len(matches),
	}, nil
}

// Generate produces a valid CPF or CNPJ for test fixtures
func (s *DocumentService) Generate(docType brdocs.DocType) (*models.GenerateResponse, error) {
	s.randMu.Lock()
	defer s.randMu.Unlock()

	var digits string
	switch docType {
	case brdocs.DocTypeCPF:
		digits = brdocs.GenerateCPF(s.rand)
	case brdocs.DocTypeCNPJ:
		digits = brdocs.GenerateCNPJ(s.rand)
	default:
		return nil, fmt.Errorf("generate %q: %w", docType, ErrNotGeneratable)
	}

	return &models.GenerateResponse{
		Type:      docType,
		Digits:    digits,
		Formatted: brdocs.FormatDocumentByType(docType, digits),
	}, nil
}

// Invalidate removes the cached analysis of value and reports whether
// there was one
func (s *DocumentService) Invalidate(ctx context.Context, value string) (bool, error) {
	value = strings.TrimSpace(value)
	docType := brdocs.DetectDocType(value)
	key := s.cacheKey(docType, brdocs.NormalizeDocument(docType, value))

	exists, err := s.cache.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check cache key: %w", err)
	}
	if !exists {
		return false, nil
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		return false, fmt.Errorf("delete cache key: %w", err)
	}
	return true, nil
}

// Health returns service health status
func (s *DocumentService) Health() map[string]interface{} {
	return map[string]interface{}{
		"status":            "healthy",
		"batch_limit":       s.config.BatchLimit,
		"batch_concurrency": s.config.BatchConcurrency,
	}
}
