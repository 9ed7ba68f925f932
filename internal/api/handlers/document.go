package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexconsult/brdocs-api/internal/brdocs"
	"github.com/nexconsult/brdocs-api/internal/models"
	"github.com/nexconsult/brdocs-api/internal/services"
	"github.com/sirupsen/logrus"
)

// DocumentHandler handles document analysis requests
type DocumentHandler struct {
	documentService services.DocumentServiceInterface
	logger          *logrus.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService services.DocumentServiceInterface, logger *logrus.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		logger:          logger,
	}
}

// Analyze handles full document analysis
// @Summary Analyze a document
// @Description Detect, normalize, format and validate a CPF, CNPJ or email
// @Tags Documents
// @Produce json
// @Param value query string true "Raw document" example(11.222.333/0001-81)
// @Success 200 {object} models.DocumentAnalysis
// @Failure 400 {object} models.ErrorResponse
// @Router /documents/analyze [get]
func (h *DocumentHandler) Analyze(c *gin.Context) {
	value, ok := h.requireValue(c)
	if !ok {
		return
	}

	result, err := h.documentService.Analyze(c.Request.Context(), value)
	if err != nil {
		h.internalError(c, err, "Failed to analyze document")
		return
	}

	setCacheHeaders(c, result.Cache)
	c.JSON(http.StatusOK, result)
}

// Detect handles document type detection
// @Summary Detect document type
// @Description Classify partially typed text as cpf, cnpj or email and mask it
// @Tags Documents
// @Produce json
// @Param value query string true "Partially typed text" example(112223330001)
// @Success 200 {object} models.DetectResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /documents/detect [get]
func (h *DocumentHandler) Detect(c *gin.Context) {
	value, ok := h.requireValue(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.documentService.Detect(value))
}

// Validate handles typed document validation
// @Summary Validate a document
// @Description Validate a document under its declared type
// @Tags Documents
// @Accept json
// @Produce json
// @Param request body models.DocumentRequest true "Typed document"
// @Success 200 {object} models.ValidationResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /documents/validate [post]
func (h *DocumentHandler) Validate(c *gin.Context) {
	var request models.DocumentRequest
	if !h.bind(c, &request) {
		return
	}

	c.JSON(http.StatusOK, h.documentService.Validate(c.Request.Context(), request))
}

// Format handles typed document masking
// @Summary Format a document
// @Description Apply the progressive mask of the declared type
// @Tags Documents
// @Accept json
// @Produce json
// @Param request body models.DocumentRequest true "Typed document"
// @Success 200 {object} models.FormatResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /documents/format [post]
func (h *DocumentHandler) Format(c *gin.Context) {
	var request models.DocumentRequest
	if !h.bind(c, &request) {
		return
	}

	c.JSON(http.StatusOK, h.documentService.Format(request))
}

// Batch handles batch document analysis
// @Summary Analyze multiple documents
// @Description Analyze several documents concurrently, results keep input order
// @Tags Documents
// @Accept json
// @Produce json
// @Param request body models.BatchRequest true "Batch request"
// @Success 200 {object} models.BatchResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 413 {object} models.ErrorResponse
// @Router /documents/batch [post]
func (h *DocumentHandler) Batch(c *gin.Context) {
	requestID := c.GetString("request_id")

	var request models.BatchRequest
	if !h.bind(c, &request) {
		return
	}

	result, err := h.documentService.Batch(c.Request.Context(), request.Documents)
	if errors.Is(err, services.ErrBatchTooLarge) {
		h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"total":      len(request.Documents),
		}).Warn("Batch rejected")

		respondError(c, http.StatusRequestEntityTooLarge, "Batch too large", err.Error(), "BATCH_TOO_LARGE")
		return
	}
	if err != nil {
		h.internalError(c, err, "Failed to process batch analysis")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Extract handles document extraction from text
// @Summary Extract documents from text
// @Description Find valid CPFs and CNPJs in free text or HTML
// @Tags Documents
// @Accept json
// @Produce json
// @Param request body models.ExtractRequest true "Text to scan"
// @Success 200 {object} models.ExtractResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /documents/extract [post]
func (h *DocumentHandler) Extract(c *gin.Context) {
	var request models.ExtractRequest
	if !h.bind(c, &request) {
		return
	}

	result, err := h.documentService.Extract(c.Request.Context(), request)
	if err != nil {
		h.internalError(c, err, "Failed to extract documents")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Generate handles test document generation
// @Summary Generate a test document
// @Description Generate a random valid CPF or CNPJ
// @Tags Documents
// @Produce json
// @Param type query string true "cpf or cnpj" example(cnpj)
// @Success 200 {object} models.GenerateResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /documents/generate [get]
func (h *DocumentHandler) Generate(c *gin.Context) {
	docType, err := brdocs.ParseDocType(c.Query("type"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid document type", err.Error(), "INVALID_TYPE")
		return
	}

	result, err := h.documentService.Generate(docType)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid document type", err.Error(), "INVALID_TYPE")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCPF handles typed CPF analysis
// @Summary Analyze a CPF
// @Description Analyze a CPF given as bare digits, 400 when invalid
// @Tags CPF
// @Produce json
// @Param cpf path string true "CPF number (11 digits)" example(52998224725)
// @Success 200 {object} models.DocumentAnalysis
// @Failure 400 {object} models.ErrorResponse
// @Router /cpf/{cpf} [get]
func (h *DocumentHandler) GetCPF(c *gin.Context) {
	h.typed(c, brdocs.DocTypeCPF, c.Param("cpf"))
}

// GetCNPJ handles typed CNPJ analysis
// @Summary Analyze a CNPJ
// @Description Analyze a CNPJ given as bare digits, 400 when invalid
// @Tags CNPJ
// @Produce json
// @Param cnpj path string true "CNPJ number (14 digits)" example(11222333000181)
// @Success 200 {object} models.DocumentAnalysis
// @Failure 400 {object} models.ErrorResponse
// @Router /cnpj/{cnpj} [get]
func (h *DocumentHandler) GetCNPJ(c *gin.Context) {
	h.typed(c, brdocs.DocTypeCNPJ, c.Param("cnpj"))
}

func (h *DocumentHandler) typed(c *gin.Context, docType brdocs.DocType, value string) {
	start := time.Now()
	requestID := c.GetString("request_id")

	result, err := h.documentService.AnalyzeAs(c.Request.Context(), docType, value)
	if err != nil {
		h.internalError(c, err, "Failed to analyze document")
		return
	}

	if !result.Valid {
		h.logger.WithFields(logrus.Fields{
			"request_id":    requestID,
			"document_type": docType,
		}).Warn("Invalid document")

		code := "INVALID_CPF"
		message := "CPF must have 11 digits with matching check digits"
		if docType == brdocs.DocTypeCNPJ {
			code = "INVALID_CNPJ"
			message = "CNPJ must have 14 digits with matching check digits"
		}
		respondError(c, http.StatusBadRequest, "Invalid document", message, code)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"request_id":    requestID,
		"document_type": docType,
		"duration":      time.Since(start),
		"cache":         result.Cache,
	}).Info("Document analysis completed")

	setCacheHeaders(c, result.Cache)
	c.JSON(http.StatusOK, result)
}

func (h *DocumentHandler) requireValue(c *gin.Context) (string, bool) {
	value := c.Query("value")
	if value == "" {
		respondError(c, http.StatusBadRequest, "Missing value", "query parameter value is required", "MISSING_VALUE")
		return "", false
	}
	return value, true
}

func (h *DocumentHandler) bind(c *gin.Context, request interface{}) bool {
	if err := c.ShouldBindJSON(request); err != nil {
		h.logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"error":      err.Error(),
		}).Warn("Invalid request format")

		respondError(c, http.StatusBadRequest, "Invalid request format", err.Error(), "INVALID_REQUEST")
		return false
	}
	return true
}

func (h *DocumentHandler) internalError(c *gin.Context, err error, message string) {
	h.logger.WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"error":      err.Error(),
	}).Error(message)

	respondError(c, http.StatusInternalServerError, "Internal server error", message, "INTERNAL_ERROR")
}

func setCacheHeaders(c *gin.Context, hit bool) {
	if hit {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	c.Header("Cache-Control", "public, max-age=3600")
}
