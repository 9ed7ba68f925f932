package services

import (
	"strings"
	"unicode/utf8"

	"github.com/nexconsult/brdocs-api/internal/brdocs"
	"github.com/nexconsult/brdocs-api/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	minPasswordLength = 6

	forgotPasswordMessage = "Se existir uma conta, enviamos instruções de redefinição."
)

// AuthService prepares login and forgot-password submissions for the backend
type AuthService struct {
	metrics MetricsServiceInterface
	logger  *logrus.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(metrics MetricsServiceInterface, logger *logrus.Logger) *AuthService {
	return &AuthService{
		metrics: metrics,
		logger:  logger,
	}
}

// NormalizeLogin checks a login form and builds the backend payload.
// The document type is detected when the form does not declare one.
func (s *AuthService) NormalizeLogin(req models.LoginRequest) (*models.LoginNormalization, error) {
	document := strings.TrimSpace(req.Document)
	if document == "" || utf8.RuneCountInString(req.Password) < minPasswordLength {
		return nil, ErrInvalidCredentials
	}

	docType, err := s.resolve(req.DocType, document)
	if err != nil {
		return nil, err
	}

	normalized := brdocs.NormalizeDocument(docType, document)
	s.logger.WithField("document_type", docType).Debug("Login normalized")

	return &models.LoginNormalization{
		Success:   true,
		DocType:   docType,
		Document:  normalized,
		Formatted: brdocs.FormatDocumentByType(docType, document),
		Payload: models.LoginPayload{
			Acesso:  normalized,
			DocType: docType,
		},
	}, nil
}

// ForgotPassword checks a forgot-password form. The answer never reveals
// whether an account exists.
func (s *AuthService) ForgotPassword(req models.ForgotPasswordRequest) (*models.ForgotPasswordResponse, error) {
	document := strings.TrimSpace(req.Document)
	if document == "" {
		return nil, ErrMissingDocument
	}

	if _, err := s.resolve(req.DocType, document); err != nil {
		return nil, err
	}

	return &models.ForgotPasswordResponse{
		Success: true,
		Message: forgotPasswordMessage,
	}, nil
}

func (s *AuthService) resolve(declared brdocs.DocType, document string) (brdocs.DocType, error) {
	docType := declared
	if docType == "" {
		docType = brdocs.DetectDocType(document)
	}
	if !docType.Valid() {
		return "", brdocs.ErrUnknownDocType
	}

	valid := brdocs.IsValidDocument(docType, document)
	s.metrics.RecordValidation(docType, valid)
	if !valid {
		return "", ErrInvalidDocument
	}
	return docType, nil
}
