package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nexconsult/brdocs-api/internal/models"
	"github.com/nexconsult/brdocs-api/internal/services"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles login and forgot-password prechecks
type AuthHandler struct {
	authService services.AuthServiceInterface
	logger      *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService services.AuthServiceInterface, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Normalize handles the login precheck
// @Summary Normalize a login
// @Description Check a login form and return the backend payload
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login form"
// @Success 200 {object} models.LoginNormalization
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/normalize [post]
func (h *AuthHandler) Normalize(c *gin.Context) {
	var request models.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format", err.Error(), "INVALID_REQUEST")
		return
	}

	result, err := h.authService.NormalizeLogin(request)
	if err != nil {
		h.reject(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ForgotPassword handles the forgot-password precheck
// @Summary Forgot password precheck
// @Description Check a forgot-password form without revealing whether the account exists
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.ForgotPasswordRequest true "Forgot-password form"
// @Success 200 {object} models.ForgotPasswordResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var request models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format", err.Error(), "INVALID_REQUEST")
		return
	}

	result, err := h.authService.ForgotPassword(request)
	if err != nil {
		h.reject(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) reject(c *gin.Context, err error) {
	h.logger.WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"error":      err.Error(),
	}).Info("Auth precheck rejected")

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(c, http.StatusBadRequest, "Invalid credentials", "Credenciais inválidas", "INVALID_CREDENTIALS")
	case errors.Is(err, services.ErrMissingDocument):
		respondError(c, http.StatusBadRequest, "Missing document", "Informe documento ou email", "MISSING_DOCUMENT")
	default:
		respondError(c, http.StatusBadRequest, "Invalid document", "Documento ou email inválido", "INVALID_DOCUMENT")
	}
}
