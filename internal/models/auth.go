package models

import "github.com/nexconsult/brdocs-api/internal/brdocs"

// LoginRequest mirrors the payload of the login form.
// DocType is optional and detected from Document when empty.
type LoginRequest struct {
	DocType  brdocs.DocType `json:"docType" binding:"omitempty,oneof=cpf cnpj email" example:"cpf"`
	Document string         `json:"document" example:"529.982.247-25"`
	Password string         `json:"password" example:"segredo123"`
}

// LoginPayload is the identity part of the body the backend /auth/login
// endpoint expects. The password is forwarded untouched and never echoed.
type LoginPayload struct {
	Acesso  string         `json:"acesso" example:"52998224725"`
	DocType brdocs.DocType `json:"doc_type" example:"cpf"`
}

// LoginNormalization describes a login attempt ready to be forwarded
type LoginNormalization struct {
	Success   bool           `json:"success" example:"true"`
	DocType   brdocs.DocType `json:"docType" example:"cpf"`
	Document  string         `json:"document" example:"52998224725"`
	Formatted string         `json:"formatted" example:"529.982.247-25"`
	Payload   LoginPayload   `json:"payload"`
}

// ForgotPasswordRequest mirrors the payload of the forgot-password dialog
type ForgotPasswordRequest struct {
	DocType  brdocs.DocType `json:"docType" binding:"omitempty,oneof=cpf cnpj email" example:"email"`
	Document string         `json:"document" example:"operador@bar.com.br"`
}

// ForgotPasswordResponse is returned for every well-formed request,
// whether or not an account exists
type ForgotPasswordResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Se existir uma conta, enviamos instruções de redefinição."`
}
