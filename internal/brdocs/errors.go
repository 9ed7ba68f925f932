package brdocs

import "errors"

var (
	// ErrUnknownDocType is returned when a document type is not cpf, cnpj or email
	ErrUnknownDocType = errors.New("unknown document type")

	// ErrInvalidBase is returned when a check digit base has the wrong shape
	ErrInvalidBase = errors.New("invalid document base")
)
