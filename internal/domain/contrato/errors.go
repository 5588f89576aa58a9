package contrato

import "errors"

// Contract domain errors
var (
	ErrContratoNotFound = errors.New("contrato not found")
	ErrAnexoNotFound    = errors.New("anexo not found")
)
