package response

import (
	"errors"
	"net/http"

	"github.com/turnos-hq/horario-backend-go/internal/domain/contrato"
	"github.com/turnos-hq/horario-backend-go/internal/domain/descanso"
	"github.com/turnos-hq/horario-backend-go/internal/domain/horario"
	"github.com/turnos-hq/horario-backend-go/internal/domain/usuario"
	"github.com/turnos-hq/horario-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Usuario domain errors
	case errors.Is(err, usuario.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, usuario.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, usuario.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token has been revoked")
	case errors.Is(err, usuario.ErrPermisoDenied):
		Forbidden(w, "Missing required permission")
	case errors.Is(err, usuario.ErrUsuarioNotFound):
		NotFound(w, "Usuario not found")

	// Horario domain errors
	case errors.Is(err, horario.ErrHorarioNotFound):
		NotFound(w, "Horario not found")
	case errors.Is(err, horario.ErrFichajeYaIniciado):
		Conflict(w, "Fichaje already initiated for this horario")
	case errors.Is(err, horario.ErrFichajeNoIniciado):
		Conflict(w, "Fichaje has not been initiated for this horario")
	case errors.Is(err, horario.ErrFichajeYaFinalizado):
		Conflict(w, "Fichaje already finalized for this horario")

	// Descanso domain errors
	case errors.Is(err, descanso.ErrDescansoNotFound):
		NotFound(w, "Descanso not found")
	case errors.Is(err, descanso.ErrDescansoActivo):
		Conflict(w, "An active descanso already exists for this horario")
	case errors.Is(err, descanso.ErrSinDescansoActivo):
		Conflict(w, "No active descanso exists for this horario")

	// Contrato domain errors
	case errors.Is(err, contrato.ErrContratoNotFound):
		NotFound(w, "Contrato not found")
	case errors.Is(err, contrato.ErrAnexoNotFound):
		NotFound(w, "Anexo not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
