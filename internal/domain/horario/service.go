package horario

import (
	"context"
)

// HorarioService defines the bulk shift operations.
type HorarioService interface {
	// CrearLote validates and persists a batch of shift specs. Every
	// item is validated against the validity period of its owning
	// contract or amendment; failures are reported per item, per field.
	CrearLote(ctx context.Context, req CrearLoteRequest) ([]HorarioResponse, error)

	// ActualizarLote applies a batch of partial shift updates after a
	// single existence check over all referenced ids.
	ActualizarLote(ctx context.Context, req ActualizarLoteRequest) ([]HorarioResponse, error)

	// EliminarLote removes a batch of shifts, existence pre-validated.
	EliminarLote(ctx context.Context, req EliminarLoteRequest) error

	// ObtenerLote retrieves a batch of shifts by id.
	ObtenerLote(ctx context.Context, req ObtenerLoteRequest) ([]HorarioResponse, error)

	// Obtener retrieves a single shift.
	Obtener(ctx context.Context, id int64) (HorarioResponse, error)
}

// FichajeService is the attendance recorder: the only code allowed to
// move estado_fichaje.
type FichajeService interface {
	// Iniciar records clock-in. Allowed only from sin_iniciar.
	Iniciar(ctx context.Context, h *Horario, fc ContextoFichaje) error

	// Finalizar records clock-out. Allowed only from en_curso; a call in
	// any other state returns a hard error.
	Finalizar(ctx context.Context, h *Horario, fc ContextoFichaje) error
}

// TransicionService closes one shift and opens the next contiguous one,
// or transfers an open break across the boundary.
type TransicionService interface {
	// Ejecutar runs the automatic transition for a shift pair inside one
	// database transaction. Precondition violations are a logged no-op.
	Ejecutar(ctx context.Context, actualID, siguienteID int64) error
}
