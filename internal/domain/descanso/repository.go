package descanso

import (
	"context"
	"time"
)

// DescansoRepository defines data access for break rows.
type DescansoRepository interface {
	// Create opens a new break for a shift.
	Create(ctx context.Context, d Descanso) (Descanso, error)

	// GetActive returns the open break of a shift, or nil when there is
	// none.
	GetActive(ctx context.Context, horarioID int64) (*Descanso, error)

	// Close stamps the end of an open break.
	Close(ctx context.Context, id int64, fin time.Time) error

	// Reassign moves a break to another shift, preserving its Inicio.
	// Used when an open break spans the boundary between two contiguous
	// shifts.
	Reassign(ctx context.Context, id int64, horarioID int64) error
}

// DescansoService defines break business logic.
type DescansoService interface {
	// ObtenerActivo returns the currently open break of a shift, or nil.
	ObtenerActivo(ctx context.Context, horarioID int64) (*Descanso, error)

	// Iniciar opens a break inside an en_curso shift. Starting a second
	// break while one is open is a hard error.
	Iniciar(ctx context.Context, horarioID int64) (Descanso, error)

	// Finalizar closes the open break of a shift.
	Finalizar(ctx context.Context, horarioID int64) (Descanso, error)
}
