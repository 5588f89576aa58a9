package horario

import (
	"context"
	"time"
)

// HorarioRepository defines data access methods for shifts.
type HorarioRepository interface {
	// CreateBatch inserts all shifts of a validated batch.
	CreateBatch(ctx context.Context, horarios []Horario) ([]Horario, error)

	// GetByID retrieves a single shift.
	GetByID(ctx context.Context, id int64) (Horario, error)

	// GetByIDs retrieves the given shifts in one query, keyed by id.
	// Missing ids are simply absent from the map.
	GetByIDs(ctx context.Context, ids []int64) (map[int64]Horario, error)

	// GetForUpdate retrieves a shift with a row lock (SELECT ... FOR
	// UPDATE). Only meaningful inside a transaction.
	GetForUpdate(ctx context.Context, id int64) (Horario, error)

	// UpdateFichaje persists the clock fields and estado_fichaje of a
	// shift after a clock event.
	UpdateFichaje(ctx context.Context, h Horario) error

	// UpdatePlan persists the planned fields of a shift (window, planned
	// break, observaciones, foreign keys).
	UpdatePlan(ctx context.Context, h Horario) error

	// DeleteBatch removes the given shifts.
	DeleteBatch(ctx context.Context, ids []int64) error

	// GetContiguousPairs returns en_curso shifts whose planned end has
	// passed and that have a sin_iniciar shift starting exactly at that
	// end for the same employee.
	GetContiguousPairs(ctx context.Context, boundary time.Time) ([]TransicionPar, error)

	// GetStale returns shifts still en_curso whose planned end is before
	// the given limit.
	GetStale(ctx context.Context, limit time.Time) ([]Horario, error)
}
