package descanso

import (
	"time"
)

// Descanso is a break window nested inside a shift. A nil Fin means the
// break is still open; at most one open break exists per shift.
type Descanso struct {
	ID        int64
	HorarioID int64
	Inicio    time.Time
	Fin       *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Activo reports whether the break is still open.
func (d Descanso) Activo() bool {
	return d.Fin == nil
}
