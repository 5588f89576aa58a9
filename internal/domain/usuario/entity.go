package usuario

import (
	"time"
)

// Usuario is an application account. Permisos are capability strings
// checked at the handler boundary; the schedule engine itself never
// inspects them.
type Usuario struct {
	ID           int64
	Email        string
	PasswordHash string
	Nombre       string
	Permisos     []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Capability strings used by the shift endpoints.
const (
	PermisoGestionarHorarios = "horarios.gestionar"
	PermisoFichar            = "horarios.fichar"
)
