package usuario

import (
	"context"
)

// UsuarioRepository defines data access for accounts.
type UsuarioRepository interface {
	GetByEmail(ctx context.Context, email string) (Usuario, error)
	GetByID(ctx context.Context, id int64) (Usuario, error)
}

// Permisos is the capability-check port injected at the handler boundary
// so the core never depends on the authorization backend.
type Permisos interface {
	TienePermiso(ctx context.Context, usuarioID int64, permiso string) (bool, error)
}
