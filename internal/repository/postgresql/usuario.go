package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/turnos-hq/horario-backend-go/internal/domain/usuario"
	"github.com/turnos-hq/horario-backend-go/internal/pkg/database"
)

type usuarioRepository struct {
	db *database.DB
}

func (r *usuarioRepository) GetByEmail(ctx context.Context, email string) (usuario.Usuario, error) {
	return r.get(ctx, `WHERE u.email = $1`, email)
}

func (r *usuarioRepository) GetByID(ctx context.Context, id int64) (usuario.Usuario, error) {
	return r.get(ctx, `WHERE u.id = $1`, id)
}

func (r *usuarioRepository) get(ctx context.Context, where string, arg interface{}) (usuario.Usuario, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.email, u.password_hash, u.nombre,
			   COALESCE(array_agg(p.permiso) FILTER (WHERE p.permiso IS NOT NULL), '{}'),
			   u.created_at, u.updated_at
		FROM usuarios u
		LEFT JOIN usuario_permisos p ON p.usuario_id = u.id
		` + where + `
		GROUP BY u.id
	`

	var u usuario.Usuario
	err := q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Nombre, &u.Permisos, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return usuario.Usuario{}, usuario.ErrUsuarioNotFound
		}
		return usuario.Usuario{}, fmt.Errorf("failed to get usuario: %w", err)
	}

	return u, nil
}

// TienePermiso implements usuario.Permisos.
func (r *usuarioRepository) TienePermiso(ctx context.Context, usuarioID int64, permiso string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM usuario_permisos
			WHERE usuario_id = $1
			  AND permiso = $2
		)
	`

	var tiene bool
	if err := q.QueryRow(ctx, query, usuarioID, permiso).Scan(&tiene); err != nil {
		return false, fmt.Errorf("failed to check permiso: %w", err)
	}

	return tiene, nil
}

type UsuarioRepository interface {
	usuario.UsuarioRepository
	usuario.Permisos
}

func NewUsuarioRepository(db *database.DB) UsuarioRepository {
	return &usuarioRepository{db: db}
}
