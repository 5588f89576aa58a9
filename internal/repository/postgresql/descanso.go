package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/turnos-hq/horario-backend-go/internal/domain/descanso"
	"github.com/turnos-hq/horario-backend-go/internal/pkg/database"
)

type descansoRepository struct {
	db *database.DB
}

// Create implements descanso.DescansoRepository.
func (r *descansoRepository) Create(ctx context.Context, d descanso.Descanso) (descanso.Descanso, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO descansos (horario_id, inicio, fin)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, d.HorarioID, d.Inicio, d.Fin).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return descanso.Descanso{}, fmt.Errorf("failed to create descanso: %w", err)
	}

	return d, nil
}

// GetActive implements descanso.DescansoRepository.
func (r *descansoRepository) GetActive(ctx context.Context, horarioID int64) (*descanso.Descanso, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, horario_id, inicio, fin, created_at, updated_at
		FROM descansos
		WHERE horario_id = $1
		  AND fin IS NULL
		ORDER BY inicio DESC
		LIMIT 1
	`

	var d descanso.Descanso
	err := q.QueryRow(ctx, query, horarioID).Scan(&d.ID, &d.HorarioID, &d.Inicio, &d.Fin, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no open break
		}
		return nil, fmt.Errorf("failed to get active descanso: %w", err)
	}

	return &d, nil
}

// Close implements descanso.DescansoRepository.
func (r *descansoRepository) Close(ctx context.Context, id int64, fin time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE descansos SET fin = $1, updated_at = $2 WHERE id = $3 AND fin IS NULL`

	commandTag, err := q.Exec(ctx, query, fin, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to close descanso: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return descanso.ErrDescansoNotFound
	}

	return nil
}

// Reassign implements descanso.DescansoRepository.
func (r *descansoRepository) Reassign(ctx context.Context, id int64, horarioID int64) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE descansos SET horario_id = $1, updated_at = $2 WHERE id = $3`

	commandTag, err := q.Exec(ctx, query, horarioID, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to reassign descanso: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return descanso.ErrDescansoNotFound
	}

	return nil
}

func NewDescansoRepository(db *database.DB) descanso.DescansoRepository {
	return &descansoRepository{db: db}
}
