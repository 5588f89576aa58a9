package postgresql

import (
	"context"
	"fmt"

	"github.com/turnos-hq/horario-backend-go/internal/domain/contrato"
	"github.com/turnos-hq/horario-backend-go/internal/pkg/database"
)

type contratoRepository struct {
	db *database.DB
}

// GetByID implements contrato.ContratoRepository.
func (r *contratoRepository) GetByID(ctx context.Context, id int64) (contrato.Contrato, error) {
	contratos, err := r.GetByIDs(ctx, []int64{id})
	if err != nil {
		return contrato.Contrato{}, err
	}

	c, ok := contratos[id]
	if !ok {
		return contrato.Contrato{}, contrato.ErrContratoNotFound
	}

	return c, nil
}

// GetByIDs implements contrato.ContratoRepository. Contracts and their
// amendments are loaded in two id-set queries, never per item.
func (r *contratoRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]contrato.Contrato, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, empleado_id, fecha_inicio, fecha_fin, created_at, updated_at
		FROM contratos
		WHERE id = ANY($1)
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query contratos: %w", err)
	}
	defer rows.Close()

	result := make(map[int64]contrato.Contrato, len(ids))
	for rows.Next() {
		var c contrato.Contrato
		if err := rows.Scan(&c.ID, &c.EmpleadoID, &c.FechaInicio, &c.FechaFin, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contrato: %w", err)
		}
		result[c.ID] = c
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contratos: %w", err)
	}

	if len(result) == 0 {
		return result, nil
	}

	anexosQuery := `
		SELECT id, contrato_id, fecha_inicio, fecha_fin, created_at, updated_at
		FROM anexos
		WHERE contrato_id = ANY($1)
		ORDER BY fecha_inicio
	`

	found := make([]int64, 0, len(result))
	for id := range result {
		found = append(found, id)
	}

	anexoRows, err := q.Query(ctx, anexosQuery, found)
	if err != nil {
		return nil, fmt.Errorf("failed to query anexos: %w", err)
	}
	defer anexoRows.Close()

	for anexoRows.Next() {
		var a contrato.Anexo
		if err := anexoRows.Scan(&a.ID, &a.ContratoID, &a.FechaInicio, &a.FechaFin, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan anexo: %w", err)
		}
		c := result[a.ContratoID]
		c.Anexos = append(c.Anexos, a)
		result[a.ContratoID] = c
	}
	if err := anexoRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read anexos: %w", err)
	}

	return result, nil
}

// GetByAnexoIDs implements contrato.ContratoRepository. One query maps
// anexo ids to contract ids; the contracts are then fetched as a set.
func (r *contratoRepository) GetByAnexoIDs(ctx context.Context, anexoIDs []int64) (map[int64]contrato.Contrato, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, contrato_id FROM anexos WHERE id = ANY($1)`, anexoIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve anexos: %w", err)
	}
	defer rows.Close()

	contratoPorAnexo := make(map[int64]int64, len(anexoIDs))
	for rows.Next() {
		var anexoID, contratoID int64
		if err := rows.Scan(&anexoID, &contratoID); err != nil {
			return nil, fmt.Errorf("failed to scan anexo: %w", err)
		}
		contratoPorAnexo[anexoID] = contratoID
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read anexos: %w", err)
	}

	if len(contratoPorAnexo) == 0 {
		return map[int64]contrato.Contrato{}, nil
	}

	contratoIDs := make([]int64, 0, len(contratoPorAnexo))
	for _, id := range contratoPorAnexo {
		contratoIDs = append(contratoIDs, id)
	}

	contratos, err := r.GetByIDs(ctx, contratoIDs)
	if err != nil {
		return nil, err
	}

	result := make(map[int64]contrato.Contrato, len(contratoPorAnexo))
	for anexoID, contratoID := range contratoPorAnexo {
		if c, ok := contratos[contratoID]; ok {
			result[anexoID] = c
		}
	}

	return result, nil
}

func NewContratoRepository(db *database.DB) contrato.ContratoRepository {
	return &contratoRepository{db: db}
}
