package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/turnos-hq/horario-backend-go/internal/domain/horario"
	"github.com/turnos-hq/horario-backend-go/internal/pkg/database"
)

type horarioRepository struct {
	db *database.DB
}

const horarioColumns = `
	id, empleado_id, contrato_id, anexo_id, modalidad_id, estado_horario_id, turno_id,
	horario_inicio, horario_fin, descanso_inicio, descanso_fin,
	estado_fichaje, fichaje_entrada, fichaje_salida, entrada_automatica, salida_automatica,
	latitud_entrada, longitud_entrada, ip_address_entrada, user_agent_entrada,
	latitud_salida, longitud_salida, ip_address_salida, user_agent_salida,
	observaciones, created_at, updated_at`

func scanHorario(row pgx.Row) (horario.Horario, error) {
	var h horario.Horario
	err := row.Scan(
		&h.ID, &h.EmpleadoID, &h.ContratoID, &h.AnexoID, &h.ModalidadID, &h.EstadoHorarioID, &h.TurnoID,
		&h.HorarioInicio, &h.HorarioFin, &h.DescansoInicio, &h.DescansoFin,
		&h.EstadoFichaje, &h.FichajeEntrada, &h.FichajeSalida, &h.EntradaAutomatica, &h.SalidaAutomatica,
		&h.LatitudEntrada, &h.LongitudEntrada, &h.IPAddressEntrada, &h.UserAgentEntrada,
		&h.LatitudSalida, &h.LongitudSalida, &h.IPAddressSalida, &h.UserAgentSalida,
		&h.Observaciones, &h.CreatedAt, &h.UpdatedAt,
	)
	return h, err
}

// CreateBatch implements horario.HorarioRepository.
func (r *horarioRepository) CreateBatch(ctx context.Context, horarios []horario.Horario) ([]horario.Horario, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO horarios (
			empleado_id, contrato_id, anexo_id, modalidad_id, estado_horario_id, turno_id,
			horario_inicio, horario_fin, descanso_inicio, descanso_fin,
			estado_fichaje, observaciones
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING id, created_at, updated_at
	`

	created := make([]horario.Horario, 0, len(horarios))
	for _, h := range horarios {
		err := q.QueryRow(ctx, query,
			h.EmpleadoID,
			h.ContratoID,
			h.AnexoID,
			h.ModalidadID,
			h.EstadoHorarioID,
			h.TurnoID,
			h.HorarioInicio,
			h.HorarioFin,
			h.DescansoInicio,
			h.DescansoFin,
			horario.EstadoSinIniciar,
			h.Observaciones,
		).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to create horario: %w", err)
		}
		h.EstadoFichaje = horario.EstadoSinIniciar
		created = append(created, h)
	}

	return created, nil
}

// GetByID implements horario.HorarioRepository.
func (r *horarioRepository) GetByID(ctx context.Context, id int64) (horario.Horario, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + horarioColumns + ` FROM horarios WHERE id = $1`

	h, err := scanHorario(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return horario.Horario{}, horario.ErrHorarioNotFound
		}
		return horario.Horario{}, fmt.Errorf("failed to get horario by ID: %w", err)
	}

	return h, nil
}

// GetByIDs implements horario.HorarioRepository.
func (r *horarioRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]horario.Horario, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + horarioColumns + ` FROM horarios WHERE id = ANY($1)`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query horarios by ids: %w", err)
	}

	horarios, err := collectHorarios(rows)
	if err != nil {
		return nil, err
	}

	result := make(map[int64]horario.Horario, len(horarios))
	for _, h := range horarios {
		result[h.ID] = h
	}

	return result, nil
}

// collectHorarios drains rows into a slice. rows.Err is checked after
// the loop so a connection dropped mid-iteration surfaces as an error
// instead of a silently truncated result set.
func collectHorarios(rows pgx.Rows) ([]horario.Horario, error) {
	defer rows.Close()

	var horarios []horario.Horario
	for rows.Next() {
		h, err := scanHorario(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan horario: %w", err)
		}
		horarios = append(horarios, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read horarios: %w", err)
	}

	return horarios, nil
}

// GetForUpdate implements horario.HorarioRepository.
func (r *horarioRepository) GetForUpdate(ctx context.Context, id int64) (horario.Horario, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + horarioColumns + ` FROM horarios WHERE id = $1 FOR UPDATE`

	h, err := scanHorario(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return horario.Horario{}, horario.ErrHorarioNotFound
		}
		return horario.Horario{}, fmt.Errorf("failed to lock horario: %w", err)
	}

	return h, nil
}

// UpdateFichaje implements horario.HorarioRepository.
func (r *horarioRepository) UpdateFichaje(ctx context.Context, h horario.Horario) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE horarios SET
			estado_fichaje = $1,
			fichaje_entrada = $2, fichaje_salida = $3,
			entrada_automatica = $4, salida_automatica = $5,
			latitud_entrada = $6, longitud_entrada = $7, ip_address_entrada = $8, user_agent_entrada = $9,
			latitud_salida = $10, longitud_salida = $11, ip_address_salida = $12, user_agent_salida = $13,
			updated_at = $14
		WHERE id = $15
		RETURNING id
	`

	var updatedID int64
	err := q.QueryRow(ctx, query,
		h.EstadoFichaje,
		h.FichajeEntrada, h.FichajeSalida,
		h.EntradaAutomatica, h.SalidaAutomatica,
		h.LatitudEntrada, h.LongitudEntrada, h.IPAddressEntrada, h.UserAgentEntrada,
		h.LatitudSalida, h.LongitudSalida, h.IPAddressSalida, h.UserAgentSalida,
		time.Now(),
		h.ID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return horario.ErrHorarioNotFound
		}
		return fmt.Errorf("failed to update fichaje: %w", err)
	}

	return nil
}

// UpdatePlan implements horario.HorarioRepository.
func (r *horarioRepository) UpdatePlan(ctx context.Context, h horario.Horario) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE horarios SET
			modalidad_id = $1, estado_horario_id = $2, turno_id = $3,
			horario_inicio = $4, horario_fin = $5,
			descanso_inicio = $6, descanso_fin = $7,
			observaciones = $8,
			updated_at = $9
		WHERE id = $10
		RETURNING id
	`

	var updatedID int64
	err := q.QueryRow(ctx, query,
		h.ModalidadID, h.EstadoHorarioID, h.TurnoID,
		h.HorarioInicio, h.HorarioFin,
		h.DescansoInicio, h.DescansoFin,
		h.Observaciones,
		time.Now(),
		h.ID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return horario.ErrHorarioNotFound
		}
		return fmt.Errorf("failed to update horario: %w", err)
	}

	return nil
}

// DeleteBatch implements horario.HorarioRepository.
func (r *horarioRepository) DeleteBatch(ctx context.Context, ids []int64) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM horarios WHERE id = ANY($1)`

	commandTag, err := q.Exec(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to delete horarios: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return horario.ErrHorarioNotFound
	}

	return nil
}

// GetContiguousPairs implements horario.HorarioRepository.
func (r *horarioRepository) GetContiguousPairs(ctx context.Context, boundary time.Time) ([]horario.TransicionPar, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT actual.id, siguiente.id
		FROM horarios actual
		JOIN horarios siguiente
		  ON siguiente.empleado_id = actual.empleado_id
		 AND siguiente.horario_inicio = actual.horario_fin
		WHERE actual.estado_fichaje = $1
		  AND siguiente.estado_fichaje = $2
		  AND actual.horario_fin <= $3
		ORDER BY actual.horario_fin
	`

	rows, err := q.Query(ctx, query, horario.EstadoEnCurso, horario.EstadoSinIniciar, boundary)
	if err != nil {
		return nil, fmt.Errorf("failed to query contiguous pairs: %w", err)
	}
	defer rows.Close()

	var pairs []horario.TransicionPar
	for rows.Next() {
		var p horario.TransicionPar
		if err := rows.Scan(&p.ActualID, &p.SiguienteID); err != nil {
			return nil, fmt.Errorf("failed to scan transition pair: %w", err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transition pairs: %w", err)
	}

	return pairs, nil
}

// GetStale implements horario.HorarioRepository.
func (r *horarioRepository) GetStale(ctx context.Context, limit time.Time) ([]horario.Horario, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + horarioColumns + `
		FROM horarios
		WHERE estado_fichaje = $1
		  AND horario_fin < $2
		ORDER BY horario_fin
	`

	rows, err := q.Query(ctx, query, horario.EstadoEnCurso, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale horarios: %w", err)
	}

	return collectHorarios(rows)
}

func NewHorarioRepository(db *database.DB) horario.HorarioRepository {
	return &horarioRepository{db: db}
}
