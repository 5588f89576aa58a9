package descanso

import (
	"context"
	"fmt"
	"time"

	"github.com/turnos-hq/horario-backend-go/internal/domain/descanso"
	"github.com/turnos-hq/horario-backend-go/internal/domain/horario"
	"github.com/turnos-hq/horario-backend-go/internal/pkg/validator"
)

type DescansoServiceImpl struct {
	descansoRepo descanso.DescansoRepository
	horarioRepo  horario.HorarioRepository
}

// ObtenerActivo implements descanso.DescansoService.
func (s *DescansoServiceImpl) ObtenerActivo(ctx context.Context, horarioID int64) (*descanso.Descanso, error) {
	d, err := s.descansoRepo.GetActive(ctx, horarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active descanso: %w", err)
	}
	return d, nil
}

// Iniciar implements descanso.DescansoService. Breaks nest strictly
// inside an en_curso shift; a second open break is an ordering fault and
// propagates hard.
func (s *DescansoServiceImpl) Iniciar(ctx context.Context, horarioID int64) (descanso.Descanso, error) {
	h, err := s.horarioRepo.GetByID(ctx, horarioID)
	if err != nil {
		return descanso.Descanso{}, err
	}

	if h.EstadoFichaje != horario.EstadoEnCurso {
		return descanso.Descanso{}, fmt.Errorf("iniciar descanso on horario %d: %w", h.ID, horario.ErrFichajeNoIniciado)
	}

	activo, err := s.descansoRepo.GetActive(ctx, horarioID)
	if err != nil {
		return descanso.Descanso{}, fmt.Errorf("failed to check active descanso: %w", err)
	}
	if activo != nil {
		return descanso.Descanso{}, fmt.Errorf("iniciar descanso on horario %d: %w", h.ID, descanso.ErrDescansoActivo)
	}

	now := time.Now().UTC()
	if now.Before(h.HorarioInicio) {
		return descanso.Descanso{}, validator.ValidationErrors{{
			Field:   "inicio",
			Message: "descanso cannot start before horario_inicio",
		}}
	}

	created, err := s.descansoRepo.Create(ctx, descanso.Descanso{
		HorarioID: horarioID,
		Inicio:    now,
	})
	if err != nil {
		return descanso.Descanso{}, err
	}

	return created, nil
}

// Finalizar implements descanso.DescansoService.
func (s *DescansoServiceImpl) Finalizar(ctx context.Context, horarioID int64) (descanso.Descanso, error) {
	h, err := s.horarioRepo.GetByID(ctx, horarioID)
	if err != nil {
		return descanso.Descanso{}, err
	}

	activo, err := s.descansoRepo.GetActive(ctx, horarioID)
	if err != nil {
		return descanso.Descanso{}, fmt.Errorf("failed to get active descanso: %w", err)
	}
	if activo == nil {
		return descanso.Descanso{}, fmt.Errorf("finalizar descanso on horario %d: %w", h.ID, descanso.ErrSinDescansoActivo)
	}

	fin := time.Now().UTC()
	if fin.After(h.HorarioFin) {
		// A closed break must nest inside the shift window; clocking it
		// past horario_fin would break the containment invariant.
		return descanso.Descanso{}, validator.ValidationErrors{{
			Field:   "fin",
			Message: "descanso cannot end after horario_fin",
		}}
	}

	if err := s.descansoRepo.Close(ctx, activo.ID, fin); err != nil {
		return descanso.Descanso{}, err
	}

	activo.Fin = &fin
	return *activo, nil
}

func NewDescansoService(descansoRepo descanso.DescansoRepository, horarioRepo horario.HorarioRepository) descanso.DescansoService {
	return &DescansoServiceImpl{
		descansoRepo: descansoRepo,
		horarioRepo:  horarioRepo,
	}
}
