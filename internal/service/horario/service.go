package horario

import (
	"context"
	"fmt"

	"github.com/turnos-hq/horario-backend-go/internal/domain/contrato"
	"github.com/turnos-hq/horario-backend-go/internal/domain/horario"
	"github.com/turnos-hq/horario-backend-go/internal/pkg/validator"
)

type HorarioServiceImpl struct {
	horarioRepo  horario.HorarioRepository
	contratoRepo contrato.ContratoRepository
}

// LoteValidado is the result of validating one incoming batch: the shift
// entities ready to persist plus every contract (with amendments) that
// was loaded for them. It is built once per request by ValidarLote and
// discarded with it; nothing is cached on the service.
type LoteValidado struct {
	Horarios  []horario.Horario
	Contratos map[int64]contrato.Contrato
}

// HorariosValidados returns the shift entities of the validated batch.
func (l *LoteValidado) HorariosValidados() []horario.Horario {
	return l.Horarios
}

// ContratosValidados returns the contracts loaded during validation,
// keyed by contract id, so callers never re-query them.
func (l *LoteValidado) ContratosValidados() map[int64]contrato.Contrato {
	return l.Contratos
}

// ValidarLote runs the full batch validation for a create request:
// structural checks, one id-set lookup for all referenced contracts and
// amendments, and period containment per item. Errors are accumulated
// per item, per field; one bad item never hides its siblings.
func (s *HorarioServiceImpl) ValidarLote(ctx context.Context, req horario.CrearLoteRequest) (LoteValidado, error) {
	if err := req.Validate(); err != nil {
		return LoteValidado{}, err
	}

	var contratoIDs, anexoIDs []int64
	for _, item := range req.Horarios {
		if item.ContratoID != nil {
			contratoIDs = append(contratoIDs, *item.ContratoID)
		}
		if item.AnexoID != nil {
			anexoIDs = append(anexoIDs, *item.AnexoID)
		}
	}

	contratos := map[int64]contrato.Contrato{}
	if len(contratoIDs) > 0 {
		var err error
		contratos, err = s.contratoRepo.GetByIDs(ctx, contratoIDs)
		if err != nil {
			return LoteValidado{}, fmt.Errorf("failed to load contratos: %w", err)
		}
	}

	porAnexo := map[int64]contrato.Contrato{}
	if len(anexoIDs) > 0 {
		var err error
		porAnexo, err = s.contratoRepo.GetByAnexoIDs(ctx, anexoIDs)
		if err != nil {
			return LoteValidado{}, fmt.Errorf("failed to load anexos: %w", err)
		}
	}

	var errs validator.ValidationErrors
	entities := make([]horario.Horario, 0, len(req.Horarios))

	for i, item := range req.Horarios {
		var owner contrato.Contrato
		switch {
		case item.ContratoID != nil:
			c, ok := contratos[*item.ContratoID]
			if !ok {
				errs = append(errs, validator.ValidationError{
					Field:   validator.IndexedField("horarios", i, "contrato_id"),
					Message: "contrato does not exist",
				})
				continue
			}
			owner = c
		case item.AnexoID != nil:
			c, ok := porAnexo[*item.AnexoID]
			if !ok {
				errs = append(errs, validator.ValidationError{
					Field:   validator.IndexedField("horarios", i, "anexo_id"),
					Message: "anexo does not exist",
				})
				continue
			}
			owner = c
		}

		inicio, _ := validator.IsValidDateTime(item.HorarioInicio)
		fin, _ := validator.IsValidDateTime(item.HorarioFin)

		if !owner.PeriodoValido(inicio, fin) {
			errs = append(errs, validator.ValidationError{
				Field:   validator.IndexedField("horarios", i, "horario_inicio"),
				Message: "horario window is outside the validity period of the contrato and its anexos",
			})
			continue
		}

		if item.EmpleadoID != owner.EmpleadoID {
			errs = append(errs, validator.ValidationError{
				Field:   validator.IndexedField("horarios", i, "empleado_id"),
				Message: "empleado does not match the contrato",
			})
			continue
		}

		h := horario.Horario{
			EmpleadoID:      item.EmpleadoID,
			ContratoID:      item.ContratoID,
			AnexoID:         item.AnexoID,
			ModalidadID:     item.ModalidadID,
			EstadoHorarioID: item.EstadoHorarioID,
			TurnoID:         item.TurnoID,
			HorarioInicio:   inicio,
			HorarioFin:      fin,
			EstadoFichaje:   horario.EstadoSinIniciar,
			Observaciones:   item.Observaciones,
		}
		if item.DescansoInicio != nil && item.DescansoFin != nil {
			dInicio, _ := validator.IsValidDateTime(*item.DescansoInicio)
			dFin, _ := validator.IsValidDateTime(*item.DescansoFin)
			h.DescansoInicio = &dInicio
			h.DescansoFin = &dFin
		}
		entities = append(entities, h)

		contratos[owner.ID] = owner
	}

	if len(errs) > 0 {
		return LoteValidado{}, errs
	}

	return LoteValidado{Horarios: entities, Contratos: contratos}, nil
}

// CrearLote implements horario.HorarioService.
func (s *HorarioServiceImpl) CrearLote(ctx context.Context, req horario.CrearLoteRequest) ([]horario.HorarioResponse, error) {
	lote, err := s.ValidarLote(ctx, req)
	if err != nil {
		return nil, err
	}

	created, err := s.horarioRepo.CreateBatch(ctx, lote.HorariosValidados())
	if err != nil {
		return nil, fmt.Errorf("failed to create horarios: %w", err)
	}

	responses := make([]horario.HorarioResponse, 0, len(created))
	for _, h := range created {
		responses = append(responses, horario.NewHorarioResponse(h))
	}

	return responses, nil
}

// ActualizarLote implements horario.HorarioService.
func (s *HorarioServiceImpl) ActualizarLote(ctx context.Context, req horario.ActualizarLoteRequest) ([]horario.HorarioResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(req.Horarios))
	for _, item := range req.Horarios {
		ids = append(ids, item.ID)
	}

	existing, err := s.horarioRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load horarios: %w", err)
	}

	var errs validator.ValidationErrors
	if len(existing) != len(req.Horarios) {
		// Resolve exactly which ids are missing; keep checking the rest.
		for i, item := range req.Horarios {
			if _, ok := existing[item.ID]; !ok {
				errs = append(errs, validator.ValidationError{
					Field:   validator.IndexedField("horarios", i, "id"),
					Message: "horario does not exist",
				})
			}
		}
	}

	updated := make([]horario.Horario, 0, len(req.Horarios))
	for i, item := range req.Horarios {
		h, ok := existing[item.ID]
		if !ok {
			continue
		}

		aplicarActualizacion(&h, item)

		if !h.HorarioFin.After(h.HorarioInicio) {
			errs = append(errs, validator.ValidationError{
				Field:   validator.IndexedField("horarios", i, "horario_fin"),
				Message: "horario_fin must be after horario_inicio",
			})
			continue
		}
		if h.DescansoInicio != nil && h.DescansoFin != nil {
			if h.DescansoInicio.Before(h.HorarioInicio) || h.DescansoFin.After(h.HorarioFin) {
				errs = append(errs, validator.ValidationError{
					Field:   validator.IndexedField("horarios", i, "descanso_inicio"),
					Message: "planned descanso must lie within the horario window",
				})
				continue
			}
		}

		updated = append(updated, h)
	}

	// Re-check period containment for every window that moved, loading
	// each owning contract once.
	periodErrs, err := s.validarPeriodos(ctx, req, updated)
	if err != nil {
		return nil, err
	}
	errs = append(errs, periodErrs...)

	if len(errs) > 0 {
		return nil, errs
	}

	responses := make([]horario.HorarioResponse, 0, len(updated))
	for _, h := range updated {
		if err := s.horarioRepo.UpdatePlan(ctx, h); err != nil {
			return nil, fmt.Errorf("failed to update horario %d: %w", h.ID, err)
		}
		responses = append(responses, horario.NewHorarioResponse(h))
	}

	return responses, nil
}

// validarPeriodos checks the updated windows against their owning
// contracts. Contracts and amendments are fetched as id sets, one query
// each.
func (s *HorarioServiceImpl) validarPeriodos(ctx context.Context, req horario.ActualizarLoteRequest, updated []horario.Horario) (validator.ValidationErrors, error) {
	var contratoIDs, anexoIDs []int64
	for _, h := range updated {
		if h.ContratoID != nil {
			contratoIDs = append(contratoIDs, *h.ContratoID)
		}
		if h.AnexoID != nil {
			anexoIDs = append(anexoIDs, *h.AnexoID)
		}
	}

	contratos := map[int64]contrato.Contrato{}
	if len(contratoIDs) > 0 {
		var err error
		contratos, err = s.contratoRepo.GetByIDs(ctx, contratoIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load contratos: %w", err)
		}
	}
	porAnexo := map[int64]contrato.Contrato{}
	if len(anexoIDs) > 0 {
		var err error
		porAnexo, err = s.contratoRepo.GetByAnexoIDs(ctx, anexoIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load anexos: %w", err)
		}
	}

	index := make(map[int64]int, len(req.Horarios))
	for i, item := range req.Horarios {
		index[item.ID] = i
	}

	var errs validator.ValidationErrors
	for _, h := range updated {
		var owner contrato.Contrato
		var ok bool
		if h.ContratoID != nil {
			owner, ok = contratos[*h.ContratoID]
		} else if h.AnexoID != nil {
			owner, ok = porAnexo[*h.AnexoID]
		}
		if !ok {
			// Owning contract vanished underneath the shift; treat as a
			// per-item error rather than failing the batch.
			errs = append(errs, validator.ValidationError{
				Field:   validator.IndexedField("horarios", index[h.ID], "contrato_id"),
				Message: "owning contrato does not exist",
			})
			continue
		}

		if !owner.PeriodoValido(h.HorarioInicio, h.HorarioFin) {
			errs = append(errs, validator.ValidationError{
				Field:   validator.IndexedField("horarios", index[h.ID], "horario_inicio"),
				Message: "horario window is outside the validity period of the contrato and its anexos",
			})
		}
	}

	return errs, nil
}

func aplicarActualizacion(h *horario.Horario, item horario.ActualizarHorarioItem) {
	if item.ModalidadID != nil {
		h.ModalidadID = *item.ModalidadID
	}
	if item.EstadoHorarioID != nil {
		h.EstadoHorarioID = *item.EstadoHorarioID
	}
	if item.TurnoID != nil {
		h.TurnoID = *item.TurnoID
	}
	if item.HorarioInicio != nil {
		if t, ok := validator.IsValidDateTime(*item.HorarioInicio); ok {
			h.HorarioInicio = t
		}
	}
	if item.HorarioFin != nil {
		if t, ok := validator.IsValidDateTime(*item.HorarioFin); ok {
			h.HorarioFin = t
		}
	}
	if item.DescansoInicio != nil {
		if t, ok := validator.IsValidDateTime(*item.DescansoInicio); ok {
			h.DescansoInicio = &t
		}
	}
	if item.DescansoFin != nil {
		if t, ok := validator.IsValidDateTime(*item.DescansoFin); ok {
			h.DescansoFin = &t
		}
	}
	if item.Observaciones != nil {
		h.Observaciones = item.Observaciones
	}
}

// EliminarLote implements horario.HorarioService.
func (s *HorarioServiceImpl) EliminarLote(ctx context.Context, req horario.EliminarLoteRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	existing, err := s.horarioRepo.GetByIDs(ctx, req.IDs)
	if err != nil {
		return fmt.Errorf("failed to load horarios: %w", err)
	}

	// A repeated id also shrinks the map, so resolve which ids are
	// actually missing before treating the mismatch as an error.
	if len(existing) != len(req.IDs) {
		var errs validator.ValidationErrors
		for i, id := range req.IDs {
			if _, ok := existing[id]; !ok {
				errs = append(errs, validator.ValidationError{
					Field:   validator.IndexedField("horarios", i, "id"),
					Message: "horario does not exist",
				})
			}
		}
		if len(errs) > 0 {
			return errs
		}
	}

	if err := s.horarioRepo.DeleteBatch(ctx, req.IDs); err != nil {
		return fmt.Errorf("failed to delete horarios: %w", err)
	}

	return nil
}

// ObtenerLote implements horario.HorarioService.
func (s *HorarioServiceImpl) ObtenerLote(ctx context.Context, req horario.ObtenerLoteRequest) ([]horario.HorarioResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.horarioRepo.GetByIDs(ctx, req.IDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load horarios: %w", err)
	}

	if len(existing) != len(req.IDs) {
		var errs validator.ValidationErrors
		for i, id := range req.IDs {
			if _, ok := existing[id]; !ok {
				errs = append(errs, validator.ValidationError{
					Field:   validator.IndexedField("horarios", i, "id"),
					Message: "horario does not exist",
				})
			}
		}
		if len(errs) > 0 {
			return nil, errs
		}
	}

	responses := make([]horario.HorarioResponse, 0, len(req.IDs))
	for _, id := range req.IDs {
		responses = append(responses, horario.NewHorarioResponse(existing[id]))
	}

	return responses, nil
}

// Obtener implements horario.HorarioService.
func (s *HorarioServiceImpl) Obtener(ctx context.Context, id int64) (horario.HorarioResponse, error) {
	h, err := s.horarioRepo.GetByID(ctx, id)
	if err != nil {
		return horario.HorarioResponse{}, err
	}

	return horario.NewHorarioResponse(h), nil
}

func NewHorarioService(horarioRepo horario.HorarioRepository, contratoRepo contrato.ContratoRepository) *HorarioServiceImpl {
	return &HorarioServiceImpl{
		horarioRepo:  horarioRepo,
		contratoRepo: contratoRepo,
	}
}
