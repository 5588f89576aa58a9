package horario

import (
	"time"

	"github.com/turnos-hq/horario-backend-go/internal/pkg/validator"
)

// ========================================
// BULK DTOs
// ========================================

// CrearHorarioItem is one shift spec inside a bulk create request.
// Timestamps are RFC3339 strings; exactly one of contrato_id / anexo_id
// must be set.
type CrearHorarioItem struct {
	EmpleadoID      int64   `json:"empleado_id"`
	ContratoID      *int64  `json:"contrato_id"`
	AnexoID         *int64  `json:"anexo_id"`
	ModalidadID     int64   `json:"modalidad_id"`
	EstadoHorarioID int64   `json:"estado_horario_id"`
	TurnoID         int64   `json:"turno_id"`
	HorarioInicio   string  `json:"horario_inicio"`
	HorarioFin      string  `json:"horario_fin"`
	DescansoInicio  *string `json:"descanso_inicio"`
	DescansoFin     *string `json:"descanso_fin"`
	Observaciones   *string `json:"observaciones"`
}

type CrearLoteRequest struct {
	Horarios []CrearHorarioItem `json:"horarios"`
}

// Validate performs the structural per-item checks. Items keep being
// validated after a sibling fails; every error carries its batch index.
// Period containment needs the contract store and is checked by the
// service.
func (r *CrearLoteRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Horarios) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "horarios",
			Message: "at least one horario is required",
		})
		return errs
	}

	for i, item := range r.Horarios {
		errs = append(errs, validarItem(i, item)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validarItem(i int, item CrearHorarioItem) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if item.EmpleadoID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   validator.IndexedField("horarios", i, "empleado_id"),
			Message: "empleado_id is required",
		})
	}

	switch {
	case item.ContratoID == nil && item.AnexoID == nil:
		errs = append(errs, validator.ValidationError{
			Field:   validator.IndexedField("horarios", i, "contrato_id"),
			Message: "either contrato_id or anexo_id is required",
		})
	case item.ContratoID != nil && item.AnexoID != nil:
		errs = append(errs, validator.ValidationError{
			Field:   validator.IndexedField("horarios", i, "contrato_id"),
			Message: "contrato_id and anexo_id are mutually exclusive",
		})
	}

	inicio, inicioOK := validator.IsValidDateTime(item.HorarioInicio)
	if !inicioOK {
		errs = append(errs, validator.ValidationError{
			Field:   validator.IndexedField("horarios", i, "horario_inicio"),
			Message: "horario_inicio must be a valid ISO8601 timestamp",
		})
	}

	fin, finOK := validator.IsValidDateTime(item.HorarioFin)
	if !finOK {
		errs = append(errs, validator.ValidationError{
			Field:   validator.IndexedField("horarios", i, "horario_fin"),
			Message: "horario_fin must be a valid ISO8601 timestamp",
		})
	}

	if inicioOK && finOK && !fin.After(inicio) {
		errs = append(errs, validator.ValidationError{
			Field:   validator.IndexedField("horarios", i, "horario_fin"),
			Message: "horario_fin must be after horario_inicio",
		})
	}

	errs = append(errs, validarDescansoPlanificado(i, item, inicio, fin, inicioOK && finOK)...)

	if item.Observaciones != nil && len(*item.Observaciones) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   validator.IndexedField("horarios", i, "observaciones"),
			Message: "observaciones must not exceed 255 characters",
		})
	}

	return errs
}

// validarDescansoPlanificado checks the optional planned break: both ends
// present or neither, fin after inicio, and strictly inside the shift
// window.
func validarDescansoPlanificado(i int, item CrearHorarioItem, inicio, fin time.Time, windowOK bool) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if item.DescansoInicio == nil && item.DescansoFin == nil {
		return nil
	}

	if item.DescansoInicio == nil || item.DescansoFin == nil {
		errs = append(errs, validator.ValidationError{
			Field:   validator.IndexedField("horarios", i, "descanso_inicio"),
			Message: "descanso_inicio and descanso_fin must be provided together",
		})
		return errs
	}

	dInicio, ok1 := validator.IsValidDateTime(*item.DescansoInicio)
	if !ok1 {
		errs = append(errs, validator.ValidationError{
			Field:   validator.IndexedField("horarios", i, "descanso_inicio"),
			Message: "descanso_inicio must be a valid ISO8601 timestamp",
		})
	}
	dFin, ok2 := validator.IsValidDateTime(*item.DescansoFin)
	if !ok2 {
		errs = append(errs, validator.ValidationError{
			Field:   validator.IndexedField("horarios", i, "descanso_fin"),
			Message: "descanso_fin must be a valid ISO8601 timestamp",
		})
	}
	if !ok1 || !ok2 {
		return errs
	}

	if !dFin.After(dInicio) {
		errs = append(errs, validator.ValidationError{
			Field:   validator.IndexedField("horarios", i, "descanso_fin"),
			Message: "descanso_fin must be after descanso_inicio",
		})
	}

	if windowOK && (dInicio.Before(inicio) || dFin.After(fin)) {
		errs = append(errs, validator.ValidationError{
			Field:   validator.IndexedField("horarios", i, "descanso_inicio"),
			Message: "planned descanso must lie within the horario window",
		})
	}

	return errs
}

// ActualizarHorarioItem is one mutation inside a bulk update request.
// Nil fields are left untouched.
type ActualizarHorarioItem struct {
	ID              int64   `json:"id"`
	ModalidadID     *int64  `json:"modalidad_id"`
	EstadoHorarioID *int64  `json:"estado_horario_id"`
	TurnoID         *int64  `json:"turno_id"`
	HorarioInicio   *string `json:"horario_inicio"`
	HorarioFin      *string `json:"horario_fin"`
	DescansoInicio  *string `json:"descanso_inicio"`
	DescansoFin     *string `json:"descanso_fin"`
	Observaciones   *string `json:"observaciones"`
}

type ActualizarLoteRequest struct {
	Horarios []ActualizarHorarioItem `json:"horarios"`
}

func (r *ActualizarLoteRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Horarios) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "horarios",
			Message: "at least one horario is required",
		})
		return errs
	}

	for i, item := range r.Horarios {
		if item.ID <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   validator.IndexedField("horarios", i, "id"),
				Message: "id is required",
			})
		}

		if item.HorarioInicio != nil {
			if _, ok := validator.IsValidDateTime(*item.HorarioInicio); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   validator.IndexedField("horarios", i, "horario_inicio"),
					Message: "horario_inicio must be a valid ISO8601 timestamp",
				})
			}
		}
		if item.HorarioFin != nil {
			if _, ok := validator.IsValidDateTime(*item.HorarioFin); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   validator.IndexedField("horarios", i, "horario_fin"),
					Message: "horario_fin must be a valid ISO8601 timestamp",
				})
			}
		}

		if item.Observaciones != nil && len(*item.Observaciones) > 255 {
			errs = append(errs, validator.ValidationError{
				Field:   validator.IndexedField("horarios", i, "observaciones"),
				Message: "observaciones must not exceed 255 characters",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// EliminarLoteRequest carries the ids of a bulk delete.
type EliminarLoteRequest struct {
	IDs []int64 `json:"horarios"`
}

func (r *EliminarLoteRequest) Validate() error {
	return validarIDs(r.IDs)
}

// ObtenerLoteRequest carries the ids of a bulk show.
type ObtenerLoteRequest struct {
	IDs []int64 `json:"horarios"`
}

func (r *ObtenerLoteRequest) Validate() error {
	return validarIDs(r.IDs)
}

func validarIDs(ids []int64) error {
	var errs validator.ValidationErrors

	if len(ids) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "horarios",
			Message: "at least one horario id is required",
		})
		return errs
	}

	for i, id := range ids {
		if id <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   validator.IndexedField("horarios", i, "id"),
				Message: "id must be a positive integer",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// FICHAJE / DESCANSO DTOs
// ========================================

// FichajeRequest is the body of a manual clock event. Geolocation is
// whatever the browser supplied; IP and user agent come from the request
// itself.
type FichajeRequest struct {
	Latitud  *float64 `json:"latitud"`
	Longitud *float64 `json:"longitud"`
}

func (r *FichajeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitud != nil && !validator.IsValidLatitude(*r.Latitud) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitud",
			Message: "latitud must be between -90 and 90",
		})
	}
	if r.Longitud != nil && !validator.IsValidLongitude(*r.Longitud) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitud",
			Message: "longitud must be between -180 and 180",
		})
	}
	if (r.Latitud == nil) != (r.Longitud == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitud",
			Message: "latitud and longitud must be provided together",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// RESPONSES
// ========================================

type HorarioResponse struct {
	ID              int64   `json:"id"`
	EmpleadoID      int64   `json:"empleado_id"`
	ContratoID      *int64  `json:"contrato_id,omitempty"`
	AnexoID         *int64  `json:"anexo_id,omitempty"`
	ModalidadID     int64   `json:"modalidad_id"`
	EstadoHorarioID int64   `json:"estado_horario_id"`
	TurnoID         int64   `json:"turno_id"`
	HorarioInicio   string  `json:"horario_inicio"`
	HorarioFin      string  `json:"horario_fin"`
	DescansoInicio  *string `json:"descanso_inicio,omitempty"`
	DescansoFin     *string `json:"descanso_fin,omitempty"`

	EstadoFichaje     string  `json:"estado_fichaje"`
	FichajeEntrada    *string `json:"fichaje_entrada,omitempty"`
	FichajeSalida     *string `json:"fichaje_salida,omitempty"`
	EntradaAutomatica bool    `json:"entrada_automatica"`
	SalidaAutomatica  bool    `json:"salida_automatica"`

	LatitudEntrada   *float64 `json:"latitud_entrada,omitempty"`
	LongitudEntrada  *float64 `json:"longitud_entrada,omitempty"`
	IPAddressEntrada *string  `json:"ip_address_entrada,omitempty"`
	UserAgentEntrada *string  `json:"user_agent_entrada,omitempty"`

	LatitudSalida   *float64 `json:"latitud_salida,omitempty"`
	LongitudSalida  *float64 `json:"longitud_salida,omitempty"`
	IPAddressSalida *string  `json:"ip_address_salida,omitempty"`
	UserAgentSalida *string  `json:"user_agent_salida,omitempty"`

	Observaciones *string `json:"observaciones,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// NewHorarioResponse maps a shift entity to its API shape. Timestamps
// are formatted as RFC3339 in UTC.
func NewHorarioResponse(h Horario) HorarioResponse {
	return HorarioResponse{
		ID:              h.ID,
		EmpleadoID:      h.EmpleadoID,
		ContratoID:      h.ContratoID,
		AnexoID:         h.AnexoID,
		ModalidadID:     h.ModalidadID,
		EstadoHorarioID: h.EstadoHorarioID,
		TurnoID:         h.TurnoID,
		HorarioInicio:   h.HorarioInicio.Format(time.RFC3339),
		HorarioFin:      h.HorarioFin.Format(time.RFC3339),
		DescansoInicio:  formatTimePtr(h.DescansoInicio),
		DescansoFin:     formatTimePtr(h.DescansoFin),

		EstadoFichaje:     string(h.EstadoFichaje),
		FichajeEntrada:    formatTimePtr(h.FichajeEntrada),
		FichajeSalida:     formatTimePtr(h.FichajeSalida),
		EntradaAutomatica: h.EntradaAutomatica,
		SalidaAutomatica:  h.SalidaAutomatica,

		LatitudEntrada:   h.LatitudEntrada,
		LongitudEntrada:  h.LongitudEntrada,
		IPAddressEntrada: h.IPAddressEntrada,
		UserAgentEntrada: h.UserAgentEntrada,

		LatitudSalida:   h.LatitudSalida,
		LongitudSalida:  h.LongitudSalida,
		IPAddressSalida: h.IPAddressSalida,
		UserAgentSalida: h.UserAgentSalida,

		Observaciones: h.Observaciones,
		CreatedAt:     h.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     h.UpdatedAt.Format(time.RFC3339),
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
