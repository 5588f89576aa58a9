package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/turnos-hq/horario-backend-go/internal/domain/horario"
	"github.com/turnos-hq/horario-backend-go/internal/handler/http/response"
)

type HorarioHandler interface {
	CrearLote(w http.ResponseWriter, r *http.Request)
	ActualizarLote(w http.ResponseWriter, r *http.Request)
	EliminarLote(w http.ResponseWriter, r *http.Request)
	ObtenerLote(w http.ResponseWriter, r *http.Request)
	Obtener(w http.ResponseWriter, r *http.Request)
}

type HorarioHandlerImpl struct {
	horarioService horario.HorarioService
}

// CrearLote implements HorarioHandler.
func (h *HorarioHandlerImpl) CrearLote(w http.ResponseWriter, r *http.Request) {
	var req horario.CrearLoteRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CrearLote decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.horarioService.CrearLote(r.Context(), req)
	if err != nil {
		slog.Error("CrearLote service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Horarios created", created)
}

// ActualizarLote implements HorarioHandler.
func (h *HorarioHandlerImpl) ActualizarLote(w http.ResponseWriter, r *http.Request) {
	var req horario.ActualizarLoteRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ActualizarLote decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.horarioService.ActualizarLote(r.Context(), req)
	if err != nil {
		slog.Error("ActualizarLote service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Horarios updated", updated)
}

// EliminarLote implements HorarioHandler.
func (h *HorarioHandlerImpl) EliminarLote(w http.ResponseWriter, r *http.Request) {
	var req horario.EliminarLoteRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("EliminarLote decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.horarioService.EliminarLote(r.Context(), req); err != nil {
		slog.Error("EliminarLote service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Horarios deleted", nil)
}

// ObtenerLote implements HorarioHandler.
func (h *HorarioHandlerImpl) ObtenerLote(w http.ResponseWriter, r *http.Request) {
	var req horario.ObtenerLoteRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ObtenerLote decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	horarios, err := h.horarioService.ObtenerLote(r.Context(), req)
	if err != nil {
		slog.Error("ObtenerLote service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, horarios)
}

// Obtener implements HorarioHandler.
func (h *HorarioHandlerImpl) Obtener(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid horario id", nil)
		return
	}

	resp, err := h.horarioService.Obtener(r.Context(), id)
	if err != nil {
		slog.Error("Obtener service error", "horario_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func NewHorarioHandler(horarioService horario.HorarioService) HorarioHandler {
	return &HorarioHandlerImpl{horarioService: horarioService}
}
