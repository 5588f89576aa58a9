package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/turnos-hq/horario-backend-go/internal/domain/descanso"
	"github.com/turnos-hq/horario-backend-go/internal/domain/horario"
	"github.com/turnos-hq/horario-backend-go/internal/handler/http/response"
)

type FichajeHandler interface {
	FicharEntrada(w http.ResponseWriter, r *http.Request)
	FicharSalida(w http.ResponseWriter, r *http.Request)
	IniciarDescanso(w http.ResponseWriter, r *http.Request)
	FinalizarDescanso(w http.ResponseWriter, r *http.Request)
	ObtenerDescansoActivo(w http.ResponseWriter, r *http.Request)
}

type FichajeHandlerImpl struct {
	horarioRepo     horario.HorarioRepository
	fichajeService  horario.FichajeService
	descansoService descanso.DescansoService
}

// FicharEntrada implements FichajeHandler.
func (h *FichajeHandlerImpl) FicharEntrada(w http.ResponseWriter, r *http.Request) {
	h.fichar(w, r, h.fichajeService.Iniciar)
}

// FicharSalida implements FichajeHandler.
func (h *FichajeHandlerImpl) FicharSalida(w http.ResponseWriter, r *http.Request) {
	h.fichar(w, r, h.fichajeService.Finalizar)
}

type eventoFichaje func(ctx context.Context, hr *horario.Horario, fc horario.ContextoFichaje) error

// fichar is the shared clock-event path. The body only carries the
// browser geolocation; IP and user agent always come from the request
// itself. An empty body is a clock event without geolocation.
func (h *FichajeHandlerImpl) fichar(w http.ResponseWriter, r *http.Request, evento eventoFichaje) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid horario id", nil)
		return
	}

	var req horario.FichajeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("Fichaje decode error", "horario_id", id, "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	hr, err := h.horarioRepo.GetByID(r.Context(), id)
	if err != nil {
		slog.Error("Fichaje load error", "horario_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	ip := clientIP(r)
	userAgent := r.UserAgent()
	fc := horario.ContextoFichaje{
		Latitud:   req.Latitud,
		Longitud:  req.Longitud,
		IPAddress: &ip,
		UserAgent: &userAgent,
	}

	if err := evento(r.Context(), &hr, fc); err != nil {
		slog.Error("Fichaje service error", "horario_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, horario.NewHorarioResponse(hr))
}

// IniciarDescanso implements FichajeHandler.
func (h *FichajeHandlerImpl) IniciarDescanso(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid horario id", nil)
		return
	}

	d, err := h.descansoService.Iniciar(r.Context(), id)
	if err != nil {
		slog.Error("IniciarDescanso service error", "horario_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Descanso started", descanso.NewDescansoResponse(d))
}

// FinalizarDescanso implements FichajeHandler.
func (h *FichajeHandlerImpl) FinalizarDescanso(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid horario id", nil)
		return
	}

	d, err := h.descansoService.Finalizar(r.Context(), id)
	if err != nil {
		slog.Error("FinalizarDescanso service error", "horario_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Descanso finished", descanso.NewDescansoResponse(d))
}

// ObtenerDescansoActivo implements FichajeHandler.
func (h *FichajeHandlerImpl) ObtenerDescansoActivo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid horario id", nil)
		return
	}

	d, err := h.descansoService.ObtenerActivo(r.Context(), id)
	if err != nil {
		slog.Error("ObtenerDescansoActivo service error", "horario_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	if d == nil {
		response.Success(w, nil)
		return
	}

	response.Success(w, descanso.NewDescansoResponse(*d))
}

// clientIP strips the port from RemoteAddr; falls back to the raw value
// when it is not host:port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func NewFichajeHandler(
	horarioRepo horario.HorarioRepository,
	fichajeService horario.FichajeService,
	descansoService descanso.DescansoService,
) FichajeHandler {
	return &FichajeHandlerImpl{
		horarioRepo:     horarioRepo,
		fichajeService:  fichajeService,
		descansoService: descansoService,
	}
}
