package fichaje

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/turnos-hq/horario-backend-go/internal/domain/horario"
)

// FichajeServiceImpl is the attendance recorder. It is the single place
// where estado_fichaje moves, and it only ever moves forward.
type FichajeServiceImpl struct {
	horarioRepo horario.HorarioRepository
}

// Iniciar implements horario.FichajeService.
func (s *FichajeServiceImpl) Iniciar(ctx context.Context, h *horario.Horario, fc horario.ContextoFichaje) error {
	switch h.EstadoFichaje {
	case horario.EstadoSinIniciar:
		// ok
	case horario.EstadoEnCurso:
		return fmt.Errorf("iniciar fichaje on horario %d: %w", h.ID, horario.ErrFichajeYaIniciado)
	default:
		return fmt.Errorf("iniciar fichaje on horario %d: %w", h.ID, horario.ErrFichajeYaFinalizado)
	}

	entrada := time.Now().UTC()
	if fc.Marca != nil {
		entrada = *fc.Marca
	}

	h.FichajeEntrada = &entrada
	h.EntradaAutomatica = fc.TransicionAutomatica
	h.LatitudEntrada = fc.Latitud
	h.LongitudEntrada = fc.Longitud
	h.IPAddressEntrada = fc.IPAddress
	h.UserAgentEntrada = fc.UserAgent
	h.EstadoFichaje = horario.EstadoEnCurso

	if err := s.horarioRepo.UpdateFichaje(ctx, *h); err != nil {
		return fmt.Errorf("failed to persist fichaje entrada: %w", err)
	}

	if fc.TransicionAutomatica {
		slog.Info("fichaje entrada recorded by automatic transition",
			"horario_id", h.ID, "fichaje_entrada", entrada)
	}

	return nil
}

// Finalizar implements horario.FichajeService. Calling it on a shift
// that is not en_curso is an ordering fault of the caller and propagates
// as a hard error.
func (s *FichajeServiceImpl) Finalizar(ctx context.Context, h *horario.Horario, fc horario.ContextoFichaje) error {
	switch h.EstadoFichaje {
	case horario.EstadoEnCurso:
		// ok
	case horario.EstadoSinIniciar:
		return fmt.Errorf("finalizar fichaje on horario %d: %w", h.ID, horario.ErrFichajeNoIniciado)
	default:
		return fmt.Errorf("finalizar fichaje on horario %d: %w", h.ID, horario.ErrFichajeYaFinalizado)
	}

	salida := time.Now().UTC()
	if fc.Marca != nil {
		salida = *fc.Marca
	}

	h.FichajeSalida = &salida
	h.SalidaAutomatica = fc.TransicionAutomatica
	h.LatitudSalida = fc.Latitud
	h.LongitudSalida = fc.Longitud
	h.IPAddressSalida = fc.IPAddress
	h.UserAgentSalida = fc.UserAgent
	h.EstadoFichaje = horario.EstadoFinalizado

	if err := s.horarioRepo.UpdateFichaje(ctx, *h); err != nil {
		return fmt.Errorf("failed to persist fichaje salida: %w", err)
	}

	if fc.TransicionAutomatica {
		slog.Info("fichaje salida recorded by automatic transition",
			"horario_id", h.ID, "fichaje_salida", salida)
	}

	return nil
}

func NewFichajeService(horarioRepo horario.HorarioRepository) horario.FichajeService {
	return &FichajeServiceImpl{horarioRepo: horarioRepo}
}
