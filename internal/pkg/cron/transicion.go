package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/turnos-hq/horario-backend-go/internal/domain/horario"
)

type TransicionJobs struct {
	horarioRepo        horario.HorarioRepository
	transicionSvc      horario.TransicionService
	transitionInterval time.Duration
	staleGrace         time.Duration
}

func NewTransicionJobs(
	horarioRepo horario.HorarioRepository,
	transicionSvc horario.TransicionService,
	transitionInterval time.Duration,
	staleGrace time.Duration,
) *TransicionJobs {
	return &TransicionJobs{
		horarioRepo:        horarioRepo,
		transicionSvc:      transicionSvc,
		transitionInterval: transitionInterval,
		staleGrace:         staleGrace,
	}
}

func (j *TransicionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("transiciones_automaticas", j.transitionInterval, j.EjecutarTransiciones)
	scheduler.AddJob("horarios_estancados", 1*time.Hour, j.ReportarEstancados)
}

// EjecutarTransiciones finds every contiguous shift pair whose boundary
// has passed and hands each one to the transition service. Pairs are
// independent; a failed pair is logged and the sweep moves on, so one
// locked row never starves the rest.
func (j *TransicionJobs) EjecutarTransiciones(ctx context.Context) error {
	now := time.Now().UTC()

	pares, err := j.horarioRepo.GetContiguousPairs(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to get contiguous pairs: %w", err)
	}

	if len(pares) == 0 {
		return nil
	}

	slog.Info("Cron: Starting automatic transitions", "pairs", len(pares))

	var errs []error
	processed := 0
	for _, par := range pares {
		runID := uuid.NewString()

		if err := j.transicionSvc.Ejecutar(ctx, par.ActualID, par.SiguienteID); err != nil {
			slog.Error("Cron: Automatic transition failed",
				"run_id", runID,
				"horario_actual", par.ActualID,
				"horario_siguiente", par.SiguienteID,
				"error", err)
			errs = append(errs, fmt.Errorf("pair %d->%d: %w", par.ActualID, par.SiguienteID, err))
			continue
		}

		processed++
	}

	slog.Info("Cron: Automatic transitions completed",
		"processed", processed, "failed", len(errs))

	return errors.Join(errs...)
}

// ReportarEstancados flags shifts still en_curso well past their planned
// end. They are reported, not mutated: closing them would fabricate a
// fichaje_salida, so resolution stays a manual action.
func (j *TransicionJobs) ReportarEstancados(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-j.staleGrace)

	estancados, err := j.horarioRepo.GetStale(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to get stale horarios: %w", err)
	}

	for _, h := range estancados {
		slog.Warn("Cron: Horario still en_curso past its window",
			"horario_id", h.ID,
			"empleado_id", h.EmpleadoID,
			"horario_fin", h.HorarioFin,
			"fichaje_entrada", h.FichajeEntrada)
	}

	if len(estancados) > 0 {
		slog.Info("Cron: Stale horario sweep completed", "count", len(estancados))
	}

	return nil
}
