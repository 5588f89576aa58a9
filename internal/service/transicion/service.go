package transicion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/turnos-hq/horario-backend-go/internal/domain/descanso"
	"github.com/turnos-hq/horario-backend-go/internal/domain/horario"
)

// TxRunner executes fn inside one database transaction; on error the
// transaction is rolled back. Production wires this to
// postgresql.WithTransaction.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// errPrecondicion marks the benign race where another actor already
// advanced one of the shifts. It never escapes Ejecutar.
var errPrecondicion = errors.New("transition preconditions no longer hold")

type TransicionServiceImpl struct {
	tx           TxRunner
	horarioRepo  horario.HorarioRepository
	descansoRepo descanso.DescansoRepository
	fichajeSvc   horario.FichajeService
}

// Ejecutar implements horario.TransicionService. Both shift rows are
// locked (SELECT ... FOR UPDATE) and the preconditions re-validated
// inside the transaction, closing the race between check and start.
func (s *TransicionServiceImpl) Ejecutar(ctx context.Context, actualID, siguienteID int64) error {
	actual, err := s.horarioRepo.GetByID(ctx, actualID)
	if err != nil {
		return fmt.Errorf("failed to load horario actual %d: %w", actualID, err)
	}
	siguiente, err := s.horarioRepo.GetByID(ctx, siguienteID)
	if err != nil {
		return fmt.Errorf("failed to load horario siguiente %d: %w", siguienteID, err)
	}

	if err := validarPrecondiciones(actual, siguiente); err != nil {
		slog.Info("automatic transition skipped",
			"horario_actual", actualID,
			"horario_siguiente", siguienteID,
			"estado_actual", actual.EstadoFichaje,
			"estado_siguiente", siguiente.EstadoFichaje)
		return nil
	}

	err = s.tx(ctx, func(txCtx context.Context) error {
		actual, err := s.horarioRepo.GetForUpdate(txCtx, actualID)
		if err != nil {
			return fmt.Errorf("failed to lock horario actual %d: %w", actualID, err)
		}
		siguiente, err := s.horarioRepo.GetForUpdate(txCtx, siguienteID)
		if err != nil {
			return fmt.Errorf("failed to lock horario siguiente %d: %w", siguienteID, err)
		}

		if err := validarPrecondiciones(actual, siguiente); err != nil {
			return err
		}

		activo, err := s.descansoRepo.GetActive(txCtx, actualID)
		if err != nil {
			return fmt.Errorf("failed to get active descanso: %w", err)
		}

		if activo != nil {
			return s.TransferirDescanso(txCtx, &actual, &siguiente, *activo)
		}

		return s.cerrarYAbrir(txCtx, &actual, &siguiente)
	})

	if errors.Is(err, errPrecondicion) {
		slog.Info("automatic transition skipped inside transaction",
			"horario_actual", actualID, "horario_siguiente", siguienteID)
		return nil
	}
	if err != nil {
		slog.Error("automatic transition failed",
			"horario_actual", actualID, "horario_siguiente", siguienteID, "error", err)
		return err
	}

	return nil
}

func validarPrecondiciones(actual, siguiente horario.Horario) error {
	if actual.EstadoFichaje != horario.EstadoEnCurso {
		return errPrecondicion
	}
	if siguiente.EstadoFichaje != horario.EstadoSinIniciar {
		return errPrecondicion
	}
	return nil
}

// TransferirDescanso re-points an open break from the ending shift to
// the starting one, preserving its inicio. The current shift is NOT
// finalized here: finalizing mid-break would fabricate a fichaje_salida
// the employee never made, so closure is deferred to a later manual
// action (or the stale-shift job will flag it).
func (s *TransicionServiceImpl) TransferirDescanso(ctx context.Context, actual, siguiente *horario.Horario, activo descanso.Descanso) error {
	if err := s.descansoRepo.Reassign(ctx, activo.ID, siguiente.ID); err != nil {
		return fmt.Errorf("failed to transfer descanso %d: %w", activo.ID, err)
	}

	slog.Warn("open descanso spans shift boundary; horario actual left en_curso",
		"descanso_id", activo.ID,
		"horario_actual", actual.ID,
		"horario_siguiente", siguiente.ID,
		"descanso_inicio", activo.Inicio)

	return nil
}

// cerrarYAbrir finalizes the ending shift and initiates the next one,
// both stamped at the shared boundary and flagged as automatic. The
// employee is assumed not to have moved between contiguous shifts, so
// the entry geolocation of the ending shift is carried to both events.
func (s *TransicionServiceImpl) cerrarYAbrir(ctx context.Context, actual, siguiente *horario.Horario) error {
	marca := actual.HorarioFin

	fc := horario.ContextoFichaje{
		Latitud:              actual.LatitudEntrada,
		Longitud:             actual.LongitudEntrada,
		IPAddress:            actual.IPAddressEntrada,
		UserAgent:            actual.UserAgentEntrada,
		Marca:                &marca,
		TransicionAutomatica: true,
	}

	if err := s.fichajeSvc.Finalizar(ctx, actual, fc); err != nil {
		return fmt.Errorf("failed to finalize horario %d: %w", actual.ID, err)
	}
	if err := s.fichajeSvc.Iniciar(ctx, siguiente, fc); err != nil {
		return fmt.Errorf("failed to initiate horario %d: %w", siguiente.ID, err)
	}

	return nil
}

func NewTransicionService(
	tx TxRunner,
	horarioRepo horario.HorarioRepository,
	descansoRepo descanso.DescansoRepository,
	fichajeSvc horario.FichajeService,
) horario.TransicionService {
	return &TransicionServiceImpl{
		tx:           tx,
		horarioRepo:  horarioRepo,
		descansoRepo: descansoRepo,
		fichajeSvc:   fichajeSvc,
	}
}
