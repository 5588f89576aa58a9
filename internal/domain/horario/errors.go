package horario

import "errors"

// Horario domain errors.
//
// The fichaje ordering errors are state-machine guards: they signal a
// programming or concurrency fault upstream and must propagate, never be
// corrected silently.
var (
	ErrHorarioNotFound = errors.New("horario not found")

	ErrFichajeYaIniciado   = errors.New("fichaje already started for this horario")
	ErrFichajeNoIniciado   = errors.New("fichaje has not been started for this horario")
	ErrFichajeYaFinalizado = errors.New("fichaje already finalized for this horario")
)
