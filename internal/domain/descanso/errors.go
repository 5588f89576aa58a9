package descanso

import "errors"

// Break domain errors. ErrDescansoActivo is a state-ordering guard and
// propagates as a hard failure.
var (
	ErrDescansoNotFound  = errors.New("descanso not found")
	ErrDescansoActivo    = errors.New("a descanso is already active for this horario")
	ErrSinDescansoActivo = errors.New("no active descanso for this horario")
)
